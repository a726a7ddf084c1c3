// Package route builds the wires of a pinout diagram and resolves their
// orthogonal paths.
//
// # Wires
//
// [Build] creates one [Wire] per (physical pin, logical pin) association,
// in port order, then entry order, then target order. Unrendered targets
// produce no wire. Each wire runs from the tip of a CPU pin to the tip of a
// logical pin.
//
// # Paths
//
// Without an explicit route a wire takes the default orthogonal path:
//
//	M x0,y0 H x1                      (same row)
//	M x0,y0 H xm V y1 H x1            (xm = (x0 + x1) / 2)
//
// An explicit route is a list of [Directive] values applied from the source
// tip, always finished with "V y1 H x1" so the wire lands on its
// destination:
//
//	H 500 v 16 H 700
//
// # Route language
//
// Routes are written as letter/number pairs separated by whitespace or
// commas. H is an absolute x, V an absolute y and v a relative y offset.
// [Parse] reads them with a participle grammar and rejects unknown letters
// with ErrCodeUnknownRouteDirective.
//
// Paths are computed on first use and cached, so rendering the same wire in
// the normal and highlight passes yields the identical string.
package route
