// Package board holds the declarative description of a pinout diagram.
//
// A [Board] ties together three pieces of static data:
//
//   - the [Catalog]: modules (peripherals) and their named logical pins,
//   - the [PinMap]: the microcontroller's physical package pins grouped into
//     ports, each mapped to a [Target],
//   - the unrendered set: package pins that deliberately carry no wire
//     (power, ground, oscillator, JTAG, USB...).
//
// It also carries the caller-supplied placement of every module and of the
// CPU block, plus explicit wire routes. Those fields are consumed by the
// layout and route packages; this package only stores them.
//
// # Targets
//
// A physical pin maps to exactly one [Target], which is one of three
// variants:
//
//	board.Unrendered("MD_BOOT0")               // named signal, no wire
//	board.Single(board.Ref("OLED", "COPI"))    // one logical pin
//	board.Multi(oledClock, dacClock)           // fan-out to several pins
//
// # Validation
//
// [Check] walks the whole board and returns every violation it finds;
// [Validate] returns only the first one. Both must succeed before a board is
// laid out. The invariants are:
//
//   - package pins 1..N partition exactly into the unrendered set and the
//     pin map, with no number defined twice,
//   - every non-bus, non-indirect logical pin is targeted exactly once,
//   - every target names a pin that exists in the catalog.
//
// # Board files
//
// Boards are written in TOML. [Decode] and [Load] read them, [Encode]
// writes them back, and [Reference] returns the embedded reference board.
package board
