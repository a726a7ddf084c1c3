package board

import (
	_ "embed"
)

//go:embed boards/deluge.toml
var referenceTOML []byte

// ReferenceName is the name of the embedded reference board.
const ReferenceName = "deluge"

// Reference decodes the embedded reference board: a 176-pin RZ/A1L
// microcontroller wired to 17 modules across 8 ports.
func Reference() (*Board, error) {
	return Decode(referenceTOML)
}

// ReferenceTOML returns the source text of the embedded reference board.
func ReferenceTOML() []byte {
	out := make([]byte, len(referenceTOML))
	copy(out, referenceTOML)
	return out
}
