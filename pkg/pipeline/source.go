package pipeline

import (
	"os"

	"github.com/matzehuels/pinmap/pkg/board"
	"github.com/matzehuels/pinmap/pkg/errors"
)

// Source is a decoded board together with the bytes it came from.
type Source struct {
	Board *board.Board
	Data  []byte
	Name  string // file path, or the reference board name
}

// Hash returns the content hash of the board source.
func (s *Source) Hash() string {
	return hashBoard(s.Data)
}

// LoadBoard reads and decodes a board. An empty path selects the embedded
// reference board. The board is not validated.
func LoadBoard(path string) (*Source, error) {
	if path == "" {
		data := board.ReferenceTOML()
		b, err := board.Decode(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode reference board")
		}
		return &Source{Board: b, Data: data, Name: board.ReferenceName}, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "board file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read board file %s", path)
	}
	b, err := board.Decode(data)
	if err != nil {
		return nil, err
	}
	return &Source{Board: b, Data: data, Name: path}, nil
}
