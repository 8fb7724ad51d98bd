package board

import "errors"

// Domain errors for the board package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, board.ErrConfigParse) {
//	    // handle malformed YAML
//	}
var (
	// ErrConfigRead is returned when the configuration file cannot be read.
	ErrConfigRead = errors.New("board: cannot read config")

	// ErrConfigParse is returned when the configuration is not valid YAML
	// or a section does not have the expected shape.
	ErrConfigParse = errors.New("board: cannot parse config")

	// ErrMissingBoard is returned when the board section is absent or is
	// missing its MCU part identifier.
	ErrMissingBoard = errors.New("board: missing board metadata")
)
