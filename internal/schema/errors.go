package schema

import "errors"

// Domain errors for the schema package. All four are fatal: they abort a
// validation run (or process start) before any findings are produced.
var (
	// ErrSchemaLoad is returned when a schema document is missing or
	// malformed.
	ErrSchemaLoad = errors.New("schema: cannot load schema")

	// ErrUnknownMCU is returned when no descriptor pattern matches the
	// declared MCU part identifier.
	ErrUnknownMCU = errors.New("schema: unknown mcu")

	// ErrAmbiguousMCU is returned when more than one descriptor matches
	// and the longest-literal-prefix tie-break cannot pick a winner.
	ErrAmbiguousMCU = errors.New("schema: ambiguous mcu")

	// ErrInvalidPin is returned when a pin identifier is not of the
	// form P<port letter><index>.
	ErrInvalidPin = errors.New("schema: invalid pin identifier")
)
