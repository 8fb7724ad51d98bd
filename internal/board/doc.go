// Package board defines the in-memory configuration model for an embedded
// board description and the YAML loader that builds it.
//
// A board configuration consists of board metadata (name, MCU part number,
// clock frequency, supply voltage) and zero or more peripheral sections:
// a GPIO list plus UART/I2C/SPI/timer instance maps keyed by instance name.
//
// Peripheral instances are held as raw field maps rather than typed structs
// so that the schema-driven validator in internal/validate can interpret
// them against declarative field rules. Declaration order is preserved for
// both the GPIO list and the instance maps; downstream components depend on
// it for deterministic finding order.
//
// The model is built once by Load or Parse and is treated as read-only by
// every downstream component.
package board
