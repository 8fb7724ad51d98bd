// Package schema provides the read-only constraint registries the
// validation engine runs against: MCU family descriptors and per-kind
// peripheral field schemas.
//
// Descriptors and peripheral schemas are plain JSON documents. An MCU
// document carries part-number match patterns, the package pin layout
// (port letter to maximum pin index), peripheral instance limits and
// board-level electrical bounds. A peripheral document maps field names
// to declarative rules (type, required, enum, range, default) that the
// generic rule interpreter in internal/validate executes — new peripheral
// kinds need a new document, not new code.
//
// Registries are loaded once at process start (from an fs.FS, usually the
// embedded set in the schemas package) and never mutated, so concurrent
// validations may share one Registry without locking.
package schema
