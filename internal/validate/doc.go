// Package validate implements the board configuration validation engine.
//
// A single Engine.Validate run is a deterministic pipeline over one
// read-only board.Config:
//
//	resolve MCU descriptor          (fatal on unknown/ambiguous part)
//	   │
//	apply schema defaults           (once, before any validation)
//	   │
//	field validation                (generic rule interpreter per instance)
//	   │
//	pin collection                  (fixed traversal order, skips disabled
//	   │                             and schema-invalid instances)
//	conflict analysis               (pin conflicts, package bounds,
//	   │                             instance limits, advisories,
//	   │                             I2C address space)
//	Report
//
// Fatal errors (unknown MCU, ambiguous MCU) abort the run and no report
// is produced. Every other violation becomes a Finding so one run surfaces
// every problem. Findings are immutable and the report is append-only
// during a run; validating the same configuration twice yields an
// identical ordered finding sequence.
//
// The engine performs no I/O. Loading configuration files and schema
// registries, rendering, export and exit codes belong to collaborators
// (internal/board, internal/schema, cmd/boardlint).
package validate
