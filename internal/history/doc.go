// Package history persists validation run reports in SQLite.
//
// Each recorded run stores the board name, the MCU part, the finding
// counts and the full finding list as JSON. The store only ever receives
// finished reports — it is a consumer of the engine's output, never part
// of the validation pipeline.
package history
