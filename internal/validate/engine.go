package validate

import (
	"fmt"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/schema"
)

// Options tunes engine behaviour.
type Options struct {
	// AdvisorySeverity is the severity of missing-pin advisories
	// (SPI without CS pins, UART without TX/RX). Defaults to warning.
	AdvisorySeverity Severity
}

// Engine validates board configurations against a schema registry.
// The registry is read-only, so one Engine may validate independent
// configurations concurrently.
type Engine struct {
	registry *schema.Registry
	opts     Options
}

// New creates a validation engine. The zero Options value selects the
// default advisory severity (warning).
func New(registry *schema.Registry, opts Options) *Engine {
	if opts.AdvisorySeverity == "" {
		opts.AdvisorySeverity = SeverityWarning
	}
	return &Engine{registry: registry, opts: opts}
}

// Validate runs the full pipeline over one configuration.
//
// Returns an error and no report when the MCU part cannot be resolved
// (ErrUnknownMCU, ErrAmbiguousMCU): without a descriptor no package or
// limit check is possible. Every other violation is collected into the
// report so a single run surfaces all problems.
func (e *Engine) Validate(cfg *board.Config) (*Report, error) {
	desc, err := e.registry.Resolve(cfg.Board.MCU)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	rep.addInfo(
		fmt.Sprintf("detected MCU package: %s (%d pins)",
			desc.PackageInfo.PackageType, desc.PackageInfo.PinCount),
		"board.mcu", CategoryMCUDetection)

	e.checkBoardLimits(cfg, desc, rep)

	applyDefaults(cfg, e.registry)
	invalid := e.checkFields(cfg, rep)

	pins := collect(cfg, e.registry, invalid)
	analyze(cfg, desc, pins, invalid, e.opts, rep)

	return rep, nil
}

// Pins resolves the configuration's MCU, applies defaults and returns the
// collected pin→claims mapping without producing a report. Used by
// consumers that only want the pin usage summary.
func (e *Engine) Pins(cfg *board.Config) (*PinMap, error) {
	if _, err := e.registry.Resolve(cfg.Board.MCU); err != nil {
		return nil, err
	}
	applyDefaults(cfg, e.registry)
	invalid := e.checkFields(cfg, &Report{})
	return collect(cfg, e.registry, invalid), nil
}

// checkBoardLimits validates board-level electrical values against the
// descriptor. Messages carry both the configured value and the bound.
func (e *Engine) checkBoardLimits(cfg *board.Config, desc *schema.Descriptor, rep *Report) {
	if max := desc.Board.MaxClockHz; max > 0 && cfg.Board.ClockFrequency > max {
		rep.addError(
			fmt.Sprintf("clock frequency %d Hz exceeds maximum %d Hz", cfg.Board.ClockFrequency, max),
			"board.clock_frequency", CategoryMCULimits)
	}
	if min, max := desc.Board.MinVoltage, desc.Board.MaxVoltage; max > 0 {
		if v := cfg.Board.Voltage; v < min || v > max {
			rep.addError(
				fmt.Sprintf("supply voltage %gV outside valid range %g-%gV", cfg.Board.Voltage, min, max),
				"board.voltage", CategoryMCULimits)
		}
	}
}

// checkFields runs the rule interpreter over every instance and returns
// the set of instance locations whose pins must not be trusted. A kind
// without a loaded schema is skipped: no rules, nothing to violate.
func (e *Engine) checkFields(cfg *board.Config, rep *Report) map[string]bool {
	invalid := make(map[string]bool)
	for _, kind := range board.Kinds() {
		ps, ok := e.registry.Peripheral(kind)
		if !ok {
			continue
		}
		instances := cfg.Section(kind)
		for i := range instances {
			if !validateInstance(&instances[i], ps, rep) {
				invalid[instances[i].Location()] = true
			}
		}
	}
	return invalid
}
