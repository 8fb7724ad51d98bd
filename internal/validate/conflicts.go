package validate

import (
	"fmt"
	"strings"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/schema"
)

// I2C 7-bit address space reserved by the specification: addresses below
// 0x08 and above 0x77 are not assignable to devices.
const (
	i2cAddressMin = 0x08
	i2cAddressMax = 0x77
)

// analyze consumes the pin→claims mapping and the resolved descriptor and
// appends findings in a fixed pass order:
//
//  1. out-of-package pins (one error per claim, traversal order)
//  2. pin conflicts (one error per pin, pins sorted by identifier,
//     claimants listed in traversal order)
//  3. peripheral instance limits
//  4. missing-pin advisories and timer PWM rules
//  5. per-bus I2C device address checks
func analyze(cfg *board.Config, desc *schema.Descriptor, pins *PinMap, invalid map[string]bool, opts Options, rep *Report) {
	badPins := checkPackagePins(desc, pins, rep)
	checkConflicts(pins, badPins, rep)
	checkInstanceLimits(cfg, desc, rep)
	checkRequiredPins(cfg, invalid, opts, rep)
	checkI2CAddresses(cfg, invalid, rep)
}

// checkPackagePins flags every claim whose pin is syntactically invalid or
// outside the package layout, and returns the set of bad pin identifiers.
// Bad pins are excluded from conflict analysis: a pin that does not exist
// cannot be meaningfully shared.
func checkPackagePins(desc *schema.Descriptor, pins *PinMap, rep *Report) map[string]bool {
	bad := make(map[string]bool)
	for _, c := range pins.All() {
		p, err := schema.ParsePin(c.Pin)
		if err != nil || !desc.HasPin(p) {
			rep.add(Finding{
				Severity: SeverityError,
				Message: fmt.Sprintf("invalid pin %s for %s: not available on %s package (ports %s)",
					c.Pin, c.Claimant(), desc.PackageInfo.PackageType, strings.Join(desc.Ports(), ", ")),
				Location: c.Location,
				Category: CategoryPinFormat,
				Pin:      c.Pin,
			})
			bad[c.Pin] = true
		}
	}
	return bad
}

// checkConflicts emits one error per pin with two or more claims, naming
// every claimant in collector traversal order (first claimant first).
func checkConflicts(pins *PinMap, badPins map[string]bool, rep *Report) {
	for _, pin := range pins.Pins() {
		if badPins[pin] {
			continue
		}
		claims := pins.Claims(pin)
		if len(claims) < 2 {
			continue
		}
		claimants := make([]string, len(claims))
		for i, c := range claims {
			claimants[i] = c.Claimant()
		}
		rep.add(Finding{
			Severity: SeverityError,
			Message:  fmt.Sprintf("pin %s claimed by %s", pin, strings.Join(claimants, " and ")),
			Location: claims[0].Location,
			Category: CategoryPinConflict,
			Pin:      pin,
		})
	}
}

// checkInstanceLimits compares enabled-instance counts against the
// descriptor's per-kind limits.
func checkInstanceLimits(cfg *board.Config, desc *schema.Descriptor, rep *Report) {
	for _, kind := range board.Kinds() {
		limit, ok := desc.Limit(kind)
		if !ok {
			continue
		}
		if count := cfg.EnabledCount(kind); count > limit {
			rep.addError(
				fmt.Sprintf("too many %s peripherals enabled: %d exceeds limit of %d", kind, count, limit),
				kind.Section(), CategoryMCULimits)
		}
	}
}

// checkRequiredPins emits advisories for enabled instances that leave
// deferrable pin roles unset, and errors for timer PWM instances that
// lack their mandatory PWM settings.
//
// The advisory severity is configurable (Options.AdvisorySeverity): a
// board designer may knowingly defer CS wiring, so the default is a
// warning rather than an error.
func checkRequiredPins(cfg *board.Config, invalid map[string]bool, opts Options, rep *Report) {
	advise := func(message, location string) {
		rep.add(Finding{
			Severity: opts.AdvisorySeverity,
			Message:  message,
			Location: location,
			Category: CategoryMissingPins,
		})
	}

	for i := range cfg.UART {
		inst := &cfg.UART[i]
		if !inst.Enabled() || invalid[inst.Location()] {
			continue
		}
		if inst.Str("tx_pin") == "" && inst.Str("rx_pin") == "" {
			advise(fmt.Sprintf("%s: no TX or RX pins configured", inst.Location()), inst.Location())
		}
	}

	for i := range cfg.SPI {
		inst := &cfg.SPI[i]
		if !inst.Enabled() || invalid[inst.Location()] {
			continue
		}
		if len(inst.StrList("cs_pins")) == 0 {
			advise(fmt.Sprintf("%s: no CS pins configured", inst.Location()), inst.Location())
		}
	}

	for i := range cfg.Timers {
		inst := &cfg.Timers[i]
		if !inst.Enabled() || invalid[inst.Location()] || inst.Str("mode") != "pwm" {
			continue
		}
		loc := inst.Location()
		if inst.Str("output_pin") == "" {
			rep.addError(fmt.Sprintf("%s: pwm mode requires output_pin", loc), loc, CategoryTimerConfig)
		}
		if _, ok := inst.Int("duty_cycle"); !ok {
			rep.addError(fmt.Sprintf("%s: pwm mode requires duty_cycle", loc), loc, CategoryTimerConfig)
		}
		if _, ok := inst.Int("channel"); !ok {
			rep.addError(fmt.Sprintf("%s: pwm mode requires channel", loc), loc, CategoryTimerConfig)
		}
	}
}

// checkI2CAddresses runs the address-space check per bus: duplicate device
// addresses and addresses outside the assignable 7-bit range. Independent
// of the pin passes — this is bus address space, not pins.
func checkI2CAddresses(cfg *board.Config, invalid map[string]bool, rep *Report) {
	for i := range cfg.I2C {
		inst := &cfg.I2C[i]
		if !inst.Enabled() || invalid[inst.Location()] {
			continue
		}
		loc := inst.Location()
		seen := make(map[int64]string)
		for _, dev := range inst.Devices() {
			if first, dup := seen[dev.Address]; dup {
				rep.addError(
					fmt.Sprintf("i2c address conflict on %s: 0x%02X used by %s and %s",
						inst.Name, dev.Address, first, dev.Name),
					loc, CategoryI2CAddress)
			} else {
				seen[dev.Address] = dev.Name
			}
			if dev.Address < i2cAddressMin || dev.Address > i2cAddressMax {
				rep.addError(
					fmt.Sprintf("invalid i2c address 0x%02X for device %s on %s (must be 0x%02X-0x%02X)",
						dev.Address, dev.Name, inst.Name, int64(i2cAddressMin), int64(i2cAddressMax)),
					loc, CategoryI2CAddress)
			}
		}
	}
}
