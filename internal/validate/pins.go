package validate

import (
	"fmt"
	"sort"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/schema"
)

// Claim is one declared ownership of a physical pin by a peripheral
// function. Claims are derived per run, never stored in the source
// configuration.
type Claim struct {
	Pin      string
	Kind     board.Kind
	Instance string
	Role     string
	Location string
}

// Claimant renders the claim's owner for conflict messages,
// e.g. "uart.uart1 (TX)".
func (c Claim) Claimant() string {
	return fmt.Sprintf("%s (%s)", c.Location, c.Role)
}

// PinMap is the normalised mapping from pin identifier to the ordered
// claims on it, plus the flat claim sequence in traversal order.
type PinMap struct {
	byPin map[string][]Claim
	all   []Claim
}

func (m *PinMap) add(c Claim) {
	m.all = append(m.all, c)
	m.byPin[c.Pin] = append(m.byPin[c.Pin], c)
}

// Claims returns the claims on a pin in traversal order.
func (m *PinMap) Claims(pin string) []Claim { return m.byPin[pin] }

// Pins returns all claimed pin identifiers, sorted. Sorting here (rather
// than map iteration order) keeps conflict reporting deterministic.
func (m *PinMap) Pins() []string {
	pins := make([]string, 0, len(m.byPin))
	for p := range m.byPin {
		pins = append(pins, p)
	}
	sort.Strings(pins)
	return pins
}

// All returns every claim in traversal order.
func (m *PinMap) All() []Claim { return m.all }

// collect walks a schema-valid configuration and produces the complete
// pin→claims mapping.
//
// Traversal order is fixed: GPIO entries in declaration order, then UART,
// I2C, SPI and timer instances in declaration order, and within an
// instance the schema's pin_order (UART claims TX before RX). This order
// decides which claim a conflict message names first.
//
// Disabled instances and instances in the invalid set (field validation
// failed, their pins are not trusted) contribute no claims. Empty pin
// fields are unset, not claims.
func collect(cfg *board.Config, reg *schema.Registry, invalid map[string]bool) *PinMap {
	pm := &PinMap{byPin: make(map[string][]Claim)}

	for _, kind := range board.Kinds() {
		ps, ok := reg.Peripheral(kind)
		if !ok {
			continue
		}
		instances := cfg.Section(kind)
		for i := range instances {
			inst := &instances[i]
			if !inst.Enabled() || invalid[inst.Location()] {
				continue
			}
			collectInstance(pm, inst, ps)
		}
	}
	return pm
}

func collectInstance(pm *PinMap, inst *board.Instance, ps *schema.PeripheralSchema) {
	// A timer only drives a pin in PWM mode.
	if inst.Kind == board.KindTimer && inst.Str("mode") != "pwm" {
		return
	}

	for _, field := range ps.PinOrder {
		rule := ps.Fields[field]
		switch rule.Type {
		case schema.TypePin:
			if pin := inst.Str(field); pin != "" {
				pm.add(Claim{
					Pin:      pin,
					Kind:     inst.Kind,
					Instance: inst.Name,
					Role:     claimRole(inst, rule),
					Location: inst.Location(),
				})
			}
		case schema.TypePinList:
			for i, pin := range inst.StrList(field) {
				if pin == "" {
					continue
				}
				pm.add(Claim{
					Pin:      pin,
					Kind:     inst.Kind,
					Instance: inst.Name,
					Role:     fmt.Sprintf("%s%d", rule.Role, i),
					Location: inst.Location(),
				})
			}
		}
	}
}

// claimRole names the function a pin serves. GPIO entries use their
// configured direction ("output", "input") instead of a fixed role name.
func claimRole(inst *board.Instance, rule schema.FieldRule) string {
	if inst.Kind == board.KindGPIO {
		if dir := inst.Str("direction"); dir != "" {
			return dir
		}
	}
	return rule.Role
}
