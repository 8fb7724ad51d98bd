package schema

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/boardlint/boardlint/internal/board"
)

// Pin is a parsed physical pin identifier, e.g. "PA9" → port "A", index 9.
type Pin struct {
	Port  string
	Index int
}

// String formats the pin back to its identifier form.
func (p Pin) String() string {
	return "P" + p.Port + strconv.Itoa(p.Index)
}

// ParsePin parses a pin identifier of the form P<port letter><index>.
//
// Accepted: "PA0" .. "PZ255". Whether the port and index actually exist
// on a given package is a Descriptor concern, not a parsing one.
func ParsePin(s string) (Pin, error) {
	if len(s) < 3 || s[0] != 'P' {
		return Pin{}, fmt.Errorf("%w: %q (expected P<port><index>)", ErrInvalidPin, s)
	}
	port := s[1]
	if port < 'A' || port > 'Z' {
		return Pin{}, fmt.Errorf("%w: %q (port must be an uppercase letter)", ErrInvalidPin, s)
	}
	idx, err := strconv.Atoi(s[2:])
	if err != nil || idx < 0 {
		return Pin{}, fmt.Errorf("%w: %q (index must be a non-negative integer)", ErrInvalidPin, s)
	}
	return Pin{Port: string(port), Index: idx}, nil
}

// PortRange is the pin index range of one GPIO port. Indices run 0..Max.
type PortRange struct {
	Max int `json:"max"`
}

// BoardLimits holds board-level electrical bounds for an MCU family.
type BoardLimits struct {
	MaxClockHz int64   `json:"max_clock_hz"`
	MinVoltage float64 `json:"min_voltage"`
	MaxVoltage float64 `json:"max_voltage"`
}

// PackageInfo describes the physical chip package.
type PackageInfo struct {
	PackageType string `json:"package_type"`
	PinCount    int    `json:"pin_count"`
}

// Descriptor is the read-only constraint record for one MCU family.
//
// JSON shape (one document per family under mcu/):
//
//	{
//	  "name": "STM32F407Vxxx",
//	  "mcu_patterns": ["STM32F407V*"],
//	  "package_constraints": {
//	    "gpio_ports": {"A": {"max": 15}, ...},
//	    "peripheral_limits": {"uart": 6, "i2c": 3, ...}
//	  },
//	  "board_limits": {"max_clock_hz": 168000000, ...},
//	  "package_info": {"package_type": "LQFP100", "pin_count": 100}
//	}
type Descriptor struct {
	Name        string             `json:"name"`
	Patterns    []string           `json:"mcu_patterns"`
	Package     PackageConstraints `json:"package_constraints"`
	Board       BoardLimits        `json:"board_limits"`
	PackageInfo PackageInfo        `json:"package_info"`
}

// PackageConstraints is the physical layout and capacity of the package:
// pin ranges per port and enabled-instance limits per peripheral kind.
type PackageConstraints struct {
	GPIOPorts map[string]PortRange `json:"gpio_ports"`
	Limits    map[string]int       `json:"peripheral_limits"`
}

// HasPin reports whether the pin exists in this package layout: the port
// letter must be present and the index within the port's range.
func (d *Descriptor) HasPin(p Pin) bool {
	r, ok := d.Package.GPIOPorts[p.Port]
	return ok && p.Index >= 0 && p.Index <= r.Max
}

// Limit returns the enabled-instance limit for a peripheral kind and
// whether the descriptor declares one.
func (d *Descriptor) Limit(kind board.Kind) (int, bool) {
	n, ok := d.Package.Limits[string(kind)]
	return n, ok
}

// Ports returns the port letters of the package layout, sorted.
func (d *Descriptor) Ports() []string {
	out := make([]string, 0, len(d.Package.GPIOPorts))
	for p := range d.Package.GPIOPorts {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// FieldType is the declared type of a peripheral field.
type FieldType string

// Field types understood by the rule interpreter.
const (
	TypeString     FieldType = "string"
	TypeInt        FieldType = "int"
	TypeFloat      FieldType = "float"
	TypeBool       FieldType = "bool"
	TypePin        FieldType = "pin"
	TypePinList    FieldType = "pin_list"
	TypeDeviceList FieldType = "device_list"
)

// FieldRule is one declarative field constraint.
//
// Enum applies to string fields, Min/Max to numeric ones. Default, when
// present, is applied once before validation so downstream components
// never distinguish a defaulted field from an explicit one. Role names
// the pin function ("TX", "SCL", ...) for pin-typed fields.
type FieldRule struct {
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Enum     []string  `json:"enum,omitempty"`
	Min      *float64  `json:"min,omitempty"`
	Max      *float64  `json:"max,omitempty"`
	Default  any       `json:"default,omitempty"`
	Role     string    `json:"role,omitempty"`
}

// PeripheralSchema is the declarative field schema for one peripheral kind.
//
// PinOrder lists the pin-typed field names in claim order; the collector
// walks it so that, e.g., a UART always claims TX before RX.
type PeripheralSchema struct {
	Kind     board.Kind           `json:"kind"`
	Fields   map[string]FieldRule `json:"fields"`
	PinOrder []string             `json:"pin_order"`
}
