package board

// Kind identifies a peripheral kind. The set is closed: extending it means
// adding a constant here plus a schema document, not new interpreter code.
type Kind string

// Peripheral kinds, in collector traversal order.
const (
	KindGPIO  Kind = "gpio"
	KindUART  Kind = "uart"
	KindI2C   Kind = "i2c"
	KindSPI   Kind = "spi"
	KindTimer Kind = "timer"
)

// Kinds returns all peripheral kinds in traversal order: GPIO entries are
// walked first, then UART, I2C, SPI and timer instances.
func Kinds() []Kind {
	return []Kind{KindGPIO, KindUART, KindI2C, KindSPI, KindTimer}
}

// Section returns the YAML section name for the kind.
func (k Kind) Section() string {
	if k == KindTimer {
		return "timers"
	}
	return string(k)
}

// Meta holds board-level metadata from the "board" section.
type Meta struct {
	Name           string  `yaml:"name"`
	MCU            string  `yaml:"mcu"`
	ClockFrequency int64   `yaml:"clock_frequency"`
	Voltage        float64 `yaml:"voltage"`
	Description    string  `yaml:"description"`
}

// Instance is one configured occurrence of a peripheral kind.
//
// Fields holds the raw decoded YAML mapping for the instance. The schema
// validator interprets it; typed accessors below are for components that
// run after schema validation has passed (and after defaults were applied).
type Instance struct {
	Kind   Kind
	Name   string
	Fields map[string]any
}

// Location returns the configuration location used in finding references,
// e.g. "gpio[0]" or "uart.uart1".
func (in *Instance) Location() string {
	if in.Kind == KindGPIO {
		return in.Name
	}
	return in.Kind.Section() + "." + in.Name
}

// Enabled reports whether the instance is enabled. Instances without an
// enabled field (GPIO entries, defaulted instances) count as enabled.
func (in *Instance) Enabled() bool {
	v, ok := in.Fields["enabled"]
	if !ok {
		return true
	}
	b, ok := v.(bool)
	return !ok || b
}

// Str returns the string value of a field, or "" when absent or not a string.
func (in *Instance) Str(name string) string {
	s, _ := in.Fields[name].(string)
	return s
}

// StrList returns the elements of a list field that are strings.
func (in *Instance) StrList(name string) []string {
	items, ok := in.Fields[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Int returns the integer value of a field and whether it was present
// as an integer.
func (in *Instance) Int(name string) (int64, bool) {
	return asInt(in.Fields[name])
}

// Device is one entry of an I2C instance's device list.
type Device struct {
	Name    string
	Address int64
	Type    string
}

// Devices returns the decoded device list of an I2C instance. Entries that
// do not have the expected shape are skipped; the schema validator reports
// them before any component calls this.
func (in *Instance) Devices() []Device {
	items, ok := in.Fields["devices"].([]any)
	if !ok {
		return nil
	}
	out := make([]Device, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		addr, ok := asInt(m["address"])
		if !ok {
			continue
		}
		name, _ := m["name"].(string)
		typ, _ := m["type"].(string)
		out = append(out, Device{Name: name, Address: addr, Type: typ})
	}
	return out
}

// Config is the complete board configuration. Built once by the loader,
// read-only afterwards.
type Config struct {
	Board  Meta
	GPIO   []Instance
	UART   []Instance
	I2C    []Instance
	SPI    []Instance
	Timers []Instance
}

// Section returns the instances of the given kind in declaration order.
func (c *Config) Section(k Kind) []Instance {
	switch k {
	case KindGPIO:
		return c.GPIO
	case KindUART:
		return c.UART
	case KindI2C:
		return c.I2C
	case KindSPI:
		return c.SPI
	case KindTimer:
		return c.Timers
	default:
		return nil
	}
}

// EnabledCount returns the number of enabled instances of the given kind.
func (c *Config) EnabledCount(k Kind) int {
	n := 0
	instances := c.Section(k)
	for i := range instances {
		if instances[i].Enabled() {
			n++
		}
	}
	return n
}

// asInt normalises the integer representations the YAML and JSON decoders
// produce into int64.
func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	default:
		return 0, false
	}
}
