package board

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultVoltage is assumed when the board section omits voltage.
const defaultVoltage = 3.3

// rawConfig mirrors the top-level YAML document. Peripheral sections are
// kept as yaml.Node so that mapping key order survives decoding; a plain
// map[string]... would lose declaration order.
type rawConfig struct {
	Board  rawBoard  `yaml:"board"`
	GPIO   yaml.Node `yaml:"gpio"`
	UART   yaml.Node `yaml:"uart"`
	I2C    yaml.Node `yaml:"i2c"`
	SPI    yaml.Node `yaml:"spi"`
	Timers yaml.Node `yaml:"timers"`
}

// rawBoard mirrors Meta with a pointer voltage so an absent field can be
// told apart from an explicit zero. Absence defaults; zero is kept and
// left for the engine's limit check to reject.
type rawBoard struct {
	Name           string   `yaml:"name"`
	MCU            string   `yaml:"mcu"`
	ClockFrequency int64    `yaml:"clock_frequency"`
	Voltage        *float64 `yaml:"voltage"`
	Description    string   `yaml:"description"`
}

func (b rawBoard) meta() Meta {
	m := Meta{
		Name:           b.Name,
		MCU:            b.MCU,
		ClockFrequency: b.ClockFrequency,
		Voltage:        defaultVoltage,
		Description:    b.Description,
	}
	if b.Voltage != nil {
		m.Voltage = *b.Voltage
	}
	return m
}

// Load reads and parses a board configuration file.
//
// Returns:
//   - *Config: Parsed configuration, read-only from here on
//   - error: ErrConfigRead, ErrConfigParse or ErrMissingBoard
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigRead, err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes.
//
// Only structural shape is checked here: the document must decode, the
// board section must name an MCU, and each peripheral section must be a
// list (gpio) or mapping (uart/i2c/spi/timers) of field mappings. All
// semantic validation is the engine's job.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if strings.TrimSpace(raw.Board.MCU) == "" {
		return nil, fmt.Errorf("%w: board.mcu is required", ErrMissingBoard)
	}

	cfg := &Config{Board: raw.Board.meta()}

	var err error
	if cfg.GPIO, err = decodeGPIO(&raw.GPIO); err != nil {
		return nil, err
	}
	for _, s := range []struct {
		kind Kind
		node *yaml.Node
		dst  *[]Instance
	}{
		{KindUART, &raw.UART, &cfg.UART},
		{KindI2C, &raw.I2C, &cfg.I2C},
		{KindSPI, &raw.SPI, &cfg.SPI},
		{KindTimer, &raw.Timers, &cfg.Timers},
	} {
		if *s.dst, err = decodeInstanceMap(s.kind, s.node); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// decodeGPIO decodes the gpio section, a sequence of field mappings.
// Entries are named by position ("gpio[0]") for finding references.
func decodeGPIO(node *yaml.Node) ([]Instance, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: gpio section must be a list", ErrConfigParse)
	}
	out := make([]Instance, 0, len(node.Content))
	for i, item := range node.Content {
		fields, err := decodeFields(item, fmt.Sprintf("gpio[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, Instance{
			Kind:   KindGPIO,
			Name:   fmt.Sprintf("gpio[%d]", i),
			Fields: fields,
		})
	}
	return out, nil
}

// decodeInstanceMap decodes a peripheral section that maps instance names
// to field mappings, preserving declaration order.
func decodeInstanceMap(kind Kind, node *yaml.Node) ([]Instance, error) {
	if node.IsZero() {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s section must be a mapping", ErrConfigParse, kind.Section())
	}
	out := make([]Instance, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return nil, fmt.Errorf("%w: %s section key: %v", ErrConfigParse, kind.Section(), err)
		}
		fields, err := decodeFields(node.Content[i+1], kind.Section()+"."+name)
		if err != nil {
			return nil, err
		}
		out = append(out, Instance{Kind: kind, Name: name, Fields: fields})
	}
	return out, nil
}

func decodeFields(node *yaml.Node, location string) (map[string]any, error) {
	var fields map[string]any
	if err := node.Decode(&fields); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, location, err)
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}
