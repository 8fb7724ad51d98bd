package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/boardlint/boardlint/internal/board"
)

// Directory layout of a schema set, mirrored by the embedded default set
// in the schemas package.
const (
	mcuDir        = "mcu"
	peripheralDir = "peripherals"
)

var validFieldTypes = map[FieldType]struct{}{
	TypeString:     {},
	TypeInt:        {},
	TypeFloat:      {},
	TypeBool:       {},
	TypePin:        {},
	TypePinList:    {},
	TypeDeviceList: {},
}

// LoadRegistry reads every MCU descriptor under mcu/ and every peripheral
// schema under peripherals/ of the given filesystem and builds a Registry.
//
// All failures are ErrSchemaLoad: a malformed or missing schema document
// is fatal before any validation starts.
func LoadRegistry(fsys fs.FS) (*Registry, error) {
	descriptors, err := loadDescriptors(fsys)
	if err != nil {
		return nil, err
	}
	peripherals, err := loadPeripheralSchemas(fsys)
	if err != nil {
		return nil, err
	}
	return NewRegistry(descriptors, peripherals)
}

func loadDescriptors(fsys fs.FS) ([]*Descriptor, error) {
	files, err := listJSON(fsys, mcuDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no MCU descriptors under %s/", ErrSchemaLoad, mcuDir)
	}

	out := make([]*Descriptor, 0, len(files))
	for _, name := range files {
		d := &Descriptor{}
		if err := decodeJSON(fsys, name, d); err != nil {
			return nil, err
		}
		if d.Name == "" {
			d.Name = strings.TrimSuffix(path.Base(name), ".json")
		}
		if len(d.Package.GPIOPorts) == 0 {
			return nil, fmt.Errorf("%w: %s: package_constraints.gpio_ports is empty", ErrSchemaLoad, name)
		}
		out = append(out, d)
	}
	return out, nil
}

func loadPeripheralSchemas(fsys fs.FS) ([]*PeripheralSchema, error) {
	files, err := listJSON(fsys, peripheralDir)
	if err != nil {
		return nil, err
	}

	out := make([]*PeripheralSchema, 0, len(files))
	for _, name := range files {
		ps := &PeripheralSchema{}
		if err := decodeJSON(fsys, name, ps); err != nil {
			return nil, err
		}
		if err := checkPeripheralSchema(ps); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrSchemaLoad, name, err)
		}
		out = append(out, ps)
	}
	return out, nil
}

// checkPeripheralSchema verifies document shape and normalises defaults:
// encoding/json decodes every number to float64, while field values coming
// from YAML are int — integer defaults are converted so that a defaulted
// field is indistinguishable from an explicit one downstream.
func checkPeripheralSchema(ps *PeripheralSchema) error {
	switch ps.Kind {
	case board.KindGPIO, board.KindUART, board.KindI2C, board.KindSPI, board.KindTimer:
	default:
		return fmt.Errorf("unknown peripheral kind %q", ps.Kind)
	}

	for name, rule := range ps.Fields {
		if _, ok := validFieldTypes[rule.Type]; !ok {
			return fmt.Errorf("field %q: unknown type %q", name, rule.Type)
		}
		if f, ok := rule.Default.(float64); ok && rule.Type == TypeInt {
			rule.Default = int64(f)
			ps.Fields[name] = rule
		}
	}

	for _, name := range ps.PinOrder {
		rule, ok := ps.Fields[name]
		if !ok {
			return fmt.Errorf("pin_order names unknown field %q", name)
		}
		if rule.Type != TypePin && rule.Type != TypePinList {
			return fmt.Errorf("pin_order field %q is not pin-typed", name)
		}
	}
	return nil
}

// listJSON returns the .json files directly under dir, sorted by name for
// deterministic load order. A missing directory is not an error; an empty
// registry is caught by the callers that require content.
func listJSON(fsys fs.FS, dir string) ([]string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s/: %v", ErrSchemaLoad, dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, path.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func decodeJSON(fsys fs.FS, name string, v any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrSchemaLoad, name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrSchemaLoad, name, err)
	}
	return nil
}
