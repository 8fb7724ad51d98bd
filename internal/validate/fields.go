package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/boardlint/boardlint/internal/board"
	"github.com/boardlint/boardlint/internal/schema"
)

// applyDefaults fills absent fields that carry a schema default, once per
// run and before any validation. Downstream components never see the
// difference between a defaulted and an explicit value.
//
// Absence and invalidity are distinct: only absent fields are defaulted,
// a present value that violates its rule is always flagged.
func applyDefaults(cfg *board.Config, reg *schema.Registry) {
	for _, kind := range board.Kinds() {
		ps, ok := reg.Peripheral(kind)
		if !ok {
			continue
		}
		instances := cfg.Section(kind)
		for i := range instances {
			for name, rule := range ps.Fields {
				if rule.Default == nil {
					continue
				}
				if _, present := instances[i].Fields[name]; !present {
					instances[i].Fields[name] = defaultValue(rule.Default)
				}
			}
		}
	}
}

// defaultValue copies list defaults so instances never share a slice.
func defaultValue(v any) any {
	if list, ok := v.([]any); ok {
		out := make([]any, len(list))
		copy(out, list)
		return out
	}
	return v
}

// validateInstance runs the rule interpreter over one peripheral instance
// and reports whether the instance is clean (no error findings). Fields
// are checked in name order so finding order is deterministic.
//
// Fields present in the instance but absent from the schema are warnings,
// never errors: unrecognised fields must not block validation.
func validateInstance(inst *board.Instance, ps *schema.PeripheralSchema, rep *Report) bool {
	loc := inst.Location()
	ok := true

	for _, name := range sortedKeys(ps.Fields) {
		rule := ps.Fields[name]
		value, present := inst.Fields[name]
		if !present {
			if rule.Required {
				rep.addError(fmt.Sprintf("%s: missing required field %q", loc, name), loc, CategoryFieldSchema)
				ok = false
			}
			continue
		}
		if !checkValue(loc, name, value, rule, rep) {
			ok = false
		}
	}

	for _, name := range sortedKeys(inst.Fields) {
		if _, known := ps.Fields[name]; !known {
			rep.addWarning(fmt.Sprintf("%s: unknown field %q ignored", loc, name), loc, CategoryFieldSchema)
		}
	}

	return ok
}

// checkValue applies one field rule to a present value. Returns false
// when an error finding was added.
func checkValue(loc, name string, value any, rule schema.FieldRule, rep *Report) bool {
	switch rule.Type {
	case schema.TypeString, schema.TypePin:
		s, ok := value.(string)
		if !ok {
			return typeError(loc, name, "string", value, rep)
		}
		if len(rule.Enum) > 0 && !contains(rule.Enum, s) {
			rep.addError(
				fmt.Sprintf("%s: invalid value %q for field %q (allowed: %s)",
					loc, s, name, strings.Join(rule.Enum, ", ")),
				loc, CategoryFieldSchema)
			return false
		}

	case schema.TypeInt:
		n, ok := intValue(value)
		if !ok {
			return typeError(loc, name, "integer", value, rep)
		}
		return checkRange(loc, name, float64(n), rule, rep)

	case schema.TypeFloat:
		f, ok := floatValue(value)
		if !ok {
			return typeError(loc, name, "number", value, rep)
		}
		return checkRange(loc, name, f, rule, rep)

	case schema.TypeBool:
		if _, ok := value.(bool); !ok {
			return typeError(loc, name, "boolean", value, rep)
		}

	case schema.TypePinList:
		items, ok := value.([]any)
		if !ok {
			return typeError(loc, name, "list of pins", value, rep)
		}
		good := true
		for i, it := range items {
			if _, ok := it.(string); !ok {
				good = typeError(loc, fmt.Sprintf("%s[%d]", name, i), "string", it, rep)
			}
		}
		return good

	case schema.TypeDeviceList:
		return checkDeviceList(loc, name, value, rep)
	}
	return true
}

// checkDeviceList validates the entries of an I2C device list: each entry
// must be a mapping with a string name and an integer address. Address
// semantics (reserved range, bus-level uniqueness) are the analyzer's job.
func checkDeviceList(loc, name string, value any, rep *Report) bool {
	items, ok := value.([]any)
	if !ok {
		return typeError(loc, name, "list of devices", value, rep)
	}
	good := true
	for i, it := range items {
		entry := fmt.Sprintf("%s[%d]", name, i)
		m, ok := it.(map[string]any)
		if !ok {
			good = typeError(loc, entry, "mapping", it, rep)
			continue
		}
		if s, ok := m["name"].(string); !ok || s == "" {
			rep.addError(fmt.Sprintf("%s: %s: device name is required", loc, entry), loc, CategoryFieldSchema)
			good = false
		}
		if _, ok := intValue(m["address"]); !ok {
			rep.addError(fmt.Sprintf("%s: %s: device address must be an integer", loc, entry), loc, CategoryFieldSchema)
			good = false
		}
	}
	return good
}

// checkRange enforces Min/Max bounds; the message carries both the value
// and the violated bound.
func checkRange(loc, name string, v float64, rule schema.FieldRule, rep *Report) bool {
	if rule.Min != nil && v < *rule.Min {
		rep.addError(
			fmt.Sprintf("%s: field %q value %v below minimum %v", loc, name, trimFloat(v), trimFloat(*rule.Min)),
			loc, CategoryFieldSchema)
		return false
	}
	if rule.Max != nil && v > *rule.Max {
		rep.addError(
			fmt.Sprintf("%s: field %q value %v exceeds maximum %v", loc, name, trimFloat(v), trimFloat(*rule.Max)),
			loc, CategoryFieldSchema)
		return false
	}
	return true
}

func typeError(loc, name, want string, got any, rep *Report) bool {
	rep.addError(
		fmt.Sprintf("%s: field %q must be a %s, got %T", loc, name, want, got),
		loc, CategoryFieldSchema)
	return false
}

// trimFloat renders integral floats without a trailing ".0" so messages
// about integer fields read naturally.
func trimFloat(f float64) any {
	if f == float64(int64(f)) {
		return int64(f)
	}
	return f
}

func intValue(v any) (int64, bool) {
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

func floatValue(v any) (float64, bool) {
	if n, ok := intValue(v); ok {
		return float64(n), true
	}
	f, ok := v.(float64)
	return f, ok
}

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
