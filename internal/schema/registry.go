package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/boardlint/boardlint/internal/board"
)

// pattern is a compiled part-number match pattern.
type pattern struct {
	raw    string
	re     *regexp.Regexp
	prefix int // length of the literal prefix before the first wildcard
}

// Registry holds all loaded MCU descriptors and peripheral schemas.
// It is immutable after construction and safe for concurrent use.
type Registry struct {
	descriptors []*Descriptor
	patterns    [][]pattern
	peripherals map[board.Kind]*PeripheralSchema
}

// NewRegistry builds a registry from already-decoded documents, compiling
// every descriptor's match patterns.
//
// Returns ErrSchemaLoad when a descriptor has no patterns or a pattern
// cannot be compiled.
func NewRegistry(descriptors []*Descriptor, peripherals []*PeripheralSchema) (*Registry, error) {
	r := &Registry{
		descriptors: descriptors,
		patterns:    make([][]pattern, len(descriptors)),
		peripherals: make(map[board.Kind]*PeripheralSchema, len(peripherals)),
	}
	for i, d := range descriptors {
		if len(d.Patterns) == 0 {
			return nil, fmt.Errorf("%w: descriptor %q has no mcu_patterns", ErrSchemaLoad, d.Name)
		}
		for _, raw := range d.Patterns {
			p, err := compilePattern(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: descriptor %q: %v", ErrSchemaLoad, d.Name, err)
			}
			r.patterns[i] = append(r.patterns[i], p)
		}
	}
	for _, ps := range peripherals {
		r.peripherals[ps.Kind] = ps
	}
	return r, nil
}

// Descriptors returns the loaded MCU descriptors.
func (r *Registry) Descriptors() []*Descriptor {
	return r.descriptors
}

// Peripheral returns the field schema for a peripheral kind.
func (r *Registry) Peripheral(kind board.Kind) (*PeripheralSchema, bool) {
	ps, ok := r.peripherals[kind]
	return ps, ok
}

// Resolve selects exactly one descriptor for an MCU part identifier.
//
// Matching is case-insensitive with * and ? wildcards, anchored over the
// whole part number. When several descriptors match, the one whose
// matching pattern has the longest literal prefix wins; a tie between
// different descriptors is ErrAmbiguousMCU, zero matches is ErrUnknownMCU.
//
// Pure lookup: no side effects, safe for concurrent use.
func (r *Registry) Resolve(part string) (*Descriptor, error) {
	needle := strings.ToLower(strings.TrimSpace(part))

	var (
		best       *Descriptor
		bestPrefix = -1
		ambiguous  bool
	)
	for i, d := range r.descriptors {
		for _, p := range r.patterns[i] {
			if !p.re.MatchString(needle) {
				continue
			}
			switch {
			case p.prefix > bestPrefix:
				best, bestPrefix, ambiguous = d, p.prefix, false
			case p.prefix == bestPrefix && best != d:
				ambiguous = true
			}
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no descriptor matches part %q", ErrUnknownMCU, part)
	}
	if ambiguous {
		return nil, fmt.Errorf("%w: multiple descriptors match part %q with equal specificity", ErrAmbiguousMCU, part)
	}
	return best, nil
}

// compilePattern converts a wildcard pattern ("STM32F407V*", also the
// regex-flavoured "STM32F407V.*") into an anchored, lowercased regular
// expression and records how many literal characters precede the first
// wildcard — the tie-break key for Resolve.
func compilePattern(raw string) (pattern, error) {
	lower := strings.ToLower(raw)

	prefix := len(lower)
	if i := strings.IndexAny(lower, "*?."); i >= 0 {
		prefix = i
	}

	expr := "^" + strings.NewReplacer("*", ".*", "?", ".").Replace(lower) + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return pattern{}, fmt.Errorf("pattern %q: %w", raw, err)
	}
	return pattern{raw: raw, re: re, prefix: prefix}, nil
}
