package schema

import (
	"errors"
	"testing"

	"github.com/boardlint/boardlint/internal/board"
)

func descriptor(name string, patterns ...string) *Descriptor {
	return &Descriptor{
		Name:     name,
		Patterns: patterns,
		Package: PackageConstraints{
			GPIOPorts: map[string]PortRange{"A": {Max: 15}},
		},
	}
}

func mustRegistry(t *testing.T, descriptors ...*Descriptor) *Registry {
	t.Helper()
	r, err := NewRegistry(descriptors, nil)
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return r
}

func TestResolve(t *testing.T) {
	f407 := descriptor("STM32F407Vxxx", "STM32F407V.*")
	f103 := descriptor("STM32F103Cxxx", "STM32F103C*")
	reg := mustRegistry(t, f407, f103)

	tests := []struct {
		name    string
		part    string
		want    *Descriptor
		wantErr error
	}{
		{
			name: "regex-style wildcard match",
			part: "STM32F407VGT6",
			want: f407,
		},
		{
			name: "glob wildcard match",
			part: "STM32F103C8T6",
			want: f103,
		},
		{
			name: "case-insensitive",
			part: "stm32f407vet6",
			want: f407,
		},
		{
			name:    "no descriptor matches",
			part:    "STM32F401CCU6",
			wantErr: ErrUnknownMCU,
		},
		{
			name:    "empty part",
			part:    "",
			wantErr: ErrUnknownMCU,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Resolve(tt.part)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve(%q) error = %v, want %v", tt.part, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) error = %v", tt.part, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %s, want %s", tt.part, got.Name, tt.want.Name)
			}
		})
	}
}

func TestResolve_LongestPrefixWins(t *testing.T) {
	family := descriptor("STM32F4xx", "STM32F4*")
	specific := descriptor("STM32F407Vxxx", "STM32F407V*")
	reg := mustRegistry(t, family, specific)

	got, err := reg.Resolve("STM32F407VGT6")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != specific {
		t.Errorf("Resolve() = %s, want the more specific STM32F407Vxxx", got.Name)
	}
}

func TestResolve_Ambiguous(t *testing.T) {
	a := descriptor("family-a", "STM32F407*")
	b := descriptor("family-b", "STM32F407*")
	reg := mustRegistry(t, a, b)

	_, err := reg.Resolve("STM32F407VGT6")
	if !errors.Is(err, ErrAmbiguousMCU) {
		t.Errorf("Resolve() error = %v, want ErrAmbiguousMCU", err)
	}
}

func TestNewRegistry_NoPatterns(t *testing.T) {
	_, err := NewRegistry([]*Descriptor{{Name: "empty"}}, nil)
	if !errors.Is(err, ErrSchemaLoad) {
		t.Errorf("NewRegistry() error = %v, want ErrSchemaLoad", err)
	}
}

func TestParsePin(t *testing.T) {
	tests := []struct {
		input   string
		want    Pin
		wantErr bool
	}{
		{input: "PA9", want: Pin{Port: "A", Index: 9}},
		{input: "PD12", want: Pin{Port: "D", Index: 12}},
		{input: "PE0", want: Pin{Port: "E", Index: 0}},
		{input: "A9", wantErr: true},
		{input: "PA", wantErr: true},
		{input: "P19", wantErr: true},
		{input: "PAx", wantErr: true},
		{input: "pa9", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePin(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidPin) {
					t.Fatalf("ParsePin(%q) error = %v, want ErrInvalidPin", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePin(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePin(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDescriptor_HasPin(t *testing.T) {
	d := &Descriptor{
		Package: PackageConstraints{
			GPIOPorts: map[string]PortRange{"A": {Max: 15}, "D": {Max: 2}},
		},
	}

	tests := []struct {
		pin  Pin
		want bool
	}{
		{Pin{Port: "A", Index: 0}, true},
		{Pin{Port: "A", Index: 15}, true},
		{Pin{Port: "A", Index: 16}, false},
		{Pin{Port: "D", Index: 2}, true},
		{Pin{Port: "D", Index: 3}, false},
		{Pin{Port: "H", Index: 0}, false},
	}

	for _, tt := range tests {
		if got := d.HasPin(tt.pin); got != tt.want {
			t.Errorf("HasPin(%s) = %v, want %v", tt.pin, got, tt.want)
		}
	}
}

func TestDescriptor_Limit(t *testing.T) {
	d := &Descriptor{
		Package: PackageConstraints{
			Limits: map[string]int{"uart": 6},
		},
	}

	if n, ok := d.Limit(board.KindUART); !ok || n != 6 {
		t.Errorf("Limit(uart) = %d, %v; want 6, true", n, ok)
	}
	if _, ok := d.Limit(board.KindSPI); ok {
		t.Error("Limit(spi) ok = true, want false")
	}
}
