package validate

import (
	"strings"
	"testing"
)

func runValidate(t *testing.T, src string) *Report {
	t.Helper()
	rep, err := New(testRegistry(t), Options{}).Validate(parseConfig(t, src))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return rep
}

func TestPinConflict_GPIOThenUART(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
gpio:
  - pin: PA9
    direction: output
uart:
  uart1:
    baudrate: 115200
    tx_pin: PA9
    rx_pin: PA10
`)

	conflicts := findByCategory(rep, CategoryPinConflict)
	if len(conflicts) != 1 {
		t.Fatalf("pin conflicts = %d, want 1: %v", len(conflicts), conflicts)
	}

	f := conflicts[0]
	if f.Severity != SeverityError {
		t.Errorf("severity = %s, want error", f.Severity)
	}
	if f.Pin != "PA9" {
		t.Errorf("pin = %q, want PA9", f.Pin)
	}
	// The GPIO entry is declared first and traversed first, so it must be
	// named first in the message.
	gpioIdx := strings.Index(f.Message, "gpio[0] (output)")
	uartIdx := strings.Index(f.Message, "uart.uart1 (TX)")
	if gpioIdx < 0 || uartIdx < 0 {
		t.Fatalf("message %q must name both claimants", f.Message)
	}
	if gpioIdx > uartIdx {
		t.Errorf("message %q names UART before GPIO", f.Message)
	}
}

func TestPinConflict_DuplicateGPIO(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
gpio:
  - pin: PB0
    direction: output
  - pin: PB0
    direction: input
`)

	conflicts := findByCategory(rep, CategoryPinConflict)
	if len(conflicts) != 1 {
		t.Fatalf("pin conflicts = %d, want 1", len(conflicts))
	}
	msg := conflicts[0].Message
	if !strings.Contains(msg, "gpio[0] (output) and gpio[1] (input)") {
		t.Errorf("message %q must name both entries in declaration order", msg)
	}
}

func TestPinConflicts_SortedByPin(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
gpio:
  - pin: PB5
    direction: output
  - pin: PA1
    direction: output
  - pin: PB5
    direction: input
  - pin: PA1
    direction: input
`)

	conflicts := findByCategory(rep, CategoryPinConflict)
	if len(conflicts) != 2 {
		t.Fatalf("pin conflicts = %d, want 2", len(conflicts))
	}
	if conflicts[0].Pin != "PA1" || conflicts[1].Pin != "PB5" {
		t.Errorf("conflict order = [%s, %s], want [PA1, PB5]", conflicts[0].Pin, conflicts[1].Pin)
	}
}

func TestOutOfPackagePin(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
gpio:
  - pin: PH3
    direction: output
  - pin: PA99
    direction: output
  - pin: bogus
    direction: output
`)

	bad := findByCategory(rep, CategoryPinFormat)
	if len(bad) != 3 {
		t.Fatalf("pin format errors = %d, want 3: %v", len(bad), bad)
	}
	for _, f := range bad {
		if f.Severity != SeverityError {
			t.Errorf("severity = %s, want error", f.Severity)
		}
	}
}

func TestInstanceLimit(t *testing.T) {
	// 7 enabled UARTs against the STM32F407 limit of 6.
	var sb strings.Builder
	sb.WriteString("board:\n  mcu: STM32F407VGT6\nuart:\n")
	for i := 1; i <= 7; i++ {
		sb.WriteString(strings.ReplaceAll(`  uartN:
    baudrate: 9600
`, "N", string(rune('0'+i))))
	}

	rep := runValidate(t, sb.String())

	limits := findByCategory(rep, CategoryMCULimits)
	if len(limits) != 1 {
		t.Fatalf("limit findings = %d, want 1: %v", len(limits), limits)
	}
	msg := limits[0].Message
	if !strings.Contains(msg, "7") || !strings.Contains(msg, "6") {
		t.Errorf("message %q must cite count 7 and limit 6", msg)
	}
}

func TestSPIWithoutCSPins_WarningOnly(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
spi:
  spi1:
    mode: 0
    speed: 1000000
    sck_pin: PA5
    mosi_pin: PA7
    cs_pins: []
`)

	advisories := findByCategory(rep, CategoryMissingPins)
	if len(advisories) != 1 {
		t.Fatalf("advisories = %d, want 1: %v", len(advisories), advisories)
	}
	if advisories[0].Severity != SeverityWarning {
		t.Errorf("severity = %s, want warning", advisories[0].Severity)
	}
	if !strings.Contains(advisories[0].Message, "no CS pins configured") {
		t.Errorf("message = %q", advisories[0].Message)
	}
	if rep.HasErrors() {
		t.Errorf("report has errors, want none: %v", rep.Errors())
	}
}

func TestAdvisorySeverityConfigurable(t *testing.T) {
	cfg := parseConfig(t, `
board:
  mcu: STM32F407VGT6
spi:
  spi1:
    mode: 0
    speed: 1000000
    sck_pin: PA5
    mosi_pin: PA7
`)

	rep, err := New(testRegistry(t), Options{AdvisorySeverity: SeverityError}).Validate(cfg)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	advisories := findByCategory(rep, CategoryMissingPins)
	if len(advisories) != 1 || advisories[0].Severity != SeverityError {
		t.Fatalf("advisories = %v, want one error-severity finding", advisories)
	}
}

func TestUARTWithoutPins_Warning(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
uart:
  uart1:
    baudrate: 115200
`)

	advisories := findByCategory(rep, CategoryMissingPins)
	if len(advisories) != 1 {
		t.Fatalf("advisories = %d, want 1", len(advisories))
	}
	if !strings.Contains(advisories[0].Message, "no TX or RX pins") {
		t.Errorf("message = %q", advisories[0].Message)
	}
}

func TestI2CAddressConflict(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
i2c:
  i2c1:
    speed: 400000
    scl_pin: PB6
    sda_pin: PB7
    devices:
      - name: temp_sensor
        address: 0x48
      - name: humidity_sensor
        address: 0x48
`)

	addr := findByCategory(rep, CategoryI2CAddress)
	if len(addr) != 1 {
		t.Fatalf("address findings = %d, want 1: %v", len(addr), addr)
	}
	f := addr[0]
	if f.Severity != SeverityError {
		t.Errorf("severity = %s, want error", f.Severity)
	}
	if f.Location != "i2c.i2c1" {
		t.Errorf("location = %q, want i2c.i2c1", f.Location)
	}
	if !strings.Contains(f.Message, "0x48") ||
		!strings.Contains(f.Message, "temp_sensor") ||
		!strings.Contains(f.Message, "humidity_sensor") {
		t.Errorf("message = %q", f.Message)
	}

	// Address-space check is independent of the pin passes: the bus pins
	// themselves are fine here.
	if got := findByCategory(rep, CategoryPinConflict); len(got) != 0 {
		t.Errorf("unexpected pin conflicts: %v", got)
	}
}

func TestI2CReservedAddress(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
i2c:
  i2c1:
    speed: 400000
    scl_pin: PB6
    sda_pin: PB7
    devices:
      - name: rogue
        address: 0x03
      - name: other
        address: 0x78
`)

	addr := findByCategory(rep, CategoryI2CAddress)
	if len(addr) != 2 {
		t.Fatalf("address findings = %d, want 2: %v", len(addr), addr)
	}
	for _, f := range addr {
		if !strings.Contains(f.Message, "0x08-0x77") {
			t.Errorf("message %q must cite the assignable range", f.Message)
		}
	}
}

func TestTimerPWMRequirements(t *testing.T) {
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
timers:
  tim1:
    prescaler: 84
    period: 1000
    mode: pwm
`)

	pwm := findByCategory(rep, CategoryTimerConfig)
	if len(pwm) != 3 {
		t.Fatalf("timer findings = %d, want 3 (output_pin, duty_cycle, channel): %v", len(pwm), pwm)
	}
	for _, f := range pwm {
		if f.Severity != SeverityError {
			t.Errorf("severity = %s, want error", f.Severity)
		}
	}
}

func TestInvalidInstanceSuppressesItsPins(t *testing.T) {
	// uart1 is schema-invalid (bad parity), so its TX claim on PA9 must
	// not be trusted and the GPIO claim alone is no conflict.
	rep := runValidate(t, `
board:
  mcu: STM32F407VGT6
gpio:
  - pin: PA9
    direction: output
uart:
  uart1:
    baudrate: 115200
    parity: both
    tx_pin: PA9
`)

	if got := findByCategory(rep, CategoryPinConflict); len(got) != 0 {
		t.Errorf("pin conflicts = %v, want none (instance is invalid)", got)
	}
	if !rep.HasErrors() {
		t.Error("schema violation must still make the report fail")
	}
}
