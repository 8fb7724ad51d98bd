package validate

// Severity is the level of a finding.
type Severity string

// Finding severities. A run with only warnings and infos is still a
// valid configuration.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding categories, used by consumers to group and filter findings.
const (
	CategoryMCUDetection = "mcu_detection"
	CategoryMCULimits    = "mcu_limits"
	CategoryFieldSchema  = "field_schema"
	CategoryPinFormat    = "pin_format"
	CategoryPinConflict  = "pin_conflict"
	CategoryMissingPins  = "missing_pins"
	CategoryI2CAddress   = "i2c_address"
	CategoryTimerConfig  = "timer_config"
)

// Finding is one reported validation outcome. Findings never mutate
// after creation.
type Finding struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Location string   `json:"location,omitempty"`
	Category string   `json:"category,omitempty"`
	Pin      string   `json:"pin,omitempty"`
}

// Report is the ordered collection of findings from one validation run.
// It is append-only while the run executes and read-only afterwards.
type Report struct {
	Findings []Finding `json:"findings"`
}

func (r *Report) add(f Finding) {
	r.Findings = append(r.Findings, f)
}

func (r *Report) addError(message, location, category string) {
	r.add(Finding{Severity: SeverityError, Message: message, Location: location, Category: category})
}

func (r *Report) addWarning(message, location, category string) {
	r.add(Finding{Severity: SeverityWarning, Message: message, Location: location, Category: category})
}

func (r *Report) addInfo(message, location, category string) {
	r.add(Finding{Severity: SeverityInfo, Message: message, Location: location, Category: category})
}

// bySeverity returns the findings with the given severity, in report order.
func (r *Report) bySeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// Errors returns the error findings in report order.
func (r *Report) Errors() []Finding { return r.bySeverity(SeverityError) }

// Warnings returns the warning findings in report order.
func (r *Report) Warnings() []Finding { return r.bySeverity(SeverityWarning) }

// Infos returns the info findings in report order.
func (r *Report) Infos() []Finding { return r.bySeverity(SeverityInfo) }

// HasErrors reports whether any error-severity finding exists. A CLI
// consumer exits nonzero exactly when this is true.
func (r *Report) HasErrors() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Valid reports whether the configuration passed validation, i.e. the
// report carries no errors (warnings and infos are advisories).
func (r *Report) Valid() bool { return !r.HasErrors() }
