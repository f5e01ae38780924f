package diagnostic

import (
	"fmt"
	"strings"
)

// Diagnostics holds the problems found while checking a generation plan.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Class identifies which generated class this relates to (if any).
	Class string
	// Err is the typed error behind an error diagnostic.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticWarning DiagnosticSeverity = iota
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError records a typed error. The diagnostic message is taken from err.
func (d *Diagnostics) AddError(code, class string, err error) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  err.Error(),
		Class:    class,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, class string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Class:    class,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
// The result unwraps to every underlying typed error, so errors.Is and
// errors.As see through it.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	if len(d.Errors) == 1 && d.Errors[0].Err != nil {
		return d.Errors[0].Err
	}

	joined := &combinedError{}
	for _, e := range d.Errors {
		joined.msgs = append(joined.msgs, e.String())
		if e.Err != nil {
			joined.errs = append(joined.errs, e.Err)
		}
	}

	return joined
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Class != "" {
		return "[" + d.Class + "] " + msg
	}

	return msg
}

type combinedError struct {
	msgs []string
	errs []error
}

func (e *combinedError) Error() string {
	return strings.Join(e.msgs, "; ")
}

func (e *combinedError) Unwrap() []error {
	return e.errs
}
