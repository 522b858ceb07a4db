// Package report turns validation results into output and exit behavior.
// It is the only place aware of the continue-on-error policy; the validator
// itself never is.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/c360studio/commitcheck/message"
	"github.com/c360studio/commitcheck/validate"
)

// Exit codes returned by the commitcheck CLI, symbolic so hook scripts can
// distinguish a rejected message from a broken configuration.
const (
	// ExitSuccess indicates the message passed, or violations were found
	// while continue-on-error is set.
	ExitSuccess = 0
	// ExitViolations indicates the message violated at least one rule.
	ExitViolations = 1
	// ExitConfigError indicates a malformed override spec or config file.
	// Configuration errors are never subject to continue-on-error.
	ExitConfigError = 2
)

// Report is the machine-readable form of a validation run.
type Report struct {
	Valid       bool                 `json:"valid"`
	Type        string               `json:"type"`
	Scope       string               `json:"scope,omitempty"`
	Description string               `json:"description"`
	Body        string               `json:"body,omitempty"`
	Footer      string               `json:"footer,omitempty"`
	Violations  []validate.Violation `json:"violations,omitempty"`
}

// WriteText writes one line per violation. A valid result writes nothing.
func WriteText(w io.Writer, res validate.Result) error {
	for _, v := range res.Violations {
		if _, err := fmt.Fprintln(w, v.String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the full report, echoing the parsed message alongside the
// violations. msg may be nil when tokenization itself failed.
func WriteJSON(w io.Writer, msg *message.Message, res validate.Result) error {
	rep := Report{
		Valid:      res.Valid(),
		Violations: res.Violations,
	}
	if msg != nil {
		rep.Type = msg.Type
		rep.Scope = msg.Scope
		rep.Description = msg.Description
		rep.Body = msg.Body
		rep.Footer = msg.Footer
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// ExitCode maps a result to the process exit code under the configured
// policy. With continueOnError set, violations are still printed by the
// caller but the process signals success.
func ExitCode(res validate.Result, continueOnError bool) int {
	if res.Valid() || continueOnError {
		return ExitSuccess
	}
	return ExitViolations
}
