// Package validate cross-checks a tokenized commit message against a commit
// type registry and reports every rule violation found. Validation is a pure
// function over its inputs: no I/O, no process state, no exit policy.
package validate

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/c360studio/commitcheck/message"
	"github.com/c360studio/commitcheck/registry"
)

// Kind identifies the rule a violation was raised under.
type Kind string

const (
	// KindMalformedHeader means no colon-delimited header could be found.
	KindMalformedHeader Kind = "malformed-header"
	// KindUnknownType means the type token is not in the registry.
	KindUnknownType Kind = "unknown-type"
	// KindMissingField means a registry-required field is absent or empty.
	KindMissingField Kind = "missing-field"
	// KindScopeNotAllowed means the scope matches none of the configured
	// allow patterns for its type.
	KindScopeNotAllowed Kind = "scope-not-allowed"
)

// Violation is one detected rule failure.
type Violation struct {
	Kind  Kind   `json:"kind"`
	Type  string `json:"type,omitempty"`
	Field string `json:"field,omitempty"`
	Scope string `json:"scope,omitempty"`
}

// String renders the violation as a single human-readable line.
func (v Violation) String() string {
	switch v.Kind {
	case KindMalformedHeader:
		return `malformed commit message, expected "type(scope): description"`
	case KindUnknownType:
		return fmt.Sprintf("commit type %q is not allowed", v.Type)
	case KindMissingField:
		return fmt.Sprintf("commit type %q requires a %s, but none was given", v.Type, v.Field)
	case KindScopeNotAllowed:
		return fmt.Sprintf("scope %q is not allowed for commit type %q", v.Scope, v.Type)
	}
	return string(v.Kind)
}

// Result is the outcome of validating one commit message.
type Result struct {
	Violations []Violation
}

// Valid reports whether no violations were found.
func (r Result) Valid() bool {
	return len(r.Violations) == 0
}

// Options carries the validation policy. Scopes maps a commit type name to
// glob patterns its scope must match; an empty map disables the check.
type Options struct {
	IgnoreCase bool
	Scopes     map[string][]string
}

// Malformed wraps a tokenization failure into a single-violation result so
// format errors flow through the same reporting path as rule violations.
func Malformed() Result {
	return Result{Violations: []Violation{{Kind: KindMalformedHeader}}}
}

// Run validates msg against reg. An unknown type yields exactly one violation
// and suppresses the field checks, since there is no field list to check
// against. For a known type every unsatisfied required field is reported, in
// the registry-declared order.
func Run(msg *message.Message, reg *registry.Registry, opts Options) Result {
	typ, ok := reg.Lookup(msg.Type, opts.IgnoreCase)
	if !ok {
		return Result{Violations: []Violation{{Kind: KindUnknownType, Type: msg.Type}}}
	}

	var violations []Violation
	for _, field := range typ.Requires {
		if !satisfied(msg, field) {
			violations = append(violations, Violation{
				Kind:  KindMissingField,
				Type:  typ.Name,
				Field: field,
			})
		}
	}

	if msg.HasScope && msg.Scope != "" && !scopeAllowed(typ.Name, msg.Scope, opts.Scopes) {
		violations = append(violations, Violation{
			Kind:  KindScopeNotAllowed,
			Type:  typ.Name,
			Scope: msg.Scope,
		})
	}

	return Result{Violations: violations}
}

// satisfied reports whether a required field is structurally present and
// non-empty in the message. Field names outside the known structural parts
// can never be satisfied.
func satisfied(msg *message.Message, field string) bool {
	switch field {
	case "description":
		return msg.Description != ""
	case "scope":
		return msg.HasScope && msg.Scope != ""
	case "body":
		return msg.HasBody && msg.Body != ""
	case "footer":
		return msg.HasFooter && msg.Footer != ""
	}
	return false
}

// scopeAllowed checks the scope against the allow patterns configured for
// the type. No patterns for the type means any scope is allowed.
func scopeAllowed(typeName, scope string, patterns map[string][]string) bool {
	allowed, ok := patterns[typeName]
	if !ok || len(allowed) == 0 {
		return true
	}
	for _, p := range allowed {
		if match, err := doublestar.Match(p, scope); err == nil && match {
			return true
		}
	}
	return false
}
