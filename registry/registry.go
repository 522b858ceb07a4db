// Package registry holds the set of allowed commit types and the structural
// fields each type requires. A registry is built once per invocation, either
// from the built-in defaults or from a user-supplied override spec, and is
// read-only afterwards.
package registry

import (
	"fmt"
	"strings"
)

// Type is one allowed commit type together with its required fields, in
// declaration order. A Type is immutable once registered.
type Type struct {
	Name     string
	Requires []string
}

// Registry maps commit type identifiers to their required fields. Identifiers
// are stored in their originally supplied case for reporting; case folding
// happens at lookup time only.
type Registry struct {
	types []Type
}

// A ConfigError reports a malformed override spec or type table. It is fatal
// at startup: no validation can proceed without a valid registry.
type ConfigError struct {
	Entry  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Entry == "" {
		return "invalid commit type config: " + e.Reason
	}
	return fmt.Sprintf("invalid commit type config %q: %s", e.Entry, e.Reason)
}

// Default returns the built-in registry: fix, feat, docs, style, refactor,
// perf, test, and chore, each requiring only a description.
func Default() *Registry {
	names := []string{"fix", "feat", "docs", "style", "refactor", "perf", "test", "chore"}
	types := make([]Type, 0, len(names))
	for _, n := range names {
		types = append(types, Type{Name: n, Requires: []string{"description"}})
	}
	r, _ := New(types)
	return r
}

// New builds a registry from an explicit type table.
func New(types []Type) (*Registry, error) {
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if t.Name == "" {
			return nil, &ConfigError{Reason: "empty commit type name"}
		}
		if seen[t.Name] {
			return nil, &ConfigError{Entry: t.Name, Reason: "duplicate commit type"}
		}
		seen[t.Name] = true
	}
	return &Registry{types: types}, nil
}

// ParseSpec builds a registry from an override spec of the form
//
//	type1=field1,field2;type2=;type3=field3
//
// An entry with an empty right-hand side registers the type with no required
// fields beyond the description. The description requirement itself is always
// implied and added to every entry.
func ParseSpec(spec string) (*Registry, error) {
	if strings.TrimSpace(spec) == "" {
		return nil, &ConfigError{Reason: "empty override spec"}
	}

	var types []Type
	for _, entry := range strings.Split(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, fields, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, &ConfigError{Entry: entry, Reason: "missing '='"}
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &ConfigError{Entry: entry, Reason: "empty commit type name"}
		}

		// Keep the declared field order; the implicit description
		// requirement is appended only when not spelled out.
		var requires []string
		declared := make(map[string]bool)
		for _, f := range strings.Split(fields, ",") {
			f = strings.TrimSpace(f)
			if f == "" || declared[f] {
				continue
			}
			declared[f] = true
			requires = append(requires, f)
		}
		if !declared["description"] {
			requires = append(requires, "description")
		}
		types = append(types, Type{Name: name, Requires: requires})
	}
	if len(types) == 0 {
		return nil, &ConfigError{Entry: spec, Reason: "no commit types defined"}
	}
	return New(types)
}

// Lookup resolves a commit type token. With ignoreCase set, the token and the
// registered identifiers are compared case-insensitively; the returned Type
// still carries the identifier in its registered case.
func (r *Registry) Lookup(name string, ignoreCase bool) (Type, bool) {
	for _, t := range r.types {
		if t.Name == name || (ignoreCase && strings.EqualFold(t.Name, name)) {
			return t, true
		}
	}
	return Type{}, false
}

// Types returns the registered types in declaration order.
func (r *Registry) Types() []Type {
	return r.types
}
