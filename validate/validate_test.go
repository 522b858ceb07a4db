package validate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/commitcheck/message"
	"github.com/c360studio/commitcheck/registry"
)

func mustParse(t *testing.T, raw string) *message.Message {
	t.Helper()
	msg, err := message.Parse(raw)
	require.NoError(t, err)
	return msg
}

func TestRun_DefaultTypes(t *testing.T) {
	reg := registry.Default()

	for _, typ := range reg.Types() {
		t.Run(typ.Name, func(t *testing.T) {
			msg := mustParse(t, fmt.Sprintf("%s: Some updates", typ.Name))
			res := Run(msg, reg, Options{})
			assert.True(t, res.Valid())
			assert.Empty(t, res.Violations)
		})
	}
}

func TestRun_UnknownType(t *testing.T) {
	reg := registry.Default()

	msg := mustParse(t, "wip: half done")
	res := Run(msg, reg, Options{})

	require.Len(t, res.Violations, 1)
	v := res.Violations[0]
	assert.Equal(t, KindUnknownType, v.Kind)
	assert.Equal(t, "wip", v.Type)
	assert.False(t, res.Valid())
}

func TestRun_UnknownTypeSuppressesFieldChecks(t *testing.T) {
	reg, err := registry.ParseSpec("feat=scope,description")
	require.NoError(t, err)

	// An unknown type with every field missing still yields exactly one
	// violation, since there is no field list to check against.
	msg := mustParse(t, "wild:")
	res := Run(msg, reg, Options{})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, KindUnknownType, res.Violations[0].Kind)
}

func TestRun_ExtraneousColonsFoldIntoDescription(t *testing.T) {
	reg := registry.Default()

	msg := mustParse(t, "invalid: scope: Some invalid commit message")
	res := Run(msg, reg, Options{})

	require.Len(t, res.Violations, 1)
	assert.Equal(t, KindUnknownType, res.Violations[0].Kind)
	assert.Equal(t, "invalid", res.Violations[0].Type)
}

func TestRun_MissingScope(t *testing.T) {
	reg, err := registry.ParseSpec("wild=scope,description")
	require.NoError(t, err)

	t.Run("scope present", func(t *testing.T) {
		msg := mustParse(t, "wild(scope): Some updates")
		res := Run(msg, reg, Options{})
		assert.True(t, res.Valid())
	})

	t.Run("scope absent", func(t *testing.T) {
		msg := mustParse(t, "wild: Some updates")
		res := Run(msg, reg, Options{})
		require.Len(t, res.Violations, 1)
		assert.Equal(t, KindMissingField, res.Violations[0].Kind)
		assert.Equal(t, "scope", res.Violations[0].Field)
		assert.Equal(t, "wild", res.Violations[0].Type)
	})

	t.Run("scope present but empty", func(t *testing.T) {
		msg := mustParse(t, "wild(): Some updates")
		res := Run(msg, reg, Options{})
		require.Len(t, res.Violations, 1)
		assert.Equal(t, KindMissingField, res.Violations[0].Kind)
		assert.Equal(t, "scope", res.Violations[0].Field)
	})
}

func TestRun_EmptyRequirementsOverride(t *testing.T) {
	reg, err := registry.ParseSpec("docs=")
	require.NoError(t, err)

	res := Run(mustParse(t, "docs: Some updates"), reg, Options{})
	assert.True(t, res.Valid())
}

func TestRun_MissingDescription(t *testing.T) {
	reg := registry.Default()

	res := Run(mustParse(t, "feat: "), reg, Options{})
	require.Len(t, res.Violations, 1)
	assert.Equal(t, KindMissingField, res.Violations[0].Kind)
	assert.Equal(t, "description", res.Violations[0].Field)
}

func TestRun_RequiredBody(t *testing.T) {
	reg, err := registry.ParseSpec("revert=body")
	require.NoError(t, err)

	t.Run("body present", func(t *testing.T) {
		res := Run(mustParse(t, "revert: undo the parser change\n\nThis reverts commit abc123."), reg, Options{})
		assert.True(t, res.Valid())
	})

	t.Run("body absent", func(t *testing.T) {
		res := Run(mustParse(t, "revert: undo the parser change"), reg, Options{})
		require.Len(t, res.Violations, 1)
		assert.Equal(t, "body", res.Violations[0].Field)
	})
}

func TestRun_UnsatisfiableFieldName(t *testing.T) {
	reg, err := registry.ParseSpec("feat=signoff")
	require.NoError(t, err)

	res := Run(mustParse(t, "feat(api): add retries"), reg, Options{})
	require.Len(t, res.Violations, 1)
	assert.Equal(t, KindMissingField, res.Violations[0].Kind)
	assert.Equal(t, "signoff", res.Violations[0].Field)
}

func TestRun_ViolationOrder(t *testing.T) {
	reg, err := registry.ParseSpec("feat=scope,body,description")
	require.NoError(t, err)

	res := Run(mustParse(t, "feat:"), reg, Options{})
	require.Len(t, res.Violations, 3)
	assert.Equal(t, "scope", res.Violations[0].Field)
	assert.Equal(t, "body", res.Violations[1].Field)
	assert.Equal(t, "description", res.Violations[2].Field)
}

func TestRun_IgnoreCase(t *testing.T) {
	reg := registry.Default()

	upper := Run(mustParse(t, "FEAT: x"), reg, Options{IgnoreCase: true})
	lower := Run(mustParse(t, "feat: x"), reg, Options{IgnoreCase: true})
	assert.Equal(t, lower, upper)
	assert.True(t, upper.Valid())

	// Case still matters with the option off.
	strict := Run(mustParse(t, "FEAT: x"), reg, Options{})
	require.Len(t, strict.Violations, 1)
	assert.Equal(t, KindUnknownType, strict.Violations[0].Kind)
}

func TestRun_ScopePatterns(t *testing.T) {
	reg := registry.Default()
	opts := Options{Scopes: map[string][]string{
		"feat": {"api", "core/**"},
	}}

	t.Run("allowed scope", func(t *testing.T) {
		res := Run(mustParse(t, "feat(api): add retries"), reg, opts)
		assert.True(t, res.Valid())
	})

	t.Run("glob match", func(t *testing.T) {
		res := Run(mustParse(t, "feat(core/parser): add lookahead"), reg, opts)
		assert.True(t, res.Valid())
	})

	t.Run("disallowed scope", func(t *testing.T) {
		res := Run(mustParse(t, "feat(web): add retries"), reg, opts)
		require.Len(t, res.Violations, 1)
		v := res.Violations[0]
		assert.Equal(t, KindScopeNotAllowed, v.Kind)
		assert.Equal(t, "web", v.Scope)
		assert.Equal(t, "feat", v.Type)
	})

	t.Run("unconfigured type unrestricted", func(t *testing.T) {
		res := Run(mustParse(t, "fix(anything): x"), reg, opts)
		assert.True(t, res.Valid())
	})

	t.Run("no patterns at all", func(t *testing.T) {
		res := Run(mustParse(t, "feat(web): add retries"), reg, Options{})
		assert.True(t, res.Valid())
	})
}

func TestRun_Idempotent(t *testing.T) {
	reg := registry.Default()
	msg := mustParse(t, "wip: half done")

	first := Run(msg, reg, Options{})
	second := Run(msg, reg, Options{})
	assert.Equal(t, first, second)
}

func TestMalformed(t *testing.T) {
	res := Malformed()
	require.Len(t, res.Violations, 1)
	assert.Equal(t, KindMalformedHeader, res.Violations[0].Kind)
	assert.False(t, res.Valid())
}

func TestViolation_String(t *testing.T) {
	tests := []struct {
		v    Violation
		want string
	}{
		{Violation{Kind: KindUnknownType, Type: "wip"}, `commit type "wip" is not allowed`},
		{Violation{Kind: KindMissingField, Type: "feat", Field: "scope"}, `commit type "feat" requires a scope, but none was given`},
		{Violation{Kind: KindScopeNotAllowed, Type: "feat", Scope: "web"}, `scope "web" is not allowed for commit type "feat"`},
		{Violation{Kind: KindMalformedHeader}, `malformed commit message, expected "type(scope): description"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}
