// Package message tokenizes raw commit messages into their structural parts.
//
// A commit message is expected to follow the conventional layout
//
//	type(scope): description
//
//	body
//
//	Key: value
//
// where the scope, body, and footer are optional. Tokenization is purely
// structural: it decides where the parts are, never whether they are allowed.
package message

import (
	"fmt"
	"regexp"
	"strings"
)

// Message is the structural decomposition of a commit message. Optional parts
// carry a presence flag so callers can distinguish an absent scope from an
// empty one.
type Message struct {
	Type        string
	Scope       string
	HasScope    bool
	Description string
	Body        string
	HasBody     bool
	Footer      string
	HasFooter   bool
}

// A FormatError reports a header line that cannot be decomposed into
// "type(scope): description".
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "malformed commit header: " + e.Reason
}

// trailerRe matches one git-style trailer line, e.g. "Signed-off-by: Jane"
// or "Fixes #42".
var trailerRe = regexp.MustCompile(`^[A-Za-z][\w-]*(: .+| #.+)$`)

// Parse tokenizes a raw commit message. It fails with a *FormatError only
// when no colon-delimited header can be identified on the first line; a
// missing scope, body, or footer is not an error.
func Parse(raw string) (*Message, error) {
	header, rest, _ := strings.Cut(raw, "\n")

	msg, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	body, footer, hasFooter := splitBody(rest)
	if body != "" {
		msg.Body = body
		msg.HasBody = true
	}
	if hasFooter {
		msg.Footer = footer
		msg.HasFooter = true
	}
	return msg, nil
}

// parseHeader scans the first line with a small state machine. The type
// accepts alphanumerics and '_' and runs up to an opening paren or the first
// colon; the scope, if opened, additionally accepts ',', '$', '.', '/', and
// '-' and runs to the closing paren, which must be followed immediately by a
// colon. Any other character before the delimiting colon is a format error,
// so only the first colon after the optional scope group starts the
// description.
func parseHeader(line string) (*Message, error) {
	msg := &Message{}

	i := 0
	for ; i < len(line); i++ {
		c := line[i]
		if c == ':' {
			msg.Type = strings.TrimSpace(line[:i])
			msg.Description = strings.TrimSpace(line[i+1:])
			return msg, nil
		}
		if c == '(' {
			break
		}
		if !typeChar(c) {
			return nil, &FormatError{Reason: fmt.Sprintf("invalid character %q in commit type", c)}
		}
	}
	if i == len(line) {
		return nil, &FormatError{Reason: "no colon separator found"}
	}

	msg.Type = strings.TrimSpace(line[:i])

	// Scope group: scan from the char after '(' to the closing ')'.
	start := i + 1
	end := start
	for ; end < len(line); end++ {
		c := line[end]
		if c == ')' {
			msg.Scope = strings.TrimSpace(line[start:end])
			msg.HasScope = true
			break
		}
		if !scopeChar(c) {
			return nil, &FormatError{Reason: fmt.Sprintf("invalid character %q in scope", c)}
		}
	}
	if !msg.HasScope {
		return nil, &FormatError{Reason: "unterminated scope group"}
	}

	// The colon must follow the scope group directly.
	if end+1 >= len(line) || line[end+1] != ':' {
		return nil, &FormatError{Reason: "no colon after scope group"}
	}
	msg.Description = strings.TrimSpace(line[end+2:])
	return msg, nil
}

func typeChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

func scopeChar(c byte) bool {
	return typeChar(c) || c == ',' || c == '$' || c == '.' || c == '/' || c == '-'
}

// splitBody separates everything after the header into body and footer. The
// footer is a trailing block of consecutive trailer lines separated from the
// body by at least one blank line; when the whole remainder is trailer lines
// the message has a footer and no body.
func splitBody(rest string) (body, footer string, hasFooter bool) {
	lines := strings.Split(rest, "\n")

	// Drop surrounding blank lines.
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return "", "", false
	}

	// Walk back over the candidate trailer block.
	blockStart := len(lines)
	for blockStart > 0 && trailerRe.MatchString(strings.TrimSpace(lines[blockStart-1])) {
		blockStart--
	}

	switch {
	case blockStart == 0:
		// Entire remainder is trailers.
		return "", strings.TrimSpace(strings.Join(lines, "\n")), true
	case blockStart < len(lines) && strings.TrimSpace(lines[blockStart-1]) == "":
		footer = strings.TrimSpace(strings.Join(lines[blockStart:], "\n"))
		body = strings.TrimSpace(strings.Join(lines[:blockStart-1], "\n"))
		return body, footer, true
	default:
		// No blank-line separation: the whole remainder is body.
		return strings.TrimSpace(strings.Join(lines, "\n")), "", false
	}
}
