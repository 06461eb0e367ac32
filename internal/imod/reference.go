package imod

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Reference identifies a declared entity: a method, a field or an
// attribute. It is used both as a stable method identity for graph and
// cache keys and as the text form marker attributes are configured with.
type Reference struct {
	// Package is the import path of the package that declares the entity.
	Package string

	// Type is the package-local name of the owning type. Empty for free
	// functions and package-level variables.
	Type string

	// Name is the declared identifier of the entity.
	Name string
}

var _ encoding.TextUnmarshaler = (*Reference)(nil)

// UnmarshalText parses references written as
//
//	"pkg/path".Name
//	"pkg/path".Type.Name
func (r *Reference) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "" {
		return errors.New("empty reference")
	}

	if !strings.HasPrefix(s, `"`) {
		return fmt.Errorf("reference must start with quoted package: %q", s)
	}
	end := strings.Index(s[1:], `"`)
	if end < 0 {
		return fmt.Errorf("unterminated quoted package in reference: %q", s)
	}
	end++ // include the first quote

	pkg := s[1:end]
	if pkg == "" {
		return fmt.Errorf("package cannot be empty in reference: %q", s)
	}

	rest := strings.TrimPrefix(s[end+1:], ".")
	if rest == "" {
		return fmt.Errorf("reference must contain a name: %q", s)
	}

	parts := strings.Split(rest, ".")
	if len(parts) < 1 || len(parts) > 2 {
		return fmt.Errorf("reference must have 1 or 2 identifiers after package: %q", s)
	}

	for _, p := range parts {
		if !isIdent(p) {
			return fmt.Errorf("invalid identifier %q in reference %q", p, s)
		}
	}

	r.Package = pkg
	switch len(parts) {
	case 1:
		r.Type = ""
		r.Name = parts[0]
	case 2:
		r.Type = parts[0]
		r.Name = parts[1]
	}

	return nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !unicode.IsLetter(r) && r != '_' {
			return false
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}

func (r Reference) MarshalText() ([]byte, error) {
	if r.Package == "" {
		return nil, fmt.Errorf("cannot marshal Reference: empty Package")
	}
	if r.Name == "" {
		return nil, fmt.Errorf("cannot marshal Reference: empty Name")
	}

	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(r.Package)
	b.WriteByte('"')
	b.WriteByte('.')

	if r.Type != "" {
		b.WriteString(r.Type)
		b.WriteByte('.')
	}

	b.WriteString(r.Name)

	return []byte(b.String()), nil
}

// String renders the full quoted form, e.g. "pkg/path".Type.Name.
func (r Reference) String() string {
	v, err := r.MarshalText()
	if err != nil {
		return fmt.Sprintf("invalid-reference(%q,%q,%q)", r.Package, r.Type, r.Name)
	}

	return string(v)
}

// Display renders the short human form used in diagnostics: the last
// package path element, the type if any, and the name.
func (r Reference) Display() string {
	var b strings.Builder
	if r.Package != "" {
		if i := strings.LastIndexByte(r.Package, '/'); i >= 0 {
			b.WriteString(r.Package[i+1:])
		} else {
			b.WriteString(r.Package)
		}
		b.WriteByte('.')
	}
	if r.Type != "" {
		b.WriteString(r.Type)
		b.WriteByte('.')
	}
	b.WriteString(r.Name)
	return b.String()
}
