// Package command renders filter command templates into argument vectors.
package command

import (
	"fmt"
	"strings"
)

// Placeholder names recognised in a template string.
const (
	PlaceholderCmd   = "{cmd}"   // executable name
	PlaceholderQuery = "{query}" // current query string
	PlaceholderInput = "{input}" // input file path (real file or temp snapshot)
	PlaceholderFrom  = "{from}"  // read-format tag
	PlaceholderTo    = "{to}"    // write-format tag
)

// maskedInput is substituted for {input} in preview renderings so the
// preview never needs a live temp file.
const maskedInput = "<input>"

// Values supplies the placeholder substitutions for one rendering.
// A referenced placeholder with an empty value is a TemplateError.
type Values struct {
	Cmd   string
	Query string
	Input string
	From  string
	To    string
}

// TemplateError reports a placeholder referenced by the template string but
// missing from the supplied values.
type TemplateError struct {
	Placeholder string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("command template references %s but no value was resolved", e.Placeholder)
}

// Template is an immutable command template. The raw string is split on
// whitespace into fields; placeholders are substituted within each field, so
// a field that is exactly one placeholder stays a single argv element even
// when its value contains spaces.
type Template struct {
	raw string
}

// New returns a Template for the given raw string.
func New(raw string) Template {
	return Template{raw: raw}
}

// Raw returns the template string.
func (t Template) Raw() string { return t.raw }

// Edit returns a new Template with the given raw string. The placeholder
// contract is unchanged; only the rendering text differs.
func (t Template) Edit(raw string) Template {
	return Template{raw: raw}
}

// References reports whether the template string mentions the placeholder.
func (t Template) References(placeholder string) bool {
	return strings.Contains(t.raw, placeholder)
}

// Render expands the template into an argument vector. It is pure: the same
// template and values always produce the same argv. A placeholder present in
// the template but empty in vals yields a *TemplateError.
func (t Template) Render(vals Values) ([]string, error) {
	r, err := t.replacer(vals, vals.Input)
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(t.raw)
	argv := make([]string, 0, len(fields))
	for _, f := range fields {
		argv = append(argv, r.Replace(f))
	}
	return argv, nil
}

// Preview renders the effective command for display in a header. The input
// path is replaced with a masked token and the query is shell-quoted, so a
// preview can be produced without resolving an input file.
func (t Template) Preview(vals Values) (string, error) {
	vals.Query = shellQuote(vals.Query)
	r, err := t.replacer(vals, maskedInput)
	if err != nil {
		return "", err
	}
	fields := strings.Fields(t.raw)
	for i, f := range fields {
		fields[i] = r.Replace(f)
	}
	return strings.Join(fields, " "), nil
}

// replacer builds the substitution pass for one rendering, validating that
// every referenced placeholder has a value. Only placeholders the template
// text mentions are substituted, and strings.Replacer never rescans
// replaced text, so placeholder tokens inside a value (a query like
// `. | {to}` is valid jq) survive rendering verbatim. The input placeholder
// uses the supplied input value (real path or masked token).
func (t Template) replacer(vals Values, input string) (*strings.Replacer, error) {
	subs := []struct{ ph, v string }{
		{PlaceholderCmd, vals.Cmd},
		{PlaceholderQuery, vals.Query},
		{PlaceholderInput, input},
		{PlaceholderFrom, vals.From},
		{PlaceholderTo, vals.To},
	}
	pairs := make([]string, 0, len(subs)*2)
	for _, s := range subs {
		if !t.References(s.ph) {
			continue
		}
		if s.v == "" {
			return nil, &TemplateError{Placeholder: s.ph}
		}
		pairs = append(pairs, s.ph, s.v)
	}
	return strings.NewReplacer(pairs...), nil
}

// shellQuote wraps s in single quotes for display, escaping embedded single
// quotes. Display only; rendered argvs are never passed through a shell.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
