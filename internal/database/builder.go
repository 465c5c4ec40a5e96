package database

import "strings"

// Builder assembles SQL text together with its positional arguments.
// It carries the engine's identifier-quoting and placeholder policies so
// that statement generators stay pure string builders: values are never
// interpolated into the SQL string — always registered as args.
//
// Usage:
//
//	b := dialect.NewBuilder()
//	b.Write("SELECT * FROM ").Ident("users").Write(" WHERE id = ").Arg(7)
//	sql, args := b.SQL(), b.Args()
type Builder struct {
	sb          strings.Builder
	args        []any
	quote       func(string) string
	placeholder func(n int) string
}

// NewBuilder creates a Builder with the given quoting and placeholder
// policies. placeholder receives the 1-based argument index (Postgres
// style engines use it; MySQL-style engines ignore it and return "?").
func NewBuilder(quote func(string) string, placeholder func(n int) string) *Builder {
	return &Builder{quote: quote, placeholder: placeholder}
}

// Write appends raw SQL text.
func (b *Builder) Write(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Ident appends a quoted identifier.
func (b *Builder) Ident(name string) *Builder {
	b.sb.WriteString(b.quote(name))
	return b
}

// Idents appends a comma-separated list of quoted identifiers.
func (b *Builder) Idents(names ...string) *Builder {
	for i, n := range names {
		if i > 0 {
			b.sb.WriteString(", ")
		}
		b.sb.WriteString(b.quote(n))
	}
	return b
}

// Arg registers a value and appends its placeholder.
func (b *Builder) Arg(v any) *Builder {
	b.args = append(b.args, v)
	b.sb.WriteString(b.placeholder(len(b.args)))
	return b
}

// Quote exposes the builder's identifier-quoting policy.
func (b *Builder) Quote(name string) string { return b.quote(name) }

// SQL returns the assembled statement text.
func (b *Builder) SQL() string { return b.sb.String() }

// Args returns the registered positional arguments in order.
func (b *Builder) Args() []any { return b.args }
