package mysql

import (
	"sync"

	"github.com/koustreak/sqlbridge/internal/database"
)

// Dialect is the MySQL strategy object. It embeds the standard defaults
// and overrides only what MySQL does differently: the replace/ignore
// statement forms, the ALTER TABLE based index drop, the empty-values
// marker, and the information_schema introspection queries.
//
// One Dialect instance may be shared across goroutines; constraint and
// index introspection serialize on an internal mutex (at most one such
// introspection in flight per instance). That protects only the local
// aggregation state — transaction isolation stays with the caller.
type Dialect struct {
	database.Base

	types     TypeProvider
	functions FunctionProvider

	// Guards constraint/index introspection aggregation.
	mu sync.Mutex
}

// NewDialect builds the MySQL dialect for the given connection. The
// connection supplies the cached server version the type provider keys
// its feature checks on.
func NewDialect(conn database.Conn) *Dialect {
	return &Dialect{
		Base:      database.Base{DefaultValues: "() VALUES ()"},
		types:     NewTypeProvider(conn.ServerVersion),
		functions: FunctionProvider{},
	}
}

// Name implements database.Dialect.
func (d *Dialect) Name() string { return "mysql" }

// NewBuilder returns a Builder with backtick quoting and "?" placeholders.
func (d *Dialect) NewBuilder() *database.Builder {
	return database.NewBuilder(Quote, placeholder)
}

// Types implements database.Dialect.
func (d *Dialect) Types() database.TypeProvider { return d.types }

// Functions implements database.Dialect.
func (d *Dialect) Functions() database.FunctionProvider { return d.functions }
