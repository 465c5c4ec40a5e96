package mysql

import "github.com/koustreak/sqlbridge/internal/database"

// fractionalSecondsSince is the first server version whose DATETIME
// columns accept a fractional-seconds precision argument.
var fractionalSecondsSince = database.Version{Major: 5, Minor: 7}

// TypeProvider maps abstract column types to MySQL type syntax. It is a
// pure function of the connection's cached version — calling it never
// costs a round trip, and answers are consistent within one transaction.
type TypeProvider struct {
	version func() database.Version
}

// NewTypeProvider builds a TypeProvider over a version source, normally
// Conn.ServerVersion.
func NewTypeProvider(version func() database.Version) TypeProvider {
	return TypeProvider{version: version}
}

// TemporalType returns the column type for date-time values:
// microsecond-precision datetime on servers that support fractional
// seconds, plain datetime otherwise.
func (p TypeProvider) TemporalType() string {
	if p.supportsFractionalSeconds() {
		return "datetime(6)"
	}
	return "datetime"
}

func (p TypeProvider) supportsFractionalSeconds() bool {
	v := fractionalSecondsSince
	return p.version().AtLeast(v.Major, v.Minor, v.Patch)
}
