package database

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/koustreak/sqlbridge/internal/errs"
)

// Version is a parsed server version. Drivers detect it once at connect
// time and cache it; dialects use it for feature gating (e.g. whether a
// temporal type supports fractional seconds).
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a server version string. Build suffixes such as
// "8.0.36-log" or "10.6.12-MariaDB" are tolerated — parsing stops at the
// first non-numeric segment separator. Missing minor/patch default to 0.
func ParseVersion(s string) (Version, error) {
	core := s
	if i := strings.IndexAny(core, "-_+ "); i >= 0 {
		core = core[:i]
	}
	if core == "" {
		return Version{}, errs.New(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot parse server version %q", s))
	}

	var v Version
	parts := strings.SplitN(core, ".", 3)
	dst := []*int{&v.Major, &v.Minor, &v.Patch}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, errs.Wrap(errs.ErrKindInvalidInput,
				fmt.Sprintf("cannot parse server version %q", s), err)
		}
		*dst[i] = n
	}
	return v, nil
}

// AtLeast reports whether the version is >= major.minor.patch.
func (v Version) AtLeast(major, minor, patch int) bool {
	if v.Major != major {
		return v.Major > major
	}
	if v.Minor != minor {
		return v.Minor > minor
	}
	return v.Patch >= patch
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
