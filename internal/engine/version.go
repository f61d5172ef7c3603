// internal/engine/version.go
package engine

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// AtLeast reports whether candidate is the same release as minimum or newer.
// Only MAJOR.MINOR.PATCH is compared. Pre-release tags and anything after the
// first space (the daemon appends "commit=...") are ignored.
func AtLeast(candidate, minimum string) (bool, error) {
	c, err := releaseOf(candidate)
	if err != nil {
		return false, err
	}
	m, err := releaseOf(minimum)
	if err != nil {
		return false, err
	}
	return !c.LessThan(m), nil
}

func releaseOf(v string) (*semver.Version, error) {
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return nil, fmt.Errorf("engine: empty version")
	}

	// Pre-release and build text is free-form on the daemon side.
	core := fields[0]
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}

	sv, err := semver.NewVersion(core)
	if err != nil {
		return nil, fmt.Errorf("engine: version %q: %w", v, err)
	}
	return sv, nil
}
