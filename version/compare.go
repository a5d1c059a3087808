package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type semver struct {
	major, minor, patch int
}

// parseVersion accepts "1.2.3" and "v1.2.3". Pre-release suffixes are ignored.
func parseVersion(s string) (semver, error) {
	var v semver
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "-")

	if _, err := fmt.Sscanf(s, "%d.%d.%d", &v.major, &v.minor, &v.patch); err != nil {
		return semver{}, fmt.Errorf("parse version %q: %w", s, err)
	}
	return v, nil
}

// Compare returns 1 if a is newer than b, -1 if older and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseVersion(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseVersion(b)
	if err != nil {
		return 0, err
	}

	pairs := lo.Zip2(
		[]int{av.major, av.minor, av.patch},
		[]int{bv.major, bv.minor, bv.patch},
	)
	for _, p := range pairs {
		switch {
		case p.A > p.B:
			return 1, nil
		case p.A < p.B:
			return -1, nil
		}
	}

	return 0, nil
}
