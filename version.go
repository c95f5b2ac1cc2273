package terraformgpt

import (
	"sort"

	"github.com/Masterminds/semver/v3"
)

// ValidVersion reports whether s parses as a semantic version
// (e.g. "4.52.0"). A leading "v" is tolerated.
func ValidVersion(s string) bool {
	_, err := semver.NewVersion(s)
	return err == nil
}

// NewerVersion reports whether a is a newer semantic version than b.
// Valid versions order before strings that do not parse.
func NewerVersion(a, b string) bool {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.GreaterThan(vb)
	}
	return errA == nil && errB != nil
}

// SortVersions returns a copy of versions sorted newest first.
// Strings that do not parse as semver sort last, in their original order.
func SortVersions(versions []string) []string {
	sorted := make([]string, len(versions))
	copy(sorted, versions)

	parsed := make(map[string]*semver.Version, len(sorted))
	for _, s := range sorted {
		if v, err := semver.NewVersion(s); err == nil {
			parsed[s] = v
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, oki := parsed[sorted[i]]
		vj, okj := parsed[sorted[j]]
		if oki && okj {
			return vi.GreaterThan(vj)
		}
		return oki && !okj
	})

	return sorted
}

// LatestVersion returns the highest semantic version in the list.
// Returns ENOTFOUND if the list contains no valid versions.
func LatestVersion(versions []string) (string, error) {
	var best *semver.Version
	var bestRaw string

	for _, s := range versions {
		v, err := semver.NewVersion(s)
		if err != nil {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = s
		}
	}

	if best == nil {
		return "", Errorf(ENOTFOUND, "no valid versions found")
	}
	return bestRaw, nil
}
