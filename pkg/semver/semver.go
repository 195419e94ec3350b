// Package semver implements the minimal version model minipm understands:
// plain major.minor.patch versions and the literal "latest" selector.
//
// Range expressions (^1.2.0, >=1.0.0, 1.x) and URL-form dependencies are
// deliberately unsupported and rejected with UNSUPPORTED_SELECTOR rather
// than approximated.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/minipm/minipm/pkg/errors"
)

// Latest is the selector that picks the maximal available version.
const Latest = "latest"

// Version is a parsed major.minor.patch triple.
type Version struct {
	Major, Minor, Patch int
}

// Parse parses a plain numeric major.minor.patch string.
// Prerelease or build suffixes ("2.0.0-rc.1") and wildcard segments do not
// parse; callers treat those versions as opaque strings.
func Parse(s string) (Version, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || (len(p) > 1 && p[0] == '0') {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// Compare returns -1, 0, or 1 comparing v against o segment by segment.
func (v Version) Compare(o Version) int {
	if c := cmp(v.Major, o.Major); c != 0 {
		return c
	}
	if c := cmp(v.Minor, o.Minor); c != 0 {
		return c
	}
	return cmp(v.Patch, o.Patch)
}

func cmp(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// String returns the canonical major.minor.patch form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Select picks one concrete version for the requested selector.
//
// For "latest" it returns the maximal plain semver version among available
// (numeric per-segment ordering, so 1.10.0 beats 1.2.0). For a concrete
// version string it returns the selector unchanged iff it is present in
// available. Anything else — ranges, wildcards, URLs — fails with
// UNSUPPORTED_SELECTOR. The name parameter is only used in error messages.
func Select(name, selector string, available []string) (string, error) {
	if selector == Latest {
		return selectLatest(name, available)
	}
	if !isExact(selector) {
		return "", errors.New(errors.ErrCodeUnsupportedSelector,
			"%s: selector %q is not supported (only exact versions and %q)", name, selector, Latest)
	}
	for _, v := range available {
		if v == selector {
			return selector, nil
		}
	}
	return "", errors.New(errors.ErrCodeVersionNotFound,
		"%s: version %s not found in registry", name, selector)
}

func selectLatest(name string, available []string) (string, error) {
	var (
		best  Version
		found bool
	)
	for _, s := range available {
		v, ok := Parse(s)
		if !ok {
			continue // prerelease and malformed versions are not candidates
		}
		if !found || v.Compare(best) > 0 {
			best = v
			found = true
		}
	}
	if !found {
		return "", errors.New(errors.ErrCodeVersionNotFound,
			"%s: no stable releases available", name)
	}
	return best.String(), nil
}

// ValidSelector reports whether selector would be accepted at resolution
// time: "latest" or a concrete version string. Useful for rejecting range
// expressions before they reach the manifest.
func ValidSelector(selector string) bool {
	return selector == Latest || isExact(selector)
}

// isExact reports whether selector is a concrete version string rather than
// a range, wildcard, or URL.
func isExact(selector string) bool {
	if selector == "" {
		return false
	}
	if strings.ContainsAny(selector, "^~<>=*| ") {
		return false
	}
	if strings.Contains(selector, "/") { // URL- and path-form dependencies
		return false
	}
	base, _, _ := strings.Cut(selector, "-")
	for _, seg := range strings.Split(base, ".") {
		if seg == "x" || seg == "X" {
			return false
		}
	}
	return true
}
