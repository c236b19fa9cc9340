package versiongate

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// versionPattern matches a bare MAJOR.MINOR.PATCH triplet and nothing else.
var versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)$`)

// Version is a three component numeric version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses s as a strict MAJOR.MINOR.PATCH triplet.
// No prefix, pre-release or build metadata is accepted, and s is not trimmed.
func ParseVersion(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformedVersion, s)
	}

	var v Version
	var err error
	if v.Major, err = strconv.Atoi(m[1]); err != nil {
		return Version{}, fmt.Errorf("%w: major component of %q: %v", ErrMalformedVersion, s, err)
	}
	if v.Minor, err = strconv.Atoi(m[2]); err != nil {
		return Version{}, fmt.Errorf("%w: minor component of %q: %v", ErrMalformedVersion, s, err)
	}
	if v.Patch, err = strconv.Atoi(m[3]); err != nil {
		return Version{}, fmt.Errorf("%w: patch component of %q: %v", ErrMalformedVersion, s, err)
	}
	return v, nil
}

// String formats the version as M.m.p.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Semver returns the canonical "v"-prefixed form used by golang.org/x/mod/semver.
func (v Version) Semver() string {
	return "v" + v.String()
}

// BumpPatch returns v with the patch component incremented by one.
func (v Version) BumpPatch() Version {
	v.Patch++
	return v
}

// Compare returns -1, 0 or +1 depending on whether v is less than,
// equal to, or greater than other in semver precedence.
func (v Version) Compare(other Version) int {
	return semver.Compare(v.Semver(), other.Semver())
}
