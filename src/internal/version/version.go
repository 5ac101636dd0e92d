// Package version handles Verilator release tag parsing and ordering
package version

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Parse converts a release tag like v5.024 into a comparable version.
// The tag string itself stays the canonical identifier everywhere else;
// the parsed form is only used for ordering.
func Parse(tag string) (*semver.Version, error) {
	return semver.NewVersion(tag)
}

// IsReleaseTag reports whether a tag names a Verilator release.
// Release tags carry a v prefix and parse as a version; repository
// tags in other shapes (verilator_3_876 and friends) are not releases.
func IsReleaseTag(tag string) bool {
	if !strings.HasPrefix(tag, "v") {
		return false
	}
	_, err := semver.NewVersion(tag)
	return err == nil
}

// Canonical normalizes user input to tag form, prefixing v when the
// input starts with a digit. Anything else is returned unchanged.
func Canonical(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return input
	}
	if input[0] >= '0' && input[0] <= '9' {
		return "v" + input
	}
	return input
}

// SortTagsDesc filters a tag list down to release tags and sorts them
// by version precedence, newest first. Non-release tags are dropped.
func SortTagsDesc(tags []string) []string {
	type parsed struct {
		tag string
		ver *semver.Version
	}

	var releases []parsed
	for _, tag := range tags {
		if !strings.HasPrefix(tag, "v") {
			continue
		}
		v, err := semver.NewVersion(tag)
		if err != nil {
			// Skip non-semver tags
			continue
		}
		releases = append(releases, parsed{tag: tag, ver: v})
	}

	sort.Slice(releases, func(i, j int) bool {
		return releases[i].ver.GreaterThan(releases[j].ver)
	})

	result := make([]string, len(releases))
	for i, r := range releases {
		result[i] = r.tag
	}
	return result
}

// Latest returns the highest-precedence release tag in the list.
func Latest(tags []string) (string, bool) {
	sorted := SortTagsDesc(tags)
	if len(sorted) == 0 {
		return "", false
	}
	return sorted[0], true
}
