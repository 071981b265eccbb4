// Package match implements the whitelist/blacklist pattern matching
// used to select which project files get processed.
package match

import (
	"fmt"
	"regexp"
)

type matcher struct {
	pattern string
	re      *regexp.Regexp
}

// GroupMatch filters a value through a whitelist and a blacklist of
// regular expressions. Every whitelist pattern must match and no
// blacklist pattern may match for the value to pass.
type GroupMatch struct {
	whitelist []matcher
	blacklist []matcher
}

// NewGroupMatch compiles the pattern sets. Invalid patterns are skipped
// and reported in the returned error slice; the matcher stays usable
// with the patterns that did compile.
func NewGroupMatch(whitelist, blacklist []string) (*GroupMatch, []error) {
	var errs []error
	compile := func(patterns []string) []matcher {
		out := make([]matcher, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				errs = append(errs, fmt.Errorf("invalid pattern %q: %w", p, err))
				continue
			}
			out = append(out, matcher{pattern: p, re: re})
		}
		return out
	}
	return &GroupMatch{
		whitelist: compile(whitelist),
		blacklist: compile(blacklist),
	}, errs
}

// IsMatch reports whether value passes the filter. On failure the
// second return value names the pattern that rejected it.
func (g *GroupMatch) IsMatch(value string) (bool, string) {
	for _, m := range g.whitelist {
		if !m.re.MatchString(value) {
			return false, fmt.Sprintf("whitelist %q", m.pattern)
		}
	}
	for _, m := range g.blacklist {
		if m.re.MatchString(value) {
			return false, fmt.Sprintf("blacklist %q", m.pattern)
		}
	}
	return true, ""
}
