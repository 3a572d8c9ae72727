package application

import (
	"strings"

	"github.com/davarch/pipeline-status/internal/domain"
)

// AnyRef matches every reference. Substituted when the caller gives no
// ref patterns at all.
const AnyRef = "*"

// Resolve expands project identifiers and ref patterns into the full
// cross product, project-major, preserving input order on both axes.
func Resolve(projects, refPatterns []string) []domain.QueryTarget {
	if len(refPatterns) == 0 {
		refPatterns = []string{AnyRef}
	}

	targets := make([]domain.QueryTarget, 0, len(projects)*len(refPatterns))
	for _, p := range projects {
		for _, r := range refPatterns {
			targets = append(targets, domain.QueryTarget{Project: p, RefPattern: r})
		}
	}
	return targets
}

// IsExactRef reports whether pattern names a single ref, so the server
// can filter instead of us scanning recent pipelines.
func IsExactRef(pattern string) bool {
	return pattern != "" && pattern != AnyRef && !strings.Contains(pattern, "*")
}

// MatchRef matches a ref against a pattern: "" and "*" match anything,
// '*' in a pattern matches any run of characters, everything else is
// literal.
func MatchRef(pattern, ref string) bool {
	if pattern == "" || pattern == AnyRef {
		return true
	}
	if !strings.Contains(pattern, "*") {
		return pattern == ref
	}

	parts := strings.Split(pattern, "*")
	if !strings.HasPrefix(ref, parts[0]) {
		return false
	}
	rest := ref[len(parts[0]):]

	last := parts[len(parts)-1]
	if len(last) > len(rest) || !strings.HasSuffix(rest, last) {
		return false
	}
	rest = rest[:len(rest)-len(last)]

	for _, part := range parts[1 : len(parts)-1] {
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
	}
	return true
}
