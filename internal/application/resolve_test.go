package application

import (
	"testing"

	"github.com/davarch/pipeline-status/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestResolve_EmptyPatternsSubstituteWildcard(t *testing.T) {
	targets := Resolve([]string{"a", "b", "c"}, nil)

	assert.Len(t, targets, 3)
	for i, p := range []string{"a", "b", "c"} {
		assert.Equal(t, domain.QueryTarget{Project: p, RefPattern: AnyRef}, targets[i])
	}
}

func TestResolve_CrossProductProjectMajorOrder(t *testing.T) {
	targets := Resolve([]string{"a", "b"}, []string{"main", "release-*"})

	want := []domain.QueryTarget{
		{Project: "a", RefPattern: "main"},
		{Project: "a", RefPattern: "release-*"},
		{Project: "b", RefPattern: "main"},
		{Project: "b", RefPattern: "release-*"},
	}
	assert.Equal(t, want, targets)
}

func TestMatchRef(t *testing.T) {
	cases := []struct {
		pattern string
		ref     string
		want    bool
	}{
		{"", "anything", true},
		{"*", "anything", true},
		{"main", "main", true},
		{"main", "main-2", false},
		{"release-*", "release-1.4", true},
		{"release-*", "hotfix/release-1.4", false},
		{"*-hotfix", "1.4-hotfix", true},
		{"*-hotfix", "1.4-hotfix-rc", false},
		{"*release*", "pre-release-1", true},
		{"v*.*.0", "v1.12.0", true},
		{"v*.*.0", "v1.12.1", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, MatchRef(tc.pattern, tc.ref),
			"pattern %q against %q", tc.pattern, tc.ref)
	}
}

func TestIsExactRef(t *testing.T) {
	assert.True(t, IsExactRef("main"))
	assert.False(t, IsExactRef(""))
	assert.False(t, IsExactRef("*"))
	assert.False(t, IsExactRef("release-*"))
}
