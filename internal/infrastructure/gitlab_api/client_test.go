package gitlab_api

import (
	"net/http"
	"testing"

	gitlab "gitlab.com/gitlab-org/api/client-go"
)

func TestRetryable(t *testing.T) {
	cases := []struct {
		name string
		resp *gitlab.Response
		want bool
	}{
		{"network failure", nil, true},
		{"429", &gitlab.Response{Response: &http.Response{StatusCode: http.StatusTooManyRequests}}, true},
		{"503", &gitlab.Response{Response: &http.Response{StatusCode: http.StatusServiceUnavailable}}, true},
		{"401", &gitlab.Response{Response: &http.Response{StatusCode: http.StatusUnauthorized}}, false},
		{"404", &gitlab.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}, false},
	}

	for _, tc := range cases {
		if got := retryable(tc.resp); got != tc.want {
			t.Errorf("%s: retryable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTrimSlash(t *testing.T) {
	if got := trimSlash("https://gitlab.com///"); got != "https://gitlab.com" {
		t.Errorf("got %q", got)
	}
	if got := trimSlash("https://gitlab.com"); got != "https://gitlab.com" {
		t.Errorf("got %q", got)
	}
}
