package cmd

import (
	"net/url"
	"strings"
	"testing"
)

func TestBuildIssueURL(t *testing.T) {
	issueURL := buildIssueURL("v5.022", "linux-arm64")

	if !strings.HasPrefix(issueURL, issueTrackerURL+"?") {
		t.Errorf("issue URL %q does not start with %q", issueURL, issueTrackerURL)
	}

	parsed, err := url.Parse(issueURL)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	q := parsed.Query()
	if got := q.Get("title"); got != "build(verilator): v5.022 linux-arm64" {
		t.Errorf("title = %q", got)
	}
	if got := q.Get("labels"); got != "build-request,linux-arm64" {
		t.Errorf("labels = %q", got)
	}
	body := q.Get("body")
	if !strings.Contains(body, "**Version requested:** v5.022") {
		t.Errorf("body missing version: %q", body)
	}
	if !strings.Contains(body, "**Target platform:** linux-arm64") {
		t.Errorf("body missing platform: %q", body)
	}
}
