package git

import (
	"strings"
	"testing"
)

func TestFormatGitStatus(t *testing.T) {
	if got := FormatGitStatus(&GitStatus{IsRepo: false}, ".qsandbox"); got != "" {
		t.Errorf("Expected empty output outside a repo, got %q", got)
	}
	if got := FormatGitStatus(nil, ".qsandbox"); got != "" {
		t.Errorf("Expected empty output for nil status, got %q", got)
	}

	tests := []struct {
		name   string
		status GitStatus
		want   string
	}{
		{"tracked", GitStatus{IsRepo: true, StoreTracked: true}, "is tracked by git"},
		{"ignored", GitStatus{IsRepo: true, StoreIgnored: true}, "is in .gitignore"},
		{"neither", GitStatus{IsRepo: true}, "warning: .qsandbox is neither tracked nor ignored"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatGitStatus(&tt.status, ".qsandbox")
			if !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want substring %q", got, tt.want)
			}
		})
	}
}

func TestCheckStoreOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	status := CheckStore(dir, ".qsandbox")
	if status.IsRepo {
		t.Skip("temp dir is inside a git work tree")
	}
	if status.StoreTracked || status.StoreIgnored {
		t.Errorf("Unexpected status outside repo: %+v", status)
	}
}
