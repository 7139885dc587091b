package git

import (
	"os/exec"
	"strings"
)

// GitStatus describes how the package store relates to git
type GitStatus struct {
	IsRepo       bool
	StoreTracked bool
	StoreIgnored bool
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()

	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	err := cmd.Run()

	// git check-ignore returns exit code 0 if file is ignored
	return err == nil
}

// CheckStore reports git status for the store file at storePath
func CheckStore(workDir, storePath string) *GitStatus {
	status := &GitStatus{}
	if !IsGitRepo(workDir) {
		return status
	}
	status.IsRepo = true
	status.StoreTracked = IsTracked(workDir, storePath)
	status.StoreIgnored = IsIgnored(workDir, storePath)
	return status
}

// FormatGitStatus formats git status for display
func FormatGitStatus(status *GitStatus, storePath string) string {
	if status == nil || !status.IsRepo {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit Integration:\n")

	switch {
	case status.StoreTracked:
		result.WriteString("   ok: " + storePath + " is tracked by git (packages are encrypted)\n")
	case status.StoreIgnored:
		result.WriteString("   ok: " + storePath + " is in .gitignore\n")
	default:
		result.WriteString("   warning: " + storePath + " is neither tracked nor ignored\n")
	}

	return result.String()
}
