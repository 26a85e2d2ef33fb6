package gitsource

import (
	"context"
	"path/filepath"
	"testing"
)

func TestLocalPath(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://github.com/acme/charts.git", filepath.Join("repos", "github.com", "acme", "charts")},
		{"http://example.com/x/y", filepath.Join("repos", "example.com", "x", "y")},
		{"git@github.com:acme/charts.git", filepath.Join("repos", "github.com", "acme", "charts")},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			got, err := LocalPath("repos", tc.url)
			if err != nil {
				t.Fatalf("LocalPath returned an unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("Expected '%s', but got '%s'", tc.expected, got)
			}
		})
	}

	if _, err := LocalPath("repos", "not a url"); err == nil {
		t.Error("Expected an error for an unparseable URL")
	}
}

func TestIsRemote(t *testing.T) {
	cases := map[string]bool{
		"https://github.com/acme/charts": true,
		"git@github.com:acme/charts.git": true,
		"/home/me/charts":                false,
		"./charts":                       false,
	}
	for path, want := range cases {
		if got := IsRemote(path); got != want {
			t.Errorf("IsRemote(%q): expected %v, but got %v", path, want, got)
		}
	}
}

func TestSyncRejectsNonRepository(t *testing.T) {
	dir := t.TempDir()
	if err := Sync(context.Background(), "https://example.com/x.git", dir, nil); err == nil {
		t.Error("Expected an error when the checkout directory is not a repository")
	}
}
