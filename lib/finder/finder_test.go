// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

package finder

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// writeFile creates a file with parent directories as needed.
func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// testRoot builds the standard fixture tree and isolates the test
// from the user's global git ignore file.
func testRoot(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	writeFile(t, root, "README.md", "# Test")
	writeFile(t, root, "notes.md", "notes")
	writeFile(t, root, "plain.txt", "not markdown")
	writeFile(t, root, ".hidden.md", "hidden")
	writeFile(t, root, filepath.Join("docs", "guide.md"), "guide")
	return root
}

func TestFindMarkdownFilesDefault(t *testing.T) {
	root := testRoot(t)

	files, err := FindMarkdownFiles(root, Config{})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"README.md", filepath.Join("docs", "guide.md"), "notes.md"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for index := range want {
		if files[index] != want[index] {
			t.Errorf("files[%d] = %q, want %q", index, files[index], want[index])
		}
	}
}

func TestFindMarkdownFilesSorted(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, "aaa.md", "a")
	writeFile(t, root, "zzz.md", "z")

	files, err := FindMarkdownFiles(root, Config{})
	if err != nil {
		t.Fatal(err)
	}
	if !sort.StringsAreSorted(files) {
		t.Errorf("result not sorted: %v", files)
	}
}

func TestFindMarkdownFilesHidden(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, filepath.Join(".cache", "stash.md"), "stashed")

	files, err := FindMarkdownFiles(root, Config{Hidden: true})
	if err != nil {
		t.Fatal(err)
	}

	var sawHiddenFile, sawHiddenDir bool
	for _, file := range files {
		if file == ".hidden.md" {
			sawHiddenFile = true
		}
		if file == filepath.Join(".cache", "stash.md") {
			sawHiddenDir = true
		}
	}
	if !sawHiddenFile || !sawHiddenDir {
		t.Errorf("hidden entries missing from %v", files)
	}
}

func TestFindMarkdownFilesGitignore(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, ".gitignore", "notes.md\ndocs/\n")

	files, err := FindMarkdownFiles(root, Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		if file == "notes.md" {
			t.Error("ignored file in result")
		}
		if filepath.Dir(file) == "docs" {
			t.Error("file from ignored directory in result")
		}
	}
}

func TestFindMarkdownFilesCustomIgnore(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, ".mpignore", "README.md\n")

	files, err := FindMarkdownFiles(root, Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		if file == "README.md" {
			t.Errorf(".mpignore not honored: %v", files)
		}
	}
}

func TestFindMarkdownFilesNoIgnore(t *testing.T) {
	root := testRoot(t)
	writeFile(t, root, ".gitignore", "notes.md\n")
	writeFile(t, root, ".mpignore", "README.md\n")

	files, err := FindMarkdownFiles(root, Config{NoIgnore: true})
	if err != nil {
		t.Fatal(err)
	}

	var sawNotes, sawReadme bool
	for _, file := range files {
		if file == "notes.md" {
			sawNotes = true
		}
		if file == "README.md" {
			sawReadme = true
		}
	}
	if !sawNotes || !sawReadme {
		t.Errorf("NoIgnore still filtered files: %v", files)
	}
}

func TestFindMarkdownFilesParentIgnore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	parent := t.TempDir()
	writeFile(t, parent, ".gitignore", "drafts/\n")
	root := filepath.Join(parent, "project")
	writeFile(t, root, "kept.md", "kept")
	writeFile(t, root, filepath.Join("drafts", "wip.md"), "wip")

	files, err := FindMarkdownFiles(root, Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		if filepath.Dir(file) == "drafts" {
			t.Errorf("parent ignore not honored: %v", files)
		}
	}

	files, err = FindMarkdownFiles(root, Config{NoIgnoreParent: true})
	if err != nil {
		t.Fatal(err)
	}
	var sawDraft bool
	for _, file := range files {
		if file == filepath.Join("drafts", "wip.md") {
			sawDraft = true
		}
	}
	if !sawDraft {
		t.Errorf("NoIgnoreParent still filtered drafts: %v", files)
	}
}

func TestFindMarkdownFilesGlobalIgnore(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	writeFile(t, configHome, filepath.Join("git", "ignore"), "notes.md\n")

	root := t.TempDir()
	writeFile(t, root, "README.md", "# Test")
	writeFile(t, root, "notes.md", "notes")

	files, err := FindMarkdownFiles(root, Config{})
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		if file == "notes.md" {
			t.Errorf("global ignore not honored: %v", files)
		}
	}

	files, err = FindMarkdownFiles(root, Config{NoGlobalIgnoreFile: true})
	if err != nil {
		t.Fatal(err)
	}
	var sawNotes bool
	for _, file := range files {
		if file == "notes.md" {
			sawNotes = true
		}
	}
	if !sawNotes {
		t.Errorf("NoGlobalIgnoreFile still filtered notes.md: %v", files)
	}
}

func TestFindMarkdownFilesMissingRoot(t *testing.T) {
	if _, err := FindMarkdownFiles(filepath.Join(t.TempDir(), "absent"), Config{}); err == nil {
		t.Error("missing root did not error")
	}
}
