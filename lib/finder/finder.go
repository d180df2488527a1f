// Copyright 2026 The mp Authors
// SPDX-License-Identifier: Apache-2.0

// Package finder discovers markdown files under a directory tree,
// honoring gitignore-style exclusion files. Results are relative to
// the search root and sorted, so callers can treat the list as a
// stable navigation order.
package finder

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// customIgnoreFilename is the tool-specific exclusion file, read in
// every directory alongside .gitignore.
const customIgnoreFilename = ".mpignore"

// Config controls what the search may descend into. The zero value
// gives the default behavior: hidden entries and ignored paths are
// skipped.
type Config struct {
	// Hidden includes dot-prefixed files and directories.
	Hidden bool

	// NoIgnore disables all exclusion files.
	NoIgnore bool

	// NoIgnoreParent skips exclusion files found in ancestors of the
	// search root.
	NoIgnoreParent bool

	// NoGlobalIgnoreFile skips the user-level git ignore file.
	NoGlobalIgnoreFile bool
}

// ignoreRule is one compiled exclusion file, anchored to the directory
// it was found in.
type ignoreRule struct {
	base    string
	matcher *ignore.GitIgnore
}

// FindMarkdownFiles walks root and returns every .md file that
// survives the hidden and ignore filters, as sorted root-relative
// paths. Unreadable directories are skipped, not fatal.
func FindMarkdownFiles(root string, config Config) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, &fs.PathError{Op: "walk", Path: root, Err: fs.ErrInvalid}
	}

	walker := &walker{root: absRoot, config: config}
	walker.loadOuterRules()
	walker.loadDirectoryRules(absRoot)

	err = filepath.WalkDir(absRoot, walker.visit)
	if err != nil {
		return nil, err
	}

	sort.Strings(walker.files)
	return walker.files, nil
}

type walker struct {
	root   string
	config Config
	rules  []ignoreRule
	files  []string
}

// loadOuterRules compiles the exclusion files that live outside the
// walked tree: ancestor .gitignore files and the user-level git
// ignore file.
func (walker *walker) loadOuterRules() {
	if walker.config.NoIgnore {
		return
	}

	if !walker.config.NoIgnoreParent {
		for dir := filepath.Dir(walker.root); ; dir = filepath.Dir(dir) {
			walker.addRule(dir, filepath.Join(dir, ".gitignore"))
			walker.addRule(dir, filepath.Join(dir, customIgnoreFilename))
			if dir == filepath.Dir(dir) {
				break
			}
		}
	}

	if !walker.config.NoGlobalIgnoreFile {
		if path := globalIgnorePath(); path != "" {
			walker.addRule(walker.root, path)
		}
	}
}

// loadDirectoryRules compiles the exclusion files of one directory
// inside the tree. Directories are visited before their contents, so
// rules are always in place before they are needed.
func (walker *walker) loadDirectoryRules(dir string) {
	if walker.config.NoIgnore {
		return
	}
	walker.addRule(dir, filepath.Join(dir, ".gitignore"))
	walker.addRule(dir, filepath.Join(dir, customIgnoreFilename))
}

// addRule compiles one exclusion file if it exists. Unreadable or
// missing files contribute no rule.
func (walker *walker) addRule(base, path string) {
	matcher, err := ignore.CompileIgnoreFile(path)
	if err != nil || matcher == nil {
		return
	}
	walker.rules = append(walker.rules, ignoreRule{base: base, matcher: matcher})
}

// ignored reports whether any rule excludes the path. Each rule only
// sees paths inside its anchor directory. Directories are also tested
// with a trailing slash so directory-only patterns (like "docs/")
// match them.
func (walker *walker) ignored(path string, isDir bool) bool {
	for _, rule := range walker.rules {
		relative, err := filepath.Rel(rule.base, path)
		if err != nil || strings.HasPrefix(relative, "..") {
			continue
		}
		slashed := filepath.ToSlash(relative)
		if rule.matcher.MatchesPath(slashed) {
			return true
		}
		if isDir && rule.matcher.MatchesPath(slashed+"/") {
			return true
		}
	}
	return false
}

func (walker *walker) visit(path string, entry fs.DirEntry, err error) error {
	if err != nil {
		// Unreadable entries are dropped from the result set.
		if entry != nil && entry.IsDir() {
			return fs.SkipDir
		}
		return nil
	}
	if path == walker.root {
		return nil
	}

	hidden := strings.HasPrefix(entry.Name(), ".")
	if hidden && !walker.config.Hidden {
		if entry.IsDir() {
			return fs.SkipDir
		}
		return nil
	}

	if walker.ignored(path, entry.IsDir()) {
		if entry.IsDir() {
			return fs.SkipDir
		}
		return nil
	}

	if entry.IsDir() {
		walker.loadDirectoryRules(path)
		return nil
	}

	if filepath.Ext(entry.Name()) != ".md" {
		return nil
	}

	relative, err := filepath.Rel(walker.root, path)
	if err != nil {
		return nil
	}
	walker.files = append(walker.files, relative)
	return nil
}

// globalIgnorePath resolves the user-level git ignore file the way git
// does when core.excludesFile is unset: $XDG_CONFIG_HOME/git/ignore,
// falling back to ~/.config/git/ignore.
func globalIgnorePath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "git", "ignore")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "git", "ignore")
}
