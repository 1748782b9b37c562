// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// renderPOT renders refs as a gettext template, msgids sorted.
func renderPOT(refs map[string][]ref, version string) string {
	return renderPOTAt(refs, version, time.Now())
}

func renderPOTAt(refs map[string][]ref, version string, created time.Time) string {
	var b strings.Builder

	writeHeader(&b, version, created)

	for i, msgid := range slices.Sorted(maps.Keys(refs)) {
		rs := slices.Clone(refs[msgid])
		slices.SortFunc(rs, func(a, b ref) int {
			return cmp.Or(cmp.Compare(a.file, b.file), cmp.Compare(a.line, b.line))
		})

		fmt.Fprint(&b, "#:")

		for _, r := range slices.Compact(rs) {
			fmt.Fprintf(&b, " %s:%d", r.file, r.line)
		}

		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "msgid %q\n", msgid)
		fmt.Fprintln(&b, `msgstr ""`)

		if i < len(refs)-1 {
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder, version string, created time.Time) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: errorpage %s\\n\"\n", version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", created.UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b)
}

// detectVersion resolves a human-friendly version string using git describe.
// Falls back to "dev" when git is unavailable or this is not a git checkout.
func detectVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return "dev"
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot attempts to find a stable root directory for source references.
// Preference order:
//  1. git toplevel directory
//  2. nearest parent directory that contains go.mod
//  3. the provided working directory
func findProjectRoot(wd string) string {
	if root := gitTopLevel(wd); root != "" {
		return root
	}

	if root := nearestGoModDir(wd); root != "" {
		return root
	}

	return wd
}

func gitTopLevel(wd string) string {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = wd

	out, err := cmd.Output()
	if err != nil {
		return ""
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return ""
	}

	return filepath.Clean(root)
}

func nearestGoModDir(start string) string {
	dir := filepath.Clean(start)
	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}

		dir = parent
	}
}
