// SPDX-License-Identifier: GPL-3.0-or-later

// Package fsutil holds small file helpers shared by the modtool commands.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// AtomicWrite writes content to path atomically by writing to a temp file and renaming it.
func AtomicWrite(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	tmpFile, err := os.CreateTemp(dir, "modtool-tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing content: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), path); err != nil {
		return fmt.Errorf("moving temp file to %s: %w", path, err)
	}

	return nil
}

// AppendAfterLastMatch pastes newline after the last occurrence of linePattern
// in the file. If the pattern never matches, the line is appended to the end
// of the file instead.
func AppendAfterLastMatch(path, linePattern, newline string) error {
	re, err := regexp.Compile("(?m)" + linePattern)
	if err != nil {
		return fmt.Errorf("compiling line pattern: %w", err)
	}

	old, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	locs := re.FindAllIndex(old, -1)
	if len(locs) == 0 {
		return AtomicWrite(path, append(old, []byte(newline+"\n")...))
	}

	end := locs[len(locs)-1][1]
	updated := make([]byte, 0, len(old)+len(newline)+1)
	updated = append(updated, old[:end]...)
	updated = append(updated, []byte(newline+"\n")...)
	updated = append(updated, old[end:]...)
	return AtomicWrite(path, updated)
}

// RemovePattern deletes all occurrences of pattern from the file.
func RemovePattern(path, pattern string) error {
	re, err := regexp.Compile("(?m)" + pattern)
	if err != nil {
		return fmt.Errorf("compiling pattern: %w", err)
	}

	old, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return AtomicWrite(path, re.ReplaceAll(old, nil))
}

// AppendToFile appends content to the file, creating it if necessary.
func AppendToFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("appending to %s: %w", path, err)
	}
	return nil
}

// CopyTree recursively copies the directory src to dst. dst must not exist.
func CopyTree(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("reading source %s: %w", src, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source %s is not a directory", src)
	}
	if _, err := os.Stat(dst); err == nil {
		return fmt.Errorf("target %s already exists", dst)
	}

	return filepath.Walk(src, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if fi.IsDir() {
			return os.MkdirAll(target, fi.Mode())
		}
		return copyFile(path, target, fi.Mode())
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
