// SPDX-License-Identifier: GPL-3.0-or-later

// Package manifest edits declarative list-style build files (CMakeLists.txt)
// in memory while preserving all unrelated formatting byte-for-byte.
//
// The files it touches are hand-maintained, so there is no grammar here: each
// operation recognizes one known syntactic shape by regex and mutates only
// the first occurrence in document order. Callers are responsible for entry
// uniqueness by convention.
package manifest

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/grtools/modtool/internal/fsutil"
)

var filenameRe = regexp.MustCompile(`^[a-zA-Z]\w+\.\w{1,5}$`)

// Editor holds one manifest file as a mutable text buffer.
type Editor struct {
	buf        string
	separator  string
	pruneEmpty bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithSeparator sets the token separator used by AppendValue. The default is
// a single space; install-style entries use a newline plus indentation.
func WithSeparator(sep string) Option {
	return func(e *Editor) { e.separator = sep }
}

// WithPruneEmptyEntries makes RemoveValue delete an entry whose argument list
// becomes empty. The default keeps the emptied entry in place.
func WithPruneEmptyEntries() Option {
	return func(e *Editor) { e.pruneEmpty = true }
}

// New creates an Editor over raw manifest text.
func New(text string, opts ...Option) *Editor {
	e := &Editor{buf: text, separator: " "}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load creates an Editor from a manifest file. A missing file is fatal to the
// current command, so the error is returned as-is for the caller to wrap.
func Load(path string, opts ...Option) (*Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return New(string(data), opts...), nil
}

// String returns the current buffer contents.
func (e *Editor) String() string {
	return e.buf
}

// Value returns the trimmed argument text of the first entry named entry,
// with the ignore pattern excluded from the returned span. The second result
// is false when no entry matches.
func (e *Editor) Value(entry, ignore string) (string, bool) {
	re, err := regexp.Compile(regexp.QuoteMeta(entry) + `\(` + ignore + `([^()]+)\)`)
	if err != nil {
		return "", false
	}
	m := re.FindStringSubmatch(e.buf)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// AppendValue inserts value into the first entry named entry, immediately
// before the ignore suffix of its argument list, using the configured
// separator. A manifest without a matching entry is left unchanged.
func (e *Editor) AppendValue(entry, value, ignore string) {
	re, err := regexp.Compile(`(` + regexp.QuoteMeta(entry) + `\([^()]*?)\s*?(\s?` + ignore + `)\)`)
	if err != nil {
		return
	}
	loc := re.FindStringSubmatchIndex(e.buf)
	if loc == nil {
		return
	}
	head := e.buf[loc[2]:loc[3]]
	tail := e.buf[loc[4]:loc[5]]
	e.buf = e.buf[:loc[0]] + head + e.separator + value + tail + ")" + e.buf[loc[1]:]
}

// RemoveValue deletes the first standalone occurrence of value from the first
// matching entry's argument list. The entry itself stays in place even if its
// list becomes empty, unless the editor was built with WithPruneEmptyEntries.
func (e *Editor) RemoveValue(entry, value, ignore string) {
	re, err := regexp.Compile(
		`(?m)^\s*(` + regexp.QuoteMeta(entry) + `\(\s*` + ignore + `[^()]*?\s*)\b` +
			regexp.QuoteMeta(value) + `\b\s*([^()]*\))`)
	if err != nil {
		return
	}
	loc := re.FindStringSubmatchIndex(e.buf)
	if loc == nil {
		return
	}
	head := e.buf[loc[2]:loc[3]]
	tail := e.buf[loc[4]:loc[5]]
	e.buf = e.buf[:loc[2]] + head + tail + e.buf[loc[1]:]

	if e.pruneEmpty {
		emptied := regexp.MustCompile(regexp.QuoteMeta(entry) + `\s*\(\s*\)`)
		if emptied.MatchString(e.buf) {
			e.DeleteEntry(entry, "")
		}
	}
}

// DeleteEntry removes the whole first entry named entry whose argument text
// contains valuePattern, including the remainder of its final line.
func (e *Editor) DeleteEntry(entry, valuePattern string) {
	re, err := regexp.Compile(
		regexp.QuoteMeta(entry) + `\s*\([^()]*` + valuePattern + `[^()]*\)[^\n]*\n?`)
	if err != nil {
		return
	}
	loc := re.FindStringIndex(e.buf)
	if loc == nil {
		return
	}
	e.buf = e.buf[:loc[0]] + e.buf[loc[1]:]
}

// CommentOutLines prefixes every line containing pattern with the comment
// marker. A multi-line entry is only fully commented if each of its lines
// matches on its own.
func (e *Editor) CommentOutLines(pattern string) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return
	}
	lines := strings.Split(e.buf, "\n")
	for i, line := range lines {
		if re.MatchString(line) {
			lines[i] = "#" + line
		}
	}
	e.buf = strings.Join(lines, "\n")
}

// DisableFile comments out a single file token. If the token shares a line
// with other content it is first isolated onto its own line, so that
// EnableFile can restore the original layout.
func (e *Editor) DisableFile(fname string) {
	startsLine := false
	endsLine := false
	tokenRe := regexp.MustCompile(`\b` + regexp.QuoteMeta(fname) + `\b`)
	found := false
	for _, line := range strings.Split(e.buf, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if tokenRe.MatchString(line) {
			startsLine = strings.HasPrefix(trimmed, fname)
			endsLine = strings.HasSuffix(trimmed, fname)
			found = true
			break
		}
	}
	if !found {
		return
	}

	repl := "#" + fname
	if !startsLine {
		repl = "\n\t" + repl
	}
	if !endsLine {
		repl += "\n\t"
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(fname) + `\b[ \t]*`)
	for _, loc := range re.FindAllStringIndex(e.buf, -1) {
		lineStart := strings.LastIndexByte(e.buf[:loc[0]], '\n') + 1
		if strings.HasPrefix(strings.TrimSpace(e.buf[lineStart:loc[0]]), "#") {
			continue
		}
		e.buf = e.buf[:loc[0]] + repl + e.buf[loc[1]:]
		return
	}
}

// EnableFile reverts DisableFile for the given token. The split-onto-own-line
// form is rejoined with its old neighbors; a token commented out on its own
// line just loses the comment marker.
func (e *Editor) EnableFile(fname string) {
	quoted := regexp.QuoteMeta(fname)

	// DisableFile isolates shared-line tokens with a "\n\t" break on each
	// side; only that exact form is rejoined.
	inline := regexp.MustCompile(`\n\t#` + quoted + `[ \t]*\n\t`)
	if loc := inline.FindStringIndex(e.buf); loc != nil {
		e.buf = e.buf[:loc[0]] + fname + " " + e.buf[loc[1]:]
		return
	}

	ownLine := regexp.MustCompile(`(?m)^([ \t]*)#[ \t]*(` + quoted + `)`)
	if loc := ownLine.FindStringSubmatchIndex(e.buf); loc != nil {
		indent := e.buf[loc[2]:loc[3]]
		e.buf = e.buf[:loc[0]] + indent + fname + e.buf[loc[1]:]
	}
}

var blankRunRe = regexp.MustCompile(`\n\n\n+`)

// RemoveBlankRuns collapses every run of two or more blank lines into one.
func (e *Editor) RemoveBlankRuns() {
	e.buf = blankRunRe.ReplaceAllString(e.buf, "\n\n")
}

// FindFilenames returns, in line order, every filename-shaped token on a
// non-comment line that matches re.
func (e *Editor) FindFilenames(re *regexp.Regexp) []string {
	var filenames []string
	for _, line := range strings.Split(e.buf, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		for _, word := range strings.FieldsFunc(line, isTokenBoundary) {
			if filenameRe.MatchString(word) && re.MatchString(word) {
				filenames = append(filenames, word)
			}
		}
	}
	return filenames
}

func isTokenBoundary(r rune) bool {
	switch r {
	case ' ', '(', ')', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// Write persists the full buffer to path, replacing the file.
func (e *Editor) Write(path string) error {
	if err := fsutil.AtomicWrite(path, []byte(e.buf)); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
