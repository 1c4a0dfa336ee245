// Package casefile reads line-oriented test case files.
//
// Every non-empty line not starting with '#' is a test case of the form
//
//    input ; expected ; …   # optional comment
//
// Files are located with package internal/testdata.
package casefile

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"testing"
)

// File is a test case file opened for scanning.
type File struct {
	in      *os.File
	scanner *bufio.Scanner
	line    int
	text    string
	comment string
}

// Open opens a test case file. If the file cannot be opened, an error is
// reported to t (if non-nil) and nil is returned.
func Open(filename string, t *testing.T) *File {
	f, err := os.Open(filename)
	if err != nil {
		if t != nil {
			t.Errorf("ERROR loading %s: %v", filename, err)
		} else {
			fmt.Fprintf(os.Stderr, "ERROR loading %s: %v\n", filename, err)
		}
		return nil
	}
	cf := &File{}
	cf.in = f
	cf.scanner = bufio.NewScanner(f)
	return cf
}

// Scan advances to the next test case, skipping comment lines and empty lines.
// It returns false at the end of the file or on a read error.
func (cf *File) Scan() bool {
	for cf.scanner.Scan() {
		cf.line++
		text := strings.TrimSpace(cf.scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}
		cf.text, cf.comment = text, ""
		if i := strings.Index(text, "#"); i >= 0 {
			cf.text, cf.comment = strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+1:])
		}
		return true
	}
	return false
}

// Text returns the current test case, without comment.
func (cf *File) Text() string {
	return cf.text
}

// Comment returns the comment of the current test case, if any.
func (cf *File) Comment() string {
	return cf.comment
}

// Line returns the line number of the current test case.
func (cf *File) Line() int {
	return cf.line
}

// Err returns the first read error, if any.
func (cf *File) Err() error {
	return cf.scanner.Err()
}

// Close closes the underlying file.
func (cf *File) Close() {
	cf.in.Close()
}

// Fields breaks a test case into its ';'-separated fields, trimming
// surrounding whitespace from each.
func Fields(tc string) []string {
	fields := strings.Split(tc, ";")
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
