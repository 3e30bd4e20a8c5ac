// Package principles reads bulk principle definitions from a plain-text file.
//
// A line of the form
//
//	# Architecture (a)
//
// starts a principle with short name "a" and long name "Architecture". The
// lines up to the next such header become its guidance.
package principles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var headerRe = regexp.MustCompile(`^# (.*) \(([a-z])\)$`)

// Section is one principle read from the file.
type Section struct {
	ShortName string
	LongName  string
	Guidance  string
	Line      int // 1-based line of the header
}

// Parse reads sections in file order. Lines before the first header are
// ignored.
func Parse(r io.Reader) ([]Section, error) {
	var (
		sections []Section
		current  *Section
		content  strings.Builder
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Guidance = strings.TrimRight(content.String(), "\n")
		sections = append(sections, *current)
		current = nil
		content.Reset()
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			current = &Section{ShortName: m[2], LongName: m[1], Line: lineNo}
			continue
		}
		if current == nil {
			continue
		}
		if content.Len() > 0 {
			content.WriteByte('\n')
		}
		content.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read principles: %w", err)
	}
	flush()
	return sections, nil
}

// ParseFile opens path and parses it.
func ParseFile(path string) ([]Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
