package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidLine marks manifest lines that do not match the `<hash> (<path>)` grammar.
var ErrInvalidLine = errors.New("invalid manifest line")

// Record is one parsed manifest entry.
type Record struct {
	Hash string
	// Path is relative to the source root, slash separated as written upstream.
	Path string
	// Line is the 1-based manifest line the record came from.
	Line int
}

// Name returns the last path component.
func (r Record) Name() string {
	return path.Base(r.Path)
}

// ParentName returns the name of the immediate parent directory, or "" when
// the path has no directory component.
func (r Record) ParentName() string {
	dir := path.Dir(r.Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return path.Base(dir)
}

// ParseError reports the manifest line that failed to parse.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid input line %d: %q", e.Line, e.Text)
}

func (e *ParseError) Unwrap() error { return ErrInvalidLine }

// ParseLine tokenizes a single manifest line. lineNum is 1-based and is only
// used for error reporting and the returned record.
func ParseLine(line string, lineNum int) (Record, error) {
	text := strings.TrimSuffix(line, "\n")
	text = strings.TrimSuffix(text, "\r")

	hashEnd := 0
	for hashEnd < len(text) {
		r, size := utf8.DecodeRuneInString(text[hashEnd:])
		if !isWordRune(r) {
			break
		}
		hashEnd += size
	}
	if hashEnd == 0 {
		return Record{}, &ParseError{Line: lineNum, Text: text}
	}

	rest := text[hashEnd:]
	if !strings.HasPrefix(rest, " (") || !strings.HasSuffix(rest, ")") || len(rest) < len(" ()") {
		return Record{}, &ParseError{Line: lineNum, Text: text}
	}

	return Record{
		Hash: text[:hashEnd],
		Path: rest[len(" (") : len(rest)-1],
		Line: lineNum,
	}, nil
}

func isWordRune(r rune) bool {
	if r == utf8.RuneError {
		return false
	}
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
