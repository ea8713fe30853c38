// Package loader reads labeled examples from newline-delimited JSON.
package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"metaprep/internal/domain"
)

// MaxTokens is the number of tokens kept per example.
const MaxTokens = 500

// maxLineBytes bounds a single JSON line.
const maxLineBytes = 64 << 20

// LineError locates a malformed input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

type record struct {
	Label json.RawMessage `json:"label"`
	Text  json.RawMessage `json:"text"`
	Head  json.RawMessage `json:"head,omitempty"`
	Tail  json.RawMessage `json:"tail,omitempty"`
	EbdID *int            `json:"ebd_id,omitempty"`
}

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*|\p{N}+|[^\s\p{L}\p{N}]`)

// ReadFile loads every example in the file at path.
func ReadFile(path string) ([]domain.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	examples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return examples, nil
}

// Read parses one example per non-blank line. The text field is either an
// array of tokens or a string, which is split into word and punctuation
// tokens.
func Read(r io.Reader) ([]domain.Example, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	var out []domain.Example
	line := 0
	for sc.Scan() {
		line++
		raw := bytes.TrimSpace(sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		ex, err := parseLine(raw)
		if err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		out = append(out, ex)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLine(raw []byte) (domain.Example, error) {
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Example{}, err
	}
	label, err := parseLabel(rec.Label)
	if err != nil {
		return domain.Example{}, err
	}
	tokens, err := parseText(rec.Text)
	if err != nil {
		return domain.Example{}, err
	}
	sourceLen := len(tokens)
	if len(tokens) > MaxTokens {
		tokens = tokens[:MaxTokens:MaxTokens]
	}
	return domain.Example{
		Label:     label,
		Tokens:    tokens,
		SourceLen: sourceLen,
		Head:      rec.Head,
		Tail:      rec.Tail,
		EbdID:     rec.EbdID,
	}, nil
}

func parseLabel(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing label")
	}
	if isNull(raw) {
		return 0, fmt.Errorf("label is null")
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("label %s is not an integer", raw)
}

func parseText(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing text")
	}
	if isNull(raw) {
		return nil, fmt.Errorf("text is null")
	}
	var tokens []string
	if err := json.Unmarshal(raw, &tokens); err == nil {
		return tokens, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("text must be a token array or a string")
	}
	return Tokenize(s), nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// Tokenize splits free text into word, number and punctuation tokens.
func Tokenize(s string) []string {
	return wordRe.FindAllString(s, -1)
}
