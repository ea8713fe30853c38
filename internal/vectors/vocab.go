// Package vectors reads the token table of a pretrained word-vector file
// and fetches the file when it is not present locally.
//
// Only the token column is consumed; vector values are skipped.
package vectors

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// VocabOptions names the reserved tokens of the resulting table.
type VocabOptions struct {
	PadToken string
	UnkToken string
}

// ReadVocab builds a token to id table from a GloVe or fastText text file.
// Ids follow file order. Reserved tokens missing from the file are inserted
// first, pad before unk, so they take the lowest ids. A fastText header
// line ("<count> <dim>") is skipped. Duplicate tokens keep their first id.
func ReadVocab(r io.Reader, opts VocabOptions) (map[string]int, error) {
	if opts.PadToken == "" || opts.UnkToken == "" {
		return nil, errors.New("pad and unk tokens are required")
	}

	var tokens []string
	br := bufio.NewReaderSize(r, 1<<20)
	lineNo := 0
	for {
		line, err := br.ReadSlice('\n')
		if len(line) > 0 || err == nil {
			lineNo++
			tok, ok := firstField(line)
			if ok && !(lineNo == 1 && isHeader(line)) {
				tokens = append(tokens, tok)
			}
		}
		if err == bufio.ErrBufferFull {
			// Long vector line: the token is already taken, drain the rest.
			if err = skipLine(br); err == nil {
				continue
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read vectors line %d: %w", lineNo, err)
		}
	}

	stoi := make(map[string]int, len(tokens)+2)
	present := make(map[string]bool, 2)
	for _, t := range tokens {
		if t == opts.PadToken || t == opts.UnkToken {
			present[t] = true
		}
	}
	for _, reserved := range []string{opts.PadToken, opts.UnkToken} {
		if !present[reserved] {
			if _, ok := stoi[reserved]; !ok {
				stoi[reserved] = len(stoi)
			}
		}
	}
	for _, t := range tokens {
		if _, ok := stoi[t]; !ok {
			stoi[t] = len(stoi)
		}
	}
	return stoi, nil
}

// ReadVocabFile is ReadVocab over the file at path.
func ReadVocabFile(path string, opts VocabOptions) (map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stoi, err := ReadVocab(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return stoi, nil
}

func firstField(line []byte) (string, bool) {
	line = bytes.TrimRight(line, "\r\n")
	end := bytes.IndexByte(line, ' ')
	if end < 0 {
		end = len(line)
	}
	if end == 0 {
		return "", false
	}
	return string(line[:end]), true
}

// isHeader reports a line made of exactly two integers.
func isHeader(line []byte) bool {
	fields := bytes.Fields(line)
	if len(fields) != 2 {
		return false
	}
	for _, f := range fields {
		if _, err := strconv.Atoi(string(f)); err != nil {
			return false
		}
	}
	return true
}

func skipLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if err != bufio.ErrBufferFull {
			return err
		}
	}
}
