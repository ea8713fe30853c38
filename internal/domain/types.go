package domain

import "encoding/json"

// Example is a single labeled text sample as produced by the loader.
// Tokens are already truncated to the loader's limit.
type Example struct {
	Label  int
	Tokens []string
	// SourceLen is the token count before truncation. Zero means
	// len(Tokens).
	SourceLen int
	// Relation metadata, only present for relation-classification corpora.
	Head  json.RawMessage
	Tail  json.RawMessage
	EbdID *int
}

// ClassSplit holds the class ids routed to each meta split. The three sets
// may overlap or leave gaps; callers that need a strict partition validate it.
type ClassSplit struct {
	Train []int
	Val   []int
	Test  []int
}

// Vocabulary maps tokens to dense integer ids with reserved pad and unk ids.
// Implementations must be safe for concurrent reads.
type Vocabulary interface {
	Lookup(token string) int32
	PadID() int32
	UnkID() int32
	Size() int
}

// Splitter routes examples into meta-train, meta-val and meta-test pools.
type Splitter interface {
	Split(examples []Example) (train, val, test []Example)
}
