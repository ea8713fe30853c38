package pool

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePool(t *testing.T) *Pool {
	t.Helper()
	text := NewMatrix(3, 2, 0)
	copy(text.Row(0), []int32{2, 3})
	copy(text.Row(1), []int32{4, 0})
	copy(text.Row(2), []int32{5, 6})
	p, err := Assemble(Parts{
		Name:      "train",
		Text:      text,
		TextLen:   []int{2, 1, 2},
		Label:     []int{7, 8, 9},
		Raw:       [][]string{{"a", "b"}, {"c"}, {"d", "e", "f"}},
		VocabSize: 10,
	})
	require.NoError(t, err)
	return p
}

func TestNewMatrix(t *testing.T) {
	m := NewMatrix(2, 3, 1)
	assert.Equal(t, []int32{1, 1, 1, 1, 1, 1}, m.Data)
	m.Row(1)[2] = 9
	assert.Equal(t, int32(9), m.At(1, 2))
	assert.Len(t, m.Row(0), 3)
	assert.Equal(t, 3, cap(m.Row(0)))
}

func TestAssemble_ShapeErrors(t *testing.T) {
	text := NewMatrix(2, 2, 0)
	tests := []struct {
		name  string
		parts Parts
	}{
		{"short text_len", Parts{Text: text, TextLen: []int{1}, Label: []int{0, 0}, Raw: make([][]string, 2)}},
		{"short label", Parts{Text: text, TextLen: []int{1, 1}, Label: []int{0}, Raw: make([][]string, 2)}},
		{"short raw", Parts{Text: text, TextLen: []int{1, 1}, Label: []int{0, 0}, Raw: make([][]string, 1)}},
		{"length over width", Parts{Text: text, TextLen: []int{1, 3}, Label: []int{0, 0}, Raw: make([][]string, 2)}},
		{"bad data", Parts{Text: Matrix{Rows: 2, Cols: 2, Data: make([]int32, 3)}, TextLen: []int{1, 1}, Label: []int{0, 0}, Raw: make([][]string, 2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.parts.Name = "val"
			_, err := Assemble(tt.parts)
			var shape *ShapeError
			require.True(t, errors.As(err, &shape))
			assert.Equal(t, "val", shape.Pool)
		})
	}
}

func TestPool_Select(t *testing.T) {
	p := samplePool(t)
	sel := p.Select("picked", []int{2, 0})

	assert.Equal(t, "picked", sel.Name)
	assert.Equal(t, 2, sel.Len())
	assert.Equal(t, 2, sel.MaxLen())
	assert.Equal(t, []int32{5, 6, 2, 3}, sel.Text.Data)
	assert.Equal(t, []int{2, 2}, sel.TextLen)
	assert.Equal(t, []int{9, 7}, sel.Label)
	assert.Equal(t, [][]string{{"d", "e", "f"}, {"a", "b"}}, sel.Raw)
	assert.Equal(t, 10, sel.VocabSize)

	sel.Text.Data[0] = 99
	sel.Label[0] = 99
	assert.Equal(t, int32(2), p.Text.At(0, 0))
	assert.Equal(t, []int{7, 8, 9}, p.Label)
}

func TestPool_Tagged(t *testing.T) {
	p := samplePool(t)
	tagged := p.Tagged(true)
	assert.True(t, tagged.IsTrain)
	assert.False(t, p.IsTrain)
}
