// Package pool defines the encoded dataset record handed to training code.
package pool

import "fmt"

// Matrix is a dense row-major int32 matrix.
type Matrix struct {
	Rows int
	Cols int
	Data []int32
}

// NewMatrix allocates a rows x cols matrix with every cell set to fill.
func NewMatrix(rows, cols int, fill int32) Matrix {
	data := make([]int32, rows*cols)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}
}

// Row returns a view of row i. Writes through the view modify the matrix.
func (m Matrix) Row(i int) []int32 {
	return m.Data[i*m.Cols : (i+1)*m.Cols : (i+1)*m.Cols]
}

// At returns the cell at row i, column j.
func (m Matrix) At(i, j int) int32 {
	return m.Data[i*m.Cols+j]
}

// Pool is an encoded split: parallel per-row arrays plus pool-level
// metadata. Pools are read-only once assembled; every operation that
// reshapes a pool returns a new one.
type Pool struct {
	Name      string
	Text      Matrix
	TextLen   []int
	Label     []int
	Raw       [][]string
	VocabSize int
	IsTrain   bool
}

// Parts are the inputs to Assemble.
type Parts struct {
	Name      string
	Text      Matrix
	TextLen   []int
	Label     []int
	Raw       [][]string
	VocabSize int
	IsTrain   bool
}

// ShapeError reports per-row arrays that disagree with the text matrix.
type ShapeError struct {
	Pool   string
	Field  string
	Want   int
	Got    int
	Detail string
}

func (e *ShapeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("pool %s: %s: %s", e.Pool, e.Field, e.Detail)
	}
	return fmt.Sprintf("pool %s: %s has %d rows, want %d", e.Pool, e.Field, e.Got, e.Want)
}

// Assemble validates parts and packages them into a Pool. The slices are
// taken over, not copied.
func Assemble(p Parts) (*Pool, error) {
	if len(p.Text.Data) != p.Text.Rows*p.Text.Cols {
		return nil, &ShapeError{Pool: p.Name, Field: "text", Detail: fmt.Sprintf("%d cells for %dx%d", len(p.Text.Data), p.Text.Rows, p.Text.Cols)}
	}
	n := p.Text.Rows
	if len(p.TextLen) != n {
		return nil, &ShapeError{Pool: p.Name, Field: "text_len", Want: n, Got: len(p.TextLen)}
	}
	if len(p.Label) != n {
		return nil, &ShapeError{Pool: p.Name, Field: "label", Want: n, Got: len(p.Label)}
	}
	if len(p.Raw) != n {
		return nil, &ShapeError{Pool: p.Name, Field: "raw", Want: n, Got: len(p.Raw)}
	}
	for i, l := range p.TextLen {
		if l < 0 || l > p.Text.Cols {
			return nil, &ShapeError{Pool: p.Name, Field: "text_len", Detail: fmt.Sprintf("row %d length %d outside [0, %d]", i, l, p.Text.Cols)}
		}
	}
	return &Pool{
		Name:      p.Name,
		Text:      p.Text,
		TextLen:   p.TextLen,
		Label:     p.Label,
		Raw:       p.Raw,
		VocabSize: p.VocabSize,
		IsTrain:   p.IsTrain,
	}, nil
}

// Len is the number of rows.
func (p *Pool) Len() int { return p.Text.Rows }

// MaxLen is the encoded row width.
func (p *Pool) MaxLen() int { return p.Text.Cols }

// Select gathers rows into a new pool named name, in the given order. Row
// data is copied; raw token slices are shared since they are never written.
func (p *Pool) Select(name string, rows []int) *Pool {
	text := NewMatrix(len(rows), p.Text.Cols, 0)
	textLen := make([]int, len(rows))
	label := make([]int, len(rows))
	raw := make([][]string, len(rows))
	for dst, src := range rows {
		copy(text.Row(dst), p.Text.Row(src))
		textLen[dst] = p.TextLen[src]
		label[dst] = p.Label[src]
		raw[dst] = p.Raw[src]
	}
	return &Pool{
		Name:      name,
		Text:      text,
		TextLen:   textLen,
		Label:     label,
		Raw:       raw,
		VocabSize: p.VocabSize,
		IsTrain:   p.IsTrain,
	}
}

// Tagged returns a shallow copy of p with IsTrain set.
func (p *Pool) Tagged(isTrain bool) *Pool {
	cp := *p
	cp.IsTrain = isTrain
	return &cp
}
