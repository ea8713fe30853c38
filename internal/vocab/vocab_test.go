package vocab

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metaprep/internal/domain"
)

func TestNew_Lookup(t *testing.T) {
	v, err := New(map[string]int{"<pad>": 0, "<unk>": 1, "a": 2, "b": 3}, DefaultPad, DefaultUnk)
	require.NoError(t, err)

	assert.Equal(t, int32(0), v.PadID())
	assert.Equal(t, int32(1), v.UnkID())
	assert.Equal(t, 4, v.Size())
	assert.Equal(t, int32(2), v.Lookup("a"))
	assert.Equal(t, int32(3), v.Lookup("b"))
	assert.Equal(t, int32(1), v.Lookup("c"))
	assert.Equal(t, []int32{2, 1, 3}, v.LookupAll([]string{"a", "zzz", "b"}))
	assert.True(t, v.Contains("a"))
	assert.False(t, v.Contains("c"))

	tok, ok := v.Token(3)
	assert.True(t, ok)
	assert.Equal(t, "b", tok)
	_, ok = v.Token(4)
	assert.False(t, ok)
}

func TestNew_CopiesInput(t *testing.T) {
	stoi := map[string]int{"<pad>": 0, "<unk>": 1, "a": 2}
	v, err := New(stoi, DefaultPad, DefaultUnk)
	require.NoError(t, err)
	stoi["a"] = 1
	assert.Equal(t, int32(2), v.Lookup("a"))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stoi     map[string]int
		reserved bool
	}{
		{"missing pad", map[string]int{"<unk>": 0, "a": 1}, true},
		{"missing unk", map[string]int{"<pad>": 0, "a": 1}, true},
		{"shared id", map[string]int{"<pad>": 0, "<unk>": 0}, true},
		{"sparse ids", map[string]int{"<pad>": 0, "<unk>": 1, "a": 5}, false},
		{"negative id", map[string]int{"<pad>": 0, "<unk>": 1, "a": -1}, false},
		{"duplicate id", map[string]int{"<pad>": 0, "<unk>": 1, "a": 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.stoi, DefaultPad, DefaultUnk)
			require.Error(t, err)
			var missing *MissingReservedTokenError
			var idErr *IDError
			assert.Equal(t, tt.reserved, errors.As(err, &missing))
			assert.Equal(t, !tt.reserved, errors.As(err, &idErr))
		})
	}
}

func TestNew_IDErrorDetail(t *testing.T) {
	_, err := New(map[string]int{"<pad>": 0, "<unk>": 1, "a": 5}, DefaultPad, DefaultUnk)
	var idErr *IDError
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "a", idErr.Token)
	assert.Equal(t, 5, idErr.ID)
	assert.Contains(t, err.Error(), "[0, 3)")
}

func TestVocab_ConcurrentReads(t *testing.T) {
	v, err := New(map[string]int{"<pad>": 0, "<unk>": 1, "a": 2}, DefaultPad, DefaultUnk)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = v.Lookup("a")
				_ = v.Lookup("missing")
			}
		}()
	}
	wg.Wait()
}

func TestBuild(t *testing.T) {
	examples := []domain.Example{
		{Label: 0, Tokens: []string{"b", "a", "a", "c"}},
		{Label: 1, Tokens: []string{"b", "a", "d"}},
	}

	t.Run("frequency order", func(t *testing.T) {
		v, err := Build(examples, BuildOptions{})
		require.NoError(t, err)
		assert.Equal(t, 6, v.Size())
		assert.Equal(t, int32(2), v.Lookup("a"))
		assert.Equal(t, int32(3), v.Lookup("b"))
		assert.Equal(t, int32(4), v.Lookup("c"))
		assert.Equal(t, int32(5), v.Lookup("d"))
	})

	t.Run("min freq prunes", func(t *testing.T) {
		v, err := Build(examples, BuildOptions{MinFreq: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, v.Size())
		assert.Equal(t, v.UnkID(), v.Lookup("c"))
	})

	t.Run("custom specials", func(t *testing.T) {
		v, err := Build(examples, BuildOptions{Specials: []string{"PAD", "UNK", "a"}})
		require.NoError(t, err)
		assert.Equal(t, int32(0), v.PadID())
		assert.Equal(t, int32(1), v.UnkID())
		assert.Equal(t, int32(2), v.Lookup("a"))
		assert.Equal(t, int32(3), v.Lookup("b"))
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := Build(examples, BuildOptions{})
		require.NoError(t, err)
		b, err := Build(examples, BuildOptions{})
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("single special", func(t *testing.T) {
		_, err := Build(examples, BuildOptions{Specials: []string{"PAD"}})
		assert.Error(t, err)
	})
}
