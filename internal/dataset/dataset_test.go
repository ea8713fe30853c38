package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, n := range Names {
		got, err := Parse(string(n))
		require.NoError(t, err)
		assert.Equal(t, n, got)
	}

	_, err := Parse("imdb")
	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "imdb", unsupported.Name)
	assert.Contains(t, err.Error(), "20newsgroup")
}

func TestClasses_Newsgroup(t *testing.T) {
	cs, err := Classes(Newsgroup20)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 5, 10, 11, 13, 14, 16, 18}, cs.Train)
	assert.Equal(t, []int{4, 6, 7, 12, 17}, cs.Val)
	assert.Equal(t, []int{0, 2, 3, 8, 9, 15, 19}, cs.Test)
}

func TestClasses_Sizes(t *testing.T) {
	tests := []struct {
		name             Name
		train, val, test int
	}{
		{Amazon, 10, 5, 9},
		{FewRel, 65, 5, 10},
		{HuffPost, 20, 5, 16},
		{Reuters, 15, 5, 11},
		{RCV1, 37, 10, 24},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			cs, err := Classes(tt.name)
			require.NoError(t, err)
			assert.Len(t, cs.Train, tt.train)
			assert.Len(t, cs.Val, tt.val)
			assert.Len(t, cs.Test, tt.test)
		})
	}
}

func TestClasses_ReturnsCopies(t *testing.T) {
	cs, err := Classes(Amazon)
	require.NoError(t, err)
	cs.Train[0] = 999

	again, err := Classes(Amazon)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Train[0])
}

func TestClasses_Unsupported(t *testing.T) {
	_, err := Classes(Name("nope"))
	var unsupported *UnsupportedError
	assert.True(t, errors.As(err, &unsupported))
}

func TestMaxLen(t *testing.T) {
	assert.Equal(t, 500, MaxLen(Newsgroup20))
	assert.Equal(t, 38, MaxLen(FewRel))
	for _, n := range []Name{Amazon, HuffPost, Reuters, RCV1} {
		assert.Equal(t, 44, MaxLen(n), n)
	}
}
