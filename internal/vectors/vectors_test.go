package vectors

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reserved = VocabOptions{PadToken: "<pad>", UnkToken: "unk"}

func TestReadVocab_GloVe(t *testing.T) {
	input := "the 0.1 0.2\ncat -0.3 0.4\nunk 0 0\nthe 9 9\n"
	stoi, err := ReadVocab(strings.NewReader(input), reserved)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"<pad>": 0, "the": 1, "cat": 2, "unk": 3}, stoi)
}

func TestReadVocab_FastTextHeader(t *testing.T) {
	input := "3 2\n, 0.1 0.2\nof 0.3 0.4\nand 0.5 0.6"
	stoi, err := ReadVocab(strings.NewReader(input), reserved)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"<pad>": 0, "unk": 1, ",": 2, "of": 3, "and": 4}, stoi)
	assert.NotContains(t, stoi, "3")
}

func TestReadVocab_LongLines(t *testing.T) {
	long := strings.Repeat(" 0.123456", 300000)
	input := "alpha" + long + "\n\nbeta" + long + "\n"
	stoi, err := ReadVocab(strings.NewReader(input), reserved)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"<pad>": 0, "unk": 1, "alpha": 2, "beta": 3}, stoi)
}

func TestReadVocab_RequiresReserved(t *testing.T) {
	_, err := ReadVocab(strings.NewReader("a 1\n"), VocabOptions{PadToken: "<pad>"})
	assert.Error(t, err)
}

func TestReadVocabFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glove.txt")
	require.NoError(t, os.WriteFile(path, []byte("a 1\r\nb 2\r\n"), 0o644))
	stoi, err := ReadVocabFile(path, reserved)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"<pad>": 0, "unk": 1, "a": 2, "b": 3}, stoi)
}

func TestFetch_SkipsExisting(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "wiki.en.vec")
	require.NoError(t, os.WriteFile(path, []byte("x 1\n"), 0o644))

	downloaded, err := Fetch(context.Background(), FetchConfig{URL: srv.URL, Path: path})
	require.NoError(t, err)
	assert.False(t, downloaded)
	assert.Zero(t, hits.Load())
}

func TestFetch_RetriesTransient(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("hello 0.1\n"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sub", "wiki.en.vec")
	downloaded, err := Fetch(context.Background(), FetchConfig{URL: srv.URL, Path: path, MaxRetries: 2})
	require.NoError(t, err)
	assert.True(t, downloaded)
	assert.Equal(t, int32(2), hits.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello 0.1\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFetch_PermanentFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "wiki.en.vec")
	_, err := Fetch(context.Background(), FetchConfig{URL: srv.URL, Path: path, MaxRetries: 3})
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Status, "404")
	assert.Equal(t, int32(1), hits.Load())
	assert.NoFileExists(t, path)
}

func TestFetch_NoURL(t *testing.T) {
	_, err := Fetch(context.Background(), FetchConfig{Path: filepath.Join(t.TempDir(), "v.txt")})
	assert.Error(t, err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := Fetch(ctx, FetchConfig{URL: srv.URL, Path: filepath.Join(t.TempDir(), "v.txt"), MaxRetries: 5})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 200*time.Millisecond, retryDelay(0))
	assert.Equal(t, 400*time.Millisecond, retryDelay(1))
	assert.Equal(t, 5*time.Second, retryDelay(10))
	assert.Equal(t, 5*time.Second, retryDelay(100))
}
