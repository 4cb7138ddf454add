package minio

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)

	t.Run("keeps extension and date prefix", func(t *testing.T) {
		key := ObjectKey("Cover.PNG", now)
		assert.True(t, strings.HasPrefix(key, "2026/03/07/"))
		assert.True(t, strings.HasSuffix(key, ".png"))
	})

	t.Run("same name never collides", func(t *testing.T) {
		seen := make(map[string]struct{})
		for i := 0; i < 100; i++ {
			key := ObjectKey("a.jpg", now)
			_, dup := seen[key]
			assert.False(t, dup)
			seen[key] = struct{}{}
		}
	})

	t.Run("no extension", func(t *testing.T) {
		key := ObjectKey("README", now)
		assert.Len(t, strings.TrimPrefix(key, "2026/03/07/"), 36)
	})
}

func TestKeyFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		key  string
		ok   bool
	}{
		{"public url", "http://localhost:9000/blog-images/2026/03/07/abc.png", "2026/03/07/abc.png", true},
		{"query string dropped", "https://cdn.example.com/blog-images/x.jpg?v=2", "x.jpg", true},
		{"missing marker", "https://example.com/other/x.jpg", "", false},
		{"marker without key", "http://localhost:9000/blog-images/", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key, ok := KeyFromURL(tc.url, "blog-images")
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.key, key)
		})
	}
}

func TestStore_PublicURL(t *testing.T) {
	s := NewStore(nil, "blog-images", "http://localhost:9000", 16)
	url := s.PublicURL("2026/03/07/abc.png")
	assert.Equal(t, "http://localhost:9000/blog-images/2026/03/07/abc.png", url)

	key, ok := KeyFromURL(url, s.Bucket())
	assert.True(t, ok)
	assert.Equal(t, "2026/03/07/abc.png", key)
}

func TestStore_UploadRejectsBeforeNetwork(t *testing.T) {
	s := NewStore(nil, "blog-images", "http://localhost:9000", 1024)
	ctx := context.Background()

	t.Run("non image content", func(t *testing.T) {
		body := "just some text, not a picture"
		_, err := s.Upload(ctx, Upload{Name: "fake.png", Reader: strings.NewReader(body), Size: int64(len(body))})
		require.ErrorIs(t, err, ErrFileNotSupported)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := s.Upload(ctx, Upload{Name: "empty.png", Reader: strings.NewReader(""), Size: 0})
		require.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("too large", func(t *testing.T) {
		body := strings.Repeat("x", 2048)
		_, err := s.Upload(ctx, Upload{Name: "big.png", Reader: strings.NewReader(body), Size: int64(len(body))})
		require.ErrorIs(t, err, ErrFileTooLarge)
	})
}
