package job

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBucket struct {
	keys []string
	err  error
}

func (b *fakeBucket) List(context.Context) ([]string, error) { return b.keys, b.err }
func (b *fakeBucket) Bucket() string                         { return "blog-images" }

type fakeReferrer []string

func (r fakeReferrer) ListAssetURLs(context.Context) ([]string, error) { return r, nil }

func TestOrphanAssetJob_Audit(t *testing.T) {
	bucket := &fakeBucket{keys: []string{"2026/01/02/c.png", "2026/01/01/a.png", "2026/01/01/b.png"}}
	posts := fakeReferrer{"http://localhost:9000/blog-images/2026/01/01/a.png"}
	projects := fakeReferrer{"https://elsewhere.example.com/logo.png", "http://localhost:9000/blog-images/2026/01/01/b.png?v=1"}

	orphans, err := NewOrphanAssetJob(bucket, posts, projects).Audit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2026/01/02/c.png"}, orphans)
}

func TestOrphanAssetJob_ListFailure(t *testing.T) {
	bucket := &fakeBucket{err: errors.New("minio down")}

	_, err := NewOrphanAssetJob(bucket).Audit(context.Background())
	assert.EqualError(t, err, "minio down")
}
