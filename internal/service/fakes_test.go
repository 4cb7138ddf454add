package service

import (
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/minio"
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// fakeRepo 内存中的 ContentRepo
type fakeRepo[T any, PT model.Content[T]] struct {
	rows      []PT
	inserts   int
	deletes   int
	clock     time.Time
	listErr   error
	insertErr error
	deleteErr error
}

func newFakeRepo[T any, PT model.Content[T]]() *fakeRepo[T, PT] {
	return &fakeRepo[T, PT]{clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeRepo[T, PT]) sorted(keep func(PT) bool) []PT {
	out := make([]PT, 0)
	for _, row := range r.rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Meta().CreatedAt.After(out[j].Meta().CreatedAt)
	})
	return out
}

func (r *fakeRepo[T, PT]) ListPublished(context.Context) ([]PT, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(func(p PT) bool { return p.Meta().IsPublished }), nil
}

func (r *fakeRepo[T, PT]) ListByAuthor(_ context.Context, authorID string) ([]PT, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(func(p PT) bool { return p.Meta().AuthorID == authorID }), nil
}

func (r *fakeRepo[T, PT]) GetPublishedByID(_ context.Context, id string) (PT, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	for _, row := range r.rows {
		if row.Meta().ID == id && row.Meta().IsPublished {
			return row, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo[T, PT]) Insert(_ context.Context, item PT) error {
	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	r.clock = r.clock.Add(time.Second)
	item.Meta().ID = uuid.NewString()
	item.Meta().CreatedAt = r.clock
	r.rows = append(r.rows, item)
	return nil
}

func (r *fakeRepo[T, PT]) DeleteByID(_ context.Context, id string) error {
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, row := range r.rows {
		if row.Meta().ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRepo[T, PT]) ListAssetURLs(context.Context) ([]string, error) {
	var urls []string
	for _, row := range r.rows {
		urls = append(urls, row.AssetURLs()...)
	}
	return urls, nil
}

// seed 直接写入一行，用于构造已有数据
func (r *fakeRepo[T, PT]) seed(fill model.Fields, publishedFlag bool) PT {
	item := PT(new(T))
	item.Fill(fill)
	item.Meta().IsPublished = publishedFlag
	_ = r.Insert(context.Background(), item)
	r.inserts--
	return item
}

// fakeStore 内存中的 AssetStore，文件名以 fail 开头的上传会失败
type fakeStore struct {
	uploads   []string
	removed   []string
	uploadErr error
	removeErr error
}

func (s *fakeStore) Upload(_ context.Context, file minio.Upload) (string, error) {
	if strings.HasPrefix(file.Name, "fail") {
		if s.uploadErr != nil {
			return "", s.uploadErr
		}
		return "", errors.New("The object exceeded the maximum allowed size")
	}
	url := "http://localhost:9000/blog-images/2026/01/01/" + file.Name
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeStore) Remove(_ context.Context, url string) error {
	s.removed = append(s.removed, url)
	return s.removeErr
}

func image(name string) minio.Upload {
	return minio.Upload{Name: name, Reader: strings.NewReader("\x89PNG\r\n\x1a\n"), Size: 8}
}

func imagePtr(name string) *minio.Upload {
	u := image(name)
	return &u
}

var testSession = &Session{Token: "t", UserID: "author-1", Email: "admin@example.com"}
