package service

import (
	"Portfolio/internal/model"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// leakyRepo 模拟一个未按 is_published 过滤的仓库
type leakyRepo struct {
	*fakeRepo[model.Post, *model.Post]
}

func (r leakyRepo) ListPublished(ctx context.Context) ([]*model.Post, error) {
	return r.ListByAuthor(ctx, testSession.UserID)
}

func TestViewService_PostsOnlyPublished(t *testing.T) {
	repo := newFakeRepo[model.Post, *model.Post]()
	for i, published := range []bool{true, false, true, false, false} {
		repo.seed(model.Fields{Title: string(rune('a' + i)), Body: "body", AuthorID: testSession.UserID}, published)
	}
	projects := newFakeRepo[model.Project, *model.Project]()

	tests := []struct {
		name string
		svc  ViewService
	}{
		{"filtered", NewViewService(repo, projects)},
		{"leaky", NewViewService(leakyRepo{repo}, projects)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := tt.svc.Posts(context.Background())
			assert.Equal(t, ViewReady, view.Status)
			require.Len(t, view.Items, 2)
			assert.Equal(t, "c", view.Items[0].Post.Title)
			assert.Equal(t, "a", view.Items[1].Post.Title)
			for _, item := range view.Items {
				assert.True(t, item.Post.IsPublished)
			}
		})
	}
}

func TestViewService_EmptyAndFailed(t *testing.T) {
	posts := newFakeRepo[model.Post, *model.Post]()
	projects := newFakeRepo[model.Project, *model.Project]()
	svc := NewViewService(posts, projects)

	pv := svc.Posts(context.Background())
	assert.Equal(t, ViewEmpty, pv.Status)
	assert.Equal(t, "No published blog posts yet.", pv.Message)

	jv := svc.Projects(context.Background())
	assert.Equal(t, ViewEmpty, jv.Status)
	assert.Equal(t, "No published projects yet. Check back soon!", jv.Message)

	posts.listErr = errors.New("boom")
	projects.listErr = errors.New("boom")
	assert.Equal(t, "Failed to load blog posts.", svc.Posts(context.Background()).Message)
	assert.Equal(t, "Failed to load projects.", svc.Projects(context.Background()).Message)
	assert.Equal(t, "Failed to load post.", svc.Post(context.Background(), "x").Message)
}

func TestViewService_PostDetail(t *testing.T) {
	repo := newFakeRepo[model.Post, *model.Post]()
	live := repo.seed(model.Fields{Title: "Live", Body: "# Heading\n\nSome **bold** text.", AuthorID: "a"}, true)
	draft := repo.seed(model.Fields{Title: "Hidden", Body: "secret", AuthorID: "a"}, false)
	svc := NewViewService(repo, newFakeRepo[model.Project, *model.Project]())

	view := svc.Post(context.Background(), live.ID)
	require.Equal(t, ViewReady, view.Status)
	assert.Contains(t, string(view.Post.HTML), "<h1>Heading</h1>")
	assert.Contains(t, string(view.Post.HTML), "<strong>bold</strong>")
	assert.Equal(t, "Heading Some bold text.", view.Post.Excerpt)

	for _, id := range []string{draft.ID, "missing"} {
		v := svc.Post(context.Background(), id)
		assert.Equal(t, ViewEmpty, v.Status)
		assert.Equal(t, "Post not found or not published.", v.Message)
		assert.Nil(t, v.Post)
	}

	assert.Equal(t, "Post ID is missing.", svc.Post(context.Background(), "").Message)
}

func TestViewService_ExcerptTruncated(t *testing.T) {
	repo := newFakeRepo[model.Post, *model.Post]()
	repo.seed(model.Fields{Title: "Long", Body: strings.Repeat("word ", 100), AuthorID: "a"}, true)
	svc := NewViewService(repo, newFakeRepo[model.Project, *model.Project]())

	view := svc.Posts(context.Background())
	require.Len(t, view.Items, 1)
	assert.True(t, strings.HasSuffix(view.Items[0].Excerpt, "..."))
	assert.LessOrEqual(t, len([]rune(view.Items[0].Excerpt)), ExcerptLength+3)
}

func TestViewService_NeverReturnsLoading(t *testing.T) {
	posts := newFakeRepo[model.Post, *model.Post]()
	svc := NewViewService(posts, newFakeRepo[model.Project, *model.Project]())

	assert.NotEqual(t, ViewLoading, svc.Posts(context.Background()).Status)
	assert.NotEqual(t, ViewLoading, svc.Projects(context.Background()).Status)
	assert.NotEqual(t, ViewLoading, svc.Post(context.Background(), "missing").Status)
}
