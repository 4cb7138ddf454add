package service

import (
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/repository"
	"context"
	"html/template"
	log "log/slog"
)

// ViewStatus 公开页面的展示状态
type ViewStatus string

// 服务端渲染在取数结束后才输出，返回的视图不会是 ViewLoading；
// ViewLoading 留给 JSON 客户端在请求返回前展示
const (
	ViewLoading ViewStatus = "Loading"
	ViewFailed  ViewStatus = "Failed"
	ViewEmpty   ViewStatus = "Empty"
	ViewReady   ViewStatus = "Ready"
)

const (
	ExcerptLength = 200

	MsgNoPosts        = "No published blog posts yet."
	MsgNoProjects     = "No published projects yet. Check back soon!"
	MsgPostsFailed    = "Failed to load blog posts."
	MsgProjectsFailed = "Failed to load projects."
	MsgPostFailed     = "Failed to load post."
	MsgPostMissingID  = "Post ID is missing."
)

// PostView 渲染后的帖子
type PostView struct {
	Post    *model.Post
	HTML    template.HTML
	Excerpt string
}

type PostListView struct {
	Status  ViewStatus
	Message string
	Items   []*PostView
}

type ProjectListView struct {
	Status  ViewStatus
	Message string
	Items   []*model.Project
}

type PostDetailView struct {
	Status  ViewStatus
	Message string
	Post    *PostView
}

// ViewService 只读取已发布内容，与会话无关
type ViewService interface {
	Posts(ctx context.Context) *PostListView
	Projects(ctx context.Context) *ProjectListView
	Post(ctx context.Context, id string) *PostDetailView
}

type ViewServiceImpl struct {
	posts    repository.ContentRepo[model.Post, *model.Post]
	projects repository.ContentRepo[model.Project, *model.Project]
}

func NewViewService(posts repository.ContentRepo[model.Post, *model.Post], projects repository.ContentRepo[model.Project, *model.Project]) ViewService {
	return &ViewServiceImpl{posts: posts, projects: projects}
}

func (s *ViewServiceImpl) Posts(ctx context.Context) *PostListView {
	items, err := s.posts.ListPublished(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list published posts failed", "err", err)
		return &PostListView{Status: ViewFailed, Message: MsgPostsFailed}
	}
	view := &PostListView{Status: ViewReady}
	for _, item := range published(items) {
		view.Items = append(view.Items, renderPost(ctx, item))
	}
	if len(view.Items) == 0 {
		view.Status = ViewEmpty
		view.Message = MsgNoPosts
	}
	return view
}

func (s *ViewServiceImpl) Projects(ctx context.Context) *ProjectListView {
	items, err := s.projects.ListPublished(ctx)
	if err != nil {
		log.ErrorContext(ctx, "list published projects failed", "err", err)
		return &ProjectListView{Status: ViewFailed, Message: MsgProjectsFailed}
	}
	view := &ProjectListView{Status: ViewReady, Items: published(items)}
	if len(view.Items) == 0 {
		view.Status = ViewEmpty
		view.Message = MsgNoProjects
	}
	return view
}

func (s *ViewServiceImpl) Post(ctx context.Context, id string) *PostDetailView {
	if id == "" {
		return &PostDetailView{Status: ViewFailed, Message: MsgPostMissingID}
	}
	item, err := s.posts.GetPublishedByID(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "get post failed", "id", id, "err", err)
		return &PostDetailView{Status: ViewFailed, Message: MsgPostFailed}
	}
	if item == nil || !item.IsPublished {
		return &PostDetailView{Status: ViewEmpty, Message: ErrPostNotFound.Error()}
	}
	return &PostDetailView{Status: ViewReady, Post: renderPost(ctx, item)}
}

// published 仓库已按 is_published 过滤，这里再兜一次底
func published[T any, PT model.Content[T]](items []PT) []PT {
	out := make([]PT, 0, len(items))
	for _, item := range items {
		if item.Meta().IsPublished {
			out = append(out, item)
		}
	}
	return out
}

func renderPost(ctx context.Context, post *model.Post) *PostView {
	html, err := util.RenderMarkdown(post.Content)
	if err != nil {
		log.WarnContext(ctx, "render markdown failed, falling back to escaped text", "id", post.ID, "err", err)
		html = template.HTML(template.HTMLEscapeString(post.Content))
	}
	return &PostView{
		Post:    post,
		HTML:    html,
		Excerpt: util.Truncate(util.PlainText(string(html)), ExcerptLength),
	}
}
