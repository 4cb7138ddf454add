package service

import (
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/minio"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strings"
)

// Confirmer 删除前的交互确认，返回 false 表示用户取消
type Confirmer func(prompt string) bool

// Confirmed 把已经拿到的确认结果包装成 Confirmer
func Confirmed(ok bool) Confirmer {
	return func(string) bool { return ok }
}

// ContentService 管理端的创建、删除与编辑占位
type ContentService[T any, PT model.Content[T]] interface {
	Load(ctx context.Context, session *Session) (*Board[T, PT], error)
	Create(ctx context.Context, board *Board[T, PT], draft *Draft) (PT, error)
	Delete(ctx context.Context, board *Board[T, PT], id string, confirm Confirmer) error
	Edit(ctx context.Context, board *Board[T, PT], id string) error
}

type ContentServiceImpl[T any, PT model.Content[T]] struct {
	repo  repository.ContentRepo[T, PT]
	store minio.AssetStore
}

func NewContentService[T any, PT model.Content[T]](repo repository.ContentRepo[T, PT], store minio.AssetStore) ContentService[T, PT] {
	return &ContentServiceImpl[T, PT]{repo: repo, store: store}
}

type PostService = ContentService[model.Post, *model.Post]
type ProjectService = ContentService[model.Project, *model.Project]

func NewPostService(repo repository.ContentRepo[model.Post, *model.Post], store minio.AssetStore) PostService {
	return NewContentService[model.Post](repo, store)
}

func NewProjectService(repo repository.ContentRepo[model.Project, *model.Project], store minio.AssetStore) ProjectService {
	return NewContentService[model.Project](repo, store)
}

// Load 读取当前会话作者自己的内容
func (s *ContentServiceImpl[T, PT]) Load(ctx context.Context, session *Session) (*Board[T, PT], error) {
	if session == nil || session.UserID == "" {
		return nil, ErrSession
	}
	items, err := s.repo.ListByAuthor(ctx, session.UserID)
	if err != nil {
		return nil, repositoryError(err)
	}
	return newBoard[T, PT](session, items), nil
}

type draftCheck struct {
	Title string `validate:"required"`
	Body  string `validate:"required"`
}

// Create 校验 -> 上传图片 -> 写入，成功后新条目放在列表最前并清空 draft
func (s *ContentServiceImpl[T, PT]) Create(ctx context.Context, board *Board[T, PT], draft *Draft) (PT, error) {
	if board == nil || board.Session == nil {
		return nil, ErrSession
	}
	kind := board.Kind

	board.State = StateValidatingInput
	board.Notice = ""
	title := strings.TrimSpace(draft.Title)
	body := strings.TrimSpace(draft.Body)
	if err := util.ValidateDTO(&draftCheck{Title: title, Body: body}); err != nil {
		msg := fmt.Sprintf("Title and %s cannot be empty.", kind.BodyLabel)
		board.State = StateRejected
		board.Notice = msg
		return nil, newError(ErrValidation, msg, nil)
	}

	board.State = StateUploadingAssets
	fields := model.Fields{
		Title:    title,
		Body:     body,
		AuthorID: board.Session.UserID,
	}
	if kind.Subtitle {
		fields.Subtitle = strings.TrimSpace(draft.Subtitle)
	}
	if kind.Links {
		fields.ProjectURL = strings.TrimSpace(draft.ProjectURL)
		fields.GithubURL = strings.TrimSpace(draft.GithubURL)
	}

	if draft.Image != nil {
		url, err := s.store.Upload(ctx, *draft.Image)
		if err != nil {
			log.ErrorContext(ctx, "upload primary image failed", "kind", kind.Noun, "file", draft.Image.Name, "err", err)
			board.State = StateUploadFailed
			board.Notice = err.Error()
			return nil, storeError(err)
		}
		fields.ImageURL = url
	}

	if kind.SubImages {
		for _, file := range draft.SubImages {
			url, err := s.store.Upload(ctx, file)
			if err != nil {
				log.WarnContext(ctx, "upload sub image failed, skipped", "kind", kind.Noun, "file", file.Name, "err", err)
				continue
			}
			fields.SubImages = append(fields.SubImages, url)
		}
	}

	board.State = StateInserting
	item := PT(new(T))
	item.Fill(fields)
	item.Meta().IsPublished = true
	if err := s.repo.Insert(ctx, item); err != nil {
		log.ErrorContext(ctx, "insert content failed", "kind", kind.Noun, "err", err)
		board.State = StateInsertFailed
		board.Notice = err.Error()
		return nil, repositoryError(err)
	}

	board.State = StateDone
	board.prepend(item)
	*draft = Draft{}
	log.InfoContext(ctx, "content created", "kind", kind.Noun, "id", item.Meta().ID)
	return item, nil
}

// Delete 确认 -> 尽力删除图片 -> 删除行，删除失败时列表保持不变
func (s *ContentServiceImpl[T, PT]) Delete(ctx context.Context, board *Board[T, PT], id string, confirm Confirmer) error {
	if board == nil || board.Session == nil {
		return ErrSession
	}
	item, idx := board.Find(id)
	if idx < 0 {
		return ErrNotFound
	}
	if confirm == nil || !confirm(DeletePrompt(board.Kind)) {
		return ErrDeleteDeclined
	}

	for _, url := range item.AssetURLs() {
		if err := s.store.Remove(ctx, url); err != nil {
			log.WarnContext(ctx, "remove asset failed", "kind", board.Kind.Noun, "id", id, "url", url, "err", err)
		}
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		log.ErrorContext(ctx, "delete content failed", "kind", board.Kind.Noun, "id", id, "err", err)
		board.Notice = err.Error()
		return repositoryError(err)
	}

	board.removeAt(idx)
	log.InfoContext(ctx, "content deleted", "kind", board.Kind.Noun, "id", id)
	return nil
}

// Edit 编辑尚未开放
func (s *ContentServiceImpl[T, PT]) Edit(ctx context.Context, board *Board[T, PT], id string) error {
	log.InfoContext(ctx, "edit requested", "id", id)
	if board != nil {
		board.Notice = ErrEditUnavailable.Error()
	}
	return ErrEditUnavailable
}

// DeletePrompt 删除确认的提示语
func DeletePrompt(kind model.Kind) string {
	return fmt.Sprintf("Are you sure you want to delete this %s?", kind.Noun)
}
