package repository

import (
	"Portfolio/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ContentRepo posts 与 projects 两张表共用的读写接口
type ContentRepo[T any, PT model.Content[T]] interface {
	ListPublished(ctx context.Context) ([]PT, error)
	ListByAuthor(ctx context.Context, authorID string) ([]PT, error)
	GetPublishedByID(ctx context.Context, id string) (PT, error)
	Insert(ctx context.Context, item PT) error
	DeleteByID(ctx context.Context, id string) error
	ListAssetURLs(ctx context.Context) ([]string, error)
}

type ContentRepoImpl[T any, PT model.Content[T]] struct {
	db *gorm.DB
}

func NewContentRepository[T any, PT model.Content[T]](db *gorm.DB) ContentRepo[T, PT] {
	return &ContentRepoImpl[T, PT]{db: db}
}

func NewPostRepository(db *gorm.DB) ContentRepo[model.Post, *model.Post] {
	return NewContentRepository[model.Post](db)
}

func NewProjectRepository(db *gorm.DB) ContentRepo[model.Project, *model.Project] {
	return NewContentRepository[model.Project](db)
}

func (s *ContentRepoImpl[T, PT]) table() string {
	return PT(new(T)).TableName()
}

func (s *ContentRepoImpl[T, PT]) ListPublished(ctx context.Context) ([]PT, error) {
	items := make([]PT, 0)
	err := s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list published %s", s.table())
	}
	return items, nil
}

func (s *ContentRepoImpl[T, PT]) ListByAuthor(ctx context.Context, authorID string) ([]PT, error) {
	items := make([]PT, 0)
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "list %s by author", s.table())
	}
	return items, nil
}

// GetPublishedByID 不存在与未发布都返回 nil, nil
func (s *ContentRepoImpl[T, PT]) GetPublishedByID(ctx context.Context, id string) (PT, error) {
	item := PT(new(T))
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_published = ?", id, true).
		Take(item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "get %s %s", s.table(), id)
	}
	return item, nil
}

// Insert 写入后 item 带上生成的 id 与 created_at
func (s *ContentRepoImpl[T, PT]) Insert(ctx context.Context, item PT) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return pkgerrors.Wrapf(err, "insert %s", s.table())
	}
	return nil
}

func (s *ContentRepoImpl[T, PT]) DeleteByID(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(PT(new(T)), "id = ?", id).Error; err != nil {
		return pkgerrors.Wrapf(err, "delete %s %s", s.table(), id)
	}
	return nil
}

// ListAssetURLs 所有行引用的图片地址
func (s *ContentRepoImpl[T, PT]) ListAssetURLs(ctx context.Context) ([]string, error) {
	var items []PT
	if err := s.db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrapf(err, "list %s assets", s.table())
	}
	var urls []string
	for _, item := range items {
		urls = append(urls, item.AssetURLs()...)
	}
	return urls, nil
}
