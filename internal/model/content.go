package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base 帖子与项目共有的列
type Base struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt   time.Time `gorm:"not null;index:idx_created_at" json:"created_at"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	ImageURL    *string   `gorm:"type:varchar(1024)" json:"image_url,omitempty"`
	AuthorID    string    `gorm:"type:char(36);not null;index:idx_author_id" json:"author_id"`
	IsPublished bool      `gorm:"not null;default:false;index:idx_is_published" json:"is_published"`
}

func (b *Base) Meta() *Base {
	return b
}

// BeforeCreate 由存储层生成 ID
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Fields 创建内容时由工作流汇总好的字段
type Fields struct {
	Title      string
	Body       string
	Subtitle   string
	ProjectURL string
	GithubURL  string
	ImageURL   string
	SubImages  []string
	AuthorID   string
}

// Content 允许仓库与工作流以泛型方式处理 Post 与 Project
type Content[T any] interface {
	*T
	TableName() string
	Meta() *Base
	Kind() Kind
	Body() string
	AssetURLs() []string
	Fill(f Fields)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func assetURLs(primary *string, extra []string) []string {
	var urls []string
	if primary != nil && *primary != "" {
		urls = append(urls, *primary)
	}
	for _, u := range extra {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
