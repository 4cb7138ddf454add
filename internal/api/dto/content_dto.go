package dto

import "time"

// DraftDTO 创建表单中的文本字段，文件另行读取
type DraftDTO struct {
	Title      string `form:"title" json:"title"`
	Body       string `form:"body" json:"body"`
	Subtitle   string `form:"subtitle" json:"subtitle"`
	ProjectURL string `form:"project_url" json:"project_url"`
	GithubURL  string `form:"github_url" json:"github_url"`
}

// ContentDTO 对外输出的帖子或项目
type ContentDTO struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Subtitle    *string   `json:"subtitle,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	SubImages   []string  `json:"sub_images,omitempty"`
	ProjectURL  *string   `json:"project_url,omitempty"`
	GithubURL   *string   `json:"github_url,omitempty"`
	AuthorID    string    `json:"author_id"`
	IsPublished bool      `json:"is_published"`
	Excerpt     string    `json:"excerpt,omitempty"`
	HTML        string    `json:"html,omitempty"`
}

// BoardDTO 管理端列表
type BoardDTO struct {
	Kind   string        `json:"kind"`
	State  string        `json:"state"`
	Notice string        `json:"notice,omitempty"`
	Items  []*ContentDTO `json:"items"`
}

// SessionWatchDTO 会话监听推送的消息
type SessionWatchDTO struct {
	Type     string    `json:"type"`
	Redirect string    `json:"redirect,omitempty"`
	Email    string    `json:"email,omitempty"`
	Posts    *BoardDTO `json:"posts,omitempty"`
	Projects *BoardDTO `json:"projects,omitempty"`
}
