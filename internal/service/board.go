package service

import (
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/minio"
)

// CreateState 创建流程的状态
type CreateState string

const (
	StateIdle            CreateState = "Idle"
	StateValidatingInput CreateState = "ValidatingInput"
	StateRejected        CreateState = "Rejected"
	StateUploadingAssets CreateState = "UploadingAssets"
	StateUploadFailed    CreateState = "UploadFailed"
	StateInserting       CreateState = "Inserting"
	StateInsertFailed    CreateState = "InsertFailed"
	StateDone            CreateState = "Done"
)

// Draft 尚未提交的表单内容
type Draft struct {
	Title      string
	Body       string
	Subtitle   string
	ProjectURL string
	GithubURL  string
	Image      *minio.Upload
	SubImages  []minio.Upload
}

// Board 管理端某一类内容的列表，只属于一次请求或一个连接
type Board[T any, PT model.Content[T]] struct {
	Kind    model.Kind
	Session *Session
	Items   []PT
	State   CreateState
	Notice  string
}

func newBoard[T any, PT model.Content[T]](session *Session, items []PT) *Board[T, PT] {
	return &Board[T, PT]{
		Kind:    PT(new(T)).Kind(),
		Session: session,
		Items:   items,
		State:   StateIdle,
	}
}

// Find 返回 id 对应的条目及下标，不存在时下标为 -1
func (b *Board[T, PT]) Find(id string) (PT, int) {
	for i, item := range b.Items {
		if item.Meta().ID == id {
			return item, i
		}
	}
	return nil, -1
}

func (b *Board[T, PT]) prepend(item PT) {
	b.Items = append([]PT{item}, b.Items...)
}

func (b *Board[T, PT]) removeAt(i int) {
	b.Items = append(b.Items[:i:i], b.Items[i+1:]...)
}
