package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/minio"
	"Portfolio/internal/service"
	"context"
	log "log/slog"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

// kindOps 把 :kind 路由参数分派到对应类型的工作流，页面与接口共用
type kindOps struct {
	kind   model.Kind
	create func(ctx context.Context, dash *service.Dashboard, draft *service.Draft) (*dto.ContentDTO, error)
	remove func(ctx context.Context, dash *service.Dashboard, id string, confirm service.Confirmer) error
	edit   func(ctx context.Context, dash *service.Dashboard, id string) error
	find   func(dash *service.Dashboard, id string) (string, bool)
	view   func(dash *service.Dashboard) *dto.BoardDTO
	board  func(dash *service.Dashboard) any
	notice func(dash *service.Dashboard, msg string)
}

// Workflows 两类内容的工作流，按集合名索引
type Workflows map[string]kindOps

func NewWorkflows(posts service.PostService, projects service.ProjectService) Workflows {
	return Workflows{
		model.PostKind.Collection: opsFor(posts, func(d *service.Dashboard) *service.Board[model.Post, *model.Post] {
			return d.Posts
		}),
		model.ProjectKind.Collection: opsFor(projects, func(d *service.Dashboard) *service.Board[model.Project, *model.Project] {
			return d.Projects
		}),
	}
}

func opsFor[T any, PT model.Content[T]](svc service.ContentService[T, PT], pick func(*service.Dashboard) *service.Board[T, PT]) kindOps {
	return kindOps{
		kind: PT(new(T)).Kind(),
		create: func(ctx context.Context, dash *service.Dashboard, draft *service.Draft) (*dto.ContentDTO, error) {
			item, err := svc.Create(ctx, pick(dash), draft)
			if err != nil {
				return nil, err
			}
			return toContentDTO[T, PT](item), nil
		},
		remove: func(ctx context.Context, dash *service.Dashboard, id string, confirm service.Confirmer) error {
			return svc.Delete(ctx, pick(dash), id, confirm)
		},
		edit: func(ctx context.Context, dash *service.Dashboard, id string) error {
			return svc.Edit(ctx, pick(dash), id)
		},
		find: func(dash *service.Dashboard, id string) (string, bool) {
			item, idx := pick(dash).Find(id)
			if idx < 0 {
				return "", false
			}
			return item.Meta().Title, true
		},
		view: func(dash *service.Dashboard) *dto.BoardDTO {
			board := pick(dash)
			return &dto.BoardDTO{
				Kind:   board.Kind.Collection,
				State:  string(board.State),
				Notice: board.Notice,
				Items:  toContentDTOs[T, PT](board.Items),
			}
		},
		board: func(dash *service.Dashboard) any {
			return pick(dash)
		},
		notice: func(dash *service.Dashboard, msg string) {
			pick(dash).Notice = msg
		},
	}
}

func (w Workflows) lookup(c *gin.Context) (kindOps, bool) {
	ops, ok := w[c.Param("kind")]
	return ops, ok
}

func toContentDTO[T any, PT model.Content[T]](item PT) *dto.ContentDTO {
	out := &dto.ContentDTO{}
	if err := copier.Copy(out, item); err != nil {
		log.Warn("copy content dto failed", "err", err)
	}
	out.ID = item.Meta().ID
	out.CreatedAt = item.Meta().CreatedAt
	out.Kind = item.Kind().Noun
	out.Body = item.Body()
	return out
}

func toContentDTOs[T any, PT model.Content[T]](items []PT) []*dto.ContentDTO {
	out := make([]*dto.ContentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toContentDTO[T, PT](item))
	}
	return out
}

// readDraft 读取创建表单，返回的 closer 负责关闭已打开的文件
func readDraft(c *gin.Context) (*service.Draft, func(), error) {
	var form dto.DraftDTO
	if err := c.ShouldBind(&form); err != nil {
		return nil, nil, service.ErrParamInvalid
	}
	draft := &service.Draft{
		Title:      form.Title,
		Body:       form.Body,
		Subtitle:   form.Subtitle,
		ProjectURL: form.ProjectURL,
		GithubURL:  form.GithubURL,
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	open := func(fh *multipart.FileHeader) (*minio.Upload, error) {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		opened = append(opened, f)
		return &minio.Upload{Name: fh.Filename, Reader: f, Size: fh.Size}, nil
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return draft, closeAll, nil
	}
	if files := mf.File["image"]; len(files) > 0 {
		upload, err := open(files[0])
		if err != nil {
			closeAll()
			return nil, nil, service.ErrParamInvalid
		}
		draft.Image = upload
	}
	for _, key := range []string{"sub_images", "sub_images[]"} {
		for _, fh := range mf.File[key] {
			upload, err := open(fh)
			if err != nil {
				log.WarnContext(c.Request.Context(), "open sub image failed, skipped", "file", fh.Filename, "err", err)
				continue
			}
			draft.SubImages = append(draft.SubImages, *upload)
		}
	}
	return draft, closeAll, nil
}
