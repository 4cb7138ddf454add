package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/api/middleware"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/response"
	"Portfolio/internal/service"

	"github.com/gin-gonic/gin"
)

// ContentHandler 内容相关的 JSON 接口
type ContentHandler struct {
	views     service.ViewService
	workflows Workflows
}

func NewContentHandler(views service.ViewService, workflows Workflows) *ContentHandler {
	return &ContentHandler{views: views, workflows: workflows}
}

func (s *ContentHandler) ListPosts(c *gin.Context) {
	view := s.views.Posts(c.Request.Context())
	if view.Status == service.ViewFailed {
		response.Fail(c, response.InternalServerError, view.Message)
		return
	}
	items := make([]*dto.ContentDTO, 0, len(view.Items))
	for _, pv := range view.Items {
		item := toContentDTO[model.Post](pv.Post)
		item.Excerpt = pv.Excerpt
		items = append(items, item)
	}
	response.Success(c, items)
}

func (s *ContentHandler) GetPost(c *gin.Context) {
	view := s.views.Post(c.Request.Context(), c.Param("id"))
	switch view.Status {
	case service.ViewFailed:
		response.Fail(c, response.InternalServerError, view.Message)
		return
	case service.ViewEmpty:
		response.Fail(c, response.NotFound, view.Message)
		return
	}
	item := toContentDTO[model.Post](view.Post.Post)
	item.HTML = string(view.Post.HTML)
	response.Success(c, item)
}

func (s *ContentHandler) ListProjects(c *gin.Context) {
	view := s.views.Projects(c.Request.Context())
	if view.Status == service.ViewFailed {
		response.Fail(c, response.InternalServerError, view.Message)
		return
	}
	response.Success(c, toContentDTOs[model.Project](view.Items))
}

// AdminList 当前作者的内容
func (s *ContentHandler) AdminList(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	response.Success(c, ops.view(middleware.CurrentDashboard(c)))
}

func (s *ContentHandler) AdminCreate(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	draft, closeFiles, err := readDraft(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeFiles()

	item, err := ops.create(c.Request.Context(), middleware.CurrentDashboard(c), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, item)
}

// AdminDelete 需要 confirm=true，否则视为用户取消
func (s *ContentHandler) AdminDelete(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	confirmed := service.Confirmed(c.Query("confirm") == "true")
	if err := ops.remove(c.Request.Context(), middleware.CurrentDashboard(c), c.Param("id"), confirmed); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ContentHandler) AdminEdit(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	response.Error(c, ops.edit(c.Request.Context(), middleware.CurrentDashboard(c), c.Param("id")))
}
