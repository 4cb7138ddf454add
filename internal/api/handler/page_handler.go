package handler

import (
	"Portfolio/internal/api/dto"
	"Portfolio/internal/api/middleware"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/consts"
	"Portfolio/internal/pkg/util"
	"Portfolio/internal/service"
	"errors"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const contactThanks = "Thank you for your message!"

// PageHandler 服务端渲染的公开页面与后台页面
type PageHandler struct {
	views     service.ViewService
	auth      service.AuthService
	workflows Workflows
	ttl       time.Duration
	secure    bool
}

func NewPageHandler(views service.ViewService, auth service.AuthService, workflows Workflows, ttl time.Duration, secureCookie bool) *PageHandler {
	return &PageHandler{
		views:     views,
		auth:      auth,
		workflows: workflows,
		ttl:       ttl,
		secure:    secureCookie,
	}
}

func (s *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{"Title": "Home"})
}

func (s *PageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", gin.H{"Title": "About"})
}

func (s *PageHandler) Projects(c *gin.Context) {
	c.HTML(http.StatusOK, "projects.html", gin.H{
		"Title": "Projects",
		"View":  s.views.Projects(c.Request.Context()),
	})
}

func (s *PageHandler) Blog(c *gin.Context) {
	c.HTML(http.StatusOK, "blog.html", gin.H{
		"Title": "Blog",
		"View":  s.views.Posts(c.Request.Context()),
	})
}

func (s *PageHandler) BlogPost(c *gin.Context) {
	view := s.views.Post(c.Request.Context(), c.Param("id"))
	title := "Blog"
	status := http.StatusOK
	switch view.Status {
	case service.ViewReady:
		title = view.Post.Post.Title
	case service.ViewEmpty:
		status = http.StatusNotFound
	case service.ViewFailed:
		status = http.StatusInternalServerError
	}
	c.HTML(status, "blog_post.html", gin.H{"Title": title, "View": view})
}

func (s *PageHandler) Contact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", gin.H{"Title": "Contact"})
}

// SubmitContact 只校验并致谢，不保存也不发送邮件
func (s *PageHandler) SubmitContact(c *gin.Context) {
	var form dto.ContactDTO
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{"Title": "Contact", "Error": service.ErrParamInvalid.Error()})
		return
	}
	if err := util.ValidateDTO(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact.html", gin.H{"Title": "Contact", "Error": err.Error()})
		return
	}
	log.InfoContext(c.Request.Context(), "contact message received", "email", form.Email)
	c.HTML(http.StatusOK, "contact.html", gin.H{"Title": "Contact", "Notice": contactThanks})
}

func (s *PageHandler) LoginPage(c *gin.Context) {
	if _, err := s.auth.GetSession(c.Request.Context(), middleware.Token(c)); err == nil {
		c.Redirect(http.StatusFound, consts.DashboardPath)
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Admin Login", "Email": ""})
}

func (s *PageHandler) Login(c *gin.Context) {
	var form dto.LoginDTO
	_ = c.ShouldBind(&form)
	if err := util.ValidateDTO(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{"Title": "Admin Login", "Email": form.Email, "Error": err.Error()})
		return
	}
	session, err := s.auth.SignInWithPassword(c.Request.Context(), &form)
	if err != nil {
		msg := err.Error()
		if !errors.Is(err, service.ErrPasswordIncorrect) {
			log.ErrorContext(c.Request.Context(), "sign in failed", "err", err)
			msg = service.UnExpectedError.Error()
		}
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{"Title": "Admin Login", "Email": form.Email, "Error": msg})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(consts.SessionCookie, session.Token, int(s.ttl.Seconds()), "/", "", s.secure, true)
	c.Redirect(http.StatusSeeOther, consts.DashboardPath)
}

func (s *PageHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	if session, err := s.auth.GetSession(ctx, middleware.Token(c)); err == nil {
		if err = s.auth.SignOut(ctx, session); err != nil {
			log.ErrorContext(ctx, "sign out failed", "err", err)
		}
	}
	c.SetCookie(consts.SessionCookie, "", -1, "/", "", s.secure, true)
	c.Redirect(http.StatusSeeOther, consts.LoginPath)
}

// Dashboard 会话已由 PageSessionGate 挂载
func (s *PageHandler) Dashboard(c *gin.Context) {
	kind := model.PostKind
	if c.Query("tab") == "projects" {
		kind = model.ProjectKind
	}
	s.renderDashboard(c, http.StatusOK, kind.Collection, &service.Draft{})
}

func (s *PageHandler) Create(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		c.Redirect(http.StatusFound, consts.DashboardPath)
		return
	}
	dash := middleware.CurrentDashboard(c)

	draft, closeFiles, err := readDraft(c)
	if err != nil {
		ops.notice(dash, err.Error())
		s.renderDashboard(c, http.StatusBadRequest, ops.kind.Collection, &service.Draft{})
		return
	}
	defer closeFiles()

	if _, err = ops.create(c.Request.Context(), dash, draft); err != nil {
		s.renderDashboard(c, statusOf(err), ops.kind.Collection, draft)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardTab(ops.kind))
}

func (s *PageHandler) ConfirmDelete(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		c.Redirect(http.StatusFound, consts.DashboardPath)
		return
	}
	dash := middleware.CurrentDashboard(c)
	id := c.Param("id")
	title, found := ops.find(dash, id)
	if !found {
		ops.notice(dash, service.ErrNotFound.Error())
		s.renderDashboard(c, http.StatusNotFound, ops.kind.Collection, &service.Draft{})
		return
	}
	c.HTML(http.StatusOK, "confirm_delete.html", gin.H{
		"Title":      "Confirm delete",
		"Prompt":     service.DeletePrompt(ops.kind),
		"ItemTitle":  title,
		"Collection": ops.kind.Collection,
		"ID":         id,
	})
}

func (s *PageHandler) Delete(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		c.Redirect(http.StatusFound, consts.DashboardPath)
		return
	}
	dash := middleware.CurrentDashboard(c)

	confirmed := service.Confirmed(c.PostForm("confirm") == "yes")
	err := ops.remove(c.Request.Context(), dash, c.Param("id"), confirmed)
	if err == nil {
		c.Redirect(http.StatusSeeOther, dashboardTab(ops.kind))
		return
	}
	status := http.StatusOK
	if !errors.Is(err, service.ErrDeleteDeclined) {
		status = statusOf(err)
		ops.notice(dash, err.Error())
	}
	s.renderDashboard(c, status, ops.kind.Collection, &service.Draft{})
}

func (s *PageHandler) Edit(c *gin.Context) {
	ops, ok := s.workflows.lookup(c)
	if !ok {
		c.Redirect(http.StatusFound, consts.DashboardPath)
		return
	}
	_ = ops.edit(c.Request.Context(), middleware.CurrentDashboard(c), c.Param("id"))
	s.renderDashboard(c, http.StatusOK, ops.kind.Collection, &service.Draft{})
}

func (s *PageHandler) renderDashboard(c *gin.Context, status int, collection string, draft *service.Draft) {
	dash := middleware.CurrentDashboard(c)
	ops := s.workflows[collection]
	tab, empty := "blog", "No posts found. Create your first post above!"
	if collection == model.ProjectKind.Collection {
		tab, empty = "projects", "No projects found. Create your first project above!"
	}
	c.HTML(status, "dashboard.html", gin.H{
		"Title": "Admin Dashboard",
		"Email": dash.Session.Email,
		"Tab":   tab,
		"Board": ops.board(dash),
		"Draft": draft,
		"Empty": empty,
	})
}

// dashboardTab 写操作成功后跳回对应标签页，刷新不会重复提交
func dashboardTab(kind model.Kind) string {
	if kind.Collection == model.ProjectKind.Collection {
		return consts.DashboardPath + "?tab=projects"
	}
	return consts.DashboardPath + "?tab=blog"
}

func statusOf(err error) int {
	code, ok := service.CodeOf(err)
	if !ok || code < 400 || code > 599 {
		return http.StatusInternalServerError
	}
	return code
}
