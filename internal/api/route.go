package api

import (
	"Portfolio/internal/api/middleware"
	"Portfolio/internal/pkg/logger"
	"Portfolio/web"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouterOptions 路由层需要的配置项
type RouterOptions struct {
	MaxUploadBytes int64
	AllowOrigins   []string
}

func SetupRouter(group *HandlersGroup, opts RouterOptions) (*gin.Engine, error) {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	// TraceId & Logger
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	logger.SetupGin(r)

	pages := group.PageHandler
	r.GET("/", pages.Home)
	r.GET("/about", pages.About)
	r.GET("/projects", pages.Projects)
	r.GET("/blog", pages.Blog)
	r.GET("/blog/:id", pages.BlogPost)
	r.GET("/contact", pages.Contact)
	r.POST("/contact", pages.SubmitContact)

	adminGroup := r.Group("/admin")
	{
		adminGroup.GET("", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/admin/dashboard")
		})
		adminGroup.GET("/login", pages.LoginPage)
		adminGroup.POST("/login", pages.Login)
		adminGroup.POST("/logout", pages.Logout)

		dashboardGroup := adminGroup.Group("/dashboard")
		dashboardGroup.Use(middleware.PageSessionGate(group.SessionGate))
		{
			dashboardGroup.GET("", pages.Dashboard)
			dashboardGroup.POST("/:kind", pages.Create)
			dashboardGroup.GET("/:kind/:id/delete", pages.ConfirmDelete)
			dashboardGroup.POST("/:kind/:id/delete", pages.Delete)
			dashboardGroup.POST("/:kind/:id/edit", pages.Edit)
		}
	}

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.CORSMiddleware(opts.AllowOrigins))
	{
		// 预检请求由 CORSMiddleware 直接应答
		apiGroup.OPTIONS("/*path", func(c *gin.Context) {})

		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", group.AuthHandler.Login)

			sessionGroup := authGroup.Group("")
			sessionGroup.Use(middleware.APISessionGate(group.SessionGate))
			{
				sessionGroup.POST("/logout", group.AuthHandler.Logout)
				sessionGroup.GET("/session", group.AuthHandler.Session)
			}
		}

		apiGroup.GET("/posts", group.ContentHandler.ListPosts)
		apiGroup.GET("/posts/:id", group.ContentHandler.GetPost)
		apiGroup.GET("/projects", group.ContentHandler.ListProjects)

		adminAPI := apiGroup.Group("/admin")
		{
			// 浏览器无法为 websocket 设置请求头，token 走 query，由 handler 自行鉴权
			adminAPI.GET("/session/watch", group.SessionHandler.Watch)

			gated := adminAPI.Group("")
			gated.Use(middleware.APISessionGate(group.SessionGate))
			{
				gated.GET("/:kind", group.ContentHandler.AdminList)
				gated.POST("/:kind", group.ContentHandler.AdminCreate)
				gated.DELETE("/:kind/:id", group.ContentHandler.AdminDelete)
				gated.PUT("/:kind/:id", group.ContentHandler.AdminEdit)
			}
		}
	}

	return r, nil
}
