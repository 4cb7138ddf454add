package wire

import (
	"Portfolio/internal/api"
	"Portfolio/internal/api/config"
	"Portfolio/internal/api/handler"
	"Portfolio/internal/job"
	"Portfolio/internal/pkg/cron"
	"Portfolio/internal/pkg/minio"
	pkgredis "Portfolio/internal/pkg/redis"
	"Portfolio/internal/pkg/security"
	"Portfolio/internal/repository"
	"Portfolio/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, rdb *redis.Client, store *minio.Store, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	signer := security.NewSigner(cfg.JWT)
	sessions := pkgredis.NewSessionStore(rdb)

	authService := service.NewAuthService(adminRepo, signer, sessions)
	postService := service.NewPostService(postRepo, store)
	projectService := service.NewProjectService(projectRepo, store)
	viewService := service.NewViewService(postRepo, projectRepo)
	sessionGate := service.NewSessionGate(authService, postService, projectService)

	workflows := handler.NewWorkflows(postService, projectService)
	secureCookie := strings.HasPrefix(cfg.Server.PublicBaseURL, "https:")

	handlers := &api.HandlersGroup{
		PageHandler:    handler.NewPageHandler(viewService, authService, workflows, signer.TTL(), secureCookie),
		AuthHandler:    handler.NewAuthHandler(authService),
		ContentHandler: handler.NewContentHandler(viewService, workflows),
		SessionHandler: handler.NewSessionHandler(sessionGate, workflows),
		SessionGate:    sessionGate,
	}

	router, err := api.SetupRouter(handlers, api.RouterOptions{
		MaxUploadBytes: cfg.Upload.MaxBytes,
		AllowOrigins:   cfg.Server.AllowOrigins,
	})
	if err != nil {
		return nil, err
	}

	orphanJob := job.NewOrphanAssetJob(store, postRepo, projectRepo)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cron.NewCronManager(cron.Entry{Name: "orphan_audit", Spec: cfg.Cron.OrphanAudit, Job: orphanJob}),
	}, nil
}
