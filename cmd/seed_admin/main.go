package main

import (
	"Portfolio/internal/api/config"
	"Portfolio/internal/model"
	"Portfolio/internal/pkg/database"
	"Portfolio/internal/pkg/logger"
	"Portfolio/internal/pkg/security"
	"Portfolio/internal/repository"
	"context"
	"flag"
	log "log/slog"
	"os"
	"strings"
	"time"
)

// 没有注册入口，管理员账号只能由此命令创建或重置密码
func main() {
	email := flag.String("email", "", "admin email")
	password := flag.String("password", os.Getenv("PORTFOLIO_ADMIN_PASSWORD"), "admin password (defaults to $PORTFOLIO_ADMIN_PASSWORD)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.LoadConfig(); err != nil {
		log.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	if err := logger.InitLogger(config.Cfg.Log); err != nil {
		log.Error("failed to initialize logger", "err", err)
		os.Exit(1)
	}

	dbCfg := config.Cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("failed to connect database", "err", err)
		os.Exit(1)
	}
	if err = database.Migrate(db); err != nil {
		log.Error("failed to migrate", "err", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password)
	if err != nil {
		log.Error("failed to hash password", "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin := &model.Admin{
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
	}
	if err = repository.NewAdminRepository(db).Upsert(ctx, admin); err != nil {
		log.Error("failed to save admin", "err", err)
		os.Exit(1)
	}
	log.Info("admin account ready", "email", admin.Email)
}
