package repository

import (
	"Portfolio/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AdminRepo interface {
	GetByEmail(ctx context.Context, email string) (*model.Admin, error)
	GetByID(ctx context.Context, id string) (*model.Admin, error)
	Upsert(ctx context.Context, admin *model.Admin) error
}

type AdminRepoImpl struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepo {
	return &AdminRepoImpl{db: db}
}

// GetByEmail 不存在时返回 nil, nil
func (s *AdminRepoImpl) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("email = ?", email).Take(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *AdminRepoImpl) GetByID(ctx context.Context, id string) (*model.Admin, error) {
	var admin model.Admin
	err := s.db.WithContext(ctx).Where("id = ?", id).Take(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

// Upsert 按邮箱创建管理员，已存在时只更新密码
func (s *AdminRepoImpl) Upsert(ctx context.Context, admin *model.Admin) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
	}).Create(admin).Error
}
