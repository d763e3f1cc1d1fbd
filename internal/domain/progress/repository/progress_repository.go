package repository

import (
	"skillshare/internal/domain/progress/model"

	"gorm.io/gorm"
)

// ProgressRepository 接口定义
type ProgressRepository interface {
	Create(progress *model.Progress) error
	GetByID(id string) (*model.Progress, error)
	GetAll(offset, limit int) ([]model.Progress, int64, error)
	GetByUserID(userID string) ([]model.Progress, error)
	Update(progress *model.Progress) error
	Delete(id string) error
}

type progressRepository struct {
	db *gorm.DB
}

// NewProgressRepository 创建新的仓库实例
func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Create(progress *model.Progress) error {
	return r.db.Create(progress).Error
}

func (r *progressRepository) GetByID(id string) (*model.Progress, error) {
	var progress model.Progress
	if err := r.db.Where("id = ?", id).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetAll 全部进度更新，最新在前
func (r *progressRepository) GetAll(offset, limit int) ([]model.Progress, int64, error) {
	var list []model.Progress
	var total int64

	if err := r.db.Model(&model.Progress{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *progressRepository) GetByUserID(userID string) ([]model.Progress, error) {
	var list []model.Progress
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *progressRepository) Update(progress *model.Progress) error {
	return r.db.Save(progress).Error
}

func (r *progressRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Progress{}).Error
}
