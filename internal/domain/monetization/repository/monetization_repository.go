package repository

import (
	"skillshare/internal/domain/monetization/model"

	"gorm.io/gorm"
)

// MonetizationRepository 接口定义
type MonetizationRepository interface {
	Create(request *model.MonetizationRequest) error
	GetByID(id string) (*model.MonetizationRequest, error)
	GetAll() ([]model.MonetizationRequest, error)
	GetByUserID(userID string) ([]model.MonetizationRequest, error)
	Delete(id string) error
}

type monetizationRepository struct {
	db *gorm.DB
}

// NewMonetizationRepository 创建新的仓库实例
func NewMonetizationRepository(db *gorm.DB) MonetizationRepository {
	return &monetizationRepository{db: db}
}

func (r *monetizationRepository) Create(request *model.MonetizationRequest) error {
	return r.db.Create(request).Error
}

func (r *monetizationRepository) GetByID(id string) (*model.MonetizationRequest, error) {
	var request model.MonetizationRequest
	if err := r.db.Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *monetizationRepository) GetAll() ([]model.MonetizationRequest, error) {
	var requests []model.MonetizationRequest
	if err := r.db.Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *monetizationRepository) GetByUserID(userID string) ([]model.MonetizationRequest, error) {
	var requests []model.MonetizationRequest
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *monetizationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.MonetizationRequest{}).Error
}
