package repository

import (
	"fmt"

	userModel "skillshare/internal/domain/user/model"

	"gorm.io/gorm"
)

// AdminRepository 管理端专用查询
type AdminRepository interface {
	CountUsersByRole(role string) (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建新的仓库实例
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// CountUsersByRole jsonb 包含查询统计某角色的用户数
func (r *adminRepository) CountUsersByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&userModel.User{}).
		Where("roles @> ?", fmt.Sprintf(`["%s"]`, role)).
		Count(&count).Error
	return count, err
}
