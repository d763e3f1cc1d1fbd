package repository

import (
	"skillshare/internal/domain/progress/model"

	"gorm.io/gorm"
)

// ProgressCommentRepository 进度评论仓库
type ProgressCommentRepository interface {
	Create(comment *model.ProgressComment) error
	GetByID(id string) (*model.ProgressComment, error)
	GetRootsByProgressID(progressID string) ([]model.ProgressComment, error)
	GetByParentID(parentID string) ([]model.ProgressComment, error)
	CountByProgressID(progressID string) (int64, error)
	Update(comment *model.ProgressComment) error
	Delete(id string) error
	DeleteByParentID(parentID string) error
	DeleteByProgressID(progressID string) error
}

type progressCommentRepository struct {
	db *gorm.DB
}

// NewProgressCommentRepository 创建新的仓库实例
func NewProgressCommentRepository(db *gorm.DB) ProgressCommentRepository {
	return &progressCommentRepository{db: db}
}

func (r *progressCommentRepository) Create(comment *model.ProgressComment) error {
	return r.db.Create(comment).Error
}

func (r *progressCommentRepository) GetByID(id string) (*model.ProgressComment, error) {
	var comment model.ProgressComment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetRootsByProgressID 根评论，时间正序
func (r *progressCommentRepository) GetRootsByProgressID(progressID string) ([]model.ProgressComment, error) {
	var comments []model.ProgressComment
	err := r.db.Where("progress_id = ? AND parent_comment_id = ?", progressID, "").
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetByParentID 某条评论的直接回复
func (r *progressCommentRepository) GetByParentID(parentID string) ([]model.ProgressComment, error) {
	var comments []model.ProgressComment
	err := r.db.Where("parent_comment_id = ?", parentID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CountByProgressID 统计该进度下全部评论（含回复）
func (r *progressCommentRepository) CountByProgressID(progressID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.ProgressComment{}).
		Where("progress_id = ?", progressID).
		Count(&count).Error
	return count, err
}

func (r *progressCommentRepository) Update(comment *model.ProgressComment) error {
	return r.db.Save(comment).Error
}

func (r *progressCommentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.ProgressComment{}).Error
}

// DeleteByParentID 删除某条评论的直接回复
func (r *progressCommentRepository) DeleteByParentID(parentID string) error {
	return r.db.Where("parent_comment_id = ?", parentID).Delete(&model.ProgressComment{}).Error
}

// DeleteByProgressID 删除进度时清理其全部评论
func (r *progressCommentRepository) DeleteByProgressID(progressID string) error {
	return r.db.Where("progress_id = ?", progressID).Delete(&model.ProgressComment{}).Error
}
