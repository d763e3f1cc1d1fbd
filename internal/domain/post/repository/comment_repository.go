package repository

import (
	"skillshare/internal/domain/post/model"

	"gorm.io/gorm"
)

// CommentRepository 帖子评论仓库
type CommentRepository interface {
	Create(comment *model.Comment) error
	GetByID(id string) (*model.Comment, error)
	GetByPostID(postID string) ([]model.Comment, error)
	Update(comment *model.Comment) error
	Delete(id string) error
	DeleteByPostID(postID string) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建新的仓库实例
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) GetByID(id string) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPostID 按时间正序返回帖子的全部评论
func (r *commentRepository) GetByPostID(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.Where("post_id = ?", postID).Order("created_at asc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(comment *model.Comment) error {
	return r.db.Save(comment).Error
}

func (r *commentRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Comment{}).Error
}

// DeleteByPostID 删除帖子时清理其全部评论
func (r *commentRepository) DeleteByPostID(postID string) error {
	return r.db.Where("post_id = ?", postID).Delete(&model.Comment{}).Error
}
