package repository

import (
	"skillshare/internal/domain/post/model"

	"gorm.io/gorm"
)

// PostRepository 接口定义
type PostRepository interface {
	Create(post *model.Post) error
	GetByID(id string) (*model.Post, error)
	GetList(offset, limit int) ([]model.Post, int64, error)
	GetByUserID(userID string) ([]model.Post, error)
	GetByCategory(category string, offset, limit int) ([]model.Post, error)
	SearchByTitle(query string, offset, limit int) ([]model.Post, error)
	Update(post *model.Post) error
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建新的仓库实例
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

func (r *postRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetList 获取帖子列表，最新的在前
func (r *postRepository) GetList(offset, limit int) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	if err := r.db.Model(&model.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := r.db.Order("created_at desc").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) GetByUserID(userID string) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) GetByCategory(category string, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Where("category = ?", category).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SearchByTitle 标题模糊搜索（忽略大小写）
func (r *postRepository) SearchByTitle(query string, offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.Where("title ILIKE ?", "%"+query+"%").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

func (r *postRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Post{}).Error
}
