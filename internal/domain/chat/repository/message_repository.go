package repository

import (
	"skillshare/internal/domain/chat/model"

	"gorm.io/gorm"
)

// MessageRepository 接口定义
type MessageRepository interface {
	Create(message *model.Message) error
	GetByID(id string) (*model.Message, error)
	GetConversation(userA, userB string) ([]model.Message, error)
	GetByUser(userID string) ([]model.Message, error)
	Update(message *model.Message) error
	Delete(id string) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建新的仓库实例
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *messageRepository) GetByID(id string) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversation 两人之间的全部消息，时间正序
func (r *messageRepository) GetConversation(userA, userB string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// GetByUser 用户收发的全部消息，时间正序
func (r *messageRepository) GetByUser(userID string) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) Update(message *model.Message) error {
	return r.db.Save(message).Error
}

func (r *messageRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Message{}).Error
}
