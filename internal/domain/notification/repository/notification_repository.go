package repository

import (
	"skillshare/internal/domain/notification/model"

	"gorm.io/gorm"
)

// NotificationRepository 接口定义
type NotificationRepository interface {
	Create(notification *model.Notification) error
	GetByID(id string) (*model.Notification, error)
	GetByRecipient(recipientID string, unreadOnly bool) ([]model.Notification, error)
	Update(notification *model.Notification) error
	MarkAllRead(recipientID string) error
	Delete(id string) error
	DeleteBySubject(subjectID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建新的仓库实例
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *model.Notification) error {
	return r.db.Create(notification).Error
}

func (r *notificationRepository) GetByID(id string) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.Where("id = ?", id).First(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// GetByRecipient 按时间倒序获取用户通知
func (r *notificationRepository) GetByRecipient(recipientID string, unreadOnly bool) ([]model.Notification, error) {
	var list []model.Notification
	q := r.db.Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	if err := q.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *notificationRepository) Update(notification *model.Notification) error {
	return r.db.Save(notification).Error
}

func (r *notificationRepository) MarkAllRead(recipientID string) error {
	return r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
}

func (r *notificationRepository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&model.Notification{}).Error
}

// DeleteBySubject 删除帖子/进度时清理其关联通知
func (r *notificationRepository) DeleteBySubject(subjectID string) error {
	return r.db.Where("subject_id = ?", subjectID).Delete(&model.Notification{}).Error
}
