package service

import (
	"errors"

	"skillshare/internal/domain/notification/model"
	"skillshare/internal/domain/notification/repository"
	"skillshare/pkg/logger"
	"skillshare/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotRecipient         = errors.New("notification does not belong to this user")
)

// 评论摘要最长保留字符数，超过则截断加省略号
const excerptLimit = 50

// NotificationService 通知服务接口
// Notify 是互动事件的同步分发入口，失败只记日志，不回滚触发它的写入
type NotificationService interface {
	Notify(recipientID, senderID, subjectID, notifType, content string)
	GetForUser(userID string, unreadOnly bool) ([]model.Notification, error)
	MarkRead(id, userID string) (*model.Notification, error)
	MarkAllRead(userID string) error
	Delete(id, userID string) error
	DeleteBySubject(subjectID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

// Excerpt 评论内容摘要，超过50个字符截取前47个加 "..."
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit-3]) + "..."
}

// Notify 创建通知
// 自己对自己内容的互动不通知；创建失败不影响已完成的互动写入
func (s *notificationService) Notify(recipientID, senderID, subjectID, notifType, content string) {
	if recipientID == senderID {
		return
	}

	n := &model.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		SubjectID:   subjectID,
		Type:        notifType,
		Content:     content,
	}
	if err := s.repo.Create(n); err != nil {
		if logger.Log != nil {
			logger.Log.Error("failed to create notification",
				zap.String("recipient_id", recipientID),
				zap.String("subject_id", subjectID),
				zap.String("type", notifType),
				zap.Error(err))
		}
		return
	}
	metrics.GetCollector().RecordNotification(notifType)
}

// GetForUser 获取用户通知，时间倒序
func (s *notificationService) GetForUser(userID string, unreadOnly bool) ([]model.Notification, error) {
	return s.repo.GetByRecipient(userID, unreadOnly)
}

// MarkRead 标记单条已读，只有接收方可以操作
func (s *notificationService) MarkRead(id, userID string) (*model.Notification, error) {
	n, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	if n.RecipientID != userID {
		return nil, ErrNotRecipient
	}
	if n.Read {
		return n, nil
	}
	n.Read = true
	if err := s.repo.Update(n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead 全部标记已读
func (s *notificationService) MarkAllRead(userID string) error {
	return s.repo.MarkAllRead(userID)
}

// Delete 删除单条通知，只有接收方可以操作
func (s *notificationService) Delete(id, userID string) error {
	n, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}
	return s.repo.Delete(id)
}

// DeleteBySubject 按主体清理，供帖子/进度删除时调用
func (s *notificationService) DeleteBySubject(subjectID string) error {
	return s.repo.DeleteBySubject(subjectID)
}
