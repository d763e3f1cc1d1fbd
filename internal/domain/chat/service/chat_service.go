package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"skillshare/internal/domain/chat/model"
	"skillshare/internal/domain/chat/repository"
	userModel "skillshare/internal/domain/user/model"
	userRepository "skillshare/internal/domain/user/repository"
	"skillshare/pkg/cache"
	"skillshare/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrMessageNotFound = errors.New("message not found")
	ErrNotSender       = errors.New("only the sender can modify this message")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmptyContent    = errors.New("message content cannot be empty")
)

// 最近会话投影缓存，写操作后失效
const (
	recentChatsKeyPrefix = "recentchats:"
	recentChatsTTL       = time.Second * 30
)

// ChatPartner 会话对端的展示信息
type ChatPartner struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	ProfilePicture string `json:"profilePicture"`
}

// RecentChat 最近会话条目：对端信息 + 该会话时间上最后一条消息
type RecentChat struct {
	Partner     ChatPartner   `json:"partner"`
	LastMessage model.Message `json:"lastMessage"`
}

// ChatService 私信服务接口
type ChatService interface {
	SendMessage(senderID, recipientID, content string) (*model.Message, error)
	GetConversation(userA, userB string) ([]model.Message, error)
	GetUserMessages(userID string) ([]model.Message, error)
	EditMessage(id, senderID, content string) (*model.Message, error)
	DeleteMessage(id, senderID string) error
	RecentChats(userID string) ([]RecentChat, error)
}

type chatService struct {
	messages repository.MessageRepository
	users    userRepository.UserRepository
	cache    cache.CacheService
}

// NewChatService 创建私信服务
func NewChatService(
	messages repository.MessageRepository,
	users userRepository.UserRepository,
	cacheService cache.CacheService,
) ChatService {
	return &chatService{
		messages: messages,
		users:    users,
		cache:    cacheService,
	}
}

// SendMessage 发送私信，双方都必须存在
func (s *chatService) SendMessage(senderID, recipientID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	if err := s.ensureUserExists(senderID); err != nil {
		return nil, err
	}
	if err := s.ensureUserExists(recipientID); err != nil {
		return nil, err
	}

	message := &model.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}

	s.invalidateRecent(senderID, recipientID)
	return message, nil
}

// GetConversation 两人会话，时间正序
func (s *chatService) GetConversation(userA, userB string) ([]model.Message, error) {
	return s.messages.GetConversation(userA, userB)
}

// GetUserMessages 用户收发的全部消息
func (s *chatService) GetUserMessages(userID string) ([]model.Message, error) {
	return s.messages.GetByUser(userID)
}

// EditMessage 编辑消息，只有发送者可以改
func (s *chatService) EditMessage(id, senderID, content string) (*model.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	message, err := s.getMessage(id)
	if err != nil {
		return nil, err
	}
	if message.SenderID != senderID {
		return nil, ErrNotSender
	}

	message.Content = content
	if err := s.messages.Update(message); err != nil {
		return nil, err
	}

	s.invalidateRecent(message.SenderID, message.RecipientID)
	return message, nil
}

// DeleteMessage 删除消息，只有发送者可以删
func (s *chatService) DeleteMessage(id, senderID string) error {
	message, err := s.getMessage(id)
	if err != nil {
		return err
	}
	if message.SenderID != senderID {
		return ErrNotSender
	}

	if err := s.messages.Delete(id); err != nil {
		return err
	}

	s.invalidateRecent(message.SenderID, message.RecipientID)
	return nil
}

// RecentChats 最近会话投影
// 按对端分组取时间上最后一条消息，会话按该消息时间倒序；
// 对端资料解析失败的会话直接跳过。
func (s *chatService) RecentChats(userID string) ([]RecentChat, error) {
	ctx := context.Background()
	key := recentChatsKeyPrefix + userID

	var cached []RecentChat
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	messages, err := s.messages.GetByUser(userID)
	if err != nil {
		return nil, err
	}

	latest := make(map[string]model.Message)
	for _, m := range messages {
		partner := m.PartnerOf(userID)
		if last, ok := latest[partner]; !ok || m.CreatedAt.After(last.CreatedAt) {
			latest[partner] = m
		}
	}

	chats := make([]RecentChat, 0, len(latest))
	for partnerID, last := range latest {
		partner, err := s.users.GetByID(partnerID)
		if err != nil {
			continue
		}
		chats = append(chats, RecentChat{
			Partner:     toChatPartner(partner),
			LastMessage: last,
		})
	}

	sort.Slice(chats, func(i, j int) bool {
		return chats[i].LastMessage.CreatedAt.After(chats[j].LastMessage.CreatedAt)
	})

	if err := s.cache.Set(ctx, key, chats, recentChatsTTL); err != nil && logger.Log != nil {
		logger.Log.Warn("failed to cache recent chats",
			zap.String("user_id", userID), zap.Error(err))
	}
	return chats, nil
}

func toChatPartner(u *userModel.User) ChatPartner {
	return ChatPartner{
		ID:             u.ID,
		Username:       u.Username,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		ProfilePicture: u.ProfilePicture,
	}
}

func (s *chatService) ensureUserExists(id string) error {
	if _, err := s.users.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %s", ErrUserNotFound, id)
		}
		return err
	}
	return nil
}

func (s *chatService) getMessage(id string) (*model.Message, error) {
	message, err := s.messages.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// invalidateRecent 会话双方的最近会话缓存都失效
func (s *chatService) invalidateRecent(ids ...string) {
	ctx := context.Background()
	for _, id := range ids {
		if err := s.cache.Delete(ctx, recentChatsKeyPrefix+id); err != nil && logger.Log != nil {
			logger.Log.Warn("failed to invalidate recent chats cache",
				zap.String("user_id", id), zap.Error(err))
		}
	}
}
