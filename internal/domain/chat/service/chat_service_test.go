package service

import (
	"context"
	"testing"
	"time"

	"skillshare/internal/domain/chat/model"
	userModel "skillshare/internal/domain/user/model"
	"skillshare/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockMessageRepository 模拟消息仓库
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(msg *model.Message) error { return m.Called(msg).Error(0) }

func (m *MockMessageRepository) GetByID(id string) (*model.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepository) GetConversation(userA, userB string) ([]model.Message, error) {
	args := m.Called(userA, userB)
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) GetByUser(userID string) ([]model.Message, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) Update(msg *model.Message) error { return m.Called(msg).Error(0) }
func (m *MockMessageRepository) Delete(id string) error          { return m.Called(id).Error(0) }

// MockUserRepository 模拟用户仓库
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *userModel.User) error { return m.Called(user).Error(0) }

func (m *MockUserRepository) GetByID(id string) (*userModel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*userModel.User, error) {
	args := m.Called(username)
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*userModel.User, error) {
	args := m.Called(email)
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetList(offset, limit int) ([]userModel.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]userModel.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Search(query string, offset, limit int) ([]userModel.User, error) {
	args := m.Called(query, offset, limit)
	return args.Get(0).([]userModel.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *userModel.User) error { return m.Called(user).Error(0) }
func (m *MockUserRepository) Delete(id string) error            { return m.Called(id).Error(0) }

// noopCache 总是未命中的缓存
type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}

func (noopCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (noopCache) Delete(ctx context.Context, key string) error            { return nil }
func (noopCache) InvalidatePattern(ctx context.Context, p string) error { return nil }

func newUser(id, username string) *userModel.User {
	u := &userModel.User{Username: username}
	u.ID = id
	return u
}

func messageAt(id, sender, recipient, content string, at time.Time) model.Message {
	m := model.Message{SenderID: sender, RecipientID: recipient, Content: content}
	m.ID = id
	m.CreatedAt = at
	return m
}

func TestSendMessage(t *testing.T) {
	t.Run("空内容被拒绝", func(t *testing.T) {
		svc := NewChatService(new(MockMessageRepository), new(MockUserRepository), noopCache{})

		_, err := svc.SendMessage("u1", "u2", "  ")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("接收方不存在", func(t *testing.T) {
		messages := new(MockMessageRepository)
		users := new(MockUserRepository)
		svc := NewChatService(messages, users, noopCache{})

		users.On("GetByID", "u1").Return(newUser("u1", "alice"), nil)
		users.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.SendMessage("u1", "ghost", "hi")
		assert.ErrorIs(t, err, ErrUserNotFound)
		messages.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("发送成功", func(t *testing.T) {
		messages := new(MockMessageRepository)
		users := new(MockUserRepository)
		svc := NewChatService(messages, users, noopCache{})

		users.On("GetByID", "u1").Return(newUser("u1", "alice"), nil)
		users.On("GetByID", "u2").Return(newUser("u2", "bob"), nil)
		messages.On("Create", mock.AnythingOfType("*model.Message")).Return(nil)

		msg, err := svc.SendMessage("u1", "u2", "hi bob")
		assert.NoError(t, err)
		assert.Equal(t, "u1", msg.SenderID)
		assert.Equal(t, "hi bob", msg.Content)
	})
}

func TestEditMessage(t *testing.T) {
	t.Run("只有发送者可以编辑", func(t *testing.T) {
		messages := new(MockMessageRepository)
		svc := NewChatService(messages, new(MockUserRepository), noopCache{})

		msg := messageAt("m1", "u1", "u2", "hi", time.Now())
		messages.On("GetByID", "m1").Return(&msg, nil)

		_, err := svc.EditMessage("m1", "u2", "edited")
		assert.ErrorIs(t, err, ErrNotSender)
	})

	t.Run("编辑成功", func(t *testing.T) {
		messages := new(MockMessageRepository)
		svc := NewChatService(messages, new(MockUserRepository), noopCache{})

		msg := messageAt("m1", "u1", "u2", "hi", time.Now())
		messages.On("GetByID", "m1").Return(&msg, nil)
		messages.On("Update", mock.AnythingOfType("*model.Message")).Return(nil)

		got, err := svc.EditMessage("m1", "u1", "edited")
		assert.NoError(t, err)
		assert.Equal(t, "edited", got.Content)
	})
}

func TestRecentChats(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("按对端分组取最后一条并倒序", func(t *testing.T) {
		messages := new(MockMessageRepository)
		users := new(MockUserRepository)
		svc := NewChatService(messages, users, noopCache{})

		messages.On("GetByUser", "u1").Return([]model.Message{
			messageAt("m1", "u1", "u2", "hi bob", base),
			messageAt("m2", "u2", "u1", "hey alice", base.Add(time.Minute)),
			messageAt("m3", "u3", "u1", "yo", base.Add(2*time.Minute)),
			messageAt("m4", "u1", "u3", "hello carol", base.Add(3*time.Minute)),
		}, nil)
		users.On("GetByID", "u2").Return(newUser("u2", "bob"), nil)
		users.On("GetByID", "u3").Return(newUser("u3", "carol"), nil)

		chats, err := svc.RecentChats("u1")
		assert.NoError(t, err)
		assert.Len(t, chats, 2)
		// carol 的会话最后一条更晚，排在前面
		assert.Equal(t, "u3", chats[0].Partner.ID)
		assert.Equal(t, "m4", chats[0].LastMessage.ID)
		assert.Equal(t, "u2", chats[1].Partner.ID)
		assert.Equal(t, "m2", chats[1].LastMessage.ID)
	})

	t.Run("对端已注销的会话被跳过", func(t *testing.T) {
		messages := new(MockMessageRepository)
		users := new(MockUserRepository)
		svc := NewChatService(messages, users, noopCache{})

		messages.On("GetByUser", "u1").Return([]model.Message{
			messageAt("m1", "u1", "deleted", "hi", base),
			messageAt("m2", "u2", "u1", "hey", base.Add(time.Minute)),
		}, nil)
		users.On("GetByID", "deleted").Return(nil, gorm.ErrRecordNotFound)
		users.On("GetByID", "u2").Return(newUser("u2", "bob"), nil)

		chats, err := svc.RecentChats("u1")
		assert.NoError(t, err)
		assert.Len(t, chats, 1)
		assert.Equal(t, "u2", chats[0].Partner.ID)
	})

	t.Run("没有消息时返回空列表", func(t *testing.T) {
		messages := new(MockMessageRepository)
		svc := NewChatService(messages, new(MockUserRepository), noopCache{})

		messages.On("GetByUser", "u1").Return([]model.Message{}, nil)

		chats, err := svc.RecentChats("u1")
		assert.NoError(t, err)
		assert.Empty(t, chats)
	})
}
