package service

import (
	"errors"
	"strings"
	"testing"

	"skillshare/internal/domain/notification/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockNotificationRepository 模拟通知仓库
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(n *model.Notification) error {
	return m.Called(n).Error(0)
}

func (m *MockNotificationRepository) GetByID(id string) (*model.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) GetByRecipient(recipientID string, unreadOnly bool) ([]model.Notification, error) {
	args := m.Called(recipientID, unreadOnly)
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Update(n *model.Notification) error {
	return m.Called(n).Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(recipientID string) error {
	return m.Called(recipientID).Error(0)
}

func (m *MockNotificationRepository) Delete(id string) error {
	return m.Called(id).Error(0)
}

func (m *MockNotificationRepository) DeleteBySubject(subjectID string) error {
	return m.Called(subjectID).Error(0)
}

func TestExcerpt(t *testing.T) {
	t.Run("不超过50个字符原样返回", func(t *testing.T) {
		s := strings.Repeat("x", 50)
		assert.Equal(t, s, Excerpt(s))
	})

	t.Run("超过50个字符截断为47加省略号", func(t *testing.T) {
		s := strings.Repeat("x", 51)
		got := Excerpt(s)
		assert.Equal(t, strings.Repeat("x", 47)+"...", got)
		assert.Len(t, []rune(got), 50)
	})

	t.Run("按字符而不是字节截断", func(t *testing.T) {
		s := strings.Repeat("技", 51)
		got := Excerpt(s)
		assert.Equal(t, strings.Repeat("技", 47)+"...", got)
	})
}

func TestNotify(t *testing.T) {
	t.Run("自己对自己的互动不产生通知", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		svc.Notify("u1", "u1", "p1", model.TypeLike, "alice liked your post")
		repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("他人互动创建通知", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		repo.On("Create", mock.MatchedBy(func(n *model.Notification) bool {
			return n.RecipientID == "owner" && n.SenderID == "u2" &&
				n.Type == model.TypeLike && !n.Read
		})).Return(nil)

		svc.Notify("owner", "u2", "p1", model.TypeLike, "bob liked your post")
		repo.AssertExpectations(t)
	})

	t.Run("创建失败不向上传播", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		repo.On("Create", mock.Anything).Return(errors.New("db down"))

		// 互动写入已完成，通知失败只记日志
		assert.NotPanics(t, func() {
			svc.Notify("owner", "u2", "p1", model.TypeComment, "bob commented")
		})
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("接收方标记已读", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		n := &model.Notification{RecipientID: "u1"}
		n.ID = "n1"
		repo.On("GetByID", "n1").Return(n, nil)
		repo.On("Update", mock.AnythingOfType("*model.Notification")).Return(nil)

		got, err := svc.MarkRead("n1", "u1")
		assert.NoError(t, err)
		assert.True(t, got.Read)
	})

	t.Run("已读的不再更新", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		n := &model.Notification{RecipientID: "u1", Read: true}
		n.ID = "n1"
		repo.On("GetByID", "n1").Return(n, nil)

		_, err := svc.MarkRead("n1", "u1")
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("非接收方被拒绝", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		n := &model.Notification{RecipientID: "u1"}
		n.ID = "n1"
		repo.On("GetByID", "n1").Return(n, nil)

		_, err := svc.MarkRead("n1", "u2")
		assert.ErrorIs(t, err, ErrNotRecipient)
	})

	t.Run("通知不存在", func(t *testing.T) {
		repo := new(MockNotificationRepository)
		svc := NewNotificationService(repo)

		repo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.MarkRead("ghost", "u1")
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})
}
