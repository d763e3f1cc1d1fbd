package service

import (
	"strings"
	"testing"

	notifModel "skillshare/internal/domain/notification/model"
	"skillshare/internal/domain/post/model"
	userModel "skillshare/internal/domain/user/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPostRepository 模拟帖子仓库
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) GetByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostRepository) GetList(offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *MockPostRepository) GetByUserID(userID string) ([]model.Post, error) {
	args := m.Called(userID)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) GetByCategory(category string, offset, limit int) ([]model.Post, error) {
	args := m.Called(category, offset, limit)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) SearchByTitle(query string, offset, limit int) ([]model.Post, error) {
	args := m.Called(query, offset, limit)
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostRepository) Update(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockCommentRepository 模拟评论仓库
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByPostID(postID string) ([]model.Comment, error) {
	args := m.Called(postID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteByPostID(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

// MockUserRepository 模拟用户仓库，只实现被用到的查询
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

// MockNotificationService 模拟通知服务
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(recipientID, senderID, subjectID, notifType, content string) {
	m.Called(recipientID, senderID, subjectID, notifType, content)
}

func (m *MockNotificationService) GetForUser(userID string, unreadOnly bool) ([]notifModel.Notification, error) {
	args := m.Called(userID, unreadOnly)
	return args.Get(0).([]notifModel.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(id, userID string) (*notifModel.Notification, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifModel.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkAllRead(userID string) error {
	return m.Called(userID).Error(0)
}

func (m *MockNotificationService) Delete(id, userID string) error {
	return m.Called(id, userID).Error(0)
}

func (m *MockNotificationService) DeleteBySubject(subjectID string) error {
	return m.Called(subjectID).Error(0)
}

type postFixture struct {
	posts    *MockPostRepository
	comments *MockCommentRepository
	users    *MockUserRepository
	notifier *MockNotificationService
	svc      PostService
}

func newPostFixture() *postFixture {
	f := &postFixture{
		posts:    new(MockPostRepository),
		comments: new(MockCommentRepository),
		users:    new(MockUserRepository),
		notifier: new(MockNotificationService),
	}
	f.svc = NewPostService(f.posts, f.comments, f.users, f.notifier)
	return f
}

func newTestPost(id, ownerID string) *model.Post {
	p := &model.Post{
		UserID:       ownerID,
		Title:        "learn go",
		LikedUserIDs: []string{},
	}
	p.ID = id
	return p
}

func newActor(id, username string) *userModel.User {
	u := &userModel.User{Username: username}
	u.ID = id
	return u
}

func TestCreatePost(t *testing.T) {
	t.Run("媒体超过三个被拒绝", func(t *testing.T) {
		f := newPostFixture()

		_, err := f.svc.CreatePost("u1", CreatePostInput{
			Title: "too much media",
			Media: []model.MediaItem{
				{URL: "a.jpg", Type: "image"},
				{URL: "b.jpg", Type: "image"},
				{URL: "c.jpg", Type: "image"},
				{URL: "d.jpg", Type: "image"},
			},
		})
		assert.ErrorIs(t, err, ErrTooManyMedia)
		f.posts.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("非法媒体类型被拒绝", func(t *testing.T) {
		f := newPostFixture()

		_, err := f.svc.CreatePost("u1", CreatePostInput{
			Title: "bad media",
			Media: []model.MediaItem{{URL: "a.pdf", Type: "document"}},
		})
		assert.ErrorIs(t, err, ErrBadMediaType)
	})

	t.Run("成功创建", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("Create", mock.AnythingOfType("*model.Post")).Return(nil)

		post, err := f.svc.CreatePost("u1", CreatePostInput{
			Title:       "my post",
			Description: "hello",
			Media:       []model.MediaItem{{URL: "a.jpg", Type: "image"}},
		})
		assert.NoError(t, err)
		assert.Equal(t, "u1", post.UserID)
		assert.Equal(t, 0, post.LikeCount)
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("切换两次恢复原状", func(t *testing.T) {
		f := newPostFixture()

		post := newTestPost("p1", "owner")
		f.posts.On("GetByID", "p1").Return(post, nil)
		f.posts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		f.users.On("GetByID", "u2").Return(newActor("u2", "bob"), nil)
		f.notifier.On("Notify", "owner", "u2", "p1", notifModel.TypeLike, mock.Anything).Return()

		first, err := f.svc.ToggleLike("p1", "u2")
		assert.NoError(t, err)
		assert.True(t, first.LikedByCurrentUser)
		assert.Equal(t, 1, first.LikeCount)

		second, err := f.svc.ToggleLike("p1", "u2")
		assert.NoError(t, err)
		assert.False(t, second.LikedByCurrentUser)
		assert.Equal(t, 0, second.LikeCount)
		assert.False(t, post.LikedUserIDs.Contains("u2"))
	})

	t.Run("点赞他人帖子产生一条LIKE通知", func(t *testing.T) {
		f := newPostFixture()

		post := newTestPost("p1", "owner")
		f.posts.On("GetByID", "p1").Return(post, nil)
		f.posts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		f.users.On("GetByID", "u2").Return(newActor("u2", "bob"), nil)
		f.notifier.On("Notify", "owner", "u2", "p1", notifModel.TypeLike, "bob liked your post").Return()

		_, err := f.svc.ToggleLike("p1", "u2")
		assert.NoError(t, err)
		f.notifier.AssertNumberOfCalls(t, "Notify", 1)
	})

	t.Run("取消点赞不发通知", func(t *testing.T) {
		f := newPostFixture()

		post := newTestPost("p1", "owner")
		post.LikedUserIDs = []string{"u2"}
		post.LikeCount = 1
		f.posts.On("GetByID", "p1").Return(post, nil)
		f.posts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)

		result, err := f.svc.ToggleLike("p1", "u2")
		assert.NoError(t, err)
		assert.False(t, result.LikedByCurrentUser)
		f.notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("点赞自己的帖子计数更新", func(t *testing.T) {
		f := newPostFixture()

		post := newTestPost("p1", "u1")
		f.posts.On("GetByID", "p1").Return(post, nil)
		f.posts.On("Update", mock.AnythingOfType("*model.Post")).Return(nil)
		f.users.On("GetByID", "u1").Return(newActor("u1", "alice"), nil)
		// 自己给自己点赞仍会调用 Notify，由通知服务内部跳过
		f.notifier.On("Notify", "u1", "u1", "p1", notifModel.TypeLike, mock.Anything).Return()

		result, err := f.svc.ToggleLike("p1", "u1")
		assert.NoError(t, err)
		assert.Equal(t, 1, result.LikeCount)
	})

	t.Run("帖子不存在", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.ToggleLike("ghost", "u1")
		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestAddComment(t *testing.T) {
	t.Run("空内容被拒绝", func(t *testing.T) {
		f := newPostFixture()

		_, err := f.svc.AddComment("p1", "u2", "   ")
		assert.ErrorIs(t, err, ErrEmptyContent)
	})

	t.Run("评论成功并通知帖子作者", func(t *testing.T) {
		f := newPostFixture()

		post := newTestPost("p1", "owner")
		f.posts.On("GetByID", "p1").Return(post, nil)
		f.comments.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)
		actor := newActor("u2", "bob")
		actor.FirstName = "Bob"
		actor.LastName = "Lee"
		f.users.On("GetByID", "u2").Return(actor, nil)
		f.notifier.On("Notify", "owner", "u2", "p1", notifModel.TypeComment,
			"Bob Lee commented on your post: nice work").Return()

		comment, err := f.svc.AddComment("p1", "u2", "nice work")
		assert.NoError(t, err)
		assert.Equal(t, "nice work", comment.Content)
		f.notifier.AssertExpectations(t)
	})

	t.Run("超长评论在通知里被截断", func(t *testing.T) {
		f := newPostFixture()

		long := strings.Repeat("a", 60)
		post := newTestPost("p1", "owner")
		f.posts.On("GetByID", "p1").Return(post, nil)
		f.comments.On("Create", mock.AnythingOfType("*model.Comment")).Return(nil)
		f.users.On("GetByID", "u2").Return(newActor("u2", "bob"), nil)
		f.notifier.On("Notify", "owner", "u2", "p1", notifModel.TypeComment,
			"bob commented on your post: "+strings.Repeat("a", 47)+"...").Return()

		_, err := f.svc.AddComment("p1", "u2", long)
		assert.NoError(t, err)
		f.notifier.AssertExpectations(t)
	})
}

func TestDeleteComment(t *testing.T) {
	comment := func() *model.Comment {
		c := &model.Comment{PostID: "p1", UserID: "author", Content: "hey"}
		c.ID = "c1"
		return c
	}

	t.Run("作者可以删", func(t *testing.T) {
		f := newPostFixture()
		f.comments.On("GetByID", "c1").Return(comment(), nil)
		f.comments.On("Delete", "c1").Return(nil)

		assert.NoError(t, f.svc.DeleteComment("c1", "author"))
	})

	t.Run("帖子作者可以删", func(t *testing.T) {
		f := newPostFixture()
		f.comments.On("GetByID", "c1").Return(comment(), nil)
		f.posts.On("GetByID", "p1").Return(newTestPost("p1", "owner"), nil)
		f.comments.On("Delete", "c1").Return(nil)

		assert.NoError(t, f.svc.DeleteComment("c1", "owner"))
	})

	t.Run("无关用户不能删", func(t *testing.T) {
		f := newPostFixture()
		f.comments.On("GetByID", "c1").Return(comment(), nil)
		f.posts.On("GetByID", "p1").Return(newTestPost("p1", "owner"), nil)

		assert.ErrorIs(t, f.svc.DeleteComment("c1", "stranger"), ErrNotOwner)
		f.comments.AssertNotCalled(t, "Delete", mock.Anything)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("删除帖子连带清理评论和通知", func(t *testing.T) {
		f := newPostFixture()

		f.posts.On("GetByID", "p1").Return(newTestPost("p1", "owner"), nil)
		f.comments.On("DeleteByPostID", "p1").Return(nil)
		f.notifier.On("DeleteBySubject", "p1").Return(nil)
		f.posts.On("Delete", "p1").Return(nil)

		assert.NoError(t, f.svc.DeletePost("p1", "owner"))
		f.comments.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("非作者不能删", func(t *testing.T) {
		f := newPostFixture()
		f.posts.On("GetByID", "p1").Return(newTestPost("p1", "owner"), nil)

		assert.ErrorIs(t, f.svc.DeletePost("p1", "stranger"), ErrNotOwner)
		f.posts.AssertNotCalled(t, "Delete", mock.Anything)
	})
}
