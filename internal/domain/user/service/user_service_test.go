package service

import (
	"testing"

	"skillshare/internal/domain/user/model"
	"skillshare/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	config.GlobalConfig.JWT.Secret = "test-secret-key-0123456789abcdef0123"
	config.GlobalConfig.JWT.Expire = 24
}

// MockUserRepository 模拟用户仓库
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(username string) (bool, error) {
	args := m.Called(username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(email string) (bool, error) {
	args := m.Called(email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) GetList(offset, limit int) ([]model.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) Search(query string, offset, limit int) ([]model.User, error) {
	args := m.Called(query, offset, limit)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func newTestUser(id, username string) *model.User {
	u := &model.User{
		Username:  username,
		Email:     username + "@example.com",
		Followers: []string{},
		Following: []string{},
		Roles:     []string{model.RoleUser},
	}
	u.ID = id
	return u
}

func TestRegister(t *testing.T) {
	t.Run("成功注册，密码被哈希", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("ExistsByUsername", "alice").Return(false, nil)
		repo.On("ExistsByEmail", "alice@example.com").Return(false, nil)
		repo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Register(RegisterInput{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "secret123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
		assert.Equal(t, []string{model.RoleUser}, []string(user.Roles))
		repo.AssertExpectations(t)
	})

	t.Run("用户名已存在", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("ExistsByUsername", "alice").Return(true, nil)

		_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("邮箱已存在", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("ExistsByUsername", "alice").Return(false, nil)
		repo.On("ExistsByEmail", "a@example.com").Return(true, nil)

		_, err := svc.Register(RegisterInput{Username: "alice", Email: "a@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("角色映射", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("ExistsByUsername", "boss").Return(false, nil)
		repo.On("ExistsByEmail", "boss@example.com").Return(false, nil)
		repo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		user, err := svc.Register(RegisterInput{
			Username: "boss",
			Email:    "boss@example.com",
			Password: "x",
			Roles:    []string{"admin", "mod", "whatever"},
		})

		assert.NoError(t, err)
		assert.Equal(t, []string{model.RoleAdmin, model.RoleModerator, model.RoleUser}, []string(user.Roles))
	})
}

func TestLogin(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)

	t.Run("用户名登录成功", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.Password = string(hash)
		repo.On("GetByUsername", "alice").Return(user, nil)

		token, got, err := svc.Login("alice", "", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "u1", got.ID)
	})

	t.Run("邮箱登录成功", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.Password = string(hash)
		repo.On("GetByEmail", "alice@example.com").Return(user, nil)

		token, _, err := svc.Login("", "alice@example.com", "secret123")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("密码错误", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.Password = string(hash)
		repo.On("GetByUsername", "alice").Return(user, nil)

		_, _, err := svc.Login("alice", "", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("用户不存在不泄露细节", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("GetByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.Login("ghost", "", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestFollow(t *testing.T) {
	t.Run("关注后双向列表都更新", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		actor := newTestUser("u1", "alice")
		target := newTestUser("u2", "bob")
		repo.On("GetByID", "u1").Return(actor, nil)
		repo.On("GetByID", "u2").Return(target, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		got, err := svc.Follow("u1", "u2")
		assert.NoError(t, err)
		assert.True(t, got.Following.Contains("u2"))
		assert.True(t, target.Followers.Contains("u1"))
		// 先写被关注方，再写关注方
		repo.AssertNumberOfCalls(t, "Update", 2)
	})

	t.Run("重复关注幂等", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		actor := newTestUser("u1", "alice")
		actor.Following = []string{"u2"}
		target := newTestUser("u2", "bob")
		target.Followers = []string{"u1"}
		repo.On("GetByID", "u1").Return(actor, nil)
		repo.On("GetByID", "u2").Return(target, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		got, err := svc.Follow("u1", "u2")
		assert.NoError(t, err)
		assert.Len(t, got.Following, 1)
		assert.Len(t, target.Followers, 1)
	})

	t.Run("不能关注自己", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		_, err := svc.Follow("u1", "u1")
		assert.ErrorIs(t, err, ErrSelfFollow)
		repo.AssertNotCalled(t, "Update", mock.Anything)
	})

	t.Run("目标不存在", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("GetByID", "u1").Return(newTestUser("u1", "alice"), nil)
		repo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Follow("u1", "ghost")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUnfollow(t *testing.T) {
	t.Run("取消关注双向移除", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		actor := newTestUser("u1", "alice")
		actor.Following = []string{"u2", "u3"}
		target := newTestUser("u2", "bob")
		target.Followers = []string{"u1"}
		repo.On("GetByID", "u1").Return(actor, nil)
		repo.On("GetByID", "u2").Return(target, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		got, err := svc.Unfollow("u1", "u2")
		assert.NoError(t, err)
		assert.False(t, got.Following.Contains("u2"))
		assert.True(t, got.Following.Contains("u3"))
		assert.Empty(t, []string(target.Followers))
	})

	t.Run("未关注时也不报错", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		repo.On("GetByID", "u1").Return(newTestUser("u1", "alice"), nil)
		repo.On("GetByID", "u2").Return(newTestUser("u2", "bob"), nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		_, err := svc.Unfollow("u1", "u2")
		assert.NoError(t, err)
	})
}

func TestGetFollowers(t *testing.T) {
	t.Run("悬挂ID被跳过", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.Followers = []string{"u2", "deleted", "u3"}
		repo.On("GetByID", "u1").Return(user, nil)
		repo.On("GetByID", "u2").Return(newTestUser("u2", "bob"), nil)
		repo.On("GetByID", "deleted").Return(nil, gorm.ErrRecordNotFound)
		repo.On("GetByID", "u3").Return(newTestUser("u3", "carol"), nil)

		followers, err := svc.GetFollowers("u1")
		assert.NoError(t, err)
		assert.Len(t, followers, 2)
		assert.Equal(t, "bob", followers[0].Username)
		assert.Equal(t, "carol", followers[1].Username)
	})
}

func TestUpdateUser(t *testing.T) {
	t.Run("只更新给定字段", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.FirstName = "Alice"
		user.Location = "Shanghai"
		repo.On("GetByID", "u1").Return(user, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		loc := "Beijing"
		got, err := svc.UpdateUser("u1", UpdateInput{Location: &loc})
		assert.NoError(t, err)
		assert.Equal(t, "Beijing", got.Location)
		assert.Equal(t, "Alice", got.FirstName)
	})
}

func TestChangePassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.DefaultCost)

	t.Run("旧密码错误", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.Password = string(hash)
		repo.On("GetByID", "u1").Return(user, nil)

		err := svc.ChangePassword("u1", "wrong", "new-pass")
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("修改成功", func(t *testing.T) {
		repo := new(MockUserRepository)
		svc := NewUserService(repo)

		user := newTestUser("u1", "alice")
		user.Password = string(hash)
		repo.On("GetByID", "u1").Return(user, nil)
		repo.On("Update", mock.AnythingOfType("*model.User")).Return(nil)

		err := svc.ChangePassword("u1", "old-pass", "new-pass")
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-pass")))
	})
}
