package service

import (
	"errors"
	"strings"

	"skillshare/internal/domain/user/model"
	"skillshare/internal/domain/user/repository"
	"skillshare/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 服务层错误
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfFollow         = errors.New("users cannot follow themselves")
	ErrPasswordIncorrect  = errors.New("current password is incorrect")
)

// RegisterInput 注册输入
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Skills    []string
	Roles     []string
}

// UpdateInput 资料更新输入，nil 字段保持不变
type UpdateInput struct {
	Username       *string
	Email          *string
	Password       *string
	FirstName      *string
	LastName       *string
	ContactNumber  *string
	ProfilePicture *string
	Location       *string
	SocialLinks    *string
	Skills         []string
	Roles          []string
}

// UserService 用户服务接口
type UserService interface {
	Register(input RegisterInput) (*model.User, error)
	Login(username, email, password string) (string, *model.User, error)
	GetUser(id string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUsers(page, limit int) ([]model.User, int64, error)
	SearchUsers(query string, page, limit int) ([]model.User, error)
	UpdateUser(id string, input UpdateInput) (*model.User, error)
	DeleteUser(id string) error
	VerifyPassword(id, password string) error
	ChangePassword(id, currentPassword, newPassword string) error

	Follow(actorID, targetID string) (*model.User, error)
	Unfollow(actorID, targetID string) (*model.User, error)
	GetFollowers(userID string) ([]model.User, error)
	GetFollowing(userID string) ([]model.User, error)
}

// userService 实现
type userService struct {
	repo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// mapRoles 注册时的角色映射，未指定时默认普通用户
func mapRoles(requested []string) []string {
	if len(requested) == 0 {
		return []string{model.RoleUser}
	}
	roles := make([]string, 0, len(requested))
	for _, r := range requested {
		switch r {
		case "admin":
			roles = append(roles, model.RoleAdmin)
		case "mod":
			roles = append(roles, model.RoleModerator)
		default:
			roles = append(roles, model.RoleUser)
		}
	}
	return roles
}

// Register 注册新用户
func (s *userService) Register(input RegisterInput) (*model.User, error) {
	exists, err := s.repo.ExistsByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	exists, err = s.repo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hash),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Skills:    input.Skills,
		Roles:     mapRoles(input.Roles),
		Followers: []string{},
		Following: []string{},
	}

	if err := s.repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户名或邮箱登录，成功返回 JWT
func (s *userService) Login(username, email, password string) (string, *model.User, error) {
	var (
		user *model.User
		err  error
	)
	if username != "" {
		user, err = s.repo.GetByUsername(username)
	} else {
		user, err = s.repo.GetByEmail(email)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(user.ID, user.Username, user.Roles)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(id string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByUsername(username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(email string) (*model.User, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUsers 获取用户列表（分页）
func (s *userService) GetUsers(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	return s.repo.GetList(offset, limit)
}

// SearchUsers 按用户名/姓名搜索
func (s *userService) SearchUsers(query string, page, limit int) ([]model.User, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Search(strings.TrimSpace(query), (page-1)*limit, limit)
}

// UpdateUser 更新用户资料，nil 字段不变
func (s *userService) UpdateUser(id string, input UpdateInput) (*model.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hash)
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.ContactNumber != nil {
		user.ContactNumber = *input.ContactNumber
	}
	if input.ProfilePicture != nil {
		user.ProfilePicture = *input.ProfilePicture
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.SocialLinks != nil {
		user.SocialLinks = *input.SocialLinks
	}
	if input.Skills != nil {
		user.Skills = input.Skills
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser 删除用户
// 不做级联清理：其他用户 followers/following 里的悬挂ID由读投影丢弃
func (s *userService) DeleteUser(id string) error {
	if _, err := s.GetUser(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// VerifyPassword 校验当前密码
func (s *userService) VerifyPassword(id, password string) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return ErrPasswordIncorrect
	}
	return nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(id, currentPassword, newPassword string) error {
	if err := s.VerifyPassword(id, currentPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	return s.repo.Update(user)
}

// Follow 关注
// 两条用户记录分两次独立写入（先被关注方，再关注方），没有跨记录事务；
// 两侧更新都是幂等的，中途失败后重试即可收敛。
func (s *userService) Follow(actorID, targetID string) (*model.User, error) {
	if actorID == targetID {
		return nil, ErrSelfFollow
	}

	actor, err := s.GetUser(actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	target.Followers = target.Followers.Add(actorID)
	if err := s.repo.Update(target); err != nil {
		return nil, err
	}

	actor.Following = actor.Following.Add(targetID)
	if err := s.repo.Update(actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// Unfollow 取消关注，幂等
func (s *userService) Unfollow(actorID, targetID string) (*model.User, error) {
	actor, err := s.GetUser(actorID)
	if err != nil {
		return nil, err
	}
	target, err := s.GetUser(targetID)
	if err != nil {
		return nil, err
	}

	target.Followers = target.Followers.Remove(actorID)
	if err := s.repo.Update(target); err != nil {
		return nil, err
	}

	actor.Following = actor.Following.Remove(targetID)
	if err := s.repo.Update(actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// GetFollowers 粉丝列表，悬挂ID直接跳过
func (s *userService) GetFollowers(userID string) ([]model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(user.Followers), nil
}

// GetFollowing 关注列表，悬挂ID直接跳过
func (s *userService) GetFollowing(userID string) ([]model.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}
	return s.resolveUsers(user.Following), nil
}

func (s *userService) resolveUsers(ids []string) []model.User {
	users := make([]model.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.repo.GetByID(id)
		if err != nil {
			continue
		}
		users = append(users, *u)
	}
	return users
}
