package service

import (
	"errors"

	"skillshare/internal/domain/admin/repository"
	postService "skillshare/internal/domain/post/service"
	progressService "skillshare/internal/domain/progress/service"
	userModel "skillshare/internal/domain/user/model"
	userService "skillshare/internal/domain/user/service"
	"skillshare/pkg/logger"

	"go.uber.org/zap"
)

// 服务层错误
var (
	ErrLastAdmin = errors.New("cannot demote the last admin")
	ErrNotAdmin  = errors.New("user is not an admin")
)

// AdminService 管理端服务接口
type AdminService interface {
	ListUsers(page, limit int) ([]userModel.User, int64, error)
	DeleteUser(id string) error
	PromoteUser(id string) (*userModel.User, error)
	DemoteUser(id string) (*userModel.User, error)
	DeletePost(id string) error
	DeleteProgress(id string) error
	DeletePostComment(id string) error
	DeleteProgressComment(id string) error
	PurgeUserPosts(userID string) (int, error)
	PurgeUserProgress(userID string) (int, error)
}

type adminService struct {
	admins     repository.AdminRepository
	users      userService.UserService
	posts      postService.PostService
	progresses progressService.ProgressService
}

// NewAdminService 创建管理端服务
func NewAdminService(
	admins repository.AdminRepository,
	users userService.UserService,
	posts postService.PostService,
	progresses progressService.ProgressService,
) AdminService {
	return &adminService{
		admins:     admins,
		users:      users,
		posts:      posts,
		progresses: progresses,
	}
}

// ListUsers 用户列表
func (s *adminService) ListUsers(page, limit int) ([]userModel.User, int64, error) {
	return s.users.GetUsers(page, limit)
}

// DeleteUser 删除用户
// 不级联清理关注关系，其他用户列表里的悬挂ID由读投影丢弃
func (s *adminService) DeleteUser(id string) error {
	return s.users.DeleteUser(id)
}

// PromoteUser 授予管理员角色，幂等
func (s *adminService) PromoteUser(id string) (*userModel.User, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin() {
		return user, nil
	}

	roles := append([]string{}, user.Roles...)
	roles = append(roles, userModel.RoleAdmin)
	return s.users.UpdateUser(id, userService.UpdateInput{Roles: roles})
}

// DemoteUser 撤销管理员角色，最后一个管理员不能被撤销
func (s *adminService) DemoteUser(id string) (*userModel.User, error) {
	user, err := s.users.GetUser(id)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, ErrNotAdmin
	}

	count, err := s.admins.CountUsersByRole(userModel.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if count <= 1 {
		return nil, ErrLastAdmin
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		if r != userModel.RoleAdmin {
			roles = append(roles, r)
		}
	}
	if len(roles) == 0 {
		roles = []string{userModel.RoleUser}
	}
	return s.users.UpdateUser(id, userService.UpdateInput{Roles: roles})
}

// DeletePost 删除任意帖子
func (s *adminService) DeletePost(id string) error {
	return s.posts.ForceDeletePost(id)
}

// DeleteProgress 删除任意进度更新
func (s *adminService) DeleteProgress(id string) error {
	return s.progresses.ForceDeleteProgress(id)
}

// DeletePostComment 删除任意帖子评论
func (s *adminService) DeletePostComment(id string) error {
	return s.posts.ForceDeleteComment(id)
}

// DeleteProgressComment 删除任意进度评论
func (s *adminService) DeleteProgressComment(id string) error {
	return s.progresses.ForceDeleteComment(id)
}

// PurgeUserPosts 清空某用户的全部帖子，返回删除数量
// 逐条删除以复用评论/通知的级联清理；单条失败记日志后继续
func (s *adminService) PurgeUserPosts(userID string) (int, error) {
	posts, err := s.posts.GetPostsByUser(userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, p := range posts {
		if err := s.posts.ForceDeletePost(p.ID); err != nil {
			if logger.Log != nil {
				logger.Log.Warn("failed to purge post",
					zap.String("post_id", p.ID), zap.Error(err))
			}
			continue
		}
		deleted++
	}
	return deleted, nil
}

// PurgeUserProgress 清空某用户的全部进度更新，返回删除数量
func (s *adminService) PurgeUserProgress(userID string) (int, error) {
	list, err := s.progresses.GetByUser(userID)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, p := range list {
		if err := s.progresses.ForceDeleteProgress(p.ID); err != nil {
			if logger.Log != nil {
				logger.Log.Warn("failed to purge progress",
					zap.String("progress_id", p.ID), zap.Error(err))
			}
			continue
		}
		deleted++
	}
	return deleted, nil
}
