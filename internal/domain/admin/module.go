package admin

import (
	adminHandler "skillshare/internal/domain/admin/handler"
	adminRepository "skillshare/internal/domain/admin/repository"
	adminService "skillshare/internal/domain/admin/service"
	notifRepository "skillshare/internal/domain/notification/repository"
	notifService "skillshare/internal/domain/notification/service"
	postRepository "skillshare/internal/domain/post/repository"
	postService "skillshare/internal/domain/post/service"
	progressRepository "skillshare/internal/domain/progress/repository"
	progressService "skillshare/internal/domain/progress/service"
	userRepository "skillshare/internal/domain/user/repository"
	userService "skillshare/internal/domain/user/service"
	"skillshare/internal/pkg/config"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// AdminModule 管理端模块
type AdminModule struct{}

func init() {
	registry.Register(&AdminModule{})
}

// Name 模块名
func (m *AdminModule) Name() string {
	return "admin"
}

// Priority 最后初始化，复用其他模块的表
func (m *AdminModule) Priority() int {
	return 10
}

// Init 初始化模块
func (m *AdminModule) Init(ctx *registry.ModuleContext) error {
	users := userRepository.NewUserRepository(ctx.DB)
	notifier := notifService.NewNotificationService(notifRepository.NewNotificationRepository(ctx.DB))

	svc := adminService.NewAdminService(
		adminRepository.NewAdminRepository(ctx.DB),
		userService.NewUserService(users),
		postService.NewPostService(
			postRepository.NewPostRepository(ctx.DB),
			postRepository.NewCommentRepository(ctx.DB),
			users,
			notifier,
		),
		progressService.NewProgressService(
			progressRepository.NewProgressRepository(ctx.DB),
			progressRepository.NewProgressCommentRepository(ctx.DB),
			users,
			notifier,
			config.GlobalConfig.App.ProgressMediaPool,
		),
	)
	h := adminHandler.NewAdminHandler(svc)

	admin := ctx.Router.Group("/admin", middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:userId", h.DeleteUser)
		admin.POST("/users/:userId/promote", h.PromoteUser)
		admin.POST("/users/:userId/demote", h.DemoteUser)
		admin.DELETE("/users/:userId/posts", h.PurgeUserPosts)
		admin.DELETE("/users/:userId/progress", h.PurgeUserProgress)
		admin.DELETE("/posts/:postId", h.DeletePost)
		admin.DELETE("/progress/:progressId", h.DeleteProgress)
		admin.DELETE("/comments/:commentId", h.DeletePostComment)
		admin.DELETE("/progress-comments/:commentId", h.DeleteProgressComment)
	}

	return nil
}
