package progress

import (
	notifRepository "skillshare/internal/domain/notification/repository"
	notifService "skillshare/internal/domain/notification/service"
	"skillshare/internal/domain/progress/handler"
	"skillshare/internal/domain/progress/model"
	"skillshare/internal/domain/progress/repository"
	"skillshare/internal/domain/progress/service"
	userRepository "skillshare/internal/domain/user/repository"
	"skillshare/internal/pkg/config"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// ProgressModule 进度更新模块
type ProgressModule struct{}

func init() {
	registry.Register(&ProgressModule{})
}

// Name 模块名
func (m *ProgressModule) Name() string {
	return "progress"
}

// Priority 依赖用户和通知模块的表
func (m *ProgressModule) Priority() int {
	return 4
}

// Init 初始化模块
func (m *ProgressModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.Progress{}, &model.ProgressComment{}); err != nil {
		return err
	}

	svc := service.NewProgressService(
		repository.NewProgressRepository(ctx.DB),
		repository.NewProgressCommentRepository(ctx.DB),
		userRepository.NewUserRepository(ctx.DB),
		notifService.NewNotificationService(notifRepository.NewNotificationRepository(ctx.DB)),
		config.GlobalConfig.App.ProgressMediaPool,
	)
	h := handler.NewProgressHandler(svc)

	// 模板目录挂在独立前缀下，避免和 /progress/:id 冲突
	ctx.Router.GET("/progress-templates", middleware.AuthMiddleware(), h.Templates)

	progress := ctx.Router.Group("/progress", middleware.AuthMiddleware())
	{
		progress.POST("", h.Create)
		progress.GET("", h.List)
		progress.GET("/:id", h.Get)
		progress.PUT("/:id", h.Update)
		progress.DELETE("/:id", h.Delete)
		progress.POST("/:id/like", h.AddLike)
		progress.DELETE("/:id/like", h.RemoveLike)
		progress.POST("/:id/comments", h.AddComment)
		progress.GET("/:id/comments", h.GetComments)
	}

	comments := ctx.Router.Group("/progress-comments", middleware.AuthMiddleware())
	{
		comments.POST("/:commentId/replies", h.AddReply)
		comments.GET("/:commentId/replies", h.GetReplies)
		comments.PUT("/:commentId", h.UpdateComment)
		comments.DELETE("/:commentId", h.DeleteComment)
	}

	return nil
}
