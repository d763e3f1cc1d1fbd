package post

import (
	notifRepository "skillshare/internal/domain/notification/repository"
	notifService "skillshare/internal/domain/notification/service"
	"skillshare/internal/domain/post/handler"
	"skillshare/internal/domain/post/model"
	"skillshare/internal/domain/post/repository"
	"skillshare/internal/domain/post/service"
	userRepository "skillshare/internal/domain/user/repository"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// PostModule 帖子模块
type PostModule struct{}

func init() {
	registry.Register(&PostModule{})
}

// Name 模块名
func (m *PostModule) Name() string {
	return "post"
}

// Priority 依赖用户和通知模块的表
func (m *PostModule) Priority() int {
	return 3
}

// Init 初始化模块
func (m *PostModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.Post{}, &model.Comment{}); err != nil {
		return err
	}

	svc := service.NewPostService(
		repository.NewPostRepository(ctx.DB),
		repository.NewCommentRepository(ctx.DB),
		userRepository.NewUserRepository(ctx.DB),
		notifService.NewNotificationService(notifRepository.NewNotificationRepository(ctx.DB)),
	)
	h := handler.NewPostHandler(svc)

	posts := ctx.Router.Group("/posts", middleware.AuthMiddleware())
	{
		posts.POST("", h.Create)
		posts.GET("", h.List)
		posts.GET("/:id", h.Get)
		posts.PUT("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
		posts.POST("/:id/like", h.ToggleLike)
		posts.POST("/:id/comments", h.AddComment)
		posts.GET("/:id/comments", h.GetComments)
	}

	comments := ctx.Router.Group("/comments", middleware.AuthMiddleware())
	{
		comments.GET("/:id", h.GetComment)
		comments.PUT("/:id", h.UpdateComment)
		comments.DELETE("/:id", h.DeleteComment)
	}

	return nil
}
