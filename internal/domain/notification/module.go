package notification

import (
	"skillshare/internal/domain/notification/handler"
	"skillshare/internal/domain/notification/model"
	"skillshare/internal/domain/notification/repository"
	"skillshare/internal/domain/notification/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// NotificationModule 通知模块
type NotificationModule struct{}

func init() {
	registry.Register(&NotificationModule{})
}

// Name 模块名
func (m *NotificationModule) Name() string {
	return "notification"
}

// Priority 在用户模块之后、内容模块之前
func (m *NotificationModule) Priority() int {
	return 2
}

// Init 初始化模块
func (m *NotificationModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.Notification{}); err != nil {
		return err
	}

	repo := repository.NewNotificationRepository(ctx.DB)
	svc := service.NewNotificationService(repo)
	h := handler.NewNotificationHandler(svc)

	notifications := ctx.Router.Group("/notifications", middleware.AuthMiddleware())
	{
		notifications.GET("", h.List)
		notifications.PUT("/:id/read", h.MarkRead)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.DELETE("/:id", h.Delete)
	}

	return nil
}
