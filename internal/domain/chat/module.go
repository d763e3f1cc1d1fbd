package chat

import (
	"skillshare/internal/domain/chat/handler"
	"skillshare/internal/domain/chat/model"
	"skillshare/internal/domain/chat/repository"
	"skillshare/internal/domain/chat/service"
	userRepository "skillshare/internal/domain/user/repository"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// ChatModule 私信模块
type ChatModule struct{}

func init() {
	registry.Register(&ChatModule{})
}

// Name 模块名
func (m *ChatModule) Name() string {
	return "chat"
}

// Priority 依赖用户模块的表
func (m *ChatModule) Priority() int {
	return 5
}

// Init 初始化模块
func (m *ChatModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.Message{}); err != nil {
		return err
	}

	svc := service.NewChatService(
		repository.NewMessageRepository(ctx.DB),
		userRepository.NewUserRepository(ctx.DB),
		ctx.Cache,
	)
	h := handler.NewChatHandler(svc)

	chat := ctx.Router.Group("/chat", middleware.AuthMiddleware())
	{
		chat.POST("/messages", h.Send)
		chat.PUT("/messages/:messageId", h.Edit)
		chat.DELETE("/messages/:messageId", h.Delete)
		chat.GET("/conversations/:userId", h.Conversation)
		chat.GET("/users/:userId/messages", h.UserMessages)
		chat.GET("/users/:userId/recent", h.Recent)
	}

	return nil
}
