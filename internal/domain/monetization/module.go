package monetization

import (
	"skillshare/internal/domain/monetization/handler"
	"skillshare/internal/domain/monetization/model"
	"skillshare/internal/domain/monetization/repository"
	"skillshare/internal/domain/monetization/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// MonetizationModule 变现申请模块
type MonetizationModule struct{}

func init() {
	registry.Register(&MonetizationModule{})
}

// Name 模块名
func (m *MonetizationModule) Name() string {
	return "monetization"
}

// Priority 依赖用户模块的表
func (m *MonetizationModule) Priority() int {
	return 7
}

// Init 初始化模块
func (m *MonetizationModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.MonetizationRequest{}); err != nil {
		return err
	}

	svc := service.NewMonetizationService(repository.NewMonetizationRepository(ctx.DB))
	h := handler.NewMonetizationHandler(svc)

	monetization := ctx.Router.Group("/monetization", middleware.AuthMiddleware())
	{
		monetization.POST("", h.Submit)
		monetization.GET("", h.List)
		monetization.DELETE("/:id", h.Delete)
	}

	return nil
}
