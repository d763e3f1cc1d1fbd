package plan

import (
	"skillshare/internal/domain/plan/handler"
	"skillshare/internal/domain/plan/model"
	"skillshare/internal/domain/plan/repository"
	"skillshare/internal/domain/plan/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// PlanModule 学习计划模块
type PlanModule struct{}

func init() {
	registry.Register(&PlanModule{})
}

// Name 模块名
func (m *PlanModule) Name() string {
	return "plan"
}

// Priority 依赖用户模块的表
func (m *PlanModule) Priority() int {
	return 6
}

// Init 初始化模块
func (m *PlanModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.LearningPlan{}); err != nil {
		return err
	}

	svc := service.NewPlanService(repository.NewPlanRepository(ctx.DB))
	h := handler.NewPlanHandler(svc)

	plans := ctx.Router.Group("/learning-plans", middleware.AuthMiddleware())
	{
		plans.POST("", h.Create)
		plans.GET("", h.List)
		plans.GET("/:id", h.Get)
		plans.PUT("/:id", h.Update)
		plans.DELETE("/:id", h.Delete)
	}

	return nil
}
