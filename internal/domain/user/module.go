package user

import (
	"skillshare/internal/domain/user/handler"
	"skillshare/internal/domain/user/model"
	"skillshare/internal/domain/user/repository"
	"skillshare/internal/domain/user/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/internal/pkg/registry"
)

// UserModule 用户模块
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

// Name 模块名
func (m *UserModule) Name() string {
	return "user"
}

// Priority 用户模块最先初始化，其他模块依赖用户表
func (m *UserModule) Priority() int {
	return 1
}

// Init 初始化模块
func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	if err := ctx.DB.AutoMigrate(&model.User{}); err != nil {
		return err
	}

	repo := repository.NewUserRepository(ctx.DB)
	svc := service.NewCachedUserService(service.NewUserService(repo), ctx.Cache)
	h := handler.NewUserHandler(svc)

	auth := ctx.Router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
		auth.GET("/me", middleware.AuthMiddleware(), h.CurrentUser)
	}

	users := ctx.Router.Group("/users", middleware.AuthMiddleware())
	{
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
		users.POST("/:id/follow/:targetId", h.Follow)
		users.POST("/:id/unfollow/:targetId", h.Unfollow)
		users.GET("/:id/followers", h.GetFollowers)
		users.GET("/:id/following", h.GetFollowing)
		users.POST("/:id/verify-password", h.VerifyPassword)
		users.POST("/:id/change-password", h.ChangePassword)
	}

	return nil
}
