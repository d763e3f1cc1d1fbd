package handler

import (
	"errors"
	"net/http"

	"skillshare/internal/domain/user/service"
	"skillshare/internal/pkg/middleware"
	"skillshare/pkg/response"
	"skillshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

// NewUserHandler 创建处理器
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// SignupInput 注册输入
type SignupInput struct {
	Username  string   `json:"username" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Skills    []string `json:"skills"`
	Roles     []string `json:"role"`
}

// SigninInput 登录输入，用户名或邮箱二选一
type SigninInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserInput 资料更新输入，缺省字段不修改
type UpdateUserInput struct {
	Username       *string  `json:"username"`
	Email          *string  `json:"email"`
	Password       *string  `json:"password"`
	FirstName      *string  `json:"firstName"`
	LastName       *string  `json:"lastName"`
	ContactNumber  *string  `json:"contactNumber"`
	ProfilePicture *string  `json:"profilePicture"`
	Location       *string  `json:"location"`
	SocialLinks    *string  `json:"socialLinks"`
	Skills         []string `json:"skills"`
}

// PasswordInput 密码校验输入
type PasswordInput struct {
	Password string `json:"password" binding:"required"`
}

// ChangePasswordInput 修改密码输入
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// mapError 服务错误转 HTTP 响应
func mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
		response.Error(c, http.StatusBadRequest, response.ErrUserExists, err.Error())
	case errors.Is(err, service.ErrSelfFollow):
		response.Error(c, http.StatusBadRequest, response.ErrSelfFollow, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
	case errors.Is(err, service.ErrPasswordIncorrect):
		response.Error(c, http.StatusUnauthorized, response.ErrPasswordWrong, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
	}
}

// Signup 处理注册请求
func (h *UserHandler) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.Register(service.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Skills:    input.Skills,
		Roles:     input.Roles,
	})
	if err != nil {
		mapError(c, err)
		return
	}

	response.Created(c, user)
}

// Signin 处理登录请求
func (h *UserHandler) Signin(c *gin.Context) {
	var input SigninInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.Username == "" && input.Email == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Either username or email must be provided")
		return
	}

	token, user, err := h.service.Login(input.Username, input.Email, input.Password)
	if err != nil {
		mapError(c, err)
		return
	}

	response.Success(c, gin.H{
		"token":    token,
		"userId":   user.ID,
		"username": user.Username,
		"email":    user.Email,
		"roles":    user.Roles,
	})
}

// CurrentUser 返回当前登录用户
func (h *UserHandler) CurrentUser(c *gin.Context) {
	user, err := h.service.GetUser(middleware.CallerID(c))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// GetUsers 列表或搜索；query/username/email 参数互斥，按优先级取
func (h *UserHandler) GetUsers(c *gin.Context) {
	if username := c.Query("username"); username != "" {
		user, err := h.service.GetUserByUsername(username)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, user)
		return
	}
	if email := c.Query("email"); email != "" {
		user, err := h.service.GetUserByEmail(email)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, user)
		return
	}

	var p utils.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if query := c.Query("query"); query != "" {
		users, err := h.service.SearchUsers(query, p.Page, p.Limit)
		if err != nil {
			mapError(c, err)
			return
		}
		response.Success(c, gin.H{
			"users":      users,
			"totalItems": len(users),
		})
		return
	}

	users, total, err := h.service.GetUsers(p.Page, p.Limit)
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, utils.PageResult{List: users, Total: total, Page: p.Page, Limit: p.Limit})
}

// GetUser 获取单个用户
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// requireSelfOrAdmin 只有本人或管理员可操作
func requireSelfOrAdmin(c *gin.Context, targetID string) bool {
	if middleware.CallerID(c) == targetID {
		return true
	}
	if roles, ok := c.Get(middleware.CtxRoles); ok {
		if list, ok := roles.([]string); ok {
			for _, r := range list {
				if r == "ROLE_ADMIN" {
					return true
				}
			}
		}
	}
	response.Error(c, http.StatusForbidden, response.ErrNoPermission, "You don't have permission to modify this user")
	return false
}

// UpdateUser 更新用户
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.UpdateUser(id, service.UpdateInput{
		Username:       input.Username,
		Email:          input.Email,
		Password:       input.Password,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		ContactNumber:  input.ContactNumber,
		ProfilePicture: input.ProfilePicture,
		Location:       input.Location,
		SocialLinks:    input.SocialLinks,
		Skills:         input.Skills,
	})
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户（本人或管理员）
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	if err := h.service.DeleteUser(id); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "User deleted successfully"})
}

// Follow 关注目标用户
func (h *UserHandler) Follow(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	user, err := h.service.Follow(id, c.Param("targetId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// Unfollow 取消关注
func (h *UserHandler) Unfollow(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	user, err := h.service.Unfollow(id, c.Param("targetId"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, user)
}

// GetFollowers 粉丝列表
func (h *UserHandler) GetFollowers(c *gin.Context) {
	followers, err := h.service.GetFollowers(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{
		"followers": followers,
		"count":     len(followers),
	})
}

// GetFollowing 关注列表
func (h *UserHandler) GetFollowing(c *gin.Context) {
	following, err := h.service.GetFollowing(c.Param("id"))
	if err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{
		"following": following,
		"count":     len(following),
	})
}

// VerifyPassword 校验当前密码
func (h *UserHandler) VerifyPassword(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	var input PasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.VerifyPassword(id, input.Password); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Password verified successfully"})
}

// ChangePassword 修改密码
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id := c.Param("id")
	if !requireSelfOrAdmin(c, id) {
		return
	}

	var input ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.ChangePassword(id, input.CurrentPassword, input.NewPassword); err != nil {
		mapError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Password changed successfully"})
}
