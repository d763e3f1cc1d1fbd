package middleware

import (
	"net/http"
	"strings"

	"skillshare/internal/domain/user/model"
	"skillshare/pkg/response"
	"skillshare/pkg/utils"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	CtxUserID   = "userID"
	CtxUsername = "username"
	CtxRoles    = "roles"
)

// AuthMiddleware JWT认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Authorization header is required")
			c.Abort()
			return
		}

		// 检查格式 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		// 将调用者身份存入上下文
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxRoles, claims.Roles)

		c.Next()
	}
}

// AdminMiddleware 管理员权限中间件
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, exists := c.Get(CtxRoles)
		if !exists {
			response.Error(c, http.StatusUnauthorized, response.ErrNoPermission, "Unauthorized")
			c.Abort()
			return
		}

		roleList, ok := roles.([]string)
		if !ok {
			response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Invalid role format")
			c.Abort()
			return
		}

		for _, r := range roleList {
			if r == model.RoleAdmin {
				c.Next()
				return
			}
		}

		response.Error(c, http.StatusForbidden, response.ErrNoPermission, "Admin permission required")
		c.Abort()
	}
}

// CallerID 从上下文取出当前用户ID，未认证返回空串
func CallerID(c *gin.Context) string {
	if v, ok := c.Get(CtxUserID); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
