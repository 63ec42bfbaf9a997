package handler

import (
	"github.com/gin-gonic/gin"

	"campus-planner/backend/internal/api/middleware"
	pkgerrors "campus-planner/backend/pkg/errors"
	"campus-planner/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, pkgerrors.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, pkgerrors.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, pkgerrors.CodeUnauthorized, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, pkgerrors.CodeUnauthorized, "未认证")
		return "", false
	}
	return s, true
}

// MustAccessStudent 学生只能访问本人数据，管理员与导师不受限。
// 不允许时写入 403 并返回 false。
func MustAccessStudent(c *gin.Context, studentID string) bool {
	userID, ok := MustGetUserID(c)
	if !ok {
		return false
	}
	role, ok := MustGetRole(c)
	if !ok {
		return false
	}
	if role == middleware.RoleAdmin || role == middleware.RoleAdvisor || userID == studentID {
		return true
	}
	response.Forbidden(c, pkgerrors.CodeForbidden, "只能访问本人数据")
	return false
}
