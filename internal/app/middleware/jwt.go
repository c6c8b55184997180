package middleware

import (
	"net/http"
	"strings"

	"gated-community-http-service/internal/domain/services"
	"gated-community-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// authenticate 验证令牌并把身份坐标写入上下文。
// 后续处理器一律从上下文读取(org_id, plot_id, user_id)三元组，
// 不信任客户端在请求参数中提交的同名字段。
func authenticate(c *gin.Context) (*services.JWTClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return nil, false
	}

	tokenString := extractToken(authHeader)
	claims, err := jwtService.ExtractClaims(tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token: " + err.Error(),
			"data":    nil,
		})
		c.Abort()
		return nil, false
	}

	// 存储身份坐标到上下文
	c.Set("userID", claims.UserID)
	c.Set("role", claims.Role)
	c.Set("orgID", claims.OrganizationID)
	if claims.PlotID != nil {
		c.Set("plotID", *claims.PlotID)
	}
	if claims.ResidentID != nil {
		c.Set("residentID", *claims.ResidentID)
	}
	c.Set("claims", claims)

	return claims, true
}

// AuthenticateUser 验证任意有效登录账号
func AuthenticateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c); !ok {
			return
		}
		c.Next()
	}
}

// AuthenticateSystemAdmin 验证小区管理员权限
func AuthenticateSystemAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c)
		if !ok {
			return
		}

		// 检查是否是管理员
		if claims.Role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
