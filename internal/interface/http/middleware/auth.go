package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/account"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/response"
)

// AccessTokenCookie 页面登录后保存Access Token的Cookie名称
const AccessTokenCookie = "access_token"

const (
	ctxAccountID = "account_id"
	ctxUsername  = "username"
	ctxRole      = "role"
	ctxClaims    = "claims"
)

// TokenBlacklist 黑名单查询端口,由redis.SessionStore实现
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, tokenID string) (bool, error)
}

var errMissingToken = errors.New("missing token")

// AuthMiddleware JWT认证中间件
// 设计说明:
// 1. JSON API从Authorization: Bearer读取Token,页面从HttpOnly Cookie读取,共用同一套校验
// 2. 校验签名、过期时间和Token类型(只接受Access Token)
// 3. 按jti检查黑名单(登出后Token立即失效)
// 4. 将账号信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, blacklist: blacklist}
}

// RequireAuth 要求登录(JSON API)
// 使用方式:
//
//	authorized := r.Group("/api/v1")
//	authorized.Use(authMiddleware.RequireAuth())
//	authorized.POST("/books", handler.CreateBook)
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			if errors.Is(err, errMissingToken) {
				err = apperrors.ErrUnauthorized
			}
			response.Error(c, err)
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// RequireWebAuth 要求登录(页面),未登录时重定向到登录页
func (m *AuthMiddleware) RequireWebAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			target := loginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth 可选登录
// 有合法Token时注入账号信息,否则作为匿名访问继续
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, err := m.authenticate(c); err == nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRole 要求指定角色,需放在RequireAuth之后
func RequireRole(role account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != string(role) {
			response.Error(c, apperrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate 提取并校验Token
func (m *AuthMiddleware) authenticate(c *gin.Context) (*jwt.Claims, error) {
	// 1. 提取Token: Header优先,其次Cookie
	token, err := extractToken(c)
	if err != nil {
		return nil, err
	}

	// 2. 校验签名、过期时间和Token类型
	claims, err := m.jwtManager.ParseAccessToken(token)
	if err != nil {
		return nil, err
	}

	// 3. 检查黑名单
	revoked, err := m.blacklist.IsInBlacklist(c.Request.Context(), claims.ID)
	if err != nil {
		logger.FromContext(c.Request.Context()).Warn("检查Token黑名单失败", zap.Error(err))
		return nil, err
	}
	if revoked {
		return nil, apperrors.ErrTokenExpired.WithMessage("Token已失效,请重新登录")
	}
	return claims, nil
}

func extractToken(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			return "", apperrors.ErrInvalidToken.WithMessage("Token格式错误,应为: Bearer <token>")
		}
		return strings.TrimSpace(parts[1]), nil
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie, nil
	}
	return "", errMissingToken
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(ctxAccountID, claims.AccountID)
	c.Set(ctxUsername, claims.Username)
	c.Set(ctxRole, claims.Role)
	c.Set(ctxClaims, claims)
}

// =========================================
// Context辅助函数(供Handler使用)
// =========================================

// GetAccountID 从Context获取当前登录账号ID,未登录返回0
func GetAccountID(c *gin.Context) uint {
	if v, ok := c.Get(ctxAccountID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetUsername 当前登录用户名
func GetUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

// GetRole 当前登录角色
func GetRole(c *gin.Context) string {
	return c.GetString(ctxRole)
}

// IsAdmin 当前账号是否为管理员
func IsAdmin(c *gin.Context) bool {
	return GetRole(c) == string(account.RoleAdmin)
}

// GetClaims 当前Token的Claims(登出时使用)
func GetClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// MustGetAccountID 获取账号ID(不存在则panic)
// 说明:用于已经通过RequireAuth中间件的Handler
func MustGetAccountID(c *gin.Context) uint {
	id := GetAccountID(c)
	if id == 0 {
		panic("account_id not found in context")
	}
	return id
}
