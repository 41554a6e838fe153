package account

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// LoginUseCase 登录用例
// 设计说明：
// 1. 验证用户名密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	accountService account.Service
	jwtManager     *jwt.Manager
	sessionStore   SessionStore
	sessionTTL     time.Duration
}

// NewLoginUseCase 创建登录用例
// 会话有效期与Access Token一致
func NewLoginUseCase(accountService account.Service, jwtManager *jwt.Manager, sessionStore SessionStore) *LoginUseCase {
	return &LoginUseCase{
		accountService: accountService,
		jwtManager:     jwtManager,
		sessionStore:   sessionStore,
		sessionTTL:     jwtManager.AccessTokenExpire(),
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Account      AccountInfo `json:"account"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int64       `json:"expires_in"` // Access Token过期时间（秒）
}

// AccountInfo 账号信息
type AccountInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码
	acc, err := uc.accountService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": "failure"})
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(acc.ID, acc.Username, string(acc.Role))
	if err != nil {
		return nil, err
	}

	// 3. 保存会话(失败不影响登录,只记录日志)
	sessionData := map[string]interface{}{
		"account_id": acc.ID,
		"username":   acc.Username,
		"role":       string(acc.Role),
		"login_at":   time.Now().Unix(),
		"ip":         req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, acc.ID, sessionData, uc.sessionTTL); err != nil {
		logger.FromContext(ctx).Warn("保存会话失败", zap.Uint("account_id", acc.ID), zap.Error(err))
	}

	metrics.IncCounterVec(metrics.LoginsTotal, map[string]string{"result": "success"})
	return &LoginResponse{
		Account: AccountInfo{
			ID:       acc.ID,
			Username: acc.Username,
			Role:     string(acc.Role),
		},
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, sessionStore: sessionStore}
}

// Execute 执行登出
// 1. 删除会话
// 2. 把Access Token的jti加入黑名单,有效期取Token剩余时间
func (uc *LogoutUseCase) Execute(ctx context.Context, claims *jwt.Claims) error {
	if err := uc.sessionStore.DeleteSession(ctx, claims.AccountID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, claims.ID, uc.jwtManager.RemainingTTL(claims))
}

// RefreshTokenUseCase 刷新Access Token
type RefreshTokenUseCase struct {
	jwtManager *jwt.Manager
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(jwtManager *jwt.Manager) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{jwtManager: jwtManager}
}

// Execute 使用Refresh Token换取新的Access Token
func (uc *RefreshTokenUseCase) Execute(refreshToken string) (string, error) {
	return uc.jwtManager.RefreshAccessToken(refreshToken)
}
