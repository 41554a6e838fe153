package account

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/logger"
	"github.com/xiebiao/library/pkg/metrics"
)

// RegisterUseCase 注册用例
// 设计说明:
// 1. 账号和读者资料在同一个事务中创建,任一失败整体回滚
// 2. 角色由调用方决定:公开注册固定为user,管理员可指定admin
type RegisterUseCase struct {
	accountService account.Service
	userService    user.Service
	txManager      TxManager
	events         event.Publisher
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	accountService account.Service,
	userService user.Service,
	txManager TxManager,
	events event.Publisher,
) *RegisterUseCase {
	return &RegisterUseCase{
		accountService: accountService,
		userService:    userService,
		txManager:      txManager,
		events:         events,
	}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Username string
	Password string
	Role     account.Role
	FullName string // 为空时使用用户名
	Email    string
	Phone    string
	Age      int
	Gender   string
	Address  string
}

// RegisterResponse 注册响应DTO
type RegisterResponse struct {
	AccountID uint   `json:"account_id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		fullName = strings.TrimSpace(req.Username)
	}

	var (
		acc     *account.Account
		profile *user.User
	)
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 创建账号(用户名/密码规则与bcrypt加密在领域服务中)
		var err error
		acc, err = uc.accountService.Register(txCtx, req.Username, req.Password, req.Role)
		if err != nil {
			return err
		}

		// 2. 创建关联的读者资料
		profile, err = uc.userService.CreateUser(txCtx, user.Profile{
			AccountID: acc.ID,
			FullName:  fullName,
			Age:       req.Age,
			Email:     req.Email,
			Phone:     req.Phone,
			Gender:    req.Gender,
			Address:   req.Address,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounterVec(metrics.AccountsRegisteredTotal, map[string]string{"role": string(acc.Role)})
	event.Notify(ctx, uc.events, event.AccountCreated, event.AccountPayload{
		AccountID: acc.ID, Username: acc.Username, Role: string(acc.Role),
	})

	return &RegisterResponse{
		AccountID: acc.ID,
		UserID:    profile.ID,
		Username:  acc.Username,
		Role:      string(acc.Role),
	}, nil
}

// EnsureAdmin 启动时确保管理员账号存在
// username为空时跳过;账号已存在时不修改密码
func (uc *RegisterUseCase) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" {
		return nil
	}

	_, err := uc.Execute(ctx, RegisterRequest{
		Username: username,
		Password: password,
		Role:     account.RoleAdmin,
		FullName: "Administrator",
	})
	if errors.Is(err, account.ErrUsernameDuplicate) {
		return nil
	}
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("已创建管理员账号", zap.String("username", username))
	return nil
}
