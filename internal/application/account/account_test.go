package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/application/event"
	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

// fakeTx 直接执行fn,记录开启次数
type fakeTx struct{ calls int }

func (f *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type accountRepo struct{ byName map[string]*account.Account }

func (r *accountRepo) Create(ctx context.Context, a *account.Account) error {
	if _, ok := r.byName[a.Username]; ok {
		return account.ErrUsernameDuplicate
	}
	a.ID = uint(len(r.byName) + 1)
	r.byName[a.Username] = a
	return nil
}

func (r *accountRepo) FindByID(ctx context.Context, id uint) (*account.Account, error) {
	for _, a := range r.byName {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, account.ErrAccountNotFound
}

func (r *accountRepo) FindByUsername(ctx context.Context, username string) (*account.Account, error) {
	if a, ok := r.byName[username]; ok {
		return a, nil
	}
	return nil, account.ErrAccountNotFound
}

type userRepo struct{ users []*user.User }

func (r *userRepo) Create(ctx context.Context, u *user.User) error {
	u.ID = uint(len(r.users) + 1)
	r.users = append(r.users, u)
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) FindByAccountID(ctx context.Context, accountID uint) (*user.User, error) {
	for _, u := range r.users {
		if u.AccountID == accountID {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *userRepo) List(ctx context.Context) ([]*user.User, error) { return r.users, nil }
func (r *userRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (r *userRepo) Delete(ctx context.Context, id uint) error      { return nil }

type fakeSessions struct {
	saved       map[uint]map[string]interface{}
	blacklisted map[string]time.Duration
	saveErr     error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{saved: map[uint]map[string]interface{}{}, blacklisted: map[string]time.Duration{}}
}

func (s *fakeSessions) SaveSession(ctx context.Context, id uint, data map[string]interface{}, ttl time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved[id] = data
	return nil
}

func (s *fakeSessions) DeleteSession(ctx context.Context, id uint) error {
	delete(s.saved, id)
	return nil
}

func (s *fakeSessions) AddToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.blacklisted[tokenID] = ttl
	return nil
}

type fixture struct {
	tx       *fakeTx
	accounts *accountRepo
	users    *userRepo
	sessions *fakeSessions
	jwt      *jwt.Manager
	register *RegisterUseCase
}

func newFixture() *fixture {
	f := &fixture{
		tx:       &fakeTx{},
		accounts: &accountRepo{byName: map[string]*account.Account{}},
		users:    &userRepo{},
		sessions: newFakeSessions(),
		jwt:      jwt.NewManager("secret", "library", time.Hour, 24*time.Hour),
	}
	f.register = NewRegisterUseCase(account.NewService(f.accounts), user.NewService(f.users), f.tx, event.NopPublisher{})
	return f
}

func TestRegister_CreatesAccountAndProfile(t *testing.T) {
	f := newFixture()

	resp, err := f.register.Execute(context.Background(), RegisterRequest{
		Username: "lan.nguyen", Password: "matkhau1", Email: "lan@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.tx.calls, "账号和资料在同一事务中")
	assert.Equal(t, "user", resp.Role)

	require.Len(t, f.users.users, 1)
	profile := f.users.users[0]
	assert.Equal(t, resp.AccountID, profile.AccountID)
	assert.Equal(t, "lan.nguyen", profile.FullName, "未填写姓名时使用用户名")
	assert.Equal(t, resp.UserID, profile.ID)
}

func TestRegister_ProfileErrorFailsWholeRegistration(t *testing.T) {
	f := newFixture()

	_, err := f.register.Execute(context.Background(), RegisterRequest{
		Username: "minh", Password: "matkhau1", Email: "not-an-email",
	})
	assert.ErrorIs(t, err, user.ErrInvalidEmail)
	assert.Empty(t, f.users.users)
}

func TestRegister_Duplicate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.register.Execute(ctx, RegisterRequest{Username: "minh", Password: "matkhau1"})
	require.NoError(t, err)

	_, err = f.register.Execute(ctx, RegisterRequest{Username: "minh", Password: "matkhau2"})
	assert.ErrorIs(t, err, account.ErrUsernameDuplicate)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.register.EnsureAdmin(ctx, "", ""), "未配置时跳过")
	assert.Empty(t, f.accounts.byName)

	require.NoError(t, f.register.EnsureAdmin(ctx, "admin", "admin123"))
	require.NoError(t, f.register.EnsureAdmin(ctx, "admin", "other-password"), "已存在时不报错")

	acc := f.accounts.byName["admin"]
	require.NotNil(t, acc)
	assert.True(t, acc.IsAdmin())
	assert.Len(t, f.accounts.byName, 1)
}

func TestLoginAndLogout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.register.Execute(ctx, RegisterRequest{Username: "thuthu", Password: "matkhau1", Role: account.RoleAdmin})
	require.NoError(t, err)

	login := NewLoginUseCase(account.NewService(f.accounts), f.jwt, f.sessions)
	resp, err := login.Execute(ctx, LoginRequest{Username: "thuthu", Password: "matkhau1", ClientIP: "10.0.0.8"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Account.Role)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "10.0.0.8", f.sessions.saved[resp.Account.ID]["ip"])

	claims, err := f.jwt.ParseAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.Account.ID, claims.AccountID)

	require.NoError(t, NewLogoutUseCase(f.jwt, f.sessions).Execute(ctx, claims))
	assert.NotContains(t, f.sessions.saved, resp.Account.ID)
	require.Contains(t, f.sessions.blacklisted, claims.ID)
	assert.Greater(t, f.sessions.blacklisted[claims.ID], time.Duration(0))
}

func TestLogin_WrongPassword(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.register.Execute(ctx, RegisterRequest{Username: "thuthu", Password: "matkhau1"})
	require.NoError(t, err)

	login := NewLoginUseCase(account.NewService(f.accounts), f.jwt, f.sessions)
	_, err = login.Execute(ctx, LoginRequest{Username: "thuthu", Password: "sai-mat-khau"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = login.Execute(ctx, LoginRequest{Username: "khong-ton-tai", Password: "matkhau1"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

func TestLogin_SessionFailureDoesNotBlockLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.register.Execute(ctx, RegisterRequest{Username: "thuthu", Password: "matkhau1"})
	require.NoError(t, err)

	f.sessions.saveErr = errors.New("redis down")
	resp, err := NewLoginUseCase(account.NewService(f.accounts), f.jwt, f.sessions).
		Execute(ctx, LoginRequest{Username: "thuthu", Password: "matkhau1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshToken(t *testing.T) {
	f := newFixture()
	pair, err := f.jwt.GenerateToken(1, "a", "user")
	require.NoError(t, err)

	access, err := NewRefreshTokenUseCase(f.jwt).Execute(pair.RefreshToken)
	require.NoError(t, err)
	_, err = f.jwt.ParseAccessToken(access)
	assert.NoError(t, err)
}
