package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appaccount "github.com/xiebiao/library/internal/application/account"
	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/application/event"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/web"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/response"
)

// bookService 内存图书服务,只实现路由测试用到的方法
type bookService struct {
	book.Service
	created int
}

func (s *bookService) CreateBook(ctx context.Context, rawType string, in book.Input) (*book.Book, error) {
	t, err := book.ValidateType(rawType)
	if err != nil {
		return nil, err
	}
	if err := book.Validate(t, in); err != nil {
		return nil, err
	}
	s.created++
	b := book.NewBook(t, in)
	b.ID = uint(s.created)
	return b, nil
}

func (s *bookService) ValidateBookData(rawType string, in book.Input) error {
	t, err := book.ValidateType(rawType)
	if err != nil {
		return err
	}
	return book.Validate(t, in)
}

func (s *bookService) GetBook(ctx context.Context, id uint) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}

func (s *bookService) Statistics(ctx context.Context) (*book.Statistics, error) {
	return &book.Statistics{TotalBooks: 1, TotalAmountAll: 1234567, AveragePriceReference: 50000}, nil
}

type userService struct{ user.Service }

func (userService) ListUsers(ctx context.Context) ([]*user.User, error) {
	return []*user.User{{ID: 1, FullName: "Lê Thị Hoa"}}, nil
}

type noBlacklist struct{}

func (noBlacklist) IsInBlacklist(context.Context, string) (bool, error) { return false, nil }

type fixture struct {
	engine *gin.Engine
	jwt    *jwt.Manager
	books  *bookService
	dbErr  error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		jwt:   jwt.NewManager("secret", "library", time.Hour, 24*time.Hour),
		books: &bookService{},
	}
	users := appuser.NewManageUserUseCase(userService{})

	create := appbook.NewCreateBookUseCase(f.books, appbook.NopCache{}, event.NopPublisher{})
	update := appbook.NewUpdateBookUseCase(f.books, appbook.NopCache{}, event.NopPublisher{})
	del := appbook.NewDeleteBookUseCase(f.books, appbook.NopCache{}, event.NopPublisher{})
	list := appbook.NewListBooksUseCase(f.books)
	get := appbook.NewGetBookUseCase(f.books, appbook.NopCache{})
	stats := appbook.NewStatisticsUseCase(f.books, appbook.NopCache{})

	webHandler, err := web.NewHandler(
		web.BookUseCases{Create: create, Update: update, Delete: del, List: list, Get: get, Statistics: stats},
		web.AccountUseCases{},
		users,
	)
	require.NoError(t, err)

	h := Handlers{
		Account: handler.NewAccountHandler(nil, nil, nil, appaccount.NewRefreshTokenUseCase(f.jwt)),
		Book: handler.NewBookHandler(create, update, del,
			appbook.NewValidateBookUseCase(f.books), list, get, stats),
		User:    handler.NewUserHandler(users),
		Invoice: handler.NewInvoiceHandler(nil, nil),
		Borrow:  handler.NewBorrowHandler(nil),
		Health:  handler.NewHealthHandler(func() error { return f.dbErr }),
		Web:     webHandler,
		Auth:    middleware.NewAuthMiddleware(f.jwt, noBlacklist{}),
	}

	f.engine, err = NewEngine(Options{Mode: "test", AllowOrigins: []string{"*"}}, h)
	require.NoError(t, err)
	return f
}

func (f *fixture) token(t *testing.T, role account.Role) string {
	t.Helper()
	pair, err := f.jwt.GenerateToken(3, "hoa", string(role))
	require.NoError(t, err)
	return pair.AccessToken
}

func (f *fixture) do(method, path, body, token string) (*httptest.ResponseRecorder, response.Response) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var resp response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestPing(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"up"`)

	f.dbErr = errors.New("connection refused")
	w, _ = f.do(http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	w, _ := f.do(http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	f := newFixture(t)
	w, _ := f.do(http.MethodGet, "/ping", "", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestNoRoute(t *testing.T) {
	f := newFixture(t)
	w, resp := f.do(http.MethodGet, "/api/v1/nothing", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeNotFound, resp.Code)
}

func TestBooks_PublicReads(t *testing.T) {
	f := newFixture(t)

	w, resp := f.do(http.MethodGet, "/api/v1/books/statistics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "1.234.567 VND", data["total_amount_all_formatted"])

	w, resp = f.do(http.MethodGet, "/api/v1/books/42", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, apperrors.ErrCodeBookNotFound, resp.Code)

	w, resp = f.do(http.MethodGet, "/api/v1/books/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
}

func TestCreateBook(t *testing.T) {
	f := newFixture(t)
	body := `{"type":"textbook","code":"GK01","name":"Ngữ văn 11","price":20000,"quantity":4,"publisher":"NXB Giáo Dục","condition":"cũ"}`

	t.Run("未登录", func(t *testing.T) {
		w, resp := f.do(http.MethodPost, "/api/v1/books", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, resp.Code)
	})

	t.Run("成功", func(t *testing.T) {
		w, resp := f.do(http.MethodPost, "/api/v1/books", body, f.token(t, account.RoleUser))
		require.Equal(t, http.StatusCreated, w.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "used", data["condition"], "越南语品相被规范化")
		assert.Equal(t, float64(40000), data["total_amount"])
	})

	t.Run("非法类型被binding拦截", func(t *testing.T) {
		bad := `{"type":"comic","code":"X1","name":"X","price":1,"quantity":1,"publisher":"P"}`
		w, resp := f.do(http.MethodPost, "/api/v1/books", bad, f.token(t, account.RoleUser))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, resp.Code)
		assert.Contains(t, resp.Message, "type")
	})
}

func TestValidateBook(t *testing.T) {
	f := newFixture(t)
	token := f.token(t, account.RoleUser)

	w, _ := f.do(http.MethodPost, "/api/v1/books/validate",
		`{"type":"reference","code":"TK1","name":"Từ điển","price":90000,"quantity":1,"publisher":"NXB Trẻ","tax":-1}`, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = f.do(http.MethodPost, "/api/v1/books/validate",
		`{"type":"reference","code":"TK1","name":"Từ điển","price":90000,"quantity":1,"publisher":"NXB Trẻ","tax":9000}`, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, f.books.created, "校验不落库")
}

func TestUsers_AdminOnly(t *testing.T) {
	f := newFixture(t)

	w, _ := f.do(http.MethodGet, "/api/v1/users", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp := f.do(http.MethodGet, "/api/v1/users", "", f.token(t, account.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrCodeForbidden, resp.Code)

	w, _ = f.do(http.MethodGet, "/api/v1/users", "", f.token(t, account.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lê Thị Hoa")
}

func TestInvoices_RequireAuth(t *testing.T) {
	f := newFixture(t)
	for _, path := range []string{"/api/v1/invoices", "/api/v1/borrows", "/api/v1/invoices/1"} {
		w, _ := f.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestRefreshToken(t *testing.T) {
	f := newFixture(t)
	pair, err := f.jwt.GenerateToken(3, "hoa", string(account.RoleUser))
	require.NoError(t, err)

	w, resp := f.do(http.MethodPost, "/api/v1/accounts/refresh", `{"refresh_token":"`+pair.RefreshToken+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	data := resp.Data.(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])

	// Access Token不能用于刷新
	w, _ = f.do(http.MethodPost, "/api/v1/accounts/refresh", `{"refresh_token":"`+pair.AccessToken+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRootRedirectsToWeb(t *testing.T) {
	f := newFixture(t)
	w, _ := f.do(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/web/books", w.Header().Get("Location"))
}

func TestBindingRules(t *testing.T) {
	rules := BindingRules()
	assert.True(t, rules["book_type"]("Sách tham khảo"))
	assert.False(t, rules["book_type"]("magazine"))
	assert.True(t, rules["book_condition"]("used"))
	assert.False(t, rules["book_condition"]("broken"))
}
