package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
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
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// bookService 只实现页面用到的方法
type bookService struct {
	book.Service
	books     []*book.Book
	createErr error
	created   []book.Input
}

func (s *bookService) SearchBooks(ctx context.Context, query string) ([]*book.Book, error) {
	return s.books, nil
}

func (s *bookService) CreateBook(ctx context.Context, rawType string, in book.Input) (*book.Book, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = append(s.created, in)
	t, _ := book.ParseType(rawType)
	b := book.NewBook(t, in)
	b.ID = uint(len(s.created))
	return b, nil
}

func (s *bookService) Statistics(ctx context.Context) (*book.Statistics, error) {
	return &book.Statistics{TotalBooks: 2, TotalAmountAll: 2250000, AveragePriceReference: 75000}, nil
}

type userService struct {
	user.Service
	users []*user.User
}

func (s *userService) ListUsers(ctx context.Context) ([]*user.User, error) {
	return s.users, nil
}

type accountService struct {
	account.Service
}

func (accountService) Authenticate(ctx context.Context, username, password string) (*account.Account, error) {
	if password != "matkhau123" {
		return nil, apperrors.ErrInvalidPassword
	}
	return &account.Account{ID: 7, Username: username, Role: account.RoleUser}, nil
}

type nopSessions struct{ blacklisted []string }

func (s *nopSessions) SaveSession(context.Context, uint, map[string]interface{}, time.Duration) error {
	return nil
}
func (s *nopSessions) DeleteSession(context.Context, uint) error { return nil }
func (s *nopSessions) AddToBlacklist(ctx context.Context, id string, ttl time.Duration) error {
	s.blacklisted = append(s.blacklisted, id)
	return nil
}
func (s *nopSessions) IsInBlacklist(ctx context.Context, id string) (bool, error) {
	for _, b := range s.blacklisted {
		if b == id {
			return true, nil
		}
	}
	return false, nil
}

type fixture struct {
	engine   *gin.Engine
	jwt      *jwt.Manager
	books    *bookService
	sessions *nopSessions
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	books := &bookService{}
	sessions := &nopSessions{}
	users := &userService{users: []*user.User{{ID: 1, FullName: "Trần Văn An", Age: 21}}}
	jwtManager := jwt.NewManager("secret", "library", time.Hour, 24*time.Hour)

	h, err := NewHandler(
		BookUseCases{
			Create:     appbook.NewCreateBookUseCase(books, appbook.NopCache{}, event.NopPublisher{}),
			Update:     appbook.NewUpdateBookUseCase(books, appbook.NopCache{}, event.NopPublisher{}),
			Delete:     appbook.NewDeleteBookUseCase(books, appbook.NopCache{}, event.NopPublisher{}),
			List:       appbook.NewListBooksUseCase(books),
			Get:        appbook.NewGetBookUseCase(books, appbook.NopCache{}),
			Statistics: appbook.NewStatisticsUseCase(books, appbook.NopCache{}),
		},
		AccountUseCases{
			Login:  appaccount.NewLoginUseCase(accountService{}, jwtManager, sessions),
			Logout: appaccount.NewLogoutUseCase(jwtManager, sessions),
		},
		appuser.NewManageUserUseCase(users),
	)
	require.NoError(t, err)

	r := gin.New()
	h.Register(r, middleware.NewAuthMiddleware(jwtManager, sessions))
	return &fixture{engine: r, jwt: jwtManager, books: books, sessions: sessions}
}

func (f *fixture) cookie(t *testing.T, role account.Role) *http.Cookie {
	t.Helper()
	pair, err := f.jwt.GenerateToken(7, "lan", string(role))
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.AccessTokenCookie, Value: pair.AccessToken}
}

func (f *fixture) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestBooksPage_Anonymous(t *testing.T) {
	f := newFixture(t)
	b := book.NewBook(book.TypeTextbook, book.Input{
		Code: "GK01", Name: "Toán 10", Price: 1500000, Quantity: 1, Publisher: "NXB Giáo Dục", Condition: "new",
	})
	b.ID = 1
	f.books.books = []*book.Book{b}

	w := f.do(httptest.NewRequest(http.MethodGet, "/web/books", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Toán 10")
	assert.Contains(t, body, "Sách giáo khoa")
	assert.Contains(t, body, "1.500.000 VND")
	assert.Contains(t, body, `href="/web/login"`)
	assert.NotContains(t, body, "/web/books/new", "匿名用户不显示新增入口")
}

func TestWebRoot_RedirectsToBooks(t *testing.T) {
	f := newFixture(t)
	w := f.do(httptest.NewRequest(http.MethodGet, "/web", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/web/books", w.Header().Get("Location"))
}

func TestStatisticsPage(t *testing.T) {
	f := newFixture(t)
	w := f.do(httptest.NewRequest(http.MethodGet, "/web/books/statistics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2.250.000 VND")
	assert.Contains(t, w.Body.String(), "75.000 VND")
}

func TestCreateBook_RequiresLogin(t *testing.T) {
	f := newFixture(t)
	w := f.do(postForm("/web/books", url.Values{"type": {"textbook"}}))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/web/login?next="))
	assert.Empty(t, f.books.created)
}

func TestCreateBook(t *testing.T) {
	form := url.Values{
		"type":        {"reference"},
		"code":        {"TK01"},
		"name":        {"Từ điển Anh-Việt"},
		"import_date": {"2024-03-15"},
		"price":       {"80000"},
		"quantity":    {"2"},
		"publisher":   {"NXB Trẻ"},
		"tax":         {"5000"},
	}

	t.Run("成功后带提示重定向", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(postForm("/web/books", form), f.cookie(t, account.RoleUser))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/web/books?msg="))
		require.Len(t, f.books.created, 1)
		assert.Equal(t, int64(5000), f.books.created[0].Tax)
		assert.Equal(t, 15, f.books.created[0].ImportDate.Day())
	})

	t.Run("领域校验失败重新渲染表单", func(t *testing.T) {
		f := newFixture(t)
		f.books.createErr = book.ErrNameRequired
		w := f.do(postForm("/web/books", form), f.cookie(t, account.RoleUser))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), book.ErrNameRequired.Message)
		assert.Contains(t, w.Body.String(), `value="TK01"`, "保留已填写的内容")
	})

	t.Run("入库日期格式错误", func(t *testing.T) {
		f := newFixture(t)
		bad := url.Values{}
		for k, v := range form {
			bad[k] = v
		}
		bad.Set("import_date", "15/03/2024")
		w := f.do(postForm("/web/books", bad), f.cookie(t, account.RoleUser))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), book.ErrInvalidImportDate.Message)
		assert.Contains(t, w.Body.String(), `value="TK01"`, "保留已填写的内容")
		assert.Empty(t, f.books.created)

		w = f.do(postForm("/web/books/1", bad), f.cookie(t, account.RoleUser))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), book.ErrInvalidImportDate.Message)
		assert.Contains(t, w.Body.String(), `action="/web/books/1"`)
	})

	t.Run("数字字段格式错误", func(t *testing.T) {
		f := newFixture(t)
		bad := url.Values{"type": {"textbook"}, "price": {"abc"}}
		w := f.do(postForm("/web/books", bad), f.cookie(t, account.RoleUser))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, f.books.created)
	})
}

func TestUsersPage_AdminOnly(t *testing.T) {
	f := newFixture(t)

	w := f.do(httptest.NewRequest(http.MethodGet, "/web/users", nil), f.cookie(t, account.RoleUser))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/web/books?err="))

	w = f.do(httptest.NewRequest(http.MethodGet, "/web/users", nil), f.cookie(t, account.RoleAdmin))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Trần Văn An")
}

func TestLoginAndLogout(t *testing.T) {
	f := newFixture(t)

	w := f.do(postForm("/web/login", url.Values{"username": {"lan"}, "password": {"sai"}}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ErrInvalidPassword.Message)

	w = f.do(postForm("/web/login", url.Values{
		"username": {"lan"}, "password": {"matkhau123"}, "next": {"/web/books/new"},
	}))
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "/web/books/new?msg="))

	var token *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			token = c
		}
	}
	require.NotNil(t, token)
	assert.True(t, token.HttpOnly)
	assert.Equal(t, 3600, token.MaxAge)

	w = f.do(httptest.NewRequest(http.MethodPost, "/web/logout", nil), token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Len(t, f.sessions.blacklisted, 1)

	// 登出后同一Token不能再访问需要登录的页面
	w = f.do(httptest.NewRequest(http.MethodGet, "/web/books/new", nil), token)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"/web/books/new", "/web/books/new"},
		{"", booksPath},
		{"https://evil.example", booksPath},
		{"//evil.example", booksPath},
		{"/api/v1/books", booksPath},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeNext(tt.next), tt.next)
	}
}
