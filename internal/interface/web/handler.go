// Package web 服务端渲染页面(html/template)
// 页面与JSON API共用应用层用例,提示信息通过重定向的查询参数msg/err传递
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appaccount "github.com/xiebiao/library/internal/application/account"
	appbook "github.com/xiebiao/library/internal/application/book"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/presenter"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// 页面模板,每个页面与layout.html单独解析,避免content块互相覆盖
var pageNames = []string{
	"login.html",
	"register.html",
	"books.html",
	"book_form.html",
	"statistics.html",
	"users.html",
	"user_form.html",
}

const (
	loginPath = "/web/login"
	booksPath = "/web/books"
	usersPath = "/web/users"
)

// BookUseCases 页面使用的图书用例集合
type BookUseCases struct {
	Create     *appbook.CreateBookUseCase
	Update     *appbook.UpdateBookUseCase
	Delete     *appbook.DeleteBookUseCase
	List       *appbook.ListBooksUseCase
	Get        *appbook.GetBookUseCase
	Statistics *appbook.StatisticsUseCase
}

// AccountUseCases 页面使用的账号用例集合
type AccountUseCases struct {
	Register *appaccount.RegisterUseCase
	Login    *appaccount.LoginUseCase
	Logout   *appaccount.LogoutUseCase
}

// Handler 页面处理器
type Handler struct {
	books    BookUseCases
	accounts AccountUseCases
	users    *appuser.ManageUserUseCase
	pages    map[string]*template.Template
	secure   bool
}

// NewHandler 创建页面处理器并预解析全部模板
func NewHandler(books BookUseCases, accounts AccountUseCases, users *appuser.ManageUserUseCase) (*Handler, error) {
	funcs := template.FuncMap{
		"vnd":  presenter.FormatVND,
		"date": presenter.FormatISODate,
		"num":  presenter.FormatNumber,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("解析页面模板%s失败: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Handler{
		books:    books,
		accounts: accounts,
		users:    users,
		pages:    pages,
	}, nil
}

// SecureCookie 生产环境(HTTPS)下Cookie只通过HTTPS发送
func (h *Handler) SecureCookie(secure bool) {
	h.secure = secure
}

// Register 注册页面路由
// 图书只读页面允许匿名访问,修改类页面要求登录,读者管理要求管理员
func (h *Handler) Register(r *gin.Engine, auth *middleware.AuthMiddleware) {
	r.GET("/web", func(c *gin.Context) { c.Redirect(http.StatusFound, booksPath) })

	web := r.Group("/web")
	web.Use(auth.OptionalAuth())
	{
		web.GET("/login", h.LoginPage)
		web.POST("/login", h.Login)
		web.GET("/register", h.RegisterPage)
		web.POST("/register", h.RegisterAccount)

		web.GET("/books", h.BooksPage)
		web.GET("/books/type/:type", h.BooksByTypePage)
		web.GET("/books/publisher/:publisher", h.BooksByPublisherPage)
		web.GET("/books/statistics", h.StatisticsPage)
	}

	authed := r.Group("/web")
	authed.Use(auth.RequireWebAuth(loginPath))
	{
		authed.POST("/logout", h.Logout)

		authed.GET("/books/new", h.NewBookPage)
		authed.POST("/books", h.CreateBook)
		authed.GET("/books/:id/edit", h.EditBookPage)
		authed.POST("/books/:id", h.UpdateBook)
		authed.POST("/books/:id/delete", h.DeleteBook)

		admin := authed.Group("/users")
		admin.Use(requireAdminPage)
		{
			admin.GET("", h.UsersPage)
			admin.GET("/new", h.NewUserPage)
			admin.POST("", h.CreateUser)
			admin.GET("/:id/edit", h.EditUserPage)
			admin.POST("/:id", h.UpdateUser)
			admin.POST("/:id/delete", h.DeleteUser)
		}
	}
}

// requireAdminPage 非管理员重定向回图书列表
func requireAdminPage(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		redirectErr(c, booksPath, apperrors.ErrForbidden)
		c.Abort()
		return
	}
	c.Next()
}

// =========================================
// 渲染与重定向
// =========================================

// render 渲染页面,公共字段: 当前用户、提示信息
func (h *Handler) render(c *gin.Context, status int, page string, data gin.H) {
	tmpl, ok := h.pages[page]
	if !ok {
		c.String(http.StatusInternalServerError, "页面不存在: %s", page)
		return
	}

	if data == nil {
		data = gin.H{}
	}
	data["CurrentUser"] = middleware.GetUsername(c)
	data["IsAdmin"] = middleware.IsAdmin(c)
	if _, set := data["Message"]; !set {
		data["Message"] = c.Query("msg")
	}
	if _, set := data["Error"]; !set {
		data["Error"] = c.Query("err")
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromContext(c.Request.Context()).Error("渲染页面失败", zap.String("page", page), zap.Error(err))
		c.String(http.StatusInternalServerError, "渲染页面失败")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// redirectMsg 带成功提示重定向
func redirectMsg(c *gin.Context, path, msg string) {
	c.Redirect(http.StatusSeeOther, path+"?msg="+url.QueryEscape(msg))
}

// redirectErr 带错误提示重定向
func redirectErr(c *gin.Context, path string, err error) {
	c.Redirect(http.StatusSeeOther, path+"?err="+url.QueryEscape(errorText(err)))
}

// errorText 业务错误展示其消息,系统错误只展示通用提示
func errorText(err error) string {
	return apperrors.GetAppError(err).Message
}

// statusOf 业务错误对应的HTTP状态码
func statusOf(err error) int {
	return apperrors.GetAppError(err).HTTPStatus()
}

// pageID 解析路径参数:id
func pageID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// bookTypeOptions 表单下拉选项
func bookTypeOptions() []gin.H {
	options := make([]gin.H, 0, len(book.Types))
	for _, t := range book.Types {
		options = append(options, gin.H{"Value": string(t), "Label": t.DisplayName()})
	}
	return options
}
