// Package router 组装gin引擎: 全局中间件、运维端点、JSON API与页面路由
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/web"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
	"github.com/xiebiao/library/pkg/validator"
)

// Handlers 路由需要的全部处理器,由wire.Struct注入
type Handlers struct {
	Account *handler.AccountHandler
	Book    *handler.BookHandler
	User    *handler.UserHandler
	Invoice *handler.InvoiceHandler
	Borrow  *handler.BorrowHandler
	Health  *handler.HealthHandler
	Web     *web.Handler
	Auth    *middleware.AuthMiddleware
}

// Options 引擎配置
type Options struct {
	Mode         string // debug | release | test
	AllowOrigins []string
	Swagger      bool
}

// BindingRules 图书相关的自定义binding tag
// 同时接受API标识和越南语展示名称
func BindingRules() map[string]validator.Rule {
	return map[string]validator.Rule{
		"book_type": func(s string) bool {
			_, ok := book.ParseType(s)
			return ok
		},
		"book_condition": func(s string) bool {
			_, ok := book.ParseCondition(s)
			return ok
		},
	}
}

// NewEngine 创建并配置Gin引擎
// 中间件顺序: 请求日志 → panic恢复 → 指标 → CORS
func NewEngine(opts Options, h Handlers) (*gin.Engine, error) {
	switch opts.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	if err := validator.Register(BindingRules()); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(
		middleware.Logger(),
		gin.Recovery(),
		middleware.Metrics(),
		middleware.CORS(opts.AllowOrigins),
	)
	r.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	// 运维端点
	r.GET("/ping", h.Health.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/web/books") })

	registerAPI(r, h)
	h.Web.SecureCookie(opts.Mode == "release")
	h.Web.Register(r, h.Auth)

	return r, nil
}

// registerAPI JSON API路由
func registerAPI(r *gin.Engine, h Handlers) {
	auth := h.Auth
	v1 := r.Group("/api/v1")

	// 账号
	accounts := v1.Group("/accounts")
	{
		// 管理员登录后注册可以指定角色
		accounts.POST("/register", auth.OptionalAuth(), h.Account.Register)
		accounts.POST("/login", h.Account.Login)
		accounts.POST("/refresh", h.Account.Refresh)
		accounts.POST("/logout", auth.RequireAuth(), h.Account.Logout)
	}

	// 图书: 查询公开,修改需要登录
	books := v1.Group("/books")
	{
		books.GET("", h.Book.ListBooks)
		books.GET("/statistics", h.Book.Statistics)
		books.GET("/publisher/:publisher", h.Book.BooksByPublisher)
		books.GET("/:id", h.Book.GetBook)

		books.POST("", auth.RequireAuth(), h.Book.CreateBook)
		books.POST("/validate", auth.RequireAuth(), h.Book.ValidateBook)
		books.PUT("/:id", auth.RequireAuth(), h.Book.UpdateBook)
		books.DELETE("/:id", auth.RequireAuth(), h.Book.DeleteBook)
	}

	// 读者管理: 仅管理员
	users := v1.Group("/users")
	users.Use(auth.RequireAuth(), middleware.RequireRole(account.RoleAdmin))
	{
		users.GET("", h.User.ListUsers)
		users.POST("", h.User.CreateUser)
		users.GET("/:id", h.User.GetUser)
		users.PUT("/:id", h.User.UpdateUser)
		users.DELETE("/:id", h.User.DeleteUser)
	}

	// 发票与借阅: 需要登录
	authorized := v1.Group("")
	authorized.Use(auth.RequireAuth())
	{
		authorized.POST("/invoices", h.Invoice.CreateInvoice)
		authorized.GET("/invoices", h.Invoice.ListInvoices)
		authorized.GET("/invoices/:id", h.Invoice.GetInvoice)

		authorized.POST("/borrows", h.Borrow.CreateBorrow)
		authorized.GET("/borrows", h.Borrow.ListBorrows)
	}
}
