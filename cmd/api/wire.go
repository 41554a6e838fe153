//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链:
// Repository ← 领域Service ← UseCase ← Handler ← router.Handlers ← *gin.Engine

package main

import (
	"github.com/google/wire"

	appaccount "github.com/xiebiao/library/internal/application/account"
	appbook "github.com/xiebiao/library/internal/application/book"
	appborrow "github.com/xiebiao/library/internal/application/borrow"
	appinvoice "github.com/xiebiao/library/internal/application/invoice"
	appuser "github.com/xiebiao/library/internal/application/user"
	"github.com/xiebiao/library/internal/domain/account"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/messaging"
	"github.com/xiebiao/library/internal/infrastructure/persistence/database"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/internal/interface/web"
)

// infrastructureSet 数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	provideDB,
	provideRedisClient,
	provideBookCache,
	providePinger,
	messaging.NewFromConfig,
)

// repositorySet 仓储与事务
var repositorySet = wire.NewSet(
	database.NewAccountRepository,
	database.NewUserRepository,
	database.NewBookRepository,
	database.NewInvoiceRepository,
	database.NewBorrowRepository,
	database.NewTxManager,
	wire.Bind(new(appaccount.TxManager), new(*database.TxManager)),
	wire.Bind(new(appinvoice.TxManager), new(*database.TxManager)),
)

// sessionSet 会话与Token黑名单,同一个SessionStore满足两个端口
var sessionSet = wire.NewSet(
	redis.NewSessionStore,
	wire.Bind(new(appaccount.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	account.NewService,
	user.NewService,
	book.NewService,
)

// applicationSet 应用层用例
var applicationSet = wire.NewSet(
	appaccount.NewRegisterUseCase,
	appaccount.NewLoginUseCase,
	appaccount.NewLogoutUseCase,
	appaccount.NewRefreshTokenUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
	appbook.NewValidateBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewStatisticsUseCase,
	appuser.NewManageUserUseCase,
	appinvoice.NewCreateInvoiceUseCase,
	appinvoice.NewListInvoicesUseCase,
	appborrow.NewBorrowUseCase,
)

// interfaceSet HTTP处理器、页面与路由
var interfaceSet = wire.NewSet(
	handler.NewAccountHandler,
	handler.NewBookHandler,
	handler.NewUserHandler,
	handler.NewInvoiceHandler,
	handler.NewBorrowHandler,
	handler.NewHealthHandler,
	wire.Struct(new(web.BookUseCases), "*"),
	wire.Struct(new(web.AccountUseCases), "*"),
	web.NewHandler,
	wire.Struct(new(router.Handlers), "*"),
	provideRouterOptions,
	router.NewEngine,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序关闭MQ、Redis和数据库连接
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		sessionSet,
		domainSet,
		applicationSet,
		interfaceSet,
		wire.Struct(new(App), "*"),
	)
	return nil, nil, nil
}
