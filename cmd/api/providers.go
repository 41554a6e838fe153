package main

import (
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appaccount "github.com/xiebiao/library/internal/application/account"
	appbook "github.com/xiebiao/library/internal/application/book"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/persistence/database"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/jwt"
)

// App InitializeApp的产物
// 除了HTTP引擎,启动时还需要注册用例来确保管理员账号存在
type App struct {
	Engine   *gin.Engine
	Register *appaccount.RegisterUseCase
}

// provideDB 创建数据库连接,cleanup关闭连接池
func provideDB(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// provideRedisClient 创建Redis客户端,cleanup关闭连接
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { _ = client.Close() }, nil
}

// provideBookCache 按配置选择Redis缓存或空实现
func provideBookCache(cfg *config.Config, client *goredis.Client) appbook.Cache {
	if !cfg.Cache.Enabled {
		zap.L().Info("图书缓存未启用")
		return appbook.NopCache{}
	}
	return redis.NewBookCache(client, cfg.Cache.BookTTL, cfg.Cache.StatsTTL)
}

// providePinger 健康检查使用的数据库探测
func providePinger(db *gorm.DB) handler.Pinger {
	return func() error { return database.Ping(db) }
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideRouterOptions 引擎配置,release模式不暴露Swagger
func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		Mode:         cfg.Server.Mode,
		AllowOrigins: cfg.CORS.AllowOrigins,
		Swagger:      cfg.Server.Mode != "release",
	}
}
