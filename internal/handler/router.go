package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/book-catalog/internal/config"
	"github.com/snnyvrz/book-catalog/internal/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Config    *config.Config
	Logger    *zap.Logger
	Books     BookService
	DB        Pinger
	StartTime time.Time
	Version   string
}

// NewRouter wires middlewares, probes, the /api route table and swagger.
func NewRouter(d RouterDeps) *gin.Engine {
	e := gin.New()

	if err := e.SetTrustedProxies(d.Config.Server.TrustedProxies); err != nil {
		d.Logger.Warn("invalid trusted proxies", zap.Error(err))
	}

	e.Use(
		RequestID(),
		AccessLog(d.Logger),
		Recovery(d.Logger),
	)

	NewHealthHandler(d.DB, d.Logger, d.StartTime, d.Version).RegisterRoutes(e)

	docs.SwaggerInfo.BasePath = "/api"
	docs.SwaggerInfo.Version = d.Version

	api := e.Group("/api", Timeout(d.Config.Server.RequestTimeout))
	{
		NewBookHandler(d.Books, d.Logger, d.Config.Pagination).RegisterRoutes(api)
	}

	e.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return e
}
