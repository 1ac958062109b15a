package router

import (
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/saisie-livres/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(stockHandler *handlers.StockHandler, pageHandler *handlers.PageHandler, assets fs.FS, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/", pageHandler.Index)
	r.GET("/static/*filepath", staticAssets(assets))

	r.GET("/get_stock_options", stockHandler.Options)
	r.POST("/add_stock_entry", stockHandler.AddEntry)
	r.GET("/healthz", stockHandler.Health)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// staticAssets serves embedded files only. Directories, including the root,
// are not listed.
func staticAssets(assets fs.FS) gin.HandlerFunc {
	files := http.FS(assets)

	return func(c *gin.Context) {
		name := strings.TrimPrefix(c.Param("filepath"), "/")
		if name == "" || name == "index.html" {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		info, err := fs.Stat(assets, name)
		if err != nil || info.IsDir() {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.FileFromFS(name, files)
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
