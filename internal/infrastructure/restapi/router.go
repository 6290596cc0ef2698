package restapi

import (
	"net/http"
	"net/http/pprof"

	"lendboard/internal/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterOptions задает настройки служебных маршрутов.
type RouterOptions struct {
	AllowedOrigins []string
	EnablePprof    bool
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера с API дашборда под /api/v1.
func SetupRouter(h *DashboardHandler, opts RouterOptions, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(utils.ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, APIResponse{StatusMessage: "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/tokens", h.ListTokens)
		v1.POST("/sessions", h.CreateSession)

		sessions := v1.Group("/sessions/:id")
		sessions.GET("/table", h.GetTable)
		sessions.PUT("/tab", h.SelectTab)
		sessions.POST("/page", h.ChangePage)
		sessions.POST("/refetch", h.Refetch)
		sessions.POST("/prices/retry", h.RetryPrices)
		sessions.DELETE("", h.CloseSession)
	}

	if opts.EnablePprof {
		pprofRouter := router.Group("/debug/pprof")
		{
			pprofRouter.GET("/", gin.WrapF(pprof.Index))
			pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
			pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
			pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
			pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
			pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
		}
		logger.Info("Pprof endpoints enabled under /debug/pprof")
	}

	return router
}
