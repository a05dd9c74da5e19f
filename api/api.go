package api

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/safenest-labs/safenest"
	"github.com/safenest-labs/safenest/api/middleware"
	"github.com/safenest-labs/safenest/config"
)

type Api struct {
	safenest *safenest.SafeNest
	router   *gin.Engine
}

func (a Api) Router() *gin.Engine {
	router := a.router
	router.GET("/vaults", a.GetVaults)

	router.POST("/deposits", a.Deposit)
	router.POST("/withdrawals", a.Withdraw)

	router.GET("/accounts/:account_id/snapshots", a.GetSnapshots)
	router.GET("/accounts/:account_id/transactions", a.GetHistory)
	router.DELETE("/accounts/:account_id/transactions", a.ClearHistory)

	return a.router
}

func NewAPI(s *safenest.SafeNest) *Api {
	gin.SetMode(gin.ReleaseMode)
	conf, err := config.Fetch()
	if err != nil {
		return nil
	}
	r := gin.Default()
	if conf.EnableTelemetry {
		r.Use(otelgin.Middleware(conf.ProjectName))
	}
	r.Use(middleware.RateLimitMiddleware(conf))
	if conf.Server.Secure {
		r.Use(middleware.SecretKeyAuthMiddleware())
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, "server running...")
	})

	return &Api{safenest: s, router: r}
}
