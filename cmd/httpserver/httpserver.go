// Package httpserver manages server creation and api routing.
package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/reloop-app/reloop-core/internal/accountrepo"
	"github.com/reloop-app/reloop-core/internal/borrowdelivery"
	"github.com/reloop-app/reloop-core/internal/borrowservice"
	"github.com/reloop-app/reloop-core/internal/ledgerrepo"
	"github.com/reloop-app/reloop-core/internal/lendingrepo"
	"github.com/reloop-app/reloop-core/internal/middleware"
	"github.com/reloop-app/reloop-core/internal/reconciledelivery"
	"github.com/reloop-app/reloop-core/internal/reconcileservice"
	"github.com/reloop-app/reloop-core/pkg/clockpkg"
	"github.com/reloop-app/reloop-core/pkg/configpkg"
)

// Server holds handlers router and configuration.
type Server struct {
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	ledgerClient := ledgerrepo.NewClient(config.LedgerBaseURL, config.UpstreamTimeout)
	accountClient := accountrepo.NewClient(config.AccountBaseURL, config.UpstreamTimeout)
	lendingClient := lendingrepo.NewClient(config.LendingBaseURL, config.UpstreamTimeout)

	reconcileService := reconcileservice.New(ledgerClient, clockpkg.Real{})
	borrowService := borrowservice.New(accountClient, lendingClient)

	reconcileHandler := reconciledelivery.NewHandler(reconcileService)
	borrowHandler := borrowdelivery.NewHandler(borrowService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/reconciliations", reconcileHandler.Create)
	engine.POST("/borrows", borrowHandler.Create)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &Server{
		Engine: engine,
		Config: config,
	}

	return server, nil
}
