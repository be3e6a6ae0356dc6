package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/charlesng35/favorites/internal/app"
	"github.com/charlesng35/favorites/internal/handlers"
	"github.com/charlesng35/favorites/internal/middleware"
	"github.com/charlesng35/favorites/internal/monitoring"
	"github.com/charlesng35/favorites/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers the favorites routes.
func NewRouter(db *gorm.DB, cfg *app.Config, mon *monitoring.Module) (*gin.Engine, error) {
	if db == nil {
		return nil, errors.New("database handle must be provided")
	}
	if cfg == nil {
		return nil, errors.New("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowedOrigins...))

	registerHealthRoutes(r, cfg, mon)

	favoriteSvc, err := services.NewFavoriteService(db)
	if err != nil {
		return nil, err
	}
	registerFavoriteRoutes(r, handlers.NewFavoriteHandler(favoriteSvc))

	if mon != nil {
		registerMonitoringRoutes(r, handlers.NewMonitoringHandler(mon))

		if cfg.Monitoring.Prometheus.Enabled {
			endpoint := strings.TrimSpace(cfg.Monitoring.Prometheus.Endpoint)
			if endpoint == "" {
				endpoint = "/metrics"
			}
			r.GET(endpoint, gin.WrapH(mon.Handler()))
		}
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}

func registerFavoriteRoutes(r gin.IRouter, handler *handlers.FavoriteHandler) {
	favorites := r.Group("/favorites")
	{
		favorites.GET("", handler.List)
		favorites.POST("", handler.Create)
		favorites.GET("/:id", handler.Get)
		favorites.PUT("/:id", handler.Update)
		favorites.DELETE("/:id", handler.Delete)
	}
}
