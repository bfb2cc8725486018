package main

import (
	"net/http"

	"github.com/iconluxury/bucketd/internal/config"
	"github.com/iconluxury/bucketd/internal/handlers"
	custommiddleware "github.com/iconluxury/bucketd/internal/middleware"
	"github.com/iconluxury/bucketd/internal/services"
	"github.com/iconluxury/bucketd/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Server.LogLevel)

	e, err := newServer(cfg)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to build server")
	}

	logger.Log.Info().Str("port", cfg.Server.Port).Msg("bucketd listening")
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Log.Fatal().Err(err).Msg("server stopped")
	}
}

// newServer wires one browser handler per configured deployment under its
// own path prefix. The deployments share identical logic and differ only
// in store configuration.
func newServer(cfg *config.Config) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
	}))
	e.Use(custommiddleware.RequestLogger())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	for _, dep := range cfg.Deployments {
		store, err := services.NewStore(services.StoreConfig{
			Endpoint:  dep.Endpoint,
			AccessKey: dep.AccessKey,
			SecretKey: dep.SecretKey,
			Bucket:    dep.Bucket,
			Region:    dep.Region,
			UseSSL:    dep.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		handler := handlers.NewBrowserHandler(services.NewObjectBrowser(store))
		registerBrowserRoutes(e.Group(dep.PathPrefix), handler)
		logger.Log.Info().
			Str("deployment", dep.Name).
			Str("bucket", dep.Bucket).
			Str("endpoint", dep.Endpoint).
			Msg("deployment mounted")
	}

	return e, nil
}

func registerBrowserRoutes(g *echo.Group, h *handlers.BrowserHandler) {
	g.GET("/list", h.ListObjects)
	g.GET("/sign", h.SignObject)
	g.POST("/upload", h.UploadObject)
	g.POST("/delete", h.DeleteObjects)
	g.GET("/export-csv", h.ExportCSV)
}
