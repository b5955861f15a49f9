package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/cocodems/elections/config"
	"github.com/cocodems/elections/db"
	"github.com/cocodems/elections/handlers"
	applog "github.com/cocodems/elections/logger"
	mw "github.com/cocodems/elections/middleware"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug, "api")
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()
	bdb, err := db.Setup(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("database setup failed", zap.Error(err))
	}
	defer bdb.Close()

	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	e := newServer(handlers.New(bdb, cfg.JWTKey()), cfg.JWTKey(), logger)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	logger.Info("starting server", zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

func newServer(h *handlers.Handler, jwtKey []byte, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	auth := mw.JWT(jwtKey)
	api := e.Group("/api")

	api.POST("/signin", h.Signin)

	api.GET("/elections", h.Elections)
	api.POST("/elections", h.CreateElection, auth)
	api.GET("/elections/:id/races", h.ElectionRaces)
	api.GET("/races/:id", h.RaceDetails)

	api.GET("/people", h.People)
	api.GET("/individuals/:id", h.Individual)
	api.PUT("/individuals/:id", h.UpdateIndividual, auth)

	api.GET("/jurisdictions", h.Jurisdictions)
	api.GET("/jurisdictions/:id", h.JurisdictionDetails)
	api.GET("/offices", h.Offices)
	api.GET("/offices/:id", h.OfficeDetails)

	return e
}
