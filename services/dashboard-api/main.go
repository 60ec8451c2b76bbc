package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers"
	"github.com/Fkenogo/brand-health-analytics-banks/pkg/apihelpers/middlewares"
	"github.com/Fkenogo/brand-health-analytics-banks/services/dashboard-api/apihandlers"
)

func main() {
	figure.NewFigure("BRAND HEALTH", "", true).Print()
	fmt.Println("======================================================")
	fmt.Printf("Dashboard API - %d banks\n\n", len(bankCatalogue))

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Content-Length", middlewares.HeaderAPIKey},
		ExposeHeaders:    []string{"Authorization", "Content-Type", "Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		responseStore,
		surveyDefinition,
		bankCatalogue,
		apihandlers.AuthConfig{
			PasswordHash: conf.Admin.PasswordHash,
			TokenSignKey: conf.Admin.JWTSignKey,
			ExpiresIn:    adminTokenExpires,
			APIKeys:      apiKeys,
			LoginLimiter: middlewares.NewKeyedRateLimiter(
				conf.Admin.LoginRateLimit.PerMinute,
				conf.Admin.LoginRateLimit.Burst,
			),
		},
	)
	v1APIHandlers.AddAuthAPI(v1Root)
	v1APIHandlers.AddMetricsAPI(v1Root)
	v1APIHandlers.AddExportAPI(v1Root)
	v1APIHandlers.AddDataManagementAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "dashboard-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Dashboard API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Dashboard API", slog.String("error", err.Error()))
			return
		}
	} else {
		// Create tls config for mutual TLS
		tlsConfig, err := apihelpers.LoadTLSConfig(conf.GinConfig.MTLS.CertificatePaths)
		if err != nil {
			slog.Error("Error loading TLS config.", slog.String("error", err.Error()))
			return
		}

		server := &http.Server{
			Addr:              ":" + conf.GinConfig.Port,
			Handler:           router,
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: 10 * time.Second,
		}

		err = server.ListenAndServeTLS(conf.GinConfig.MTLS.CertificatePaths.ServerCertPath, conf.GinConfig.MTLS.CertificatePaths.ServerKeyPath)
		if err != nil {
			slog.Error("Exited Dashboard API", slog.String("error", err.Error()))
			return
		}
	}
}
