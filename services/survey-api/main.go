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
	"github.com/Fkenogo/brand-health-analytics-banks/services/survey-api/apihandlers"
)

func main() {
	printStartUpBanner()

	// Start webserver
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     conf.GinConfig.AllowOrigins,
		AllowMethods:     []string{"POST", "GET", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", middlewares.HeaderDeviceID},
		ExposeHeaders:    []string{"Content-Type", "Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add handlers
	router.GET("/", apihandlers.HealthCheckHandle)
	v1Root := router.Group("/v1")

	v1APIHandlers := apihandlers.NewHTTPHandler(
		surveyService,
		middlewares.NewKeyedRateLimiter(
			conf.SurveyConfig.RateLimit.PerMinute,
			conf.SurveyConfig.RateLimit.Burst,
		),
	)
	v1APIHandlers.AddSurveyAPI(v1Root)

	if conf.GinConfig.DebugMode {
		apihelpers.WriteRoutesToFile(router, "survey-api-routes.txt")
	}

	// Start the server
	slog.Info("Starting Survey API on port " + conf.GinConfig.Port)
	if !conf.GinConfig.MTLS.Use {
		err := router.Run(":" + conf.GinConfig.Port)
		if err != nil {
			slog.Error("Exited Survey API", slog.String("error", err.Error()))
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
			slog.Error("Exited Survey API", slog.String("error", err.Error()))
			return
		}
	}
}

func printStartUpBanner() {
	figure.NewFigure("BRAND HEALTH", "", true).Print()
	fmt.Println("======================================================")
	fmt.Printf("Survey API - %s v%s\n\n", surveyService.Definition().Key, surveyService.Definition().Version)
}
