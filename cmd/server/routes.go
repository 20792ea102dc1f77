package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/planner/internal/config"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api"
	"github.com/Nixie-Tech-LLC/planner/internal/http/api/planner/endpoints"
	"github.com/Nixie-Tech-LLC/planner/internal/publish"
	"github.com/Nixie-Tech-LLC/planner/internal/service"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc *service.CalendarService, publisher *publish.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Planner backend running!")
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		endpoints.EventModule(svc),
		endpoints.RecurringEventModule(svc),
		endpoints.CalendarModule(svc, publisher),
		endpoints.GroupModule(svc),
		endpoints.AIModule(),
	)

	// Published feed
	if !cfg.UseSpaces {
		r.Static("/public", cfg.UploadDir)
	}
}
