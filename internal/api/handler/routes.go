package handler

import (
	"net/http"

	"github.com/vfg2006/sellthrough-api/internal/api/handler/router"
	"github.com/vfg2006/sellthrough-api/internal/config"
	"github.com/vfg2006/sellthrough-api/internal/usecases/ingesting"
	"github.com/vfg2006/sellthrough-api/pkg/metrics"
	"github.com/vfg2006/sellthrough-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Sellthrough(service ingesting.Importer, cfg config.Ingest) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sellthrough/import",
			Method:      http.MethodPost,
			Handler:     UploadReport(service, cfg),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/sellthrough/imports",
			Method:      http.MethodGet,
			Handler:     ListImportRuns(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/sellthrough/imports/:id/errors",
			Method:      http.MethodGet,
			Handler:     GetImportRunErrors(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/sellthrough/formats",
			Method:      http.MethodGet,
			Handler:     ListFormats(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
		{
			Path:        "/v1/channels/:id/items",
			Method:      http.MethodGet,
			Handler:     ListChannelItems(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
