package main

import (
	nethttp "net/http"
	"time"

	"github.com/labstack/echo/v4"

	_ "weather-dash/configs"
	"weather-dash/internal/application/controller"
	"weather-dash/internal/application/middleware"
	"weather-dash/internal/application/schedule"
	"weather-dash/internal/domain/gateway/api"
	"weather-dash/internal/domain/gateway/cache"
	"weather-dash/internal/domain/registry"
	"weather-dash/internal/domain/usecase/dashboard"
	"weather-dash/internal/domain/usecase/health"
	"weather-dash/pkg/http"
	"weather-dash/pkg/log"
	"weather-dash/pkg/memcache"
	"weather-dash/pkg/msg"
	"weather-dash/pkg/redis"
	"weather-dash/pkg/resource"
	"weather-dash/web"
)

func main() {
	log.Info(msg.GetMessage("app.start"))

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	contextPath := resource.GetString("app.server.context-path")
	apiGroup := e.Group(contextPath)

	location, err := time.LoadLocation(resource.GetString("app.weather.timezone"))
	if err != nil {
		log.Fatalf("Invalid timezone %s: %v", resource.GetString("app.weather.timezone"), err)
	}

	// Init Registry
	cityRegistry := buildRegistry()

	// Init WeatherGateway
	weatherGateway := api.NewWeatherGateway(
		resource.GetString("app.weather.base-url"),
		resource.GetString("app.weather.timezone"),
		http.ClientOptions{
			ReadTimeout:       resource.GetDuration("app.weather.read-timeout"),
			ConnectionTimeout: resource.GetDuration("app.weather.connection-timeout"),
		},
	)

	cacheStore := buildCacheStore()
	cachedGateway := cache.NewCachedWeatherGateway(
		weatherGateway,
		cacheStore,
		resource.GetDuration("app.cache.current-ttl"),
		resource.GetDuration("app.cache.historical-ttl"),
	)

	// Init UseCase
	dashboardUseCase := dashboard.NewDashboardUseCase(
		cityRegistry,
		cachedGateway,
		location,
		resource.GetString("app.weather.historical-start-date"),
	)
	healthUseCase := health.NewHealthUseCase(cacheStore, cachedGateway)

	// Init Controller
	dashboardController := controller.NewDashboardController(apiGroup, dashboardUseCase)
	healthController := controller.NewHealthController(apiGroup, healthUseCase)

	// Init Routes
	dashboardController.InitDashboardRoutes()
	healthController.InitHealthRoutes()
	apiGroup.FileFS("", "index.html", web.Static)
	apiGroup.FileFS("/", "index.html", web.Static)
	if contextPath != "" && contextPath != "/" {
		e.GET("/", func(c echo.Context) error {
			return c.Redirect(nethttp.StatusMovedPermanently, contextPath+"/")
		})
	}

	// Init Schedule
	if resource.GetBool("app.refresh.enabled") {
		refreshScheduler := schedule.NewOverviewRefreshScheduler(dashboardUseCase, resource.GetString("app.refresh.cron"))
		refreshScheduler.InitRefreshScheduleTasks()
		defer refreshScheduler.Stop()
	}

	// Start Routes
	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
	log.Info(msg.GetMessage("app.started"))
}

// buildRegistry loads the city registry from the configured CSV, falling back
// to the built-in table when the file is absent or unusable.
func buildRegistry() *registry.Registry {
	csvPath := resource.GetString("app.registry.csv-path")
	if csvPath == "" {
		reg := registry.Default()
		log.Info(msg.GetMessage("registry.loaded", reg.Len()))
		return reg
	}

	reg, err := registry.LoadCSV(csvPath)
	if err != nil {
		log.Warn(msg.GetMessage("registry.csv-fallback", err))
		reg = registry.Default()
	}
	log.Info(msg.GetMessage("registry.loaded", reg.Len()))
	return reg
}

// buildCacheStore picks the cache backend from configuration. Memory is the
// default; redis is opt-in for deployments with more than one replica.
func buildCacheStore() cache.Store {
	backend := resource.GetString("app.cache.backend")
	if backend != "redis" {
		if backend != "memory" && backend != "" {
			log.Warnf("Unknown cache backend %s, using memory", backend)
		}
		return memcache.New()
	}

	config := redis.DefaultConfig()
	config.Host = resource.GetString("app.redis.host")
	config.Port = resource.GetInt("app.redis.port")
	config.Password = resource.GetString("app.redis.password")
	config.Database = resource.GetInt("app.redis.database")
	return redis.NewClient(config)
}
