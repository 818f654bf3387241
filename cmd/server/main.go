package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"fleet-routing-service/internal/adapters/cache"
	"fleet-routing-service/internal/adapters/providers"
	"fleet-routing-service/internal/adapters/repositories"
	"fleet-routing-service/internal/adapters/solver"
	"fleet-routing-service/internal/api"
	"fleet-routing-service/internal/config"
	"fleet-routing-service/internal/platform/db"
	"fleet-routing-service/internal/ports"
	"fleet-routing-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Redis, Postgres, solver/provider HTTP clients)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(config.Get("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	// Route cache falls back to an in-process store when Redis is not
	// configured; cache-backend outages already degrade to misses either way.
	var store ports.KVStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		store, err = cache.NewRedisStore(rdb)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("REDIS_ADDR not set, using in-memory route cache")
		store = cache.NewMemoryStore()
	}

	var solverClient ports.SolverClient
	if cfg.Solver.BaseURL != "" {
		solverClient, err = solver.NewHTTPSolverClient(cfg.Solver.BaseURL, cfg.Solver.APIKey)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		log.Println("SOLVER_BASE_URL not set, all plans will use the fallback optimizer")
	}

	var trafficProvider ports.TrafficProvider
	if cfg.Traffic.BaseURL != "" {
		trafficProvider, err = providers.NewHTTPTrafficProvider(cfg.Traffic.BaseURL, cfg.Traffic.APIKey)
		if err != nil {
			log.Fatal(err)
		}
	}

	var weatherProvider ports.WeatherProvider
	if cfg.Weather.BaseURL != "" {
		weatherProvider, err = providers.NewHTTPWeatherProvider(cfg.Weather.BaseURL, cfg.Weather.APIKey)
		if err != nil {
			log.Fatal(err)
		}
	}

	routeCache := services.NewRouteCache(store, time.Duration(cfg.Engine.CacheTTLSec)*time.Second)
	optimizer := services.NewRouteOptimizer(solverClient, trafficProvider, weatherProvider, routeCache, services.OptimizerConfig{
		SolverTimeout:    time.Duration(cfg.Solver.TimeoutSec) * time.Second,
		FallbackSpeedKmh: cfg.Engine.FallbackSpeedKmh,
		PoolingRadiusKm:  cfg.Engine.PoolingRadiusKm,
		RerouteBufferKm:  cfg.Engine.RerouteBufferKm,
	})
	monitor := services.NewRerouteMonitor(services.RerouteMonitorConfig{
		BufferKm:    cfg.Engine.RerouteBufferKm,
		CommitSlack: time.Duration(cfg.Engine.CommitSlackMin) * time.Minute,
	})

	var shipments ports.ShipmentRepository
	var vehicles ports.VehicleRepository
	if strings.TrimSpace(cfg.Postgres.URL) != "" {
		pg, err := db.Open(cfg.Postgres.URL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		shipments = repositories.NewPgShipmentRepository(pg)
		vehicles = repositories.NewPgVehicleRepository(pg)
	} else {
		log.Println("DATABASE_URL not set, requests must carry inline stops and vehicles")
	}

	router := api.NewRouter(optimizer, monitor, shipments, vehicles)

	// Write timeout leaves room for a cold-cache optimization that rides the
	// full solver timeout before falling back.
	log.Printf("Server listening addr=:%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
