package app

import (
	"net/http"
	"strconv"

	"gold-day-go/internal/config"
	"gold-day-go/internal/db"
	assignmentdomain "gold-day-go/internal/domain/assignment"
	golddomain "gold-day-go/internal/domain/goldprice"
	groupdomain "gold-day-go/internal/domain/group"
	memberdomain "gold-day-go/internal/domain/member"
	"gold-day-go/internal/grouplock"
	"gold-day-go/internal/metrics"
	inmemoryrepo "gold-day-go/internal/repository/inmemory"
	assignmentrepo "gold-day-go/internal/repository/postgres/assignment"
	grouprepo "gold-day-go/internal/repository/postgres/group"
	memberrepo "gold-day-go/internal/repository/postgres/member"
	redisrepo "gold-day-go/internal/repository/redis"
	"gold-day-go/internal/transport/httpserver"
	"gold-day-go/internal/transport/httpserver/handler"
	"gold-day-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	redisClient, err := db.NewRedis(cfg.Redis, log)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	locks := grouplock.New()

	groups := groupdomain.NewService(grouprepo.NewPostgres(dbConn))
	members := memberdomain.NewService(memberrepo.NewPostgres(dbConn), locks)
	assignments := assignmentdomain.NewService(assignmentrepo.NewPostgres(dbConn), m, cfg.GoldPrice.ManualDrawYear, locks)
	goldPrice := golddomain.NewService(
		newPriceSource(cfg.GoldPrice),
		newPriceCache(redisClient, cfg.GoldPrice),
		golddomain.NewFetchWindows(cfg.GoldPrice.WindowHours, cfg.GoldPrice.WindowGrace),
		cfg.GoldPrice.DefaultGram,
		m,
		log,
	)

	log.Info("app: initializing router")
	handlers := handler.New(groups, members, assignments, goldPrice, log)
	router := httpserver.NewRouter(cfg, handlers)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
	}, nil
}

func newPriceSource(cfg config.GoldPriceConfig) golddomain.Source {
	var sources []golddomain.Source
	if cfg.SourceURL != "" {
		sources = append(sources, golddomain.NewHTTPSource("primary", cfg.SourceURL, cfg.APIToken, cfg.FetchTimeout))
	}
	for i, url := range cfg.FallbackURLs {
		name := "fallback-" + strconv.Itoa(i+1)
		sources = append(sources, golddomain.NewHTTPSource(name, url, cfg.APIToken, cfg.FetchTimeout))
	}
	return golddomain.NewChain(sources...)
}

func newPriceCache(client *goredis.Client, cfg config.GoldPriceConfig) golddomain.Cache {
	if client != nil {
		return redisrepo.NewPriceCache(client, cfg.CacheTTL)
	}
	return inmemoryrepo.NewPriceCache(cfg.CacheTTL)
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
