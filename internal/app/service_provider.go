package app

import (
	"context"
	"errors"
	authAPI "slot_engine/internal/api/auth"
	cascadeAPI "slot_engine/internal/api/cascade"
	lineAPI "slot_engine/internal/api/line"
	paymentAPI "slot_engine/internal/api/payment"
	statsAPI "slot_engine/internal/api/stats"
	"slot_engine/internal/config"
	"slot_engine/internal/config/env"
	cascadeGame "slot_engine/internal/engine/cascade"
	lineGame "slot_engine/internal/engine/line"
	"slot_engine/internal/locker"
	"slot_engine/internal/logger"
	"slot_engine/internal/middleware"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	"slot_engine/internal/repository/auth_repo"
	"slot_engine/internal/repository/cascade_repo"
	"slot_engine/internal/repository/history_repo"
	"slot_engine/internal/repository/line_repo"
	"slot_engine/internal/repository/memory"
	"slot_engine/internal/repository/stats_repo"
	"slot_engine/internal/repository/user_repo"
	"slot_engine/internal/service"
	"slot_engine/internal/service/auth"
	"slot_engine/internal/service/cascade"
	"slot_engine/internal/service/line"
	"slot_engine/internal/service/payment"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// targetRTP ожидаемый RTP обеих игр, %
	targetRTP = 95
	// statsWindow размер окна скользящего RTP
	statsWindow = 1000
)

type ServiceProvider struct {
	log *zap.Logger

	// Configs
	logCfg   config.LogConfig
	gameCfg  config.GameConfig
	httpCfg  config.HTTPConfig
	jwtCfg   config.JWTConfig
	redisCfg config.RedisConfig

	// Storage: postgres, а без PG_DSN память процесса
	storageReady bool
	dbClient     *pgxpool.Pool
	txManager    trm.Manager
	userRepo     repository.UserRepository
	authRepo     repository.AuthRepository
	historyRepo  repository.HistoryRepository
	lineRepo     repository.LineRepository
	cascadeRepo  repository.CascadeRepository

	// Locker
	redisClient *redis.Client
	locker      locker.Locker

	// Services
	authServ    service.AuthService
	paymentServ service.PaymentService
	lineServ    service.LineService
	cascadeServ service.CascadeService

	router chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(sp.LogCfg())
		if err != nil {
			panic("failed to build logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML(env.GameConfigPath())
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

// initStorage выбирает хранилище один раз на процесс
func (sp *ServiceProvider) initStorage(ctx context.Context) {
	if sp.storageReady {
		return
	}
	sp.storageReady = true

	pgCfg, err := env.NewPGConfig()
	if errors.Is(err, env.ErrNoDSN) {
		sp.Logger().Warn("postgres is not configured, state is kept in memory")
		sp.txManager = memory.TxManager{}
		sp.userRepo = memory.NewUsers()
		sp.authRepo = memory.NewSessions()
		sp.historyRepo = memory.NewHistory()
		// Фриспины у каждой игры свои
		sp.lineRepo = memory.NewGameState()
		sp.cascadeRepo = memory.NewGameState()
		return
	}

	if err != nil {
		panic("failed to get database config: " + err.Error())
	}
	poolCfg, err := pgxpool.ParseConfig(pgCfg.DSN())
	if err != nil {
		panic("failed to parse pg dsn: " + err.Error())
	}
	if n := pgCfg.MaxConns(); n > 0 {
		poolCfg.MaxConns = n
	}
	dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		panic("failed to create db pool: " + err.Error())
	}
	if err = dbc.Ping(ctx); err != nil {
		panic("failed to ping db: " + err.Error())
	}
	m, err := manager.New(trmpgx.NewDefaultFactory(dbc))
	if err != nil {
		panic("failed to create tx manager: " + err.Error())
	}

	sp.dbClient = dbc
	sp.txManager = m
	sp.userRepo = user_repo.NewUserRepository(dbc)
	sp.authRepo = auth_repo.NewAuthRepository(dbc)
	sp.historyRepo = history_repo.NewHistoryRepository(dbc)
	sp.lineRepo = line_repo.NewLineRepository(dbc)
	sp.cascadeRepo = cascade_repo.NewCascadeRepository(dbc)
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	sp.initStorage(ctx)
	return sp.txManager
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	sp.initStorage(ctx)
	return sp.userRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	sp.initStorage(ctx)
	return sp.authRepo
}

func (sp *ServiceProvider) HistoryRepo(ctx context.Context) repository.HistoryRepository {
	sp.initStorage(ctx)
	return sp.historyRepo
}

func (sp *ServiceProvider) LineRepository(ctx context.Context) repository.LineRepository {
	sp.initStorage(ctx)
	return sp.lineRepo
}

func (sp *ServiceProvider) CascadeRepository(ctx context.Context) repository.CascadeRepository {
	sp.initStorage(ctx)
	return sp.cascadeRepo
}

// Locker redis при заданном REDIS_ADDR, иначе локальные мьютексы
func (sp *ServiceProvider) Locker(ctx context.Context) locker.Locker {
	if sp.locker == nil {
		cfg := sp.RedisCfg()
		if len(cfg.Address()) == 0 {
			sp.locker = locker.NewMemory()
			return sp.locker
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Address(),
			Password: cfg.Password(),
			DB:       cfg.DB(),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			panic("failed to ping redis: " + err.Error())
		}
		sp.redisClient = client
		sp.locker = locker.NewRedis(client, cfg.LockTTL(), sp.Logger())
	}
	return sp.locker
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) PaymentService(ctx context.Context) service.PaymentService {
	if sp.paymentServ == nil {
		sp.paymentServ = payment.NewPaymentService(sp.UserRepo(ctx), sp.Locker(ctx), sp.Logger())
	}
	return sp.paymentServ
}

func (sp *ServiceProvider) LineService(ctx context.Context) service.LineService {
	if sp.lineServ == nil {
		game, err := lineGame.New(sp.GameCfg().Line())
		if err != nil {
			panic("failed to build line game: " + err.Error())
		}
		sp.lineServ = line.NewLineService(line.Deps{
			Game:        game,
			Repo:        sp.LineRepository(ctx),
			UserRepo:    sp.UserRepo(ctx),
			HistoryRepo: sp.HistoryRepo(ctx),
			StatsRepo:   stats_repo.NewStatsRepository(model.GameLine, decimal.NewFromInt(targetRTP), statsWindow, sp.Logger()),
			TxManager:   sp.TXManager(ctx),
			Locker:      sp.Locker(ctx),
			Log:         sp.Logger(),
		})
	}
	return sp.lineServ
}

func (sp *ServiceProvider) CascadeService(ctx context.Context) service.CascadeService {
	if sp.cascadeServ == nil {
		game, err := cascadeGame.New(sp.GameCfg().Cascade())
		if err != nil {
			panic("failed to build cascade game: " + err.Error())
		}
		sp.cascadeServ = cascade.NewCascadeService(cascade.Deps{
			Game:        game,
			Repo:        sp.CascadeRepository(ctx),
			UserRepo:    sp.UserRepo(ctx),
			HistoryRepo: sp.HistoryRepo(ctx),
			StatsRepo:   stats_repo.NewStatsRepository(model.GameCascade, decimal.NewFromInt(targetRTP), statsWindow, sp.Logger()),
			TxManager:   sp.TXManager(ctx),
			Locker:      sp.Locker(ctx),
			Log:         sp.Logger(),
		})
	}
	return sp.cascadeServ
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		log := sp.Logger()
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.RealIP)
		r.Use(middleware.AccessLog(log))
		r.Use(chimw.Recoverer)
		r.Use(middleware.Compression)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		authHandler := authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:      sp.AuthService(ctx),
			Log:       log,
			CookieTTL: sp.JWTCfg().RefreshTokenDuration(),
		})
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		lineServ := sp.LineService(ctx)
		cascadeServ := sp.CascadeService(ctx)

		statsHandler := statsAPI.NewHandler(map[model.Game]statsAPI.Source{
			model.GameLine:    lineServ.Stats,
			model.GameCascade: cascadeServ.Stats,
		})
		r.Get("/stats/{game}", statsHandler.Get)

		r.Group(func(pr chi.Router) {
			pr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			// Line endpoints
			lineHandler := lineAPI.NewHandler(lineAPI.HandlerDeps{Serv: lineServ, Log: log})
			pr.Route("/line", func(rr chi.Router) {
				rr.Post("/spin", lineHandler.Spin)
				rr.Post("/buy-bonus", lineHandler.BuyBonus)
				rr.Get("/check-data", lineHandler.CheckData)
				rr.Get("/history", lineHandler.History)
			})

			// Cascade endpoints
			cascadeHandler := cascadeAPI.NewHandler(cascadeAPI.HandlerDeps{Serv: cascadeServ, Log: log})
			pr.Route("/cascade", func(rr chi.Router) {
				rr.Post("/spin", cascadeHandler.Spin)
				rr.Post("/buy-bonus", cascadeHandler.BuyBonus)
				rr.Get("/check-data", cascadeHandler.CheckData)
				rr.Get("/history", cascadeHandler.History)
			})

			paymentHandler := paymentAPI.NewHandler(paymentAPI.HandlerDeps{Serv: sp.PaymentService(ctx), Log: log})
			pr.Route("/payment", func(rr chi.Router) {
				rr.Post("/deposit", paymentHandler.Deposit)
				rr.Get("/balance", paymentHandler.Balance)
			})
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает внешние подключения
func (sp *ServiceProvider) Close() {
	if sp.redisClient != nil {
		if err := sp.redisClient.Close(); err != nil {
			sp.Logger().Warn("redis close", zap.Error(err))
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}
