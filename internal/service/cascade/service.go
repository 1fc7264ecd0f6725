package cascade

import (
	"slot_engine/internal/engine/cascade"
	"slot_engine/internal/locker"
	"slot_engine/internal/repository"
	"slot_engine/internal/service"
	"slot_engine/internal/service/round"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type Deps struct {
	Game        *cascade.Game
	Repo        repository.CascadeRepository
	UserRepo    repository.UserRepository
	HistoryRepo repository.HistoryRepository
	StatsRepo   repository.StatsRepository
	TxManager   trm.Manager
	Locker      locker.Locker
	RNG         round.Factory
	Log         *zap.Logger
}

type serv struct {
	game        *cascade.Game
	repo        repository.CascadeRepository
	userRepo    repository.UserRepository
	historyRepo repository.HistoryRepository
	statsRepo   repository.StatsRepository
	txManager   trm.Manager
	locker      locker.Locker
	rng         round.Factory
	log         *zap.Logger
}

// NewCascadeService каскад 7x7
func NewCascadeService(deps Deps) service.CascadeService {
	if deps.RNG == nil {
		deps.RNG = round.ProvablyFair()
	}
	if deps.Locker == nil {
		deps.Locker = locker.NewMemory()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &serv{
		game:        deps.Game,
		repo:        deps.Repo,
		userRepo:    deps.UserRepo,
		historyRepo: deps.HistoryRepo,
		statsRepo:   deps.StatsRepo,
		txManager:   deps.TxManager,
		locker:      deps.Locker,
		rng:         deps.RNG,
		log:         deps.Log.With(zap.String("game", "cascade")),
	}
}
