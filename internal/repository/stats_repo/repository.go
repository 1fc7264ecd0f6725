package stats_repo

import (
	"slot_engine/internal/model"
	"slot_engine/internal/repository"
	repoModel "slot_engine/internal/repository/stats_repo/model"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// periodSpinsToCheck проверка отклонения каждые N спинов
	periodSpinsToCheck = 25
	// criticalRTPDeviation отклонение RTP окна от целевого для тревоги, п.п.
	criticalRTPDeviation = 10
	// normalRTPDeviation отклонение, при котором тревога снимается, п.п.
	normalRTPDeviation = 5

	defaultWindowSize = 500
)

var hundred = decimal.NewFromInt(100)

// StatsRepo статистика RTP одной игры в памяти процесса. Только наблюдение, на математику не влияет
type StatsRepo struct {
	mtx   sync.RWMutex
	game  model.Game
	log   *zap.Logger
	state repoModel.GameState
}

// NewStatsRepository targetRTP в процентах, windowSize <= 0 - окно по умолчанию
func NewStatsRepository(game model.Game, targetRTP decimal.Decimal, windowSize int, log *zap.Logger) repository.StatsRepository {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsRepo{
		game: game,
		log:  log.With(zap.String("game", string(game))),
		state: repoModel.GameState{
			TargetRTP:  targetRTP,
			SpinWindow: make([]repoModel.SpinResult, 0, windowSize),
			WindowSize: windowSize,
		},
	}
}

// Record учитывает завершенный раунд. bet - фактическое списание, у фриспина 0
func (r *StatsRepo) Record(bet, payout int64) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s := &r.state
	b, p := decimal.NewFromInt(bet), decimal.NewFromInt(payout)

	s.TotalSpins++
	s.TotalBet = s.TotalBet.Add(b)
	s.TotalPayout = s.TotalPayout.Add(p)
	s.CurrentRTP = rtp(s.TotalPayout, s.TotalBet)

	s.SpinWindow = append(s.SpinWindow, repoModel.SpinResult{Bet: bet, Payout: payout})
	s.WindowBet = s.WindowBet.Add(b)
	s.WindowPay = s.WindowPay.Add(p)
	if len(s.SpinWindow) > s.WindowSize {
		old := s.SpinWindow[0]
		s.SpinWindow = s.SpinWindow[1:]
		s.WindowBet = s.WindowBet.Sub(decimal.NewFromInt(old.Bet))
		s.WindowPay = s.WindowPay.Sub(decimal.NewFromInt(old.Payout))
	}
	s.WindowRTP = rtp(s.WindowPay, s.WindowBet)

	if s.TotalSpins%periodSpinsToCheck == 0 {
		r.check()
	}
}

// check включает и снимает тревогу по отклонению RTP окна
func (r *StatsRepo) check() {
	s := &r.state
	if len(s.SpinWindow) < s.WindowSize || s.WindowBet.IsZero() {
		return
	}
	diff := s.WindowRTP.Sub(s.TargetRTP).Abs()

	switch {
	case !s.Alert && diff.GreaterThan(decimal.NewFromInt(criticalRTPDeviation)):
		s.Alert = true
		r.log.Warn("window rtp deviates from target",
			zap.String("window_rtp", s.WindowRTP.StringFixed(2)),
			zap.String("target_rtp", s.TargetRTP.StringFixed(2)),
			zap.Int64("spins", s.TotalSpins),
		)
	case s.Alert && diff.LessThan(decimal.NewFromInt(normalRTPDeviation)):
		s.Alert = false
		r.log.Info("window rtp back to normal",
			zap.String("window_rtp", s.WindowRTP.StringFixed(2)),
			zap.Int64("spins", s.TotalSpins),
		)
	}
}

// Snapshot копия статистики для API
func (r *StatsRepo) Snapshot() model.GameStats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	s := r.state
	return model.GameStats{
		Game:        r.game,
		TotalSpins:  s.TotalSpins,
		TotalBet:    s.TotalBet.String(),
		TotalPayout: s.TotalPayout.String(),
		CurrentRTP:  s.CurrentRTP.StringFixed(2),
		WindowRTP:   s.WindowRTP.StringFixed(2),
		TargetRTP:   s.TargetRTP.StringFixed(2),
		WindowSize:  len(s.SpinWindow),
		Alert:       s.Alert,
	}
}

func rtp(payout, bet decimal.Decimal) decimal.Decimal {
	if bet.IsZero() {
		return decimal.Zero
	}
	return payout.Mul(hundred).Div(bet)
}
