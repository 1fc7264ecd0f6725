package history_repo

import (
	"context"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table             = "spin_history"
	colRoundID        = "round_id"
	colUserID         = "user_id"
	colGame           = "game"
	colMode           = "mode"
	colBet            = "bet"
	colDebit          = "debit"
	colPayout         = "payout"
	colBalanceAfter   = "balance_after"
	colFreeSpins      = "free_spins"
	colServerSeed     = "server_seed"
	colServerSeedHash = "server_seed_hash"
	colClientSeed     = "client_seed"
	colNonce          = "nonce"
	colOutcome        = "outcome"
	colCreatedAt      = "created_at"

	maxListLimit = 100
)

var columns = []string{
	colRoundID, colUserID, colGame, colMode, colBet, colDebit, colPayout, colBalanceAfter,
	colFreeSpins, colServerSeed, colServerSeedHash, colClientSeed, colNonce, colOutcome, colCreatedAt,
}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewHistoryRepository(dbc *pgxpool.Pool) repository.HistoryRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// Save - запись раунда, в той же транзакции что и баланс
func (r *repo) Save(ctx context.Context, rec *model.SpinRecord) error {
	query := sq.Insert(table).
		Columns(columns...).
		Values(
			rec.RoundID, rec.UserID, string(rec.Game), string(rec.Mode), rec.Bet, rec.Debit, rec.Payout, rec.BalanceAfter,
			rec.FreeSpins, rec.Fairness.ServerSeed, rec.Fairness.ServerSeedHash, rec.Fairness.ClientSeed,
			int64(rec.Fairness.Nonce), rec.Outcome, rec.CreatedAt,
		).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}

// List - последние раунды игрока в игре, новые первыми
func (r *repo) List(ctx context.Context, userID int, game model.Game, limit int) ([]model.SpinRecord, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	query := sq.Select(columns...).
		From(table).
		Where(sq.Eq{colUserID: userID, colGame: string(game)}).
		OrderBy(colCreatedAt + " DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]model.SpinRecord, 0, limit)
	for rows.Next() {
		var (
			rec        model.SpinRecord
			game, mode string
			nonce      int64
		)
		err = rows.Scan(
			&rec.RoundID, &rec.UserID, &game, &mode, &rec.Bet, &rec.Debit, &rec.Payout, &rec.BalanceAfter,
			&rec.FreeSpins, &rec.Fairness.ServerSeed, &rec.Fairness.ServerSeedHash, &rec.Fairness.ClientSeed,
			&nonce, &rec.Outcome, &rec.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		rec.Game, rec.Mode = model.Game(game), model.Mode(mode)
		rec.Fairness.Nonce = uint64(nonce)
		records = append(records, rec)
	}

	return records, rows.Err()
}
