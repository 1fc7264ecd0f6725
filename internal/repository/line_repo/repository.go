package line_repo

import (
	"context"
	"errors"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "line_game_state"
	playerId       = "user_id"
	freeSpinsCount = "free_spins_count"
	freeSpinBet    = "free_spin_bet"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewLineRepository(dbc *pgxpool.Pool) repository.LineRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// GetFreeSpins - остаток бесплатных спинов и ставка, на которой они выиграны
// Возвращает нули, если записи нет
func (r *repo) GetFreeSpins(ctx context.Context, id int) (model.FreeSpins, error) {
	query := sq.Select(freeSpinsCount, freeSpinBet).
		From(table).
		Where(sq.Eq{playerId: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return model.FreeSpins{}, err
	}

	var fs model.FreeSpins
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&fs.Count, &fs.Bet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FreeSpins{}, nil
		}
		return model.FreeSpins{}, err
	}

	return fs, nil
}

// UpdateFreeSpins - одна инструкция INSERT ... ON CONFLICT DO UPDATE
func (r *repo) UpdateFreeSpins(ctx context.Context, id int, fs model.FreeSpins) error {
	query := sq.Insert(table).
		Columns(playerId, freeSpinsCount, freeSpinBet).
		Values(id, fs.Count, fs.Bet).
		Suffix("ON CONFLICT (" + playerId + ") DO UPDATE SET " +
			freeSpinsCount + " = EXCLUDED." + freeSpinsCount + ", " +
			freeSpinBet + " = EXCLUDED." + freeSpinBet).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	return err
}
