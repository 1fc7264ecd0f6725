package cascade_repo

import (
	"context"
	"errors"
	"slot_engine/internal/model"
	"slot_engine/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	jsoniter "github.com/json-iterator/go"
)

const (
	table          = "cascade_game_state"
	playerId       = "user_id"
	freeSpinsCount = "free_spins_count"
	freeSpinBet    = "free_spin_bet"
	mult           = "multipliers"
	hits           = "hits"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCascadeRepository(dbc *pgxpool.Pool) repository.CascadeRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetFreeSpins - остаток фриспинов и их ставка, нули если записи нет
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
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&fs.Count, &fs.Bet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.FreeSpins{}, nil
		}
		return model.FreeSpins{}, err
	}
	return fs, nil
}

// UpdateFreeSpins - новые фриспины и ставка, создает запись при отсутствии
func (r *repo) UpdateFreeSpins(ctx context.Context, id int, fs model.FreeSpins) error {
	return r.upsert(ctx, id, map[string]any{freeSpinsCount: fs.Count, freeSpinBet: fs.Bet})
}

// GetMultiplierState - множители и попадания ячеек.
// Пустое состояние, если записи нет или множители не сохранялись
func (r *repo) GetMultiplierState(ctx context.Context, id int) (model.MultiplierState, error) {
	query := sq.Select(mult, hits).
		From(table).
		Where(sq.Eq{playerId: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return model.MultiplierState{}, err
	}

	var multJSON, hitsJSON []byte
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&multJSON, &hitsJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MultiplierState{}, nil
		}
		return model.MultiplierState{}, err
	}
	if len(multJSON) == 0 || len(hitsJSON) == 0 {
		return model.MultiplierState{}, nil
	}

	var state model.MultiplierState
	if err = json.Unmarshal(multJSON, &state.Mult); err != nil {
		return model.MultiplierState{}, err
	}
	if err = json.Unmarshal(hitsJSON, &state.Hits); err != nil {
		return model.MultiplierState{}, err
	}

	return state, nil
}

// SetMultiplierState - сохраняет множители после раунда
func (r *repo) SetMultiplierState(ctx context.Context, id int, state model.MultiplierState) error {
	multJSON, err := json.Marshal(state.Mult)
	if err != nil {
		return err
	}
	hitsJSON, err := json.Marshal(state.Hits)
	if err != nil {
		return err
	}

	return r.upsert(ctx, id, map[string]any{mult: multJSON, hits: hitsJSON})
}

// upsert - UPDATE, при отсутствии строки INSERT
func (r *repo) upsert(ctx context.Context, id int, values map[string]any) error {
	sqlStr, args, err := sq.Update(table).
		SetMap(values).
		Where(sq.Eq{playerId: id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() > 0 {
		return nil
	}

	return r.insert(ctx, id, values)
}

func (r *repo) insert(ctx context.Context, id int, values map[string]any) error {
	row := map[string]any{playerId: id}
	for k, v := range values {
		row[k] = v
	}

	sqlStr, args, err := sq.Insert(table).
		SetMap(row).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}
