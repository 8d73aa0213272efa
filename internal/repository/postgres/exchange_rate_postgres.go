package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

const rateColumns = `id, currency, rate, created_at, updated_at`

type exchangeRateRepository struct{ pool *pgxpool.Pool }

func NewExchangeRateRepository(pool *pgxpool.Pool) repository.ExchangeRateRepository {
	return &exchangeRateRepository{pool: pool}
}

func scanRate(row pgx.Row, extra ...any) (model.ExchangeRate, error) {
	var e model.ExchangeRate
	err := row.Scan(append([]any{&e.ID, &e.Currency, &e.Rate, &e.CreatedAt, &e.UpdatedAt}, extra...)...)
	return e, err
}

// Upsert keys on currency: a second write replaces the rate in place.
func (r *exchangeRateRepository) Upsert(ctx context.Context, e model.ExchangeRate) (model.ExchangeRate, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ExchangeRate{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO exchange_rates (currency, rate)
		 VALUES ($1, $2)
		 ON CONFLICT (currency) DO UPDATE
		 SET rate = EXCLUDED.rate, updated_at = now()
		 RETURNING `+rateColumns,
		e.Currency, e.Rate,
	)
	out, err := scanRate(row)
	if err != nil {
		return model.ExchangeRate{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *exchangeRateRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.ExchangeRate], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.ExchangeRate]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	db := conn(ctx, r.pool)
	rows, err := db.Query(ctx,
		`SELECT `+rateColumns+`, COUNT(*) OVER() AS total
		 FROM exchange_rates
		 ORDER BY currency
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.ExchangeRate]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.ExchangeRate]{Items: make([]model.ExchangeRate, 0, limit)}
	for rows.Next() {
		var total int
		it, err := scanRate(rows, &total)
		if err != nil {
			return repository.PageResult[model.ExchangeRate]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.ExchangeRate]{}, repository.MapPgError(err)
	}
	if len(res.Items) == 0 && offset > 0 {
		if res.Total, err = countWhere(ctx, db, "exchange_rates", where{}); err != nil {
			return repository.PageResult[model.ExchangeRate]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

var _ repository.ExchangeRateRepository = (*exchangeRateRepository)(nil)
