package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

const brokerColumns = `id, full_name, email, phone, agency, avatar_url, status, created_at, updated_at`

type brokerRepository struct{ pool *pgxpool.Pool }

func NewBrokerRepository(pool *pgxpool.Pool) repository.BrokerRepository {
	return &brokerRepository{pool: pool}
}

func scanBroker(row pgx.Row, extra ...any) (model.Broker, error) {
	var b model.Broker
	dest := []any{&b.ID, &b.FullName, &b.Email, &b.Phone, &b.Agency, &b.AvatarURL, &b.Status, &b.CreatedAt, &b.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return b, err
}

func (r *brokerRepository) Create(ctx context.Context, b model.Broker) (model.Broker, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Broker{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO brokers (full_name, email, phone, agency, avatar_url, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+brokerColumns,
		b.FullName, b.Email, b.Phone, b.Agency, b.AvatarURL, b.Status,
	)
	out, err := scanBroker(row)
	if err != nil {
		return model.Broker{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *brokerRepository) GetByID(ctx context.Context, id int64) (model.Broker, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Broker{}, err
	}
	out, err := scanBroker(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+brokerColumns+` FROM brokers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Broker{}, repository.ErrNotFound
		}
		return model.Broker{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *brokerRepository) UpdateStatus(ctx context.Context, id int64, status model.BrokerStatus) (model.Broker, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Broker{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE brokers SET status = $2, updated_at = now() WHERE id = $1 RETURNING `+brokerColumns,
		id, status,
	)
	out, err := scanBroker(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Broker{}, repository.ErrNotFound
		}
		return model.Broker{}, repository.MapPgError(err)
	}
	return out, nil
}

// List pages brokers alphabetically; an empty status lists all of them.
func (r *brokerRepository) List(ctx context.Context, status model.BrokerStatus, p repository.Page) (repository.PageResult[model.Broker], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Broker]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	var w where
	if status != "" {
		w.add("status = ?", status)
	}
	db := conn(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+brokerColumns+`, COUNT(*) OVER() AS total
		 FROM brokers`+w.sql()+`
		 ORDER BY full_name, id
		 LIMIT `+w.next(1)+` OFFSET `+w.next(2),
		append(w.args, limit, offset)...,
	)
	if err != nil {
		return repository.PageResult[model.Broker]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Broker]{Items: make([]model.Broker, 0, limit)}
	for rows.Next() {
		var total int
		it, err := scanBroker(rows, &total)
		if err != nil {
			return repository.PageResult[model.Broker]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Broker]{}, repository.MapPgError(err)
	}
	if len(res.Items) == 0 && offset > 0 {
		if res.Total, err = countWhere(ctx, db, "brokers", w); err != nil {
			return repository.PageResult[model.Broker]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

func (r *brokerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM brokers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

var _ repository.BrokerRepository = (*brokerRepository)(nil)
