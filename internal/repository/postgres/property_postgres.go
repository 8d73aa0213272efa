package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

const propertyColumns = `id, title, description, price, currency, city, address, area_sqm, rooms,
	type, deal, status, broker_id, image_urls, created_at, updated_at`

type propertyRepository struct{ pool *pgxpool.Pool }

func NewPropertyRepository(pool *pgxpool.Pool) repository.PropertyRepository {
	return &propertyRepository{pool: pool}
}

func scanProperty(row pgx.Row, extra ...any) (model.Property, error) {
	var p model.Property
	dest := []any{
		&p.ID, &p.Title, &p.Description, &p.Price, &p.Currency, &p.City, &p.Address, &p.AreaSqm, &p.Rooms,
		&p.Type, &p.Deal, &p.Status, &p.BrokerID, &p.ImageURLs, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return model.Property{}, err
	}
	if p.ImageURLs == nil {
		p.ImageURLs = []string{}
	}
	return p, nil
}

func imageURLs(urls []string) []string {
	if urls == nil {
		return []string{}
	}
	return urls
}

func (r *propertyRepository) Create(ctx context.Context, p model.Property) (model.Property, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Property{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO properties (title, description, price, currency, city, address, area_sqm, rooms, type, deal, status, broker_id, image_urls)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING `+propertyColumns,
		p.Title, p.Description, p.Price, p.Currency, p.City, p.Address, p.AreaSqm, p.Rooms,
		p.Type, p.Deal, p.Status, p.BrokerID, imageURLs(p.ImageURLs),
	)
	out, err := scanProperty(row)
	if err != nil {
		return model.Property{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (model.Property, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Property{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx, `SELECT `+propertyColumns+` FROM properties WHERE id = $1`, id)
	out, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Property{}, repository.ErrNotFound
		}
		return model.Property{}, repository.MapPgError(err)
	}
	return out, nil
}

// Update rewrites the editable attributes. Status only moves through UpdateStatus.
func (r *propertyRepository) Update(ctx context.Context, p model.Property) (model.Property, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Property{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE properties
		 SET title = $2, description = $3, price = $4, currency = $5, city = $6, address = $7,
		     area_sqm = $8, rooms = $9, type = $10, deal = $11, broker_id = $12, image_urls = $13,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+propertyColumns,
		p.ID, p.Title, p.Description, p.Price, p.Currency, p.City, p.Address,
		p.AreaSqm, p.Rooms, p.Type, p.Deal, p.BrokerID, imageURLs(p.ImageURLs),
	)
	out, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Property{}, repository.ErrNotFound
		}
		return model.Property{}, repository.MapPgError(err)
	}
	return out, nil
}

// UpdateStatus is a compare-and-set on the status column so two concurrent
// transitions cannot both win.
func (r *propertyRepository) UpdateStatus(ctx context.Context, id int64, from, to model.PropertyStatus) (model.Property, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Property{}, err
	}
	db := conn(ctx, r.pool)
	row := db.QueryRow(ctx,
		`UPDATE properties SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+propertyColumns,
		id, from, to,
	)
	out, err := scanProperty(row)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Property{}, repository.MapPgError(err)
	}
	var exists bool
	if err := db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`, id).Scan(&exists); err != nil {
		return model.Property{}, repository.MapPgError(err)
	}
	if !exists {
		return model.Property{}, repository.ErrNotFound
	}
	return model.Property{}, repository.ErrConflict
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func propertyWhere(f model.PropertyFilter) where {
	var w where
	if f.City != "" {
		w.add("lower(city) = lower(?)", f.City)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.Deal != "" {
		w.add("deal = ?", f.Deal)
	}
	if f.Status != "" {
		w.add("status = ?", f.Status)
	}
	if f.BrokerID > 0 {
		w.add("broker_id = ?", f.BrokerID)
	}
	if f.MinPrice > 0 {
		w.add("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		w.add("price <= ?", f.MaxPrice)
	}
	return w
}

func (r *propertyRepository) List(ctx context.Context, f model.PropertyFilter, p repository.Page) (repository.PageResult[model.Property], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Property]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	w := propertyWhere(f)
	db := conn(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+propertyColumns+`, COUNT(*) OVER() AS total
		 FROM properties`+w.sql()+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT `+w.next(1)+` OFFSET `+w.next(2),
		append(w.args, limit, offset)...,
	)
	if err != nil {
		return repository.PageResult[model.Property]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Property]{Items: make([]model.Property, 0, limit)}
	for rows.Next() {
		var total int
		it, err := scanProperty(rows, &total)
		if err != nil {
			return repository.PageResult[model.Property]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Property]{}, repository.MapPgError(err)
	}
	if len(res.Items) == 0 && offset > 0 {
		if res.Total, err = countWhere(ctx, db, "properties", w); err != nil {
			return repository.PageResult[model.Property]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

var _ repository.PropertyRepository = (*propertyRepository)(nil)
