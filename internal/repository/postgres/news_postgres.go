package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

const newsColumns = `id, slug, title, body, cover_url, status, published_at, created_at, updated_at`

type newsRepository struct{ pool *pgxpool.Pool }

func NewNewsRepository(pool *pgxpool.Pool) repository.NewsRepository {
	return &newsRepository{pool: pool}
}

func scanNews(row pgx.Row, extra ...any) (model.News, error) {
	var n model.News
	dest := []any{&n.ID, &n.Slug, &n.Title, &n.Body, &n.CoverURL, &n.Status, &n.PublishedAt, &n.CreatedAt, &n.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return n, err
}

func (r *newsRepository) getOne(ctx context.Context, sql string, arg any) (model.News, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.News{}, err
	}
	out, err := scanNews(conn(ctx, r.pool).QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.News{}, repository.ErrNotFound
		}
		return model.News{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *newsRepository) Create(ctx context.Context, n model.News) (model.News, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.News{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO news (slug, title, body, cover_url, status, published_at)
		 VALUES ($1, $2, $3, $4, $5, CASE WHEN $5::text = 'published' THEN now() END)
		 RETURNING `+newsColumns,
		n.Slug, n.Title, n.Body, n.CoverURL, n.Status,
	)
	out, err := scanNews(row)
	if err != nil {
		return model.News{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *newsRepository) GetByID(ctx context.Context, id int64) (model.News, error) {
	return r.getOne(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id)
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (model.News, error) {
	return r.getOne(ctx, `SELECT `+newsColumns+` FROM news WHERE slug = $1`, slug)
}

// UpdateStatus stamps published_at the first time an article is published
// and keeps it through later archive/draft cycles.
func (r *newsRepository) UpdateStatus(ctx context.Context, id int64, status model.NewsStatus) (model.News, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.News{}, err
	}
	row := conn(ctx, r.pool).QueryRow(ctx,
		`UPDATE news
		 SET status = $2,
		     published_at = CASE WHEN $2::text = 'published' THEN COALESCE(published_at, now()) ELSE published_at END,
		     updated_at = now()
		 WHERE id = $1
		 RETURNING `+newsColumns,
		id, status,
	)
	out, err := scanNews(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.News{}, repository.ErrNotFound
		}
		return model.News{}, repository.MapPgError(err)
	}
	return out, nil
}

// List orders newest first by publication, falling back to creation time
// for drafts.
func (r *newsRepository) List(ctx context.Context, status model.NewsStatus, p repository.Page) (repository.PageResult[model.News], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.News]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	var w where
	if status != "" {
		w.add("status = ?", status)
	}
	db := conn(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+newsColumns+`, COUNT(*) OVER() AS total
		 FROM news`+w.sql()+`
		 ORDER BY COALESCE(published_at, created_at) DESC, id DESC
		 LIMIT `+w.next(1)+` OFFSET `+w.next(2),
		append(w.args, limit, offset)...,
	)
	if err != nil {
		return repository.PageResult[model.News]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.News]{Items: make([]model.News, 0, limit)}
	for rows.Next() {
		var total int
		it, err := scanNews(rows, &total)
		if err != nil {
			return repository.PageResult[model.News]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, it)
		res.Total = total
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.News]{}, repository.MapPgError(err)
	}
	if len(res.Items) == 0 && offset > 0 {
		if res.Total, err = countWhere(ctx, db, "news", w); err != nil {
			return repository.PageResult[model.News]{}, repository.MapPgError(err)
		}
	}
	return res, nil
}

var _ repository.NewsRepository = (*newsRepository)(nil)
