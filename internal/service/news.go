package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/pagination"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

type newsService struct {
	repo repository.NewsRepository
	tx   repository.TxManager
	log  zerolog.Logger
}

func NewNewsService(repo repository.NewsRepository, tx repository.TxManager, logger zerolog.Logger) NewsService {
	l := logger.With().Str("module", "service").Str("component", "news").Logger()
	return &newsService{repo: repo, tx: tx, log: l}
}

func (s *newsService) CreateNews(ctx context.Context, in NewsInput) (model.News, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Slug == "" {
		in.Slug = slugify(in.Title)
	}

	ferrs := checkStruct(&in)
	if in.Slug != "" && !isValidSlug(in.Slug) {
		ferrs = append(ferrs, FieldError{Field: "slug", Message: "must be lowercase letters, digits and dashes"})
	}
	if in.Slug == "" && in.Title != "" {
		ferrs = append(ferrs, FieldError{Field: "slug", Message: "cannot be derived from title; provide one"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.News{}, err
	}

	status := model.NewsDraft
	if in.Publish {
		status = model.NewsPublished
	}
	out, err := s.repo.Create(ctx, model.News{
		Slug:     in.Slug,
		Title:    in.Title,
		Body:     in.Body,
		CoverURL: in.CoverURL,
		Status:   status,
	})
	if err != nil {
		s.log.Error().Err(err).Str("slug", in.Slug).Msg("create news failed")
		return model.News{}, err
	}
	s.log.Info().Int64("news_id", out.ID).Str("slug", out.Slug).Msg("news created")
	return out, nil
}

func (s *newsService) GetNewsBySlug(ctx context.Context, slug string) (model.News, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !isValidSlug(slug) {
		return model.News{}, NewInvalidInputError([]FieldError{{Field: "slug", Message: "must be lowercase letters, digits and dashes"}})
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *newsService) ChangeNewsStatus(ctx context.Context, id int64, status string) (model.News, error) {
	next := model.ParseNewsStatus(status)
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if !next.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of draft, published, archived"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.News{}, err
	}

	var out model.News
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status == next {
			out = current
			return nil
		}
		if !current.Status.CanTransition(next) {
			return ErrInvalidTransition
		}
		out, err = s.repo.UpdateStatus(ctx, id, next)
		return err
	})
	if err != nil {
		return model.News{}, err
	}
	s.log.Info().Int64("news_id", id).Str("status", string(out.Status)).Msg("news status changed")
	return out, nil
}

func (s *newsService) ListNews(ctx context.Context, status string, page pagination.PageRequest) (repository.PageResult[model.News], error) {
	st := model.ParseNewsStatus(status)
	if st != "" && !st.Valid() {
		return repository.PageResult[model.News]{}, NewInvalidInputError([]FieldError{{Field: "status", Message: "must be one of draft, published, archived"}})
	}
	p := repository.PageFromRequest(normalizePage(page))
	res, err := s.repo.List(ctx, st, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list news failed")
		return repository.PageResult[model.News]{}, err
	}
	return res, nil
}
