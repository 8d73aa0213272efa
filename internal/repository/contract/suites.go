// Package contract holds storage-agnostic behaviour suites. Any repository
// implementation wires its factories into these Run* functions.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

type BrokerFactory func(t *testing.T) (repository.BrokerRepository, func())

type PropertyFactory func(t *testing.T) (repo repository.PropertyRepository, brokers repository.BrokerRepository, cleanup func())

type NewsFactory func(t *testing.T) (repository.NewsRepository, func())

type ExchangeRateFactory func(t *testing.T) (repository.ExchangeRateRepository, func())

type TxFactory func(t *testing.T) (tx repository.TxManager, brokers repository.BrokerRepository, cleanup func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func sampleBroker(i int) model.Broker {
	return model.Broker{
		FullName: fmt.Sprintf("Broker %c", 'A'+i),
		Email:    fmt.Sprintf("broker%d@example.com", i),
		Phone:    "+856 20 5555 0000",
		Agency:   "Mekong Homes",
		Status:   model.BrokerActive,
	}
}

func sampleProperty(title, city string, price int64) model.Property {
	return model.Property{
		Title:    title,
		Price:    price,
		Currency: "LAK",
		City:     city,
		AreaSqm:  80,
		Rooms:    3,
		Type:     model.PropertyApartment,
		Deal:     model.DealSale,
		Status:   model.PropertyDraft,
	}
}

func RunBrokerRepositoryContract(t *testing.T, makeRepo BrokerFactory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, sampleBroker(0))
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		got, err := repo.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Email != "broker0@example.com" || got.Status != model.BrokerActive {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("duplicate_email_conflict", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, sampleBroker(1)); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if _, err := repo.Create(ctx, sampleBroker(1)); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("status_filter_and_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 5; i++ {
			b, err := repo.Create(ctx, sampleBroker(i))
			if err != nil {
				t.Fatalf("seed %d: %v", i, err)
			}
			if i%2 == 1 {
				if _, err := repo.UpdateStatus(ctx, b.ID, model.BrokerSuspended); err != nil {
					t.Fatalf("suspend %d: %v", i, err)
				}
			}
		}
		res, err := repo.List(ctx, model.BrokerActive, repository.Page{Limit: 2})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 2 || res.Total != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
		all, err := repo.List(ctx, "", repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list all: %v", err)
		}
		if all.Total != 5 {
			t.Fatalf("expected 5 brokers, got %d", all.Total)
		}
	})

	t.Run("offset_past_end_keeps_total", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		for i := 0; i < 3; i++ {
			if _, err := repo.Create(ctx, sampleBroker(i)); err != nil {
				t.Fatalf("seed %d: %v", i, err)
			}
		}
		res, err := repo.List(ctx, "", repository.Page{Limit: 10, Offset: 30})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(res.Items) != 0 || res.Total != 3 {
			t.Fatalf("unexpected page: len=%d total=%d", len(res.Items), res.Total)
		}
	})

	t.Run("get_and_update_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.GetByID(ctx, 999999); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		if _, err := repo.UpdateStatus(ctx, 999999, model.BrokerSuspended); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		ok, err := repo.Exists(ctx, 999999)
		if err != nil || ok {
			t.Fatalf("expected missing broker, got ok=%v err=%v", ok, err)
		}
	})
}

func RunPropertyRepositoryContract(t *testing.T, makeRepo PropertyFactory) {
	t.Helper()

	t.Run("create_get_update_delete", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		p := sampleProperty("Riverside flat", "Vientiane", 1_500_000)
		p.ImageURLs = []string{"https://cdn.example.com/a.jpg"}
		created, err := repo.Create(ctx, p)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.ID == 0 || len(created.ImageURLs) != 1 {
			t.Fatalf("unexpected create result: %+v", created)
		}

		created.Title = "Riverside flat, renovated"
		created.Status = model.PropertySold // ignored by Update
		updated, err := repo.Update(ctx, created)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Title != "Riverside flat, renovated" || updated.Status != model.PropertyDraft {
			t.Fatalf("unexpected update result: %+v", updated)
		}

		if err := repo.Delete(ctx, created.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("status_compare_and_set", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, sampleProperty("House", "Luang Prabang", 900_000))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		out, err := repo.UpdateStatus(ctx, created.ID, model.PropertyDraft, model.PropertyPublished)
		if err != nil || out.Status != model.PropertyPublished {
			t.Fatalf("publish: %+v %v", out, err)
		}
		if _, err := repo.UpdateStatus(ctx, created.ID, model.PropertyDraft, model.PropertyPublished); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict on stale from, got %v", err)
		}
		if _, err := repo.UpdateStatus(ctx, 999999, model.PropertyDraft, model.PropertyPublished); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_filters", func(t *testing.T) {
		repo, brokers, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		b, err := brokers.Create(ctx, sampleBroker(0))
		if err != nil {
			t.Fatalf("seed broker: %v", err)
		}
		seed := []model.Property{
			sampleProperty("A", "Vientiane", 100),
			sampleProperty("B", "vientiane", 200),
			sampleProperty("C", "Pakse", 300),
		}
		seed[2].Deal = model.DealRent
		seed[1].BrokerID = &b.ID
		for _, p := range seed {
			if _, err := repo.Create(ctx, p); err != nil {
				t.Fatalf("seed property: %v", err)
			}
		}

		cases := []struct {
			name   string
			filter model.PropertyFilter
			want   int
		}{
			{"all", model.PropertyFilter{}, 3},
			{"city case-insensitive", model.PropertyFilter{City: "VIENTIANE"}, 2},
			{"deal", model.PropertyFilter{Deal: model.DealRent}, 1},
			{"price range", model.PropertyFilter{MinPrice: 150, MaxPrice: 300}, 2},
			{"broker", model.PropertyFilter{BrokerID: b.ID}, 1},
			{"status", model.PropertyFilter{Status: model.PropertyPublished}, 0},
		}
		for _, tc := range cases {
			res, err := repo.List(ctx, tc.filter, repository.Page{Limit: 10})
			if err != nil {
				t.Fatalf("%s: list: %v", tc.name, err)
			}
			if res.Total != tc.want || len(res.Items) != tc.want {
				t.Fatalf("%s: got len=%d total=%d, want %d", tc.name, len(res.Items), res.Total, tc.want)
			}
		}
	})

	t.Run("unknown_broker_conflict", func(t *testing.T) {
		repo, _, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		p := sampleProperty("Orphan", "Vientiane", 1)
		missing := int64(424242)
		p.BrokerID = &missing
		if _, err := repo.Create(context.Background(), p); !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func RunNewsRepositoryContract(t *testing.T, makeRepo NewsFactory) {
	t.Helper()

	t.Run("create_get_by_slug", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.News{Slug: "market-q3", Title: "Market Q3", Status: model.NewsDraft})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.PublishedAt != nil {
			t.Fatalf("draft must not carry published_at")
		}
		got, err := repo.GetBySlug(ctx, "market-q3")
		if err != nil || got.ID != created.ID {
			t.Fatalf("get by slug: %+v %v", got, err)
		}
		if _, err := repo.Create(ctx, model.News{Slug: "market-q3", Title: "dup", Status: model.NewsDraft}); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
		if _, err := repo.GetBySlug(ctx, "nope"); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("publish_stamps_once", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created, err := repo.Create(ctx, model.News{Slug: "launch", Title: "Launch", Status: model.NewsDraft})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		pub, err := repo.UpdateStatus(ctx, created.ID, model.NewsPublished)
		if err != nil || pub.PublishedAt == nil {
			t.Fatalf("publish: %+v %v", pub, err)
		}
		arch, err := repo.UpdateStatus(ctx, created.ID, model.NewsArchived)
		if err != nil || arch.PublishedAt == nil || !arch.PublishedAt.Equal(*pub.PublishedAt) {
			t.Fatalf("archive must keep published_at: %+v %v", arch, err)
		}
		res, err := repo.List(ctx, model.NewsPublished, repository.Page{Limit: 10})
		if err != nil || res.Total != 0 {
			t.Fatalf("expected no published news, got total=%d err=%v", res.Total, err)
		}
	})
}

func RunExchangeRateRepositoryContract(t *testing.T, makeRepo ExchangeRateFactory) {
	t.Helper()

	t.Run("upsert_replaces", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		first, err := repo.Upsert(ctx, model.ExchangeRate{Currency: "USD", Rate: 21000})
		if err != nil {
			t.Fatalf("upsert: %v", err)
		}
		second, err := repo.Upsert(ctx, model.ExchangeRate{Currency: "USD", Rate: 21500})
		if err != nil {
			t.Fatalf("upsert again: %v", err)
		}
		if first.ID != second.ID || second.Rate != 21500 {
			t.Fatalf("expected in-place update, got %+v then %+v", first, second)
		}
		if _, err := repo.Upsert(ctx, model.ExchangeRate{Currency: "THB", Rate: 600}); err != nil {
			t.Fatalf("upsert THB: %v", err)
		}
		res, err := repo.List(ctx, repository.Page{Limit: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.Total != 2 || res.Items[0].Currency != "THB" {
			t.Fatalf("unexpected list: %+v", res)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, brokers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := brokers.Create(ctx, sampleBroker(0))
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := brokers.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, brokers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		marker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := brokers.Create(ctx, sampleBroker(1))
			if err != nil {
				return err
			}
			createdID = out.ID
			return marker
		})
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := brokers.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("nested_joins_outer", func(t *testing.T) {
		tx, brokers, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		marker := errors.New("outer failed")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			if err := tx.WithinTx(ctx, func(ctx context.Context) error {
				out, err := brokers.Create(ctx, sampleBroker(2))
				createdID = out.ID
				return err
			}); err != nil {
				return err
			}
			return marker
		})
		if !errors.Is(err, marker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := brokers.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("inner write must roll back with the outer tx, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
