package service_test

import (
	"context"
	"sort"

	"github.com/maxviazov/realty-marketplace/internal/model"
	"github.com/maxviazov/realty-marketplace/internal/repository"
)

type fakeTx struct{ calls int }

func (f *fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	f.calls++
	return fn(ctx)
}

type fakePropertyRepo struct {
	nextID     int64
	items      map[int64]model.Property
	createErr  error
	lastPage   repository.Page
	lastFilter model.PropertyFilter
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{nextID: 1, items: map[int64]model.Property{}}
}

func (f *fakePropertyRepo) Create(_ context.Context, p model.Property) (model.Property, error) {
	if f.createErr != nil {
		return model.Property{}, f.createErr
	}
	p.ID = f.nextID
	f.nextID++
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePropertyRepo) GetByID(_ context.Context, id int64) (model.Property, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Property{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakePropertyRepo) Update(_ context.Context, p model.Property) (model.Property, error) {
	cur, ok := f.items[p.ID]
	if !ok {
		return model.Property{}, repository.ErrNotFound
	}
	p.Status = cur.Status
	f.items[p.ID] = p
	return p, nil
}

func (f *fakePropertyRepo) UpdateStatus(_ context.Context, id int64, from, to model.PropertyStatus) (model.Property, error) {
	cur, ok := f.items[id]
	if !ok {
		return model.Property{}, repository.ErrNotFound
	}
	if cur.Status != from {
		return model.Property{}, repository.ErrConflict
	}
	cur.Status = to
	f.items[id] = cur
	return cur, nil
}

func (f *fakePropertyRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.items[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakePropertyRepo) List(_ context.Context, filter model.PropertyFilter, p repository.Page) (repository.PageResult[model.Property], error) {
	f.lastPage = p
	f.lastFilter = filter
	res := repository.PageResult[model.Property]{}
	for _, v := range f.items {
		if filter.BrokerID > 0 && (v.BrokerID == nil || *v.BrokerID != filter.BrokerID) {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		res.Items = append(res.Items, v)
	}
	sort.Slice(res.Items, func(i, j int) bool { return res.Items[i].ID < res.Items[j].ID })
	res.Total = len(res.Items)
	return res, nil
}

var _ repository.PropertyRepository = (*fakePropertyRepo)(nil)

type fakeBrokerRepo struct {
	nextID   int64
	items    map[int64]model.Broker
	lastPage repository.Page
}

func newFakeBrokerRepo() *fakeBrokerRepo {
	return &fakeBrokerRepo{nextID: 1, items: map[int64]model.Broker{}}
}

func (f *fakeBrokerRepo) Create(_ context.Context, b model.Broker) (model.Broker, error) {
	for _, v := range f.items {
		if v.Email == b.Email {
			return model.Broker{}, repository.ErrAlreadyExists
		}
	}
	b.ID = f.nextID
	f.nextID++
	f.items[b.ID] = b
	return b, nil
}

func (f *fakeBrokerRepo) GetByID(_ context.Context, id int64) (model.Broker, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Broker{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeBrokerRepo) UpdateStatus(_ context.Context, id int64, status model.BrokerStatus) (model.Broker, error) {
	it, ok := f.items[id]
	if !ok {
		return model.Broker{}, repository.ErrNotFound
	}
	it.Status = status
	f.items[id] = it
	return it, nil
}

func (f *fakeBrokerRepo) List(_ context.Context, status model.BrokerStatus, p repository.Page) (repository.PageResult[model.Broker], error) {
	f.lastPage = p
	res := repository.PageResult[model.Broker]{}
	for _, v := range f.items {
		if status == "" || v.Status == status {
			res.Items = append(res.Items, v)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

func (f *fakeBrokerRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

var _ repository.BrokerRepository = (*fakeBrokerRepo)(nil)

type fakeNewsRepo struct {
	nextID int64
	items  map[int64]model.News
}

func newFakeNewsRepo() *fakeNewsRepo {
	return &fakeNewsRepo{nextID: 1, items: map[int64]model.News{}}
}

func (f *fakeNewsRepo) Create(_ context.Context, n model.News) (model.News, error) {
	for _, v := range f.items {
		if v.Slug == n.Slug {
			return model.News{}, repository.ErrAlreadyExists
		}
	}
	n.ID = f.nextID
	f.nextID++
	f.items[n.ID] = n
	return n, nil
}

func (f *fakeNewsRepo) GetByID(_ context.Context, id int64) (model.News, error) {
	it, ok := f.items[id]
	if !ok {
		return model.News{}, repository.ErrNotFound
	}
	return it, nil
}

func (f *fakeNewsRepo) GetBySlug(_ context.Context, slug string) (model.News, error) {
	for _, v := range f.items {
		if v.Slug == slug {
			return v, nil
		}
	}
	return model.News{}, repository.ErrNotFound
}

func (f *fakeNewsRepo) UpdateStatus(_ context.Context, id int64, status model.NewsStatus) (model.News, error) {
	it, ok := f.items[id]
	if !ok {
		return model.News{}, repository.ErrNotFound
	}
	it.Status = status
	f.items[id] = it
	return it, nil
}

func (f *fakeNewsRepo) List(_ context.Context, status model.NewsStatus, _ repository.Page) (repository.PageResult[model.News], error) {
	res := repository.PageResult[model.News]{}
	for _, v := range f.items {
		if status == "" || v.Status == status {
			res.Items = append(res.Items, v)
		}
	}
	res.Total = len(res.Items)
	return res, nil
}

var _ repository.NewsRepository = (*fakeNewsRepo)(nil)

type fakeRateRepo struct {
	items    map[string]model.ExchangeRate
	lastPage repository.Page
}

func (f *fakeRateRepo) Upsert(_ context.Context, r model.ExchangeRate) (model.ExchangeRate, error) {
	if f.items == nil {
		f.items = map[string]model.ExchangeRate{}
	}
	f.items[r.Currency] = r
	return r, nil
}

func (f *fakeRateRepo) List(_ context.Context, p repository.Page) (repository.PageResult[model.ExchangeRate], error) {
	f.lastPage = p
	res := repository.PageResult[model.ExchangeRate]{}
	for _, v := range f.items {
		res.Items = append(res.Items, v)
	}
	res.Total = len(res.Items)
	return res, nil
}

var _ repository.ExchangeRateRepository = (*fakeRateRepo)(nil)
