// Package dataloader provides per-request loaders that batch the domain and
// author lookups needed to render article payloads. Loaders call
// repositories directly; they only resolve display names, which are not
// access controlled.
package dataloader

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/newsroom-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type domainRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Domain, error)
}

type userRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.User, error)
}

// Repos holds the repositories required by the loaders.
type Repos struct {
	Domain domainRepo
	User   userRepo
}

// Loaders contains the per-request loaders. A missing id loads as nil.
type Loaders struct {
	DomainByID *dataloader.Loader[uuid.UUID, *domain.Domain]
	UserByID   *dataloader.Loader[uuid.UUID, *domain.User]
}

// NewLoaders creates a new set of loaders. Must be called per request
// (loaders cache results for their lifetime).
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		DomainByID: newLoader(newDomainsBatchFn(repos.Domain)),
		UserByID:   newLoader(newUsersBatchFn(repos.User)),
	}
}

func newLoader[V any](batchFn dataloader.BatchFunc[uuid.UUID, V]) *dataloader.Loader[uuid.UUID, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[uuid.UUID, V](wait),
		dataloader.WithBatchCapacity[uuid.UUID, V](maxBatch),
	)
}

func newDomainsBatchFn(repo domainRepo) dataloader.BatchFunc[uuid.UUID, *domain.Domain] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.Domain] {
		list, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.Domain](len(keys), err)
		}
		byID := make(map[uuid.UUID]*domain.Domain, len(list))
		for _, d := range list {
			byID[d.ID] = d
		}
		return mapResults(keys, byID)
	}
}

func newUsersBatchFn(repo userRepo) dataloader.BatchFunc[uuid.UUID, *domain.User] {
	return func(ctx context.Context, keys []uuid.UUID) []*dataloader.Result[*domain.User] {
		list, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			return errorResults[*domain.User](len(keys), err)
		}
		byID := make(map[uuid.UUID]*domain.User, len(list))
		for _, u := range list {
			byID[u.ID] = u
		}
		return mapResults(keys, byID)
	}
}

func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

// mapResults maps found values back to key order; missing keys get the zero value.
func mapResults[V any](keys []uuid.UUID, found map[uuid.UUID]V) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], len(keys))
	for i, key := range keys {
		results[i] = &dataloader.Result[V]{Data: found[key]}
	}
	return results
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context, or nil if absent.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// Middleware instantiates per-request loaders.
func Middleware(repos *Repos) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(repos))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
