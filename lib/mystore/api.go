package mystore

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/MarcGrol/shopcart/lib/myerrors"
)

type ctxTransactionKey struct{}

type Filter struct {
	Field   string
	Compare string
	Value   any
}

// Page describes a window on the result of a query. Offset is zero based.
type Page struct {
	Offset int
	Limit  int
}

func (p Page) validate() error {
	if p.Offset < 0 || p.Limit < 0 {
		return myerrors.NewInvalidInputError(fmt.Errorf("invalid page window: offset %d, limit %d", p.Offset, p.Limit))
	}
	if p.Offset > math.MaxInt-p.Limit {
		return myerrors.NewInvalidInputError(fmt.Errorf("page window out of range: offset %d, limit %d", p.Offset, p.Limit))
	}
	return nil
}

//go:generate mockgen -source=api.go -package mystore -destination store_mock.go Store
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	Delete(c context.Context, uid string) error
	List(c context.Context) ([]T, error)
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
	// QueryPage returns the requested window plus the total number of matching entities.
	QueryPage(c context.Context, filters []Filter, orderByField string, page Page) ([]T, int, error)
}

func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	return newInMemoryStore[T](c)
}
