package mystore

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/datastore"
	"github.com/pkg/errors"
)

const maxTransactionAttempts = 3

type gcloudStore[T any] struct {
	client *datastore.Client
	kind   string
}

func newGcloudStore[T any](c context.Context) (*gcloudStore[T], func(), error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	client, err := datastore.NewClient(c, projectID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "error creating datastore-client")
	}

	return &gcloudStore[T]{
			client: client,
			kind:   kindOf[T](),
		}, func() {
			client.Close()
		}, nil
}

func kindOf[T any]() string {
	val := new(T)
	kind := fmt.Sprintf("%T", *val)
	if strings.Contains(kind, ".") {
		kind = strings.Split(kind, ".")[1]
	}
	return kind
}

func (s *gcloudStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	var err error
	for i := 1; i <= maxTransactionAttempts; i++ {
		err = s.runInTransaction(c, f)
		if err != nil {
			if errors.Is(err, datastore.ErrConcurrentTransaction) {
				log.Printf("Concurrent transaction error, retrying (%d of %d): %s", i, maxTransactionAttempts, err)
				// force retry: this approach requires idempotency of the business logic
				continue
			}

			return err
		}
		return nil
	}
	return err
}

func (s *gcloudStore[T]) runInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	t, err := s.client.NewTransaction(c)
	if err != nil {
		return errors.Wrap(err, "error creating transaction")
	}

	// Shadow original context with new transactional context
	ctx := context.WithValue(c, ctxTransactionKey{}, t)

	err = f(ctx)
	if err != nil {
		// Rollback
		rollbackError := t.Rollback()
		if rollbackError != nil {
			log.Printf("error rolling-back transaction %p: %s", t, rollbackError)
		}
		return err
	}

	// Commit
	_, err = t.Commit()
	if err != nil {
		return errors.Wrapf(err, "error committing transaction %p", t)
	}

	return nil
}

func transactionOf(c context.Context) *datastore.Transaction {
	tx, ok := c.Value(ctxTransactionKey{}).(*datastore.Transaction)
	if !ok {
		return nil
	}
	return tx
}

func (s *gcloudStore[T]) key(uid string) *datastore.Key {
	return datastore.NameKey(s.kind, uid, nil)
}

func (s *gcloudStore[T]) Put(c context.Context, uid string, value T) error {
	if tx := transactionOf(c); tx != nil {
		_, err := tx.Put(s.key(uid), &value)
		if err != nil {
			return errors.Wrapf(err, "error transactionally storing entity %s with uid %s", s.kind, uid)
		}
		return nil
	}

	_, err := s.client.Put(c, s.key(uid), &value)
	if err != nil {
		return errors.Wrapf(err, "error storing entity %s with uid %s", s.kind, uid)
	}

	return nil
}

func (s *gcloudStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	var err error
	if tx := transactionOf(c); tx != nil {
		err = tx.Get(s.key(uid), value)
	} else {
		err = s.client.Get(c, s.key(uid), value)
	}
	if err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return *value, false, nil
		}
		return *value, false, errors.Wrapf(err, "error fetching entity %s with uid %s", s.kind, uid)
	}

	return *value, true, nil
}

func (s *gcloudStore[T]) Delete(c context.Context, uid string) error {
	var err error
	if tx := transactionOf(c); tx != nil {
		err = tx.Delete(s.key(uid))
	} else {
		err = s.client.Delete(c, s.key(uid))
	}
	if err != nil {
		return errors.Wrapf(err, "error deleting entity %s with uid %s", s.kind, uid)
	}
	return nil
}

func (s *gcloudStore[T]) List(c context.Context) ([]T, error) {
	q := datastore.NewQuery(s.kind).Limit(100)
	if tx := transactionOf(c); tx != nil {
		q = q.Transaction(tx)
	}

	objectsToFetch := []T{}
	_, err := s.client.GetAll(c, q, &objectsToFetch)
	if err != nil {
		return nil, errors.Wrapf(err, "error fetching all entities %s", s.kind)
	}
	return objectsToFetch, nil
}

func (s *gcloudStore[T]) query(c context.Context, filters []Filter, orderByField string) *datastore.Query {
	q := datastore.NewQuery(s.kind)
	for _, f := range filters {
		q = q.FilterField(f.Field, f.Compare, f.Value)
	}
	if orderByField != "" {
		q = q.Order(orderByField)
	}
	if tx := transactionOf(c); tx != nil {
		q = q.Transaction(tx)
	}
	return q
}

func (s *gcloudStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	objectsToFetch := []T{}
	_, err := s.client.GetAll(c, s.query(c, filters, orderByField), &objectsToFetch)
	if err != nil {
		return nil, errors.Wrapf(err, "error querying entities %s", s.kind)
	}
	return objectsToFetch, nil
}

func (s *gcloudStore[T]) QueryPage(c context.Context, filters []Filter, orderByField string, page Page) ([]T, int, error) {
	err := page.validate()
	if err != nil {
		return nil, 0, err
	}

	total, err := s.client.Count(c, s.query(c, filters, ""))
	if err != nil {
		return nil, 0, errors.Wrapf(err, "error counting entities %s", s.kind)
	}

	q := s.query(c, filters, orderByField).Offset(page.Offset)
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}

	objectsToFetch := []T{}
	_, err = s.client.GetAll(c, q, &objectsToFetch)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "error fetching page of entities %s", s.kind)
	}
	return objectsToFetch, total, nil
}
