package mystore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
)

type inMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
	// insertion order, used as tie-breaker when sorting
	uids []string
}

func newInMemoryStore[T any](c context.Context) (*inMemoryStore[T], func(), error) {
	return &inMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

func (s *inMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	// Start transaction
	s.Lock()

	ctx := context.WithValue(c, ctxTransactionKey{}, true)

	// Within this block everything is transactional
	err := f(ctx)
	if err != nil {

		// Rollback
		s.Unlock()

		return err
	}

	// Commit
	s.Unlock()

	return nil
}

func (s *inMemoryStore[T]) lock(c context.Context) func() {
	nonTransactional := c.Value(ctxTransactionKey{}) == nil
	if !nonTransactional {
		return func() {}
	}
	s.Lock()
	return s.Unlock
}

func (s *inMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	defer s.lock(c)()

	if _, exists := s.Items[uid]; !exists {
		s.uids = append(s.uids, uid)
	}
	s.Items[uid] = value

	return nil
}

func (s *inMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	defer s.lock(c)()

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *inMemoryStore[T]) Delete(c context.Context, uid string) error {
	defer s.lock(c)()

	if _, exists := s.Items[uid]; !exists {
		return nil
	}
	delete(s.Items, uid)
	for i, u := range s.uids {
		if u == uid {
			s.uids = append(s.uids[:i], s.uids[i+1:]...)
			break
		}
	}

	return nil
}

func (s *inMemoryStore[T]) List(c context.Context) ([]T, error) {
	defer s.lock(c)()

	return s.all(), nil
}

func (s *inMemoryStore[T]) all() []T {
	result := make([]T, 0, len(s.uids))
	for _, uid := range s.uids {
		result = append(result, s.Items[uid])
	}
	return result
}

func (s *inMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	defer s.lock(c)()

	return s.query(filters, orderByField)
}

func (s *inMemoryStore[T]) QueryPage(c context.Context, filters []Filter, orderByField string, page Page) ([]T, int, error) {
	err := page.validate()
	if err != nil {
		return nil, 0, err
	}

	defer s.lock(c)()

	matching, err := s.query(filters, orderByField)
	if err != nil {
		return nil, 0, err
	}

	total := len(matching)
	if page.Offset >= total {
		return []T{}, total, nil
	}
	end := total
	if page.Limit > 0 && page.Offset+page.Limit < total {
		end = page.Offset + page.Limit
	}

	return matching[page.Offset:end], total, nil
}

func (s *inMemoryStore[T]) query(filters []Filter, orderByField string) ([]T, error) {
	result := []T{}
	for _, item := range s.all() {
		matches, err := matchesAll(item, filters)
		if err != nil {
			return nil, err
		}
		if matches {
			result = append(result, item)
		}
	}

	if orderByField == "" {
		return result, nil
	}

	descending := strings.HasPrefix(orderByField, "-")
	field := strings.TrimPrefix(orderByField, "-")
	var sortErr error
	sort.SliceStable(result, func(i, j int) bool {
		a, b := fieldOf(result[i], field), fieldOf(result[j], field)
		if descending {
			a, b = b, a
		}
		less, err := lessThan(a, b)
		if err != nil {
			sortErr = err
		}
		return less
	})
	if sortErr != nil {
		return nil, sortErr
	}

	return result, nil
}

func matchesAll(item any, filters []Filter) (bool, error) {
	for _, f := range filters {
		if f.Compare != "=" {
			return false, fmt.Errorf("unsupported comparison '%s' on field %s", f.Compare, f.Field)
		}
		value := fieldOf(item, f.Field)
		if !value.IsValid() {
			return false, fmt.Errorf("unknown field %s", f.Field)
		}
		if !reflect.DeepEqual(value.Interface(), f.Value) {
			return false, nil
		}
	}
	return true, nil
}

func fieldOf(item any, name string) reflect.Value {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return v.FieldByName(name)
}

func lessThan(a, b reflect.Value) (bool, error) {
	if !a.IsValid() || !b.IsValid() {
		return false, fmt.Errorf("unknown order-by field")
	}
	if t, ok := a.Interface().(time.Time); ok {
		return t.Before(b.Interface().(time.Time)), nil
	}
	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return a.Uint() < b.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float(), nil
	default:
		return false, fmt.Errorf("cannot order by kind %s", a.Kind())
	}
}
