package checkout

import (
	"context"
)

//go:generate mockgen -source=api.go -package checkout -destination checkout_mock.go OrderCreator,ItemsAttacher

// OrderCreator creates the order header and returns the uid the server assigned to it.
type OrderCreator interface {
	CreateOrder(c context.Context, totalAmount int64) (string, error)
}

// ItemsAttacher stores the line items under an existing order.
type ItemsAttacher interface {
	AttachItems(c context.Context, orderUID string, items []OrderItem) error
}
