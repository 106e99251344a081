package checkout

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/cart"
)

// Cart is the part of the ledger that checkout needs.
type Cart interface {
	Snapshot() cart.Snapshot
	RemoveOrdered(ordered []cart.LineItem)
}

type Service struct {
	cart          Cart
	orderCreator  OrderCreator
	itemsAttacher ItemsAttacher
	logger        mylog.Logger
}

// Use dependency injection to isolate the remote side and easy testing
func NewService(cart Cart, orderCreator OrderCreator, itemsAttacher ItemsAttacher, logger mylog.Logger) *Service {
	return &Service{
		cart:          cart,
		orderCreator:  orderCreator,
		itemsAttacher: itemsAttacher,
		logger:        logger,
	}
}

// Commit turns the cart into an order in two remote steps: create the order for the cart
// total, then attach the line items to it. The ordered lines only leave the cart when both
// succeed; items added while the commit is in flight stay in the cart.
// When only the first step succeeds a *PartialCheckoutError is returned that carries the uid
// of the order, so the caller can retry with AttachToOrder.
func (s *Service) Commit(c context.Context) error {
	snapshot := s.cart.Snapshot()
	if snapshot.IsEmpty() {
		return myerrors.NewInvalidInputErrorf("cart is empty")
	}

	orderUID, err := s.orderCreator.CreateOrder(c, snapshot.TotalAmount)
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityError, "Error creating order for amount %d: %s", snapshot.TotalAmount, err)
		return fmt.Errorf("error creating order: %w", err)
	}
	if orderUID == "" {
		return myerrors.NewInternalError(fmt.Errorf("order created without uid"))
	}
	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Created order for amount %d", snapshot.TotalAmount)

	return s.attach(c, orderUID, snapshot)
}

// AttachToOrder repeats the second step of Commit for an order that was left behind.
func (s *Service) AttachToOrder(c context.Context, orderUID string) error {
	if orderUID == "" {
		return myerrors.NewInvalidInputErrorf("missing order uid")
	}

	snapshot := s.cart.Snapshot()
	if snapshot.IsEmpty() {
		return myerrors.NewInvalidInputErrorf("cart is empty")
	}

	return s.attach(c, orderUID, snapshot)
}

func (s *Service) attach(c context.Context, orderUID string, snapshot cart.Snapshot) error {
	err := s.itemsAttacher.AttachItems(c, orderUID, orderItemsOf(orderUID, snapshot))
	if err != nil {
		s.logger.Log(c, orderUID, mylog.SeverityError, "Error attaching %d items: %s", len(snapshot.Items), err)
		return &PartialCheckoutError{
			OrderUID: orderUID,
			Err:      err,
		}
	}

	s.cart.RemoveOrdered(snapshot.Items)

	s.logger.Log(c, orderUID, mylog.SeverityInfo, "Checked out %d items", snapshot.TotalQuantity)

	return nil
}

func orderItemsOf(orderUID string, snapshot cart.Snapshot) []OrderItem {
	items := make([]OrderItem, 0, len(snapshot.Items))
	for _, li := range snapshot.Items {
		items = append(items, OrderItem{
			ItemUID:  li.UID,
			Price:    li.UnitPrice,
			Quantity: li.Quantity,
			OrderUID: orderUID,
		})
	}
	return items
}
