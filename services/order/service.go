package order

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mypublisher"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/order/orderevents"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

type service struct {
	orderStore     mystore.Store[shopapi.Order]
	orderItemStore mystore.Store[shopapi.OrderItem]
	publisher      mypublisher.Publisher
	nower          mytime.Nower
	uuider         myuuid.UUIDer
	logger         mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(orderStore mystore.Store[shopapi.Order], orderItemStore mystore.Store[shopapi.OrderItem], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, pub mypublisher.Publisher) *service {
	return &service{
		orderStore:     orderStore,
		orderItemStore: orderItemStore,
		publisher:      pub,
		nower:          nower,
		uuider:         uuider,
		logger:         logger,
	}
}

func (s *service) createOrder(c context.Context, userUID string, req shopapi.CreateOrderRequest) (shopapi.Order, error) {
	if req.Total < 0 {
		return shopapi.Order{}, myerrors.NewInvalidInputErrorf("Total cannot be negative.")
	}

	order := shopapi.Order{
		UID:       s.uuider.Create(),
		Total:     req.Total,
		UserUID:   userUID,
		CreatedAt: s.nower.Now(),
	}

	s.logger.Log(c, order.UID, mylog.SeverityInfo, "Create order with total %d", order.Total)

	err := s.orderStore.RunInTransaction(c, func(c context.Context) error {
		err := s.orderStore.Put(c, order.UID, order)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderCreated{
			OrderUID: order.UID,
			UserUID:  order.UserUID,
			Total:    order.Total,
		})
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return shopapi.Order{}, err
	}

	return order, nil
}

// checkout attaches items to an existing order. Every item is stored on its own: a failure
// halfway leaves the items stored so far in place.
func (s *service) checkout(c context.Context, req shopapi.CheckoutRequest) ([]shopapi.OrderItem, error) {
	if req.OrderUID == "" {
		return nil, myerrors.NewInvalidInputErrorf("Order id is required.")
	}
	for _, item := range req.Items {
		if item.UID == "" || item.Qty < 1 || item.Price < 0 {
			return nil, myerrors.NewInvalidInputErrorf("Invalid order item %+v.", item)
		}
	}

	_, found, err := s.orderStore.Get(c, req.OrderUID)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	if !found {
		return nil, myerrors.NewNotFoundError(fmt.Errorf("Order with uid %s not found.", req.OrderUID))
	}

	s.logger.Log(c, req.OrderUID, mylog.SeverityInfo, "Checkout %d items", len(req.Items))

	orderItems := make([]shopapi.OrderItem, 0, len(req.Items))
	quantity := 0
	for _, item := range req.Items {
		orderItem := shopapi.OrderItem{
			UID:      s.uuider.Create(),
			Price:    item.Price,
			Qty:      item.Qty,
			ItemUID:  item.UID,
			OrderUID: req.OrderUID,
		}
		err := s.orderItemStore.Put(c, orderItem.UID, orderItem)
		if err != nil {
			return nil, myerrors.NewInternalError(err)
		}
		orderItems = append(orderItems, orderItem)
		quantity += item.Qty
	}

	err = s.publisher.Publish(c, orderevents.TopicName, orderevents.OrderCheckedOut{
		OrderUID:  req.OrderUID,
		ItemCount: len(orderItems),
		Quantity:  quantity,
	})
	if err != nil {
		// the items are stored, only the notification is lost
		s.logger.Log(c, req.OrderUID, mylog.SeverityError, "Error publishing checkout: %s", err)
	}

	return orderItems, nil
}
