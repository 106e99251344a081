package order

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopcart/lib/mycontext"
	"github.com/MarcGrol/shopcart/lib/myhttp"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mypublisher"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/order/orderevents"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(orderStore mystore.Store[shopapi.Order], orderItemStore mystore.Store[shopapi.OrderItem], nower mytime.Nower, uuider myuuid.UUIDer, pub mypublisher.Publisher) *webService {
	logger := mylog.New("order")
	return &webService{
		logger:  logger,
		service: newService(orderStore, orderItemStore, nower, uuider, logger, pub),
	}
}

// RegisterEndpoints must be called before the product endpoints are registered, so that
// /products/checkout is not taken for a product uid.
func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	err := s.service.publisher.CreateTopic(c, orderevents.TopicName)
	if err != nil {
		return err
	}

	router.HandleFunc("/products/create-order", s.createOrder()).Methods("POST")
	router.HandleFunc("/products/checkout", s.checkout()).Methods("POST")

	return nil
}

func (s *webService) createOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := shopapi.CreateOrderRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		userUID, _ := mycontext.UserUIDFromContext(c)
		order, err := s.service.createOrder(c, userUID, req)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusCreated, shopapi.Response[shopapi.Order]{
			Data:    order,
			Message: "Order created successfully.",
		})
	}
}

func (s *webService) checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := shopapi.CheckoutRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		items, err := s.service.checkout(c, req)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusCreated, shopapi.Response[[]shopapi.OrderItem]{
			Data:    items,
			Message: "Order checkout successfully.",
		})
	}
}
