package product

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopcart/lib/mycontext"
	"github.com/MarcGrol/shopcart/lib/myhttp"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

type webService struct {
	logger  mylog.Logger
	service *service
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(store mystore.Store[shopapi.Product], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("product")
	return &webService{
		logger:  logger,
		service: newService(store, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/products", s.listProducts()).Methods("GET")
	router.HandleFunc("/products", s.createProduct()).Methods("POST")
	router.HandleFunc("/products/{productUID}", s.getProduct()).Methods("GET")
	router.HandleFunc("/products/{productUID}", s.updateProduct()).Methods("PUT")
	router.HandleFunc("/products/{productUID}", s.deleteProduct()).Methods("DELETE")
}

func (s *webService) listProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req, err := shopapi.NewPageRequestFromValues(r.URL.Query())
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		products, pagination, err := s.service.listProducts(c, req)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, shopapi.Response[[]shopapi.Product]{
			Data:       products,
			Message:    "Products retrieved successfully.",
			Pagination: &pagination,
		})
	}
}

func (s *webService) createProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		draft := shopapi.ProductDraft{}
		err := myhttp.DecodeJSON(r, &draft)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}
		if draft.UserUID == "" {
			draft.UserUID, _ = mycontext.UserUIDFromContext(c)
		}

		product, err := s.service.createProduct(c, draft)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusCreated, shopapi.Response[shopapi.Product]{
			Data:    product,
			Message: "Product created successfully.",
		})
	}
}

func (s *webService) getProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		product, err := s.service.getProduct(c, mux.Vars(r)["productUID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, shopapi.Response[shopapi.Product]{
			Data:    product,
			Message: "Product retrieved successfully.",
		})
	}
}

func (s *webService) updateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		draft := shopapi.ProductDraft{}
		err := myhttp.DecodeJSON(r, &draft)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		product, err := s.service.updateProduct(c, mux.Vars(r)["productUID"], draft)
		if err != nil {
			writer.WriteError(c, w, 2, err)
			return
		}

		writer.Write(c, w, http.StatusOK, shopapi.Response[shopapi.Product]{
			Data:    product,
			Message: "Product updated successfully.",
		})
	}
}

func (s *webService) deleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		err := s.service.deleteProduct(c, mux.Vars(r)["productUID"])
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, shopapi.Response[shopapi.MessageData]{
			Data: shopapi.MessageData{Message: "Product deleted successfully."},
		})
	}
}
