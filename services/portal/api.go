package portal

import (
	"context"

	"github.com/MarcGrol/shopcart/services/shopapi"
)

//go:generate mockgen -source=api.go -package portal -destination writer_mock.go ProductWriter
type ProductWriter interface {
	CreateProduct(c context.Context, draft shopapi.ProductDraft) (shopapi.Product, error)
	UpdateProduct(c context.Context, uid string, draft shopapi.ProductDraft) (shopapi.Product, error)
	DeleteProduct(c context.Context, uid string) error
}
