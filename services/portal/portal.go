package portal

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/paging"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

// Portal is where a seller manages their own products. It keeps the page that is on
// screen in sync with the backend after every change.
type Portal struct {
	ownerUID string
	writer   ProductWriter
	list     *paging.Synchronizer[shopapi.Product]
	logger   mylog.Logger
}

// New expects a fetcher that is already scoped to ownerUID.
func New(ownerUID string, writer ProductWriter, fetcher paging.Fetcher[shopapi.Product], limit int, logger mylog.Logger, opts ...paging.Option) *Portal {
	return &Portal{
		ownerUID: ownerUID,
		writer:   writer,
		list:     paging.New[shopapi.Product](fetcher, limit, append([]paging.Option{paging.WithLogger(logger)}, opts...)...),
		logger:   logger,
	}
}

func (p *Portal) List() *paging.Synchronizer[shopapi.Product] {
	return p.list
}

func (p *Portal) Open(c context.Context) error {
	return p.list.GoToPage(c, 1)
}

func (p *Portal) GoToPage(c context.Context, page int) error {
	return p.list.GoToPage(c, page)
}

// AddProduct creates the product and refetches the current page. When only the refetch fails
// the created product is returned together with the error.
func (p *Portal) AddProduct(c context.Context, draft shopapi.ProductDraft) (shopapi.Product, error) {
	err := draft.Validate()
	if err != nil {
		return shopapi.Product{}, err
	}
	draft.UserUID = p.ownerUID

	product, err := p.writer.CreateProduct(c, draft)
	if err != nil {
		return shopapi.Product{}, fmt.Errorf("error creating product %s: %w", draft.Name, err)
	}
	p.logger.Log(c, product.UID, mylog.SeverityInfo, "Created product %s", product.Name)

	return product, p.list.Refresh(c)
}

func (p *Portal) EditProduct(c context.Context, uid string, draft shopapi.ProductDraft) (shopapi.Product, error) {
	if uid == "" {
		return shopapi.Product{}, myerrors.NewInvalidInputErrorf("missing product uid")
	}
	err := draft.Validate()
	if err != nil {
		return shopapi.Product{}, err
	}

	product, err := p.writer.UpdateProduct(c, uid, draft)
	if err != nil {
		return shopapi.Product{}, fmt.Errorf("error updating product %s: %w", uid, err)
	}
	p.logger.Log(c, uid, mylog.SeverityInfo, "Updated product")

	return product, p.list.Refresh(c)
}

func (p *Portal) RemoveProduct(c context.Context, uid string) error {
	if uid == "" {
		return myerrors.NewInvalidInputErrorf("missing product uid")
	}

	err := p.writer.DeleteProduct(c, uid)
	if err != nil {
		return fmt.Errorf("error deleting product %s: %w", uid, err)
	}
	p.logger.Log(c, uid, mylog.SeverityInfo, "Deleted product")

	return p.list.RefreshAfterDelete(c)
}
