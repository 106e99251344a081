package contracttests

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/paging"
	"github.com/MarcGrol/shopcart/services/portal"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

// ProductBackend is what the seller portal and the product list need from the shop.
type ProductBackend interface {
	portal.ProductWriter
	paging.Fetcher[shopapi.Product]
	GetProduct(c context.Context, uid string) (shopapi.Product, error)
}

// FakeShop is an in-process stand-in for the product endpoints of the shop backend.
type FakeShop struct {
	uuider myuuid.UUIDer
	nower  mytime.Nower
	Store  mystore.Store[shopapi.Product]
}

func NewFakeShop() (*FakeShop, func(), error) {
	store, cleanup, err := mystore.New[shopapi.Product](context.Background())
	if err != nil {
		return nil, nil, err
	}
	return &FakeShop{
		uuider: myuuid.RealUUIDer{},
		nower:  mytime.RealNower{},
		Store:  store,
	}, cleanup, nil
}

func (f *FakeShop) FetchPage(c context.Context, page int, limit int) (paging.Page[shopapi.Product], error) {
	req := shopapi.PageRequest{Page: page, Limit: limit}
	products, total, err := f.Store.QueryPage(c, nil, "CreatedAt", mystore.Page{Offset: req.Offset(), Limit: req.Limit})
	if err != nil {
		return paging.Page[shopapi.Product]{}, myerrors.NewInternalError(err)
	}
	pagination := req.Pagination(total)
	return paging.Page[shopapi.Product]{
		Records:    products,
		TotalItems: pagination.TotalItems,
		TotalPages: pagination.TotalPages,
	}, nil
}

func (f *FakeShop) GetProduct(c context.Context, uid string) (shopapi.Product, error) {
	product, found, err := f.Store.Get(c, uid)
	if err != nil {
		return shopapi.Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return shopapi.Product{}, productNotFound(uid)
	}
	return product, nil
}

func (f *FakeShop) CreateProduct(c context.Context, draft shopapi.ProductDraft) (shopapi.Product, error) {
	err := draft.Validate()
	if err != nil {
		return shopapi.Product{}, err
	}
	product := shopapi.Product{
		UID:         f.uuider.Create(),
		Name:        draft.Name,
		ImgURL:      draft.ImgURL,
		Description: draft.Description,
		Price:       draft.Price,
		UserUID:     draft.UserUID,
		CreatedAt:   f.nower.Now(),
	}
	err = f.Store.Put(c, product.UID, product)
	if err != nil {
		return shopapi.Product{}, myerrors.NewInternalError(err)
	}
	return product, nil
}

func (f *FakeShop) UpdateProduct(c context.Context, uid string, draft shopapi.ProductDraft) (shopapi.Product, error) {
	err := draft.Validate()
	if err != nil {
		return shopapi.Product{}, err
	}
	product, err := f.GetProduct(c, uid)
	if err != nil {
		return shopapi.Product{}, err
	}
	product.Name = draft.Name
	product.ImgURL = draft.ImgURL
	product.Description = draft.Description
	product.Price = draft.Price
	err = f.Store.Put(c, uid, product)
	if err != nil {
		return shopapi.Product{}, myerrors.NewInternalError(err)
	}
	return product, nil
}

func (f *FakeShop) DeleteProduct(c context.Context, uid string) error {
	_, err := f.GetProduct(c, uid)
	if err != nil {
		return err
	}
	err = f.Store.Delete(c, uid)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

func productNotFound(uid string) error {
	return myerrors.NewNotFoundError(fmt.Errorf("Product with uid %s not found.", uid))
}
