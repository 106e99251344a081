package product

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

type service struct {
	productStore mystore.Store[shopapi.Product]
	nower        mytime.Nower
	uuider       myuuid.UUIDer
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(store mystore.Store[shopapi.Product], nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger) *service {
	return &service{
		productStore: store,
		nower:        nower,
		uuider:       uuider,
		logger:       logger,
	}
}

func (s *service) listProducts(c context.Context, req shopapi.PageRequest) ([]shopapi.Product, shopapi.Pagination, error) {
	s.logger.Log(c, req.OwnerUID, mylog.SeverityInfo, "Fetch page %d of products (limit %d)", req.Page, req.Limit)

	filters := []mystore.Filter{}
	if req.OwnerUID != "" {
		filters = append(filters, mystore.Filter{Field: "UserUID", Compare: "=", Value: req.OwnerUID})
	}

	products, total, err := s.productStore.QueryPage(c, filters, "CreatedAt", mystore.Page{
		Offset: req.Offset(),
		Limit:  req.Limit,
	})
	if err != nil {
		if myerrors.IsInvalidInput(err) {
			return nil, shopapi.Pagination{}, err
		}
		return nil, shopapi.Pagination{}, myerrors.NewInternalError(err)
	}

	return products, req.Pagination(total), nil
}

func (s *service) createProduct(c context.Context, draft shopapi.ProductDraft) (shopapi.Product, error) {
	err := draft.Validate()
	if err != nil {
		return shopapi.Product{}, err
	}

	product := shopapi.Product{
		UID:         s.uuider.Create(),
		Name:        draft.Name,
		ImgURL:      draft.ImgURL,
		Description: draft.Description,
		Price:       draft.Price,
		UserUID:     draft.UserUID,
		CreatedAt:   s.nower.Now(),
	}

	s.logger.Log(c, product.UID, mylog.SeverityInfo, "Create product %s for user %s", product.Name, product.UserUID)

	err = s.productStore.Put(c, product.UID, product)
	if err != nil {
		return shopapi.Product{}, myerrors.NewInternalError(err)
	}

	return product, nil
}

func (s *service) getProduct(c context.Context, uid string) (shopapi.Product, error) {
	s.logger.Log(c, uid, mylog.SeverityInfo, "Fetch product %s", uid)

	product, found, err := s.productStore.Get(c, uid)
	if err != nil {
		return shopapi.Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return shopapi.Product{}, myerrors.NewNotFoundError(fmt.Errorf("Product with uid %s not found.", uid))
	}

	return product, nil
}

func (s *service) updateProduct(c context.Context, uid string, draft shopapi.ProductDraft) (shopapi.Product, error) {
	err := draft.Validate()
	if err != nil {
		return shopapi.Product{}, err
	}

	s.logger.Log(c, uid, mylog.SeverityInfo, "Update product %s", uid)

	var product shopapi.Product
	err = s.productStore.RunInTransaction(c, func(c context.Context) error {
		var found bool
		product, found, err = s.productStore.Get(c, uid)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("Product with uid %s not found.", uid))
		}

		// owner and creation time are not updatable
		product.Name = draft.Name
		product.ImgURL = draft.ImgURL
		product.Description = draft.Description
		product.Price = draft.Price

		err = s.productStore.Put(c, uid, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return shopapi.Product{}, err
	}

	return product, nil
}

func (s *service) deleteProduct(c context.Context, uid string) error {
	s.logger.Log(c, uid, mylog.SeverityInfo, "Delete product %s", uid)

	return s.productStore.RunInTransaction(c, func(c context.Context) error {
		_, found, err := s.productStore.Get(c, uid)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("Product with uid %s not found.", uid))
		}

		err = s.productStore.Delete(c, uid)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
}
