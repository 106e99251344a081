package shopclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/myhttpclient"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/checkout"
	"github.com/MarcGrol/shopcart/services/paging"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

// Client talks to the shop backend. It implements the remote collaborators of the paged
// list, the checkout and the product portal.
type Client struct {
	baseURL string
	sender  myhttpclient.HTTPSender
	logger  mylog.Logger
}

func New(baseURL string, sender myhttpclient.HTTPSender, logger mylog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		sender:  sender,
		logger:  logger,
	}
}

func (c *Client) FetchPage(ctx context.Context, page int, limit int) (paging.Page[shopapi.Product], error) {
	return c.fetchPage(ctx, shopapi.PageRequest{Page: page, Limit: limit})
}

// ForOwner returns a fetcher that only sees the products of the given user.
func (c *Client) ForOwner(ownerUID string) paging.Fetcher[shopapi.Product] {
	return paging.FetcherFunc[shopapi.Product](func(ctx context.Context, page int, limit int) (paging.Page[shopapi.Product], error) {
		return c.fetchPage(ctx, shopapi.PageRequest{Page: page, Limit: limit, OwnerUID: ownerUID})
	})
}

func (c *Client) fetchPage(ctx context.Context, req shopapi.PageRequest) (paging.Page[shopapi.Product], error) {
	values, err := req.ToValues()
	if err != nil {
		return paging.Page[shopapi.Product]{}, err
	}

	resp, err := send[[]shopapi.Product](ctx, c, http.MethodGet, "/products?"+values.Encode(), nil)
	if err != nil {
		return paging.Page[shopapi.Product]{}, err
	}

	page := paging.Page[shopapi.Product]{
		Records: resp.Data,
	}
	if resp.Pagination != nil {
		page.TotalItems = resp.Pagination.TotalItems
		page.TotalPages = resp.Pagination.TotalPages
	}
	return page, nil
}

func (c *Client) GetProduct(ctx context.Context, uid string) (shopapi.Product, error) {
	resp, err := send[shopapi.Product](ctx, c, http.MethodGet, "/products/"+url.PathEscape(uid), nil)
	if err != nil {
		return shopapi.Product{}, err
	}
	return resp.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, draft shopapi.ProductDraft) (shopapi.Product, error) {
	resp, err := send[shopapi.Product](ctx, c, http.MethodPost, "/products", draft)
	if err != nil {
		return shopapi.Product{}, err
	}
	return resp.Data, nil
}

func (c *Client) UpdateProduct(ctx context.Context, uid string, draft shopapi.ProductDraft) (shopapi.Product, error) {
	resp, err := send[shopapi.Product](ctx, c, http.MethodPut, "/products/"+url.PathEscape(uid), draft)
	if err != nil {
		return shopapi.Product{}, err
	}
	return resp.Data, nil
}

func (c *Client) DeleteProduct(ctx context.Context, uid string) error {
	_, err := send[shopapi.MessageData](ctx, c, http.MethodDelete, "/products/"+url.PathEscape(uid), nil)
	return err
}

func (c *Client) CreateOrder(ctx context.Context, totalAmount int64) (string, error) {
	resp, err := send[shopapi.Order](ctx, c, http.MethodPost, "/products/create-order", shopapi.CreateOrderRequest{
		Total: totalAmount,
	})
	if err != nil {
		return "", err
	}
	return resp.Data.UID, nil
}

func (c *Client) AttachItems(ctx context.Context, orderUID string, items []checkout.OrderItem) error {
	req := shopapi.CheckoutRequest{
		Items:    make([]shopapi.CheckoutItem, 0, len(items)),
		OrderUID: orderUID,
	}
	for _, item := range items {
		req.Items = append(req.Items, shopapi.CheckoutItem{
			UID:   item.ItemUID,
			Price: item.Price,
			Qty:   item.Quantity,
		})
	}

	_, err := send[[]shopapi.OrderItem](ctx, c, http.MethodPost, "/products/checkout", req)
	return err
}

func (c *Client) Register(ctx context.Context, req shopapi.RegisterRequest) (shopapi.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/register", req)
}

// Login returns the access token to use as bearer token on subsequent requests.
func (c *Client) Login(ctx context.Context, email string, password string) (string, error) {
	resp, err := c.authenticate(ctx, "/auth/login", shopapi.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return "", err
	}
	return resp.Tokens.AccessToken, nil
}

func (c *Client) authenticate(ctx context.Context, path string, req any) (shopapi.AuthResponse, error) {
	payload, err := c.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return shopapi.AuthResponse{}, err
	}

	resp := shopapi.AuthResponse{}
	err = json.Unmarshal(payload, &resp)
	if err != nil {
		return resp, myerrors.NewInternalError(fmt.Errorf("error parsing response of %s: %s", path, err))
	}
	if resp.Tokens == nil {
		return resp, myerrors.NewInternalError(fmt.Errorf("response of %s carries no tokens", path))
	}
	return resp, nil
}

func send[T any](ctx context.Context, c *Client, method string, path string, req any) (shopapi.Response[T], error) {
	resp := shopapi.Response[T]{}

	payload, err := c.do(ctx, method, path, req)
	if err != nil {
		return resp, err
	}

	err = json.Unmarshal(payload, &resp)
	if err != nil {
		return resp, myerrors.NewInternalError(fmt.Errorf("error parsing response of %s %s: %s", method, path, err))
	}
	return resp, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method string, path string, req any) ([]byte, error) {
	var body []byte
	if req != nil {
		var err error
		body, err = json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("error serializing request for %s %s: %s", method, path, err)
		}
	}

	status, payload, err := c.sender.Send(ctx, method, c.baseURL+path, body)
	if err != nil {
		c.logger.Log(ctx, "", mylog.SeverityError, "Error sending %s %s: %s", method, path, err)
		return nil, err
	}

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		msg := http.StatusText(status)
		errResp := errorBody{}
		if json.Unmarshal(payload, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		c.logger.Log(ctx, "", mylog.SeverityWarn, "%s %s failed with status %d: %s", method, path, status, msg)
		return nil, myerrors.New(status, fmt.Errorf("%s", msg))
	}

	return payload, nil
}
