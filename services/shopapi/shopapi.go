package shopapi

import (
	"fmt"
	"math"
	"net/url"
	"time"

	formcodec "github.com/go-playground/form/v4"

	"github.com/MarcGrol/shopcart/lib/myerrors"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Response is the envelope of every json response of the backend.
type Response[T any] struct {
	Data       T           `json:"data"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *string     `json:"error"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

type MessageData struct {
	Message string `json:"message"`
}

type Product struct {
	UID         string    `json:"id"`
	Name        string    `json:"name"`
	ImgURL      string    `json:"img_url"`
	Description string    `json:"description" datastore:",noindex"`
	Price       int64     `json:"price"`
	UserUID     string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProductDraft struct {
	Name        string `json:"name"`
	ImgURL      string `json:"img_url"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	UserUID     string `json:"user_id,omitempty"`
}

// Validate reports the draft as invalid input when name or price are missing. A price of
// zero counts as missing.
func (d ProductDraft) Validate() error {
	if d.Name == "" || d.Price == 0 {
		return myerrors.NewInvalidInputErrorf("Name and price are required.")
	}
	if d.Price < 0 {
		return myerrors.NewInvalidInputErrorf("Price cannot be negative.")
	}
	return nil
}

type Order struct {
	UID       string    `json:"id"`
	Total     int64     `json:"total"`
	UserUID   string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateOrderRequest struct {
	Total int64 `json:"total"`
}

type CheckoutItem struct {
	UID   string `json:"id"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
}

type CheckoutRequest struct {
	Items    []CheckoutItem `json:"items"`
	OrderUID string         `json:"order_id"`
}

type OrderItem struct {
	UID      string `json:"id"`
	Price    int64  `json:"price"`
	Qty      int    `json:"qty"`
	ItemUID  string `json:"item_id"`
	OrderUID string `json:"order_id"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	UID   string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Tokens struct {
	AccessToken string `json:"accessToken"`
}

type AuthResponse struct {
	Data    *User   `json:"data,omitempty"`
	Message string  `json:"message,omitempty"`
	Tokens  *Tokens `json:"tokens,omitempty"`
	Error   string  `json:"error,omitempty"`
	Status  bool    `json:"status"`
}

// PageRequest is the query of the paged product list.
type PageRequest struct {
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
	OwnerUID string `form:"id,omitempty"`
}

func NewPageRequestFromValues(values url.Values) (PageRequest, error) {
	req := PageRequest{}
	err := formcodec.NewDecoder().Decode(&req, values)
	if err != nil {
		return req, myerrors.NewInvalidInputError(fmt.Errorf("error decoding query: %s", err))
	}
	if req.Page == 0 {
		req.Page = DefaultPage
	}
	if req.Limit == 0 {
		req.Limit = DefaultLimit
	}
	if req.Page < 0 || req.Limit < 0 {
		return req, myerrors.NewInvalidInputErrorf("page and limit must be positive")
	}
	if req.Limit > MaxLimit {
		return req, myerrors.NewInvalidInputErrorf("limit cannot exceed %d", MaxLimit)
	}
	// the end of the requested window must be addressable
	if req.Page > math.MaxInt/req.Limit {
		return req, myerrors.NewInvalidInputErrorf("page %d is out of range", req.Page)
	}
	return req, nil
}

func (r PageRequest) ToValues() (url.Values, error) {
	values, err := formcodec.NewEncoder().Encode(r)
	if err != nil {
		return nil, fmt.Errorf("error encoding query: %s", err)
	}
	return values, nil
}

// Offset is the zero based index of the first record of the page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

func (r PageRequest) Pagination(totalItems int) Pagination {
	return Pagination{
		Page:       r.Page,
		Limit:      r.Limit,
		TotalItems: totalItems,
		TotalPages: (totalItems + r.Limit - 1) / r.Limit,
	}
}
