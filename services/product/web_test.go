package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopcart/lib/mycontext"
	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

func TestListProducts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	ctx, router, store, _, _ := setup(t, ctrl)

	// given
	for i := 1; i <= 5; i++ {
		owner := "user-1"
		if i%2 == 0 {
			owner = "user-2"
		}
		p := shopapi.Product{UID: fmt.Sprintf("p%d", i), Name: fmt.Sprintf("Product %d", i), Price: int64(i * 100), UserUID: owner, CreatedAt: mytime.ExampleTime.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, store.Put(ctx, p.UID, p))
	}

	t.Run("Default page", func(t *testing.T) {
		// when
		response := call(router, http.MethodGet, "/products", "")

		// then
		assert.Equal(t, 200, response.Code)
		resp := shopapi.Response[[]shopapi.Product]{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Len(t, resp.Data, 5)
		assert.Equal(t, "Products retrieved successfully.", resp.Message)
		assert.Equal(t, &shopapi.Pagination{Page: 1, Limit: 10, TotalItems: 5, TotalPages: 1}, resp.Pagination)
		assert.Nil(t, resp.Error)
	})

	t.Run("Second page of four", func(t *testing.T) {
		// when
		response := call(router, http.MethodGet, "/products?page=2&limit=4", "")

		// then
		assert.Equal(t, 200, response.Code)
		resp := shopapi.Response[[]shopapi.Product]{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "p5", resp.Data[0].UID)
		assert.Equal(t, &shopapi.Pagination{Page: 2, Limit: 4, TotalItems: 5, TotalPages: 2}, resp.Pagination)
	})

	t.Run("Of one owner", func(t *testing.T) {
		// when
		response := call(router, http.MethodGet, "/products?id=user-2", "")

		// then
		resp := shopapi.Response[[]shopapi.Product]{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, []string{"p2", "p4"}, []string{resp.Data[0].UID, resp.Data[1].UID})
		assert.Equal(t, 2, resp.Pagination.TotalItems)
	})

	t.Run("Invalid page", func(t *testing.T) {
		response := call(router, http.MethodGet, "/products?page=abc", "")

		assert.Equal(t, 400, response.Code)
	})

	t.Run("Page beyond addressable range", func(t *testing.T) {
		// when
		response := call(router, http.MethodGet, "/products?page=4611686018427387904&limit=4", "")

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), "page 4611686018427387904 is out of range")
	})

	t.Run("Limit too large", func(t *testing.T) {
		// when
		response := call(router, http.MethodGet, "/products?limit=9223372036854775807", "")

		// then
		assert.Equal(t, 400, response.Code)
		assert.Contains(t, response.Body.String(), "limit cannot exceed 100")
	})

	t.Run("Largest limit", func(t *testing.T) {
		// when
		response := call(router, http.MethodGet, "/products?limit=100", "")

		// then
		assert.Equal(t, 200, response.Code)
		resp := shopapi.Response[[]shopapi.Product]{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, &shopapi.Pagination{Page: 1, Limit: 100, TotalItems: 5, TotalPages: 1}, resp.Pagination)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("p1")

		// when
		response := call(router, http.MethodPost, "/products", `{"name":"Pen","price":150,"img_url":"/pen.png","user_id":"user-1"}`)

		// then
		assert.Equal(t, 201, response.Code)
		resp := shopapi.Response[shopapi.Product]{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, "Product created successfully.", resp.Message)
		assert.Equal(t, "p1", resp.Data.UID)

		stored, found, _ := store.Get(ctx, "p1")
		assert.True(t, found)
		assert.Equal(t, shopapi.Product{UID: "p1", Name: "Pen", ImgURL: "/pen.png", Price: 150, UserUID: "user-1", CreatedAt: mytime.ExampleTime}, stored)
	})

	t.Run("Owner from authenticated user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		uuider.EXPECT().Create().Return("p1")
		request, _ := http.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"Pen","price":150}`))
		request = request.WithContext(mycontext.WithUserUID(request.Context(), "user-9"))

		// when
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, 201, response.Code)
		stored, _, _ := store.Get(ctx, "p1")
		assert.Equal(t, "user-9", stored.UserUID)
	})

	t.Run("Name and price required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, _, _ := setup(t, ctrl)

		// when
		response := call(router, http.MethodPost, "/products", `{"name":"","price":0}`)

		// then
		assert.Equal(t, 400, response.Code)
		assert.JSONEq(t, `{"data":null,"errorCode":2,"error":"Name and price are required."}`, response.Body.String())
	})

	t.Run("Malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, http.MethodPost, "/products", `{`)

		assert.Equal(t, 400, response.Code)
	})
}

func TestProduct(t *testing.T) {
	pen := shopapi.Product{UID: "p1", Name: "Pen", Price: 150, UserUID: "user-1", CreatedAt: mytime.ExampleTime}

	t.Run("Get", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, _, _ := setup(t, ctrl)

		// given
		require.NoError(t, store.Put(ctx, pen.UID, pen))

		// when
		response := call(router, http.MethodGet, "/products/p1", "")

		// then
		assert.Equal(t, 200, response.Code)
		resp := shopapi.Response[shopapi.Product]{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, pen, resp.Data)
	})

	t.Run("Get unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, http.MethodGet, "/products/p9", "")

		assert.Equal(t, 404, response.Code)
	})

	t.Run("Update", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, _, _ := setup(t, ctrl)

		// given
		require.NoError(t, store.Put(ctx, pen.UID, pen))

		// when
		response := call(router, http.MethodPut, "/products/p1", `{"name":"Pencil","price":99,"user_id":"someone-else"}`)

		// then
		assert.Equal(t, 200, response.Code)
		stored, _, _ := store.Get(ctx, "p1")
		assert.Equal(t, "Pencil", stored.Name)
		assert.Equal(t, int64(99), stored.Price)
		assert.Equal(t, "user-1", stored.UserUID)
		assert.Equal(t, mytime.ExampleTime, stored.CreatedAt)
	})

	t.Run("Update unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, http.MethodPut, "/products/p9", `{"name":"Pencil","price":99}`)

		assert.Equal(t, 404, response.Code)
	})

	t.Run("Delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, _, _ := setup(t, ctrl)

		// given
		require.NoError(t, store.Put(ctx, pen.UID, pen))

		// when
		response := call(router, http.MethodDelete, "/products/p1", "")

		// then
		assert.Equal(t, 200, response.Code)
		assert.JSONEq(t, `{"data":{"message":"Product deleted successfully."},"error":null}`, response.Body.String())
		_, found, _ := store.Get(ctx, "p1")
		assert.False(t, found)
	})

	t.Run("Delete unknown", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, http.MethodDelete, "/products/p9", "")

		assert.Equal(t, 404, response.Code)
	})
}

func TestListProductsStoreFailure(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{name: "Store unavailable", err: fmt.Errorf("datastore down"), status: 500},
		{name: "Store rejects window", err: myerrors.NewInvalidInputErrorf("invalid page window"), status: 400},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// setup
			c := context.TODO()
			store := mystore.NewMockStore[shopapi.Product](ctrl)
			router := mux.NewRouter()
			NewService(store, mytime.NewMockNower(ctrl), myuuid.NewMockUUIDer(ctrl)).RegisterEndpoints(c, router)

			// given
			store.EXPECT().QueryPage(gomock.Any(), []mystore.Filter{}, "CreatedAt", mystore.Page{Offset: 4, Limit: 4}).Return(nil, 0, tc.err)

			// when
			response := call(router, http.MethodGet, "/products?page=2&limit=4", "")

			// then
			assert.Equal(t, tc.status, response.Code)
		})
	}
}

func call(router *mux.Router, method string, url string, body string) *httptest.ResponseRecorder {
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[shopapi.Product], *mytime.MockNower, *myuuid.MockUUIDer) {
	c := context.TODO()
	store, _, err := mystore.New[shopapi.Product](c)
	require.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)

	sut := NewService(store, nower, uuider)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)

	return c, router, store, nower, uuider
}
