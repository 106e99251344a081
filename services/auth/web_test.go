package auth

import (
	"context"
	"encoding/json"
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
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

func TestRegister(t *testing.T) {
	t.Run("Registered", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		uuider.EXPECT().Create().Return("user-1")

		// when
		response := call(router, "/auth/register", `{"email":"Marc@Example.com","password":"secret","role":"user"}`, "")

		// then
		assert.Equal(t, 201, response.Code)
		resp := shopapi.AuthResponse{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.True(t, resp.Status)
		assert.Equal(t, "User registered successfully", resp.Message)
		assert.Equal(t, &shopapi.User{UID: "user-1", Email: "marc@example.com", Role: "user"}, resp.Data)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
		assert.NotContains(t, response.Body.String(), "secret")

		stored, found, _ := store.Get(ctx, "marc@example.com")
		assert.True(t, found)
		assert.NotEqual(t, []byte("secret"), stored.PasswordHash)
	})

	t.Run("Invalid role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, "/auth/register", `{"email":"a@b.c","password":"pass","role":"invalid"}`, "")

		assert.Equal(t, 400, response.Code)
		assert.JSONEq(t, `{"error":"Invalid role. Allowed roles: admin, user.","status":false}`, response.Body.String())
	})

	t.Run("Missing email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, "/auth/register", `{"email":"","password":"pass","role":"user"}`, "")

		assert.Equal(t, 400, response.Code)
		assert.JSONEq(t, `{"error":"Email and password are required","status":false}`, response.Body.String())
	})

	t.Run("Already exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		uuider.EXPECT().Create().Return("user-1").Times(2)
		call(router, "/auth/register", `{"email":"a@b.c","password":"pass","role":"user"}`, "")

		// when
		response := call(router, "/auth/register", `{"email":"a@b.c","password":"other","role":"admin"}`, "")

		// then
		assert.Equal(t, 409, response.Code)
	})
}

func TestLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	_, router, _, nower, uuider := setup(t, ctrl)

	// given
	nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
	uuider.EXPECT().Create().Return("user-1")
	call(router, "/auth/register", `{"email":"a@b.c","password":"pass","role":"user"}`, "")

	t.Run("Logged in", func(t *testing.T) {
		response := call(router, "/auth/login", `{"email":"a@b.c","password":"pass"}`, "")

		assert.Equal(t, 200, response.Code)
		resp := shopapi.AuthResponse{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		assert.Equal(t, "user-1", resp.Data.UID)
		assert.NotEmpty(t, resp.Tokens.AccessToken)
	})

	t.Run("Unknown user", func(t *testing.T) {
		response := call(router, "/auth/login", `{"email":"x@y.z","password":"pass"}`, "")

		assert.Equal(t, 400, response.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials","status":false}`, response.Body.String())
	})

	t.Run("Wrong password", func(t *testing.T) {
		response := call(router, "/auth/login", `{"email":"a@b.c","password":"wrong"}`, "")

		assert.Equal(t, 401, response.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials","status":false}`, response.Body.String())
	})
}

func TestMiddleware(t *testing.T) {
	register := func(t *testing.T, router *mux.Router) string {
		response := call(router, "/auth/register", `{"email":"a@b.c","password":"pass","role":"user"}`, "")
		require.Equal(t, 201, response.Code)
		resp := shopapi.AuthResponse{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
		return resp.Tokens.AccessToken
	}

	t.Run("Valid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		uuider.EXPECT().Create().Return("user-1")
		token := register(t, router)

		// when
		response := call(router, "/protected", "", "Bearer "+token)

		// then
		assert.Equal(t, 200, response.Code)
		assert.Equal(t, "user-1", response.Body.String())
	})

	t.Run("No header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, "/protected", "", "")

		assert.Equal(t, 401, response.Code)
		assert.Contains(t, response.Body.String(), `"error": "Authorization token missing"`)
	})

	t.Run("Not a bearer token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, _, _ := setup(t, ctrl)

		response := call(router, "/protected", "", "Token abc123")

		assert.Equal(t, 401, response.Code)
		assert.Contains(t, response.Body.String(), `"error": "Authorization token missing"`)
	})

	t.Run("Invalid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		_, router, _, nower, _ := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()

		response := call(router, "/protected", "", "Bearer invalidToken")

		assert.Equal(t, 401, response.Code)
		assert.Contains(t, response.Body.String(), `"error": "Invalid or expired token"`)
	})

	t.Run("Expired token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, _, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(25 * time.Hour)).AnyTimes()
		uuider.EXPECT().Create().Return("user-1")
		token := register(t, router)

		// when
		response := call(router, "/protected", "", "Bearer "+token)

		// then
		assert.Equal(t, 401, response.Code)
		assert.Contains(t, response.Body.String(), `"error": "Invalid or expired token"`)
	})

	t.Run("Signed with other secret", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		_, router, store, nower, uuider := setup(t, ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		other := newService([]byte("other-secret"), store, nower, uuider, nil)

		// given
		tokens, err := other.issueTokens(User{UID: "user-1", Email: "a@b.c", Role: "user"})
		require.NoError(t, err)

		// when
		response := call(router, "/protected", "", "Bearer "+tokens.AccessToken)

		// then
		assert.Equal(t, 401, response.Code)
	})

	t.Run("User no longer exists", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, router, store, nower, uuider := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(mytime.ExampleTime).AnyTimes()
		uuider.EXPECT().Create().Return("user-1")
		token := register(t, router)
		require.NoError(t, store.Delete(ctx, "a@b.c"))

		// when
		response := call(router, "/protected", "", "Bearer "+token)

		// then
		assert.Equal(t, 401, response.Code)
		assert.Contains(t, response.Body.String(), `"error": "User not found"`)
	})
}

func call(router *mux.Router, url string, body string, authorization string) *httptest.ResponseRecorder {
	method := http.MethodPost
	if body == "" {
		method = http.MethodGet
	}
	request, _ := http.NewRequest(method, url, strings.NewReader(body))
	if authorization != "" {
		request.Header.Set("Authorization", authorization)
	}
	response := httptest.NewRecorder()
	router.ServeHTTP(response, request)
	return response
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *mux.Router, mystore.Store[User], *mytime.MockNower, *myuuid.MockUUIDer) {
	c := context.TODO()
	store, _, err := mystore.New[User](c)
	require.NoError(t, err)
	nower := mytime.NewMockNower(ctrl)
	uuider := myuuid.NewMockUUIDer(ctrl)

	sut := NewService([]byte("test-secret"), store, nower, uuider)
	router := mux.NewRouter()
	sut.RegisterEndpoints(c, router)
	router.Handle("/protected", sut.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userUID, _ := mycontext.UserUIDFromContext(r.Context())
		w.Write([]byte(userUID))
	}))).Methods("GET")

	return c, router, store, nower, uuider
}
