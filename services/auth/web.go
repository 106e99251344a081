package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopcart/lib/mycontext"
	"github.com/MarcGrol/shopcart/lib/myerrors"
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
func NewService(secret []byte, store mystore.Store[User], nower mytime.Nower, uuider myuuid.UUIDer) *webService {
	logger := mylog.New("auth")
	return &webService{
		logger:  logger,
		service: newService(secret, store, nower, uuider, logger),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/auth/register", s.register()).Methods("POST")
	router.HandleFunc("/auth/login", s.login()).Methods("POST")
}

func (s *webService) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := shopapi.RegisterRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			s.writeError(c, w, writer, err)
			return
		}

		user, tokens, err := s.service.register(c, req)
		if err != nil {
			s.writeError(c, w, writer, err)
			return
		}

		writer.Write(c, w, http.StatusCreated, shopapi.AuthResponse{
			Data:    user.toAPI(),
			Message: "User registered successfully",
			Tokens:  &tokens,
			Status:  true,
		})
	}
}

func (s *webService) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		req := shopapi.LoginRequest{}
		err := myhttp.DecodeJSON(r, &req)
		if err != nil {
			s.writeError(c, w, writer, err)
			return
		}

		user, tokens, err := s.service.login(c, req)
		if err != nil {
			s.writeError(c, w, writer, err)
			return
		}

		writer.Write(c, w, http.StatusOK, shopapi.AuthResponse{
			Data:    user.toAPI(),
			Message: "User logged in successfully",
			Tokens:  &tokens,
			Status:  true,
		})
	}
}

// writeError uses the auth envelope, which carries a status flag instead of an error code.
func (s *webService) writeError(c context.Context, w http.ResponseWriter, writer myhttp.ResponseWriter, err error) {
	s.logger.Log(c, "", mylog.SeverityWarn, "Auth error: %s", err)
	writer.Write(c, w, myerrors.GetHTTPStatus(err), shopapi.AuthResponse{
		Error:  myerrors.Message(err),
		Status: false,
	})
}

// Middleware only lets requests through that carry a valid bearer token of an existing
// user. The uid of that user is put on the request context.
func (s *webService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		user, err := s.service.authenticate(c, bearerToken(r))
		if err != nil {
			myhttp.NewWriter(s.logger).WriteError(c, w, 1, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(mycontext.WithUserUID(r.Context(), user.UID)))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
