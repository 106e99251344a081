package health

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopcart/lib/mycontext"
	"github.com/MarcGrol/shopcart/lib/myhttp"
	"github.com/MarcGrol/shopcart/lib/mylog"
)

type messageResponse struct {
	Message string `json:"message"`
}

type echoResponse struct {
	YouSent any `json:"youSent"`
}

type webService struct {
	logger mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService() *webService {
	return &webService{
		logger: mylog.New("health"),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/check-health", s.checkHealth()).Methods("GET")
	router.HandleFunc("/echo", s.echo()).Methods("POST")
	router.HandleFunc("/_ah/warmup", s.warmup()).Methods("GET")
}

func (s *webService) checkHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, messageResponse{
			Message: "Hello World!",
		})
	}
}

func (s *webService) echo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(s.logger)

		var body any
		err := myhttp.DecodeJSON(r, &body)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		writer.Write(c, w, http.StatusOK, echoResponse{
			YouSent: body,
		})
	}
}

// warmup is called by App Engine before an instance receives traffic.
func (s *webService) warmup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)

		myhttp.NewWriter(s.logger).Write(c, w, http.StatusOK, messageResponse{
			Message: "Successfully processed warmup request",
		})
	}
}
