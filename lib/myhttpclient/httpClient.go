package myhttpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker"

	"github.com/MarcGrol/shopcart/lib/myerrors"
	"github.com/MarcGrol/shopcart/lib/mylog"
)

const (
	timeout                 = 5 * time.Second
	maxConsecutiveFailures  = 5
	breakerOpenPeriod       = 10 * time.Second
	breakerHalfOpenRequests = 1
)

var errServerFailure = errors.New("server failure")

type Option func(c *jsonHTTPClient)

// WithAuthorization sets a bearer token on every request. The token is obtained per request
// so it can change after a login.
func WithAuthorization(tokenSource func() string) Option {
	return func(c *jsonHTTPClient) {
		c.tokenSource = tokenSource
	}
}

type jsonHTTPClient struct {
	client      *http.Client
	breaker     *gobreaker.CircuitBreaker
	tokenSource func() string
	logger      mylog.Logger
}

type response struct {
	status  int
	payload []byte
}

func New(name string, logger mylog.Logger, options ...Option) HTTPSender {
	c := &jsonHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: breakerHalfOpenRequests,
			Timeout:     breakerOpenPeriod,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxConsecutiveFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Log(context.Background(), name, mylog.SeverityWarn, "Circuit breaker %s: %s -> %s", name, from, to)
			},
		}),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *jsonHTTPClient) Send(ctx context.Context, method string, url string, body []byte) (int, []byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.send(ctx, method, url, body)
		if resp == nil {
			return nil, err
		}
		return resp, err
	})
	if result != nil {
		// a 5xx is a failure for the breaker, but still a valid response for the caller
		resp := result.(*response)
		return resp.status, resp.payload, nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return 0, []byte{}, myerrors.NewUnavailableError(fmt.Errorf("%s %s not attempted: %s", method, url, err))
	}
	return 0, []byte{}, err
}

func (c *jsonHTTPClient) send(ctx context.Context, method string, url string, body []byte) (*response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "error creating http request for %s %s", method, url)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.logger.Log(ctx, "", mylog.SeverityDebug, "HTTP request: %s %s", method, url)

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrapf(err, "error sending %s %s", method, url)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading response %s %s", method, url)
	}

	c.logger.Log(ctx, "", mylog.SeverityDebug, "HTTP resp: %d", httpResp.StatusCode)

	resp := &response{status: httpResp.StatusCode, payload: respPayload}
	if httpResp.StatusCode >= http.StatusInternalServerError {
		return resp, errServerFailure
	}
	return resp, nil
}
