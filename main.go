package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/MarcGrol/shopcart/lib/mymetrics"
	"github.com/MarcGrol/shopcart/lib/mypublisher"
	"github.com/MarcGrol/shopcart/lib/mypubsub"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/lib/mystore"
	"github.com/MarcGrol/shopcart/lib/mytime"
	"github.com/MarcGrol/shopcart/lib/myuuid"
	"github.com/MarcGrol/shopcart/services/auth"
	"github.com/MarcGrol/shopcart/services/health"
	"github.com/MarcGrol/shopcart/services/order"
	"github.com/MarcGrol/shopcart/services/product"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

const shutdownTimeout = 10 * time.Second

func main() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router, cleanup, err := createRouter(c)
	if err != nil {
		log.Fatalf("Error creating router: %s", err)
	}
	defer cleanup()

	err = startWebServerBlocking(c, router)
	if err != nil {
		log.Fatalf("Error running webserver: %s", err)
	}
}

func createRouter(c context.Context) (*mux.Router, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for _, f := range cleanups {
			f()
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, cleanup, fmt.Errorf("missing env-var JWT_SECRET")
	}

	nower := mytime.RealNower{}
	uuider := myuuid.RealUUIDer{}
	metrics := mymetrics.New("backend")

	router := mux.NewRouter()
	router.Use(metrics.Middleware)
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	health.NewService().RegisterEndpoints(c, router)

	userStore, userStoreCleanup, err := mystore.New[auth.User](c)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error creating user store: %s", err)
	}
	cleanups = append(cleanups, userStoreCleanup)
	authService := auth.NewService([]byte(jwtSecret), userStore, nower, uuider)
	authService.RegisterEndpoints(c, router)

	pubsub, pubsubCleanup, err := mypubsub.New(c)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error creating pubsub: %s", err)
	}
	cleanups = append(cleanups, pubsubCleanup)
	publisher := mypublisher.New(pubsub, nower, mylog.New("publisher"))

	// everything below /products requires a logged in user
	protected := router.NewRoute().Subrouter()
	protected.Use(authService.Middleware)

	orderStore, orderStoreCleanup, err := mystore.New[shopapi.Order](c)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error creating order store: %s", err)
	}
	cleanups = append(cleanups, orderStoreCleanup)
	orderItemStore, orderItemStoreCleanup, err := mystore.New[shopapi.OrderItem](c)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error creating order-item store: %s", err)
	}
	cleanups = append(cleanups, orderItemStoreCleanup)
	err = order.NewService(orderStore, orderItemStore, nower, uuider, publisher).RegisterEndpoints(c, protected)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error registering order endpoints: %s", err)
	}

	productStore, productStoreCleanup, err := mystore.New[shopapi.Product](c)
	if err != nil {
		return nil, cleanup, fmt.Errorf("error creating product store: %s", err)
	}
	cleanups = append(cleanups, productStoreCleanup)
	product.NewService(productStore, nower, uuider).RegisterEndpoints(c, protected)

	return router, cleanup, nil
}

func startWebServerBlocking(c context.Context, router *mux.Router) error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, c := errgroup.WithContext(c)
	g.Go(func() error {
		log.Printf("Starting webserver on port %s (try http://localhost:%s/check-health)", port, port)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting webserver on port %s: %s", port, err)
		}
		return nil
	})
	g.Go(func() error {
		<-c.Done()
		log.Printf("Stopping webserver")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(ctx)
	})

	return g.Wait()
}
