package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"shophub-client/internal/api"
	"shophub-client/internal/config"
	"shophub-client/internal/payment"
	"shophub-client/internal/service/cart"
	"shophub-client/internal/service/catalog"
	"shophub-client/internal/service/checkout"
	"shophub-client/internal/service/prefs"
	"shophub-client/internal/service/session"
	"shophub-client/internal/service/wishlist"
	"shophub-client/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[shop] ", log.LstdFlags|log.LUTC)

	ctx := context.Background()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Fatalf("open state store: %v", err)
	}
	defer closeStore()

	stdin := bufio.NewScanner(os.Stdin)

	// The client reads the token through a closure so the session can be
	// constructed with the client as its gateway.
	var sess *session.Session
	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, func() string { return sess.Token() })
	sess = session.New(ctx, client, st)

	catalogSvc := catalog.New(client)
	cartSvc, err := cart.New(ctx, st)
	if err != nil {
		logger.Fatalf("restore cart: %v", err)
	}
	wishlistSvc, err := wishlist.New(ctx, st, client, cartSvc)
	if err != nil {
		logger.Fatalf("restore wishlist: %v", err)
	}
	prefsSvc := prefs.New(ctx, st)

	payments := payment.NewSimulator(terminalApprover{in: stdin, out: os.Stdout})
	checkoutSvc := checkout.New(client, cartSvc, payments, logger)

	r := &repl{
		in:       stdin,
		out:      os.Stdout,
		session:  sess,
		catalog:  catalogSvc,
		cart:     cartSvc,
		wishlist: wishlistSvc,
		prefs:    prefsSvc,
		checkout: checkoutSvc,
		api:      client,
	}
	r.run(ctx)
}

// openStore picks the state backend: Redis when REDIS_ADDR is set, the local
// state file otherwise.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.RedisAddr != "" {
		rdb, err := store.NewRedis(ctx, cfg.RedisAddr, "")
		if err != nil {
			return nil, nil, err
		}
		return rdb, func() { _ = rdb.Close() }, nil
	}
	f, err := store.NewFile(cfg.StateFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() {}, nil
}
