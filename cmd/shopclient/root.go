package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/shopcart/lib/myhttpclient"
	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/shopapi"
	"github.com/MarcGrol/shopcart/services/shopclient"
)

const defaultLimit = 4

// RootOptions holds the flags shared by all commands.
type RootOptions struct {
	URL   string
	Token string
	Owner string
	Limit int
}

func (o *RootOptions) client() *shopclient.Client {
	logger := mylog.New("shopclient")
	sender := myhttpclient.New("shop", logger, myhttpclient.WithAuthorization(func() string {
		return o.Token
	}))
	return shopclient.New(o.URL, sender, logger)
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "shopclient",
		Short:        "Browse the shop, fill a cart and check it out",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.URL == "" {
				return fmt.Errorf("missing --url (or env SHOP_URL)")
			}
			if opts.Limit < 1 || opts.Limit > shopapi.MaxLimit {
				return fmt.Errorf("invalid --limit %d: must be between 1 and %d", opts.Limit, shopapi.MaxLimit)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.URL, "url", envOr("SHOP_URL", "http://localhost:8080"), "base url of the shop backend")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", os.Getenv("SHOP_TOKEN"), "access token as printed by login")
	cmd.PersistentFlags().StringVar(&opts.Owner, "owner", os.Getenv("SHOP_USER"), "uid of the logged in user, for the seller commands")
	cmd.PersistentFlags().IntVar(&opts.Limit, "limit", envIntOr("SHOP_LIMIT", defaultLimit), "products per page")

	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewBrowseCommand(opts))
	cmd.AddCommand(NewCheckoutCommand(opts))
	cmd.AddCommand(NewSellCommand(opts))

	return cmd
}

func envOr(name string, fallback string) string {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	return value
}

func envIntOr(name string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(name))
	if err != nil {
		return fallback
	}
	return value
}
