package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/cart"
	"github.com/MarcGrol/shopcart/services/checkout"
)

type cartLine struct {
	item     cart.Item
	quantity int
}

// parseCartLine parses uid:price:qty, price in cents.
func parseCartLine(s string) (cartLine, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 || parts[0] == "" {
		return cartLine{}, fmt.Errorf("invalid item %q: expected uid:price:qty", s)
	}
	price, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || price < 0 {
		return cartLine{}, fmt.Errorf("invalid price in item %q", s)
	}
	quantity, err := strconv.Atoi(parts[2])
	if err != nil || quantity < 1 {
		return cartLine{}, fmt.Errorf("invalid quantity in item %q", s)
	}
	return cartLine{
		item:     cart.Item{UID: parts[0], Name: parts[0], UnitPrice: price},
		quantity: quantity,
	}, nil
}

func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	var items []string
	var orderUID string

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Put items in a cart and order them",
		Long: `Put items in a cart and order them.

When the order was created but its items could not be attached, the uid of the
order is printed. Run checkout again with the same items and --order to retry.

Example:
  shopclient checkout --item p1:1000:2 --item p2:500:1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger := cart.NewLedger()
			for _, s := range items {
				line, err := parseCartLine(s)
				if err != nil {
					return err
				}
				ledger.AddItem(line.item)
				for i := 1; i < line.quantity; i++ {
					ledger.IncreaseQuantity(line.item.UID)
				}
			}

			client := rootOpts.client()
			service := checkout.NewService(ledger, client, client, mylog.New("checkout"))

			total := ledger.TotalAmount()
			var err error
			if orderUID != "" {
				err = service.AttachToOrder(cmd.Context(), orderUID)
			} else {
				err = service.Commit(cmd.Context())
			}
			if err != nil {
				if partialUID, ok := checkout.PartialOrderUID(err); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "order %s created without items, retry with --order %s\n", partialUID, partialUID)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ordered for %d\n", total)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&items, "item", nil, "item as uid:price:qty, repeatable")
	cmd.Flags().StringVar(&orderUID, "order", "", "attach the items to this existing order")
	cmd.MarkFlagRequired("item")

	return cmd
}
