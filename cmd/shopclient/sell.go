package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/shopcart/lib/mylog"
	"github.com/MarcGrol/shopcart/services/portal"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

func (o *RootOptions) sellerPortal() (*portal.Portal, error) {
	if o.Owner == "" {
		return nil, fmt.Errorf("missing --owner (or env SHOP_USER)")
	}
	client := o.client()
	return portal.New(o.Owner, client, client.ForOwner(o.Owner), o.Limit, mylog.New("portal")), nil
}

func NewSellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Manage your own products",
	}

	cmd.AddCommand(newSellListCommand(rootOpts))
	cmd.AddCommand(newSellAddCommand(rootOpts))
	cmd.AddCommand(newSellEditCommand(rootOpts))
	cmd.AddCommand(newSellRemoveCommand(rootOpts))

	return cmd
}

func newSellListCommand(rootOpts *RootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show one page of your products",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.sellerPortal()
			if err != nil {
				return err
			}
			err = p.GoToPage(cmd.Context(), page)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), p.List().Records())
			printState(cmd.OutOrStdout(), p.List().State())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to show")

	return cmd
}

func draftFlags(cmd *cobra.Command, draft *shopapi.ProductDraft) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "product name")
	cmd.Flags().Int64Var(&draft.Price, "price", 0, "price in cents")
	cmd.Flags().StringVar(&draft.ImgURL, "image", "", "image url")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description")
}

func newSellAddCommand(rootOpts *RootOptions) *cobra.Command {
	draft := &shopapi.ProductDraft{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.sellerPortal()
			if err != nil {
				return err
			}
			err = p.Open(cmd.Context())
			if err != nil {
				return err
			}
			product, err := p.AddProduct(cmd.Context(), *draft)
			if product.UID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", product.UID)
			}
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), p.List().Records())
			printState(cmd.OutOrStdout(), p.List().State())
			return nil
		},
	}
	draftFlags(cmd, draft)

	return cmd
}

func newSellEditCommand(rootOpts *RootOptions) *cobra.Command {
	draft := &shopapi.ProductDraft{}
	var page int

	cmd := &cobra.Command{
		Use:   "edit <product-uid>",
		Short: "Change a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.sellerPortal()
			if err != nil {
				return err
			}
			err = p.GoToPage(cmd.Context(), page)
			if err != nil {
				return err
			}
			_, err = p.EditProduct(cmd.Context(), args[0], *draft)
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), p.List().Records())
			printState(cmd.OutOrStdout(), p.List().State())
			return nil
		},
	}
	draftFlags(cmd, draft)
	cmd.Flags().IntVar(&page, "page", 1, "page the product is on")

	return cmd
}

func newSellRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "remove <product-uid>",
		Short: "Remove a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := rootOpts.sellerPortal()
			if err != nil {
				return err
			}
			err = p.GoToPage(cmd.Context(), page)
			if err != nil {
				return err
			}
			err = p.RemoveProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printProducts(cmd.OutOrStdout(), p.List().Records())
			printState(cmd.OutOrStdout(), p.List().State())
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page the product is on")

	return cmd
}
