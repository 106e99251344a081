package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/shopcart/services/paging"
	"github.com/MarcGrol/shopcart/services/shopapi"
)

func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "products",
		Short: "Show one page of products",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := paging.New[shopapi.Product](rootOpts.client(), rootOpts.Limit)

			err := list.GoToPage(cmd.Context(), page)
			if err != nil {
				return err
			}

			printProducts(cmd.OutOrStdout(), list.Records())
			printState(cmd.OutOrStdout(), list.State())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to show")

	return cmd
}

func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Scroll through all products, one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := paging.New[shopapi.Product](rootOpts.client(), rootOpts.Limit)

			err := list.LoadPage(cmd.Context(), 1, paging.ModeAppend)
			if err != nil {
				return err
			}
			for list.HasMore() {
				err := list.LoadMore(cmd.Context())
				if err != nil {
					return err
				}
			}

			printProducts(cmd.OutOrStdout(), list.Records())
			fmt.Fprintf(cmd.OutOrStdout(), "%d products\n", len(list.Records()))
			return nil
		},
	}
}

func printProducts(w io.Writer, products []shopapi.Product) {
	for _, p := range products {
		fmt.Fprintf(w, "%-36s  %-30s  %8d\n", p.UID, p.Name, p.Price)
	}
}

func printState(w io.Writer, state paging.State) {
	fmt.Fprintf(w, "page %d of %d (%d products)\n", state.Page, state.TotalPages, state.TotalItems)
}
