package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MarcGrol/shopcart/services/shopapi"
)

type credentials struct {
	Email    string
	Password string
	Role     string
}

func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	creds := &credentials{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and print its uid and access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := rootOpts.client().Register(cmd.Context(), shopapi.RegisterRequest{
				Email:    creds.Email,
				Password: creds.Password,
				Role:     creds.Role,
			})
			if err != nil {
				return err
			}
			if resp.Data != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "user:  %s\n", resp.Data.UID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token: %s\n", resp.Tokens.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password")
	cmd.Flags().StringVar(&creds.Role, "role", "user", "admin or user")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	creds := &credentials{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Print the access token of an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := rootOpts.client().Login(cmd.Context(), creds.Email, creds.Password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "token: %s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "email address")
	cmd.Flags().StringVar(&creds.Password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
