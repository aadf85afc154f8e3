// internal/cli/commands.go
package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// register command
func newRegisterCommand() *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new product",
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := getCliContext(cmd).Offers.RegisterProduct(cmd.Context(), name, description)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered product: %s (ID: %s)\n", product.Name, product.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Product name")
	cmd.Flags().StringVar(&description, "description", "", "Product description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// list command
func newListCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list PRODUCT_ID",
		Short: "List the offers for a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			offers, err := getCliContext(cmd).Offers.GetOffers(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(offers)
			}

			fmt.Fprintf(out, "Found %d offers\n", len(offers))
			if len(offers) == 0 {
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRICE\tIN STOCK")
			for _, offer := range offers {
				fmt.Fprintf(w, "%s\t%d\t%d\n", offer.ID, offer.Price, offer.ItemsInStock)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print offers as JSON")

	return cmd
}

// token command
func newTokenCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain an access token and show when it expires",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := getCliContext(cmd).HTTPClient.AuthTokenHandler
			if _, err := handler.GetValidToken(cmd.Context(), !force); err != nil {
				return err
			}

			session := handler.Session()
			fmt.Fprintf(cmd.OutOrStdout(), "Access token valid until %s\n", session.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "refresh", false, "Exchange the refresh token even if a cached access token is still valid")

	return cmd
}
