package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quentinrf/plant-monitor/services/diagnosis-service/internal/domain"
)

func (a *app) productsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "products <keyword>",
		Short: "Search shop listings for a keyword",
		Example: `  leafit products 'houseplant Monstera'
  leafit products 'houseplant Pothos' --remote localhost:50051`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keyword := strings.Join(args, " ")

			products, err := a.searchProducts(cmd, keyword)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No listings found.")
				return nil
			}
			for i, p := range products {
				if i == limit {
					break
				}
				fmt.Fprintf(out, "¥%-7d %s\n         %s\n", p.Price, p.Name, p.AffiliateURL)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum listings to show")
	return cmd
}

func (a *app) searchProducts(cmd *cobra.Command, keyword string) ([]domain.Product, error) {
	if a.remote != "" {
		conn, client, err := a.dialRemote()
		if err != nil {
			return nil, err
		}
		defer conn.Close()
		return client.SearchProducts(cmd.Context(), keyword)
	}

	searcher, err := a.searcher()
	if err != nil {
		return nil, err
	}
	return searcher.Search(cmd.Context(), keyword)
}
