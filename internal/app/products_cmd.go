package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/storefront-hq/catalog-client/internal/domain"
	"github.com/storefront-hq/catalog-client/pkg/products"
)

func newProductsCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Typed operations on the products resource",
	}
	cmd.AddCommand(
		newProductsListCommand(rt),
		newProductsGetCommand(rt),
		newProductsCreateCommand(rt),
		newProductsUpdateCommand(rt),
		newProductsDeleteCommand(rt),
	)
	return cmd
}

func (rt *runtime) products() (*products.Client, error) {
	base, err := rt.baseURL()
	if err != nil {
		return nil, err
	}
	return products.New(base, rt.client)
}

func newProductsListCommand(rt *runtime) *cobra.Command {
	var opts products.ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := rt.products()
			if err != nil {
				return err
			}
			page, err := c.List(cmd.Context(), opts)
			if err != nil {
				return rt.report(cmd, err)
			}
			return writeJSON(cmd.OutOrStdout(), page)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.Name, "name", "", "filter by name (case insensitive)")
	f.BoolVar(&opts.SortByPrice, "sort-by-price", false, "sort results by price")
	f.StringVar(&opts.Order, "order", "", "asc or desc, used with --sort-by-price")
	f.IntVar(&opts.Limit, "limit", 0, "maximum number of products (1-100)")
	f.IntVar(&opts.Offset, "offset", 0, "number of products to skip")
	return cmd
}

func newProductsGetCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Fetch one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.products()
			if err != nil {
				return err
			}
			p, err := c.Get(cmd.Context(), args[0])
			if err != nil {
				return rt.report(cmd, err)
			}
			return writeJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newProductsCreateCommand(rt *runtime) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "create --data JSON",
		Short: "Validate and create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p domain.Product
			if err := decodeData(data, &p); err != nil {
				return err
			}
			c, err := rt.products()
			if err != nil {
				return err
			}
			created, err := c.Create(cmd.Context(), p)
			if err != nil {
				return rt.report(cmd, err)
			}
			rt.log.InfoObj("product created", "product", map[string]any{"id": created.ID, "sku": created.SKU})
			return writeJSON(cmd.OutOrStdout(), created)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "product JSON")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newProductsUpdateCommand(rt *runtime) *cobra.Command {
	var data string
	cmd := &cobra.Command{
		Use:   "update ID --data JSON",
		Short: "Apply a partial update to a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.ProductUpdate
			if err := decodeData(data, &patch); err != nil {
				return err
			}
			c, err := rt.products()
			if err != nil {
				return err
			}
			updated, err := c.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return rt.report(cmd, err)
			}
			return writeJSON(cmd.OutOrStdout(), updated)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "partial product JSON")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

func newProductsDeleteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := rt.products()
			if err != nil {
				return err
			}
			res, err := c.Delete(cmd.Context(), args[0])
			if err != nil {
				return rt.report(cmd, err)
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
}

func decodeData(raw string, out any) error {
	payload, err := parseData(raw)
	if err != nil {
		return err
	}
	if payload == nil {
		return fmt.Errorf("--data is required")
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode --data: %w", err)
	}
	return nil
}
