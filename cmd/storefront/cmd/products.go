package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/storefront-client/internal/domain"
)

func newProductsCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Browse and manage products",
	}
	cmd.AddCommand(
		newProductsListCmd(sess),
		newProductsGetCmd(sess),
		newProductsCreateCmd(sess),
		newProductsUpdateCmd(sess),
		newProductsDeleteCmd(sess),
	)
	return cmd
}

func newProductsListCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all products",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := sess.app.ListProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}
			if products == nil {
				products = []domain.Product{}
			}
			return sess.print(cmd.OutOrStdout(), products)
		},
	}
}

func newProductsGetCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get PRODUCT_ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product", args[0])
			if err != nil {
				return err
			}
			p, err := sess.app.GetProduct(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get product %d: %w", id, err)
			}
			return sess.print(cmd.OutOrStdout(), p)
		},
	}
}

// productFlags binds the editable product fields to command flags.
type productFlags struct {
	name        string
	description string
	price       float64
	stock       int
	imageURL    string
	category    string
}

func (f *productFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "product description")
	cmd.Flags().Float64Var(&f.price, "price", 0, "unit price")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "units in stock")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "image URL")
	cmd.Flags().StringVar(&f.category, "category", "", "category name")
}

var productFlagNames = []string{"name", "description", "price", "stock", "image-url", "category"}

func (f *productFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range productFlagNames {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// apply copies the flags the user actually set onto p.
func (f *productFlags) apply(cmd *cobra.Command, p *domain.Product) {
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = f.name
	}
	if changed("description") {
		p.Description = f.description
	}
	if changed("price") {
		p.Price = f.price
	}
	if changed("stock") {
		p.Stock = f.stock
	}
	if changed("image-url") {
		p.ImageURL = f.imageURL
	}
	if changed("category") {
		p.Category = f.category
	}
}

func newProductsCreateCmd(sess *session) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product",
		Long: `Create a product.

Example:
  storefront products create --name Lamp --price 19.99 --stock 10 --category home`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.name == "" {
				return errors.New("--name is required")
			}
			if flags.price < 0 {
				return errors.New("--price must not be negative")
			}
			var p domain.Product
			flags.apply(cmd, &p)

			created, err := sess.app.CreateProduct(cmd.Context(), p)
			if err != nil {
				return fmt.Errorf("create product: %w", err)
			}
			return sess.print(cmd.OutOrStdout(), created)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProductsUpdateCmd(sess *session) *cobra.Command {
	var flags productFlags

	cmd := &cobra.Command{
		Use:   "update PRODUCT_ID",
		Short: "Update fields of a product",
		Long: `Update a product. The current product is fetched first and only the fields
given as flags are changed before it is sent back.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product", args[0])
			if err != nil {
				return err
			}
			if !flags.anyChanged(cmd) {
				return errors.New("nothing to update: pass at least one field flag")
			}

			current, err := sess.app.GetProduct(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get product %d: %w", id, err)
			}
			flags.apply(cmd, &current)

			updated, err := sess.app.UpdateProduct(cmd.Context(), id, current)
			if err != nil {
				return fmt.Errorf("update product %d: %w", id, err)
			}
			return sess.print(cmd.OutOrStdout(), updated)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProductsDeleteCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:     "delete PRODUCT_ID",
		Aliases: []string{"rm"},
		Short:   "Delete a product",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product", args[0])
			if err != nil {
				return err
			}
			msg, err := sess.app.DeleteProduct(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("delete product %d: %w", id, err)
			}
			return sess.print(cmd.OutOrStdout(), msg)
		},
	}
}
