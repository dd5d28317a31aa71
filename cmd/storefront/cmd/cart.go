package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/storefront-client/pkg/api"
)

func newCartCmd(sess *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the current user's cart",
	}
	cmd.AddCommand(
		newCartShowCmd(sess),
		newCartAddCmd(sess),
		newCartUpdateCmd(sess),
		newCartRemoveCmd(sess),
	)
	return cmd
}

func newCartShowCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := sess.app.Cart(cmd.Context())
			if err != nil {
				return fmt.Errorf("get cart: %w", err)
			}
			return sess.print(cmd.OutOrStdout(), c)
		},
	}
}

func newCartAddCmd(sess *session) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "add PRODUCT_ID",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("product", args[0])
			if err != nil {
				return err
			}
			if quantity < 1 {
				return errors.New("--quantity must be at least 1")
			}
			item, err := sess.app.AddToCart(cmd.Context(), id, quantity)
			if err != nil {
				return fmt.Errorf("add product %d to cart: %w", id, err)
			}
			return sess.print(cmd.OutOrStdout(), item)
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", api.DefaultQuantity, "number of units")
	return cmd
}

func newCartUpdateCmd(sess *session) *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "update ITEM_ID",
		Short: "Change the quantity of a cart item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cart item", args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("quantity") {
				return errors.New("--quantity is required")
			}
			item, err := sess.app.UpdateCartItem(cmd.Context(), id, quantity)
			if err != nil {
				return fmt.Errorf("update cart item %d: %w", id, err)
			}
			return sess.print(cmd.OutOrStdout(), item)
		},
	}
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0, "new number of units")
	return cmd
}

func newCartRemoveCmd(sess *session) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ITEM_ID",
		Aliases: []string{"rm"},
		Short:   "Remove an item from the cart",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("cart item", args[0])
			if err != nil {
				return err
			}
			msg, err := sess.app.RemoveCartItem(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("remove cart item %d: %w", id, err)
			}
			return sess.print(cmd.OutOrStdout(), msg)
		},
	}
}
