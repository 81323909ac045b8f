package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartAddSize string

var cartAddCmd = &cobra.Command{
	Use:   "add <pizza-id>",
	Short: "Add one unit of a pizza to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size := domain.Size(cartAddSize)
		if !domain.ValidSize(size) {
			return serrors.NewValidation("size", "must be small, medium or large")
		}

		api, err := apiClient()
		if err != nil {
			return err
		}
		p, err := api.GetPizza(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		cartStore.Add(p, size)
		fmt.Printf("Added %s (%s). Cart now holds %d item(s).\n", p.Name, size, cartStore.Count())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <pizza-id>",
	Short: "Remove a pizza from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cartStore.Remove(args[0])
		fmt.Printf("Removed. Cart now holds %d item(s).\n", cartStore.Count())
		return nil
	},
}

var cartSetQuantityCmd = &cobra.Command{
	Use:   "set-quantity <pizza-id> <quantity>",
	Short: "Set the quantity of a cart line",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		before := cartStore.Count()
		cartStore.SetQuantity(args[0], args[1])
		if cartStore.Count() == before {
			fmt.Println("Quantity unchanged (must be a positive integer for an item in the cart).")
		} else {
			fmt.Printf("Cart now holds %d item(s).\n", cartStore.Count())
		}
		return nil
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines := cartStore.Lines()
		if len(lines) == 0 {
			fmt.Println("Cart is empty.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tQTY\tUNIT\tSUBTOTAL")
		for _, l := range lines {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
				l.ProductID, l.Name, l.Size, l.Quantity,
				l.UnitPrice.StringFixed(2), l.Subtotal().StringFixed(2))
		}
		w.Flush()
		fmt.Printf("\nTotal: %s (%d item(s))\n", cartStore.Total().StringFixed(2), cartStore.Count())
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		cartStore.Clear()
		fmt.Println("Cart cleared.")
		return nil
	},
}

func init() {
	cartAddCmd.Flags().StringVar(&cartAddSize, "size", string(domain.SizeMedium), "pizza size (small, medium, large)")
	cartCmd.AddCommand(cartAddCmd, cartRemoveCmd, cartSetQuantityCmd, cartShowCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
