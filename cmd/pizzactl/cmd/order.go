package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sliceworks/pizzactl/client"
	"github.com/sliceworks/pizzactl/domain"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Place and track orders",
}

var checkoutAddress string

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}

		lines := cartStore.Lines()
		if len(lines) == 0 {
			return fmt.Errorf("cart is empty")
		}

		order, err := api.CreateOrder(cmd.Context(), client.CreateOrderRequest{
			Items:   lines,
			Address: checkoutAddress,
		})
		if err != nil {
			return err
		}

		// The cart is cleared only after the order is accepted.
		cartStore.Clear()
		fmt.Printf("Order %s placed. Total: %s\n", order.ID, order.Total.StringFixed(2))
		return nil
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		orders, err := api.ListOrders(cmd.Context())
		if err != nil {
			return err
		}
		printOrders(orders)
		return nil
	},
}

var orderHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List your past orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		current, _ := sessions.Current()
		orders, err := api.OrdersByCustomer(cmd.Context(), current.UserID)
		if err != nil {
			return err
		}
		printOrders(orders)
		return nil
	},
}

var orderGetCmd = &cobra.Command{
	Use:   "get <order-id>",
	Short: "Show one order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		order, err := api.GetOrder(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Order %s  status=%s payment=%s delivery=%s\n",
			order.ID, order.Status, order.PaymentStatus, order.DeliveryStatus)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tQTY\tUNIT")
		for _, item := range order.Items {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", item.Name, item.Size, item.Quantity, item.UnitPrice.StringFixed(2))
		}
		w.Flush()
		fmt.Printf("Total: %s\n", order.Total.StringFixed(2))
		return nil
	},
}

var orderCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.CancelOrder(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Order cancelled.")
		return nil
	},
}

func printOrders(orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPAYMENT\tDELIVERY\tTOTAL\tPLACED")
	for _, o := range orders {
		placed := ""
		if !o.CreatedAt.IsZero() {
			placed = o.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.Status, o.PaymentStatus, o.DeliveryStatus, o.Total.StringFixed(2), placed)
	}
	w.Flush()
}

func init() {
	checkoutCmd.Flags().StringVar(&checkoutAddress, "address", "", "delivery address (defaults to the profile address)")
	orderCmd.AddCommand(checkoutCmd, orderListCmd, orderHistoryCmd, orderGetCmd, orderCancelCmd)
	rootCmd.AddCommand(orderCmd)
}
