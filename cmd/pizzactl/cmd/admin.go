package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sliceworks/pizzactl/domain"
	"github.com/sliceworks/pizzactl/validate"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office management (admin accounts only)",
}

var adminPizzaCmd = &cobra.Command{
	Use:   "pizza",
	Short: "Manage the pizza catalog",
}

var (
	pizzaName        string
	pizzaDescription string
	pizzaPrice       string
	pizzaImage       string
	pizzaVegetarian  bool
	pizzaIngredients string
)

func pizzaFlagSet(c *cobra.Command) {
	c.Flags().StringVar(&pizzaName, "name", "", "pizza name")
	c.Flags().StringVar(&pizzaDescription, "description", "", "description")
	c.Flags().StringVar(&pizzaPrice, "price", "", "price, e.g. 12.50")
	c.Flags().StringVar(&pizzaImage, "image", "", "image URL")
	c.Flags().BoolVar(&pizzaVegetarian, "vegetarian", false, "vegetarian")
	c.Flags().StringVar(&pizzaIngredients, "ingredients", "", "comma-separated ingredient IDs")
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var adminPizzaCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a pizza to the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		price, err := validate.Price(pizzaPrice)
		if err != nil {
			return err
		}
		created, err := api.CreatePizza(cmd.Context(), domain.Pizza{
			Name:        pizzaName,
			Description: pizzaDescription,
			Price:       price,
			Image:       pizzaImage,
			Vegetarian:  pizzaVegetarian,
			Ingredients: splitIDs(pizzaIngredients),
		})
		if err != nil {
			return err
		}
		fmt.Printf("Pizza %s created (%s).\n", created.Name, created.ID)
		return nil
	},
}

var adminPizzaUpdateCmd = &cobra.Command{
	Use:   "update <pizza-id>",
	Short: "Update a catalog pizza",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}

		p, err := api.GetPizza(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if pizzaName != "" {
			p.Name = pizzaName
		}
		if pizzaDescription != "" {
			p.Description = pizzaDescription
		}
		if pizzaPrice != "" {
			price, err := validate.Price(pizzaPrice)
			if err != nil {
				return err
			}
			p.Price = price
		}
		if pizzaImage != "" {
			p.Image = pizzaImage
		}
		if cmd.Flags().Changed("vegetarian") {
			p.Vegetarian = pizzaVegetarian
		}
		if pizzaIngredients != "" {
			p.Ingredients = splitIDs(pizzaIngredients)
		}

		updated, err := api.UpdatePizza(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Printf("Pizza %s updated.\n", updated.ID)
		return nil
	},
}

var adminPizzaDeleteCmd = &cobra.Command{
	Use:   "delete <pizza-id>",
	Short: "Remove a pizza from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.DeletePizza(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Pizza deleted.")
		return nil
	},
}

var adminIngredientCmd = &cobra.Command{
	Use:   "ingredient",
	Short: "Manage ingredients",
}

var (
	ingredientName       string
	ingredientVegetarian bool
)

var adminIngredientCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an ingredient",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		created, err := api.CreateIngredient(cmd.Context(), domain.Ingredient{
			Name:       ingredientName,
			Vegetarian: ingredientVegetarian,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Ingredient %s created (%s).\n", created.Name, created.ID)
		return nil
	},
}

var adminIngredientUpdateCmd = &cobra.Command{
	Use:   "update <ingredient-id>",
	Short: "Update an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		updated, err := api.UpdateIngredient(cmd.Context(), domain.Ingredient{
			ID:         args[0],
			Name:       ingredientName,
			Vegetarian: ingredientVegetarian,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Ingredient %s updated.\n", updated.ID)
		return nil
	},
}

var adminIngredientDeleteCmd = &cobra.Command{
	Use:   "delete <ingredient-id>",
	Short: "Remove an ingredient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.DeleteIngredient(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Ingredient deleted.")
		return nil
	},
}

var adminOrderCmd = &cobra.Command{
	Use:   "order",
	Short: "Manage orders",
}

var adminOrderStatusCmd = &cobra.Command{
	Use:   "set-status <order-id> <status>",
	Short: "Set an order's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.UpdateOrderStatus(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Status updated.")
		return nil
	},
}

var adminOrderPaymentCmd = &cobra.Command{
	Use:   "set-payment-status <order-id> <status>",
	Short: "Set an order's payment status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.UpdatePaymentStatus(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Payment status updated.")
		return nil
	},
}

var adminOrderDeliveryCmd = &cobra.Command{
	Use:   "set-delivery-status <order-id> <status>",
	Short: "Set an order's delivery status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.UpdateDeliveryStatus(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Delivery status updated.")
		return nil
	},
}

var adminOrderDeleteCmd = &cobra.Command{
	Use:   "delete <order-id>",
	Short: "Delete an order record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAdmin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.DeleteOrder(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Order deleted.")
		return nil
	},
}

func init() {
	pizzaFlagSet(adminPizzaCreateCmd)
	pizzaFlagSet(adminPizzaUpdateCmd)

	adminIngredientCreateCmd.Flags().StringVar(&ingredientName, "name", "", "ingredient name")
	adminIngredientCreateCmd.Flags().BoolVar(&ingredientVegetarian, "vegetarian", false, "vegetarian")
	adminIngredientUpdateCmd.Flags().StringVar(&ingredientName, "name", "", "ingredient name")
	adminIngredientUpdateCmd.Flags().BoolVar(&ingredientVegetarian, "vegetarian", false, "vegetarian")

	adminPizzaCmd.AddCommand(adminPizzaCreateCmd, adminPizzaUpdateCmd, adminPizzaDeleteCmd)
	adminIngredientCmd.AddCommand(adminIngredientCreateCmd, adminIngredientUpdateCmd, adminIngredientDeleteCmd)
	adminOrderCmd.AddCommand(adminOrderStatusCmd, adminOrderPaymentCmd, adminOrderDeliveryCmd, adminOrderDeleteCmd)
	adminCmd.AddCommand(adminPizzaCmd, adminIngredientCmd, adminOrderCmd)
	rootCmd.AddCommand(adminCmd)
}
