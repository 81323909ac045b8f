package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sliceworks/pizzactl/client"
	"github.com/sliceworks/pizzactl/domain"
)

var menuVegetarian bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}

		filter := client.PizzaFilter{}
		if menuVegetarian {
			v := true
			filter.Vegetarian = &v
		}

		// Both listings load concurrently; cancelling one aborts the
		// other.
		var pizzas []domain.Pizza
		var ingredients []domain.Ingredient
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error {
			var err error
			pizzas, err = api.ListPizzas(ctx, filter)
			return err
		})
		g.Go(func() error {
			var err error
			ingredients, err = api.ListIngredients(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		printPizzas(pizzas)
		fmt.Println()
		printIngredients(ingredients)
		return nil
	},
}

var pizzasCmd = &cobra.Command{
	Use:   "pizzas",
	Short: "List pizzas",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}
		filter := client.PizzaFilter{}
		if menuVegetarian {
			v := true
			filter.Vegetarian = &v
		}
		pizzas, err := api.ListPizzas(cmd.Context(), filter)
		if err != nil {
			return err
		}
		printPizzas(pizzas)
		return nil
	},
}

var pizzaCmd = &cobra.Command{
	Use:   "pizza <id>",
	Short: "Show one pizza",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}
		p, err := api.GetPizza(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", p.Name, p.ID)
		if p.Description != "" {
			fmt.Println(p.Description)
		}
		fmt.Printf("Price: %s\n", p.Price.StringFixed(2))
		if len(p.Ingredients) > 0 {
			fmt.Printf("Ingredients: %s\n", strings.Join(p.Ingredients, ", "))
		}
		if preferences.IsFavorite(p.ID) {
			fmt.Println("In your favorites.")
		}
		return nil
	},
}

var ingredientsCmd = &cobra.Command{
	Use:   "ingredients",
	Short: "List ingredients",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}
		ingredients, err := api.ListIngredients(cmd.Context())
		if err != nil {
			return err
		}
		printIngredients(ingredients)
		return nil
	},
}

func printPizzas(pizzas []domain.Pizza) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tVEG\tFAV")
	for _, p := range pizzas {
		veg, fav := "", ""
		if p.Vegetarian {
			veg = "yes"
		}
		if preferences.IsFavorite(p.ID) {
			fav = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), veg, fav)
	}
	w.Flush()
}

func printIngredients(ingredients []domain.Ingredient) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tINGREDIENT\tVEG")
	for _, ing := range ingredients {
		veg := ""
		if ing.Vegetarian {
			veg = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", ing.ID, ing.Name, veg)
	}
	w.Flush()
}

func init() {
	menuCmd.PersistentFlags().BoolVar(&menuVegetarian, "vegetarian", false, "only vegetarian pizzas")
	menuCmd.AddCommand(pizzasCmd, pizzaCmd, ingredientsCmd)
	rootCmd.AddCommand(menuCmd)
}
