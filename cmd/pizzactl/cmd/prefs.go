package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage favorite pizzas",
}

var favoritesToggleCmd = &cobra.Command{
	Use:   "toggle <pizza-id>",
	Short: "Add or remove a pizza from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		added, err := preferences.ToggleFavorite(args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Println("Added to favorites.")
		} else {
			fmt.Println("Removed from favorites.")
		}
		return nil
	},
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite pizza IDs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := preferences.Favorites()
		if len(ids) == 0 {
			fmt.Println("No favorites yet.")
			return nil
		}
		for _, id := range ids {
			fmt.Println(id)
		}
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark]",
	Short: "Show or set the UI theme preference",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(preferences.Theme())
			return nil
		}
		if err := preferences.SetTheme(args[0]); err != nil {
			return err
		}
		fmt.Printf("Theme set to %s.\n", args[0])
		return nil
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesToggleCmd, favoritesListCmd)
	rootCmd.AddCommand(favoritesCmd, themeCmd)
}
