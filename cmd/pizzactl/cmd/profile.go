package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sliceworks/pizzactl/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and update the account profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}
		u, err := api.Profile(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Name:    %s\n", u.Name)
		fmt.Printf("Email:   %s\n", u.Email)
		if u.Phone != "" {
			fmt.Printf("Phone:   %s\n", u.Phone)
		}
		if u.Address != "" {
			fmt.Printf("Address: %s\n", u.Address)
		}
		fmt.Printf("Role:    %s\n", u.Role)
		return nil
	},
}

var (
	profileName    string
	profilePhone   string
	profileAddress string
)

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		api, err := apiClient()
		if err != nil {
			return err
		}

		updated, err := api.UpdateProfile(cmd.Context(), domain.User{
			Name:    profileName,
			Phone:   profilePhone,
			Address: profileAddress,
		})
		if err != nil {
			return err
		}

		// Keep the local session's display fields in sync.
		if err := sessions.Login(domain.Session{Name: updated.Name}); err != nil {
			return err
		}
		fmt.Println("Profile updated.")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileName, "name", "", "full name")
	profileUpdateCmd.Flags().StringVar(&profilePhone, "phone", "", "phone number")
	profileUpdateCmd.Flags().StringVar(&profileAddress, "address", "", "delivery address")

	profileCmd.AddCommand(profileShowCmd, profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
