package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sliceworks/pizzactl/client"
	"github.com/sliceworks/pizzactl/validate"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Register, log in and manage the account",
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}

		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		sess, err := api.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := sessions.Login(sess); err != nil {
			return err
		}
		fmt.Printf("Logged in as %s (%s).\n", sess.Email, sess.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessions.IsAuthenticated() {
			if api, err := apiClient(); err == nil {
				// Best effort: local state is cleared even if the
				// server call fails.
				if err := api.Logout(cmd.Context()); err != nil {
					fmt.Fprintf(os.Stderr, "Server logout failed: %v. Clearing local session anyway.\n", err)
				}
			}
		}
		sessions.Logout()
		return nil
	},
}

var (
	registerName    string
	registerEmail   string
	registerPhone   string
	registerAddress string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new customer account",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}

		if registerEmail == "" {
			if registerEmail, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		if registerName == "" {
			if registerName, err = promptLine("Name: "); err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
		if _, err := validate.Password(password); err != nil {
			return err
		}

		user, err := api.Register(cmd.Context(), client.RegisterRequest{
			Name:     registerName,
			Email:    registerEmail,
			Password: password,
			Phone:    registerPhone,
			Address:  registerAddress,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Account created for %s. Check your inbox for a verification email.\n", user.Email)
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, ok := sessions.Current()
		if !ok || !sessions.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s> role=%s\n", current.Name, current.Email, current.Role)
		return nil
	},
}

var verifyEmailCmd = &cobra.Command{
	Use:   "verify-email <token>",
	Short: "Confirm an email address with the token from the verification mail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.VerifyEmail(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Email verified.")
		return nil
	},
}

var forgotPasswordCmd = &cobra.Command{
	Use:   "forgot-password <email>",
	Short: "Request a password reset email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}
		if err := api.ForgotPassword(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Reset email sent.")
		return nil
	},
}

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password <token>",
	Short: "Set a new password using the token from the reset mail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := apiClient()
		if err != nil {
			return err
		}
		password, err := promptPassword("New password: ")
		if err != nil {
			return err
		}
		if err := api.ResetPassword(cmd.Context(), args[0], password); err != nil {
			return err
		}
		fmt.Println("Password updated. Log in with the new password.")
		return nil
	},
}

func init() {
	registerCmd.Flags().StringVar(&registerName, "name", "", "full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "email address")
	registerCmd.Flags().StringVar(&registerPhone, "phone", "", "phone number")
	registerCmd.Flags().StringVar(&registerAddress, "address", "", "delivery address")

	authCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd,
		verifyEmailCmd, forgotPasswordCmd, resetPasswordCmd)
	rootCmd.AddCommand(authCmd)
}
