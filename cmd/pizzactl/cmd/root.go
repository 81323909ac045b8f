package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sliceworks/pizzactl/cart"
	"github.com/sliceworks/pizzactl/client"
	"github.com/sliceworks/pizzactl/cmd/pizzactl/config"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/prefs"
	"github.com/sliceworks/pizzactl/session"
	"github.com/sliceworks/pizzactl/store"
)

var (
	verbose bool

	appStore    store.Store
	sessions    *session.Manager
	cartStore   *cart.Store
	preferences *prefs.Prefs
	api         *client.Client
)

var rootCmd = &cobra.Command{
	Use:           config.AppName,
	Short:         "pizzactl is a CLI for the pizza storefront",
	Long:          `A command-line storefront client: browse the menu, manage a cart, place and track orders, and run the admin back-office.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.WarnLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).With().Timestamp().Logger()

		if err := config.InitConfig(); err != nil {
			return err
		}

		s, err := store.NewBoltStore(config.StateDBPath())
		if err != nil {
			return err
		}
		appStore = s

		sessions = session.NewManager(session.Config{
			Store: appStore,
			OnLogout: func() {
				fmt.Fprintf(os.Stderr, "Signed out. Run '%s auth login' to authenticate.\n", config.AppName)
			},
			Logger: log.Logger,
		})
		sessions.Load()
		sessions.StartWatchdog(cmd.Context())

		cartStore = cart.NewStore(appStore, log.Logger)
		preferences = prefs.New(appStore)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if api != nil {
			api.Close()
		}
		if appStore != nil {
			appStore.Close()
		}
	},
}

// apiClient lazily builds the REST client for the active context.
func apiClient() (*client.Client, error) {
	if api != nil {
		return api, nil
	}
	ctxCfg, err := config.GetCurrentContext()
	if err != nil {
		return nil, fmt.Errorf("no active context: %w. Set one with '%s config set-context <name> --server <endpoint>'",
			err, config.AppName)
	}
	if ctxCfg.ServerEndpoint == "" {
		return nil, fmt.Errorf("context %q has no server endpoint", ctxCfg.Name)
	}
	api, err = client.New(client.Config{
		BaseURL: ctxCfg.ServerEndpoint,
		Store:   appStore,
		Logger:  log.Logger,
	})
	if err != nil {
		return nil, err
	}
	return api, nil
}

// requireLogin gates commands that need an authenticated session.
func requireLogin() error {
	if !sessions.IsAuthenticated() {
		return serrors.NewAuth("you are not logged in", nil)
	}
	return nil
}

// requireAdmin gates back-office commands.
func requireAdmin() error {
	if err := requireLogin(); err != nil {
		return err
	}
	current, _ := sessions.Current()
	if !current.IsAdmin() {
		return errors.New("this command requires an admin account")
	}
	return nil
}

// Execute runs the CLI. Unauthenticated failures, wherever they surfaced,
// are translated into a login hint here and nowhere else.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, serrors.ErrUnauthenticated) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Your session is missing or expired. Run '%s auth login'.\n", config.AppName)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&config.CfgFile, "config", "",
		fmt.Sprintf("config file (default is $HOME/.%s/config.yaml)", config.AppName))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
