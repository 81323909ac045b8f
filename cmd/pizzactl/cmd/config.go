package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sliceworks/pizzactl/cmd/pizzactl/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pizzactl contexts",
}

var setContextServer string

var setContextCmd = &cobra.Command{
	Use:   "set-context <name>",
	Short: "Create or update a named context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		ctx, ok := config.GlobalConfig.Contexts[name]
		if !ok {
			ctx = &config.Context{Name: name}
			config.GlobalConfig.Contexts[name] = ctx
		}
		if setContextServer != "" {
			ctx.ServerEndpoint = setContextServer
		}
		if config.GlobalConfig.CurrentContext == "" {
			config.GlobalConfig.CurrentContext = name
		}
		if err := config.SaveConfig(); err != nil {
			return err
		}
		fmt.Printf("Context %q saved.\n", name)
		return nil
	},
}

var useContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Switch the active context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, ok := config.GlobalConfig.Contexts[name]; !ok {
			return fmt.Errorf("context %q not found", name)
		}
		config.GlobalConfig.CurrentContext = name
		if err := config.SaveConfig(); err != nil {
			return err
		}
		fmt.Printf("Switched to context %q.\n", name)
		return nil
	},
}

var viewConfigCmd = &cobra.Command{
	Use:   "view",
	Short: "Show configured contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tSERVER")
		for name, ctx := range config.GlobalConfig.Contexts {
			marker := ""
			if name == config.GlobalConfig.CurrentContext {
				marker = "*"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", marker, name, ctx.ServerEndpoint)
		}
		return w.Flush()
	},
}

func init() {
	setContextCmd.Flags().StringVar(&setContextServer, "server", "", "backend endpoint, e.g. https://shop.example.com/api/v1")
	configCmd.AddCommand(setContextCmd, useContextCmd, viewConfigCmd)
	rootCmd.AddCommand(configCmd)
}
