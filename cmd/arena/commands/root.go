package commands

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "arena runs and watches snake arena sessions",
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		level, err := log.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		log.SetLevel(level)
		return nil
	},
}

var (
	apiAddr    string
	logLevel   string
	sessionID  string
	configPath string
)

// Execute runs the root command
func Execute() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api-addr", "http://localhost:3005", "address of the api server")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level, one of: [debug, info, warn, error]")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(headlessCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(replayCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func requireSessionID(c *cobra.Command, args []string) error {
	if len(sessionID) == 0 {
		return fmt.Errorf("session id is required")
	}
	return nil
}
