package commands

import (
	"fmt"
	"net/http"

	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/controller"
	"github.com/spf13/cobra"
)

var (
	createSeed      int64
	createMaxTurns  int64
	createAutopilot bool
	createConfig    string
)

func init() {
	createCmd.Flags().Int64Var(&createSeed, "seed", 0, "random seed, 0 picks one")
	createCmd.Flags().Int64Var(&createMaxTurns, "max-turns", 0, "turn limit, 0 runs until stopped")
	createCmd.Flags().BoolVar(&createAutopilot, "autopilot", false, "let the arena steer the player")
	createCmd.Flags().StringVarP(&createConfig, "config", "c", "", "arena config file")
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "creates a new session on the arena server",
	RunE: func(*cobra.Command, []string) error {
		req := controller.CreateRequest{
			Seed:      createSeed,
			MaxTurns:  createMaxTurns,
			Autopilot: createAutopilot,
		}
		if createConfig != "" {
			cfg, err := config.Load(createConfig)
			if err != nil {
				return err
			}
			req.Config = cfg
		}

		sess := &controller.Session{}
		if err := doJSON(http.MethodPost, "/sessions", req, sess); err != nil {
			return err
		}
		fmt.Println(sess.ID)
		return nil
	},
}
