package commands

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "gets the status of a session from the arena server",
	Args:  requireSessionID,
	RunE: func(*cobra.Command, []string) error {
		st, err := getStatus(sessionID)
		if err != nil {
			return err
		}
		spew.Dump(st)
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVarP(&sessionID, "session-id", "s", "", "the id of the session to get the status of")
}
