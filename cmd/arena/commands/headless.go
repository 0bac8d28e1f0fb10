package commands

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/controller/filestore"
	"github.com/battlesnakeio/arena/worker"
	"github.com/spf13/cobra"
)

var (
	headlessTicks  int64 = 3600
	headlessSeed   int64
	headlessStep   = 1.0 / 60
	headlessRecord string
)

func init() {
	headlessCmd.Flags().Int64VarP(&headlessTicks, "ticks", "n", headlessTicks, "number of ticks to run")
	headlessCmd.Flags().Int64Var(&headlessSeed, "seed", 0, "random seed, 0 picks one")
	headlessCmd.Flags().Float64Var(&headlessStep, "dt", headlessStep, "seconds per tick")
	headlessCmd.Flags().StringVar(&headlessRecord, "record", "", "directory to record the frame log into")
	headlessCmd.Flags().StringVarP(&configPath, "config", "c", "", "arena config file")
}

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "runs an autopilot session in process and prints a summary",
	RunE: func(*cobra.Command, []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var store controller.Store = controller.InMemStore()
		if headlessRecord != "" {
			store = filestore.Tee(store, headlessRecord)
		}
		ctrl := controller.New(store)

		ctx := context.Background()
		sess, err := ctrl.Create(ctx, controller.CreateRequest{
			Seed:      headlessSeed,
			MaxTurns:  headlessTicks,
			Config:    cfg,
			Autopilot: true,
		})
		if err != nil {
			return err
		}

		summary, err := worker.Simulate(ctx, store, sess.ID, headlessStep)
		if err != nil {
			return err
		}
		printSummary(sess, summary)
		return nil
	},
}

func printSummary(sess *controller.Session, s *worker.Summary) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "session\t%s\n", sess.ID)
	fmt.Fprintf(tw, "seed\t%d\n", sess.Seed)
	fmt.Fprintf(tw, "turns\t%d\n", s.Turns)
	fmt.Fprintf(tw, "score\t%d\n", s.Score)
	fmt.Fprintf(tw, "best score\t%d\n", s.BestScore)
	fmt.Fprintf(tw, "restarts\t%d\n", s.Restarts)

	causes := make([]string, 0, len(s.Deaths))
	for cause := range s.Deaths {
		causes = append(causes, cause)
	}
	sort.Strings(causes)
	for _, cause := range causes {
		fmt.Fprintf(tw, "deaths %s\t%d\n", cause, s.Deaths[cause])
	}
}
