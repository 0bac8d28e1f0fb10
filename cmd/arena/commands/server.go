package commands

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/battlesnakeio/arena/api"
	"github.com/battlesnakeio/arena/config"
	"github.com/battlesnakeio/arena/controller"
	"github.com/battlesnakeio/arena/controller/filestore"
	"github.com/battlesnakeio/arena/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	apiListen             = ":3005"
	workerThreads         = 4
	workerPollInterval    = 100 * time.Millisecond
	workerHeartbeat       = 250 * time.Millisecond
	promEnable            = true
	promListen            = ":9000"
	recordDir             = ""
	recordDefaultLocation = false
)

func init() {
	serverCmd.Flags().StringVarP(&apiListen, "listen", "l", apiListen, "api address to listen on")
	serverCmd.Flags().IntVarP(&workerThreads, "threads", "t", workerThreads, "worker threads, this is the amount of concurrent sessions the server can run")
	serverCmd.Flags().DurationVarP(&workerPollInterval, "poll-interval", "p", workerPollInterval, "worker poll interval")
	serverCmd.Flags().DurationVar(&workerHeartbeat, "heartbeat", workerHeartbeat, "worker lock heartbeat interval")
	serverCmd.Flags().BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	serverCmd.Flags().StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")
	serverCmd.Flags().StringVar(&recordDir, "record", recordDir, "directory to record frame logs into")
	serverCmd.Flags().BoolVar(&recordDefaultLocation, "record-default", recordDefaultLocation, "record frame logs into ~/.arena/sessions")
	serverCmd.Flags().StringVarP(&configPath, "config", "c", "", "arena config file used for sessions created without one")
}

var serverCmd = &cobra.Command{
	Use:    "server",
	Short:  "serves the arena api and runs sessions",
	PreRun: func(c *cobra.Command, args []string) { prometheus() },
	Run: func(c *cobra.Command, args []string) {
		cfg, err := loadConfig()
		if err != nil {
			log.WithError(err).WithField("path", configPath).Fatal("unable to load config")
		}

		store := newStore()
		ctrl := controller.New(store)
		ctrl.Config = cfg

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		w := &worker.Worker{
			Store:             store,
			PollInterval:      workerPollInterval,
			HeartbeatInterval: workerHeartbeat,
			RunSession:        worker.Runner,
		}
		wg := &sync.WaitGroup{}
		wg.Add(workerThreads)
		for i := 0; i < workerThreads; i++ {
			go func(i int) {
				defer wg.Done()
				log.WithField("worker", i).Info("arena worker starting")
				w.Run(ctx, i)
			}(i)
		}

		server := api.New(apiListen, ctrl)
		log.WithField("listen", apiListen).Info("arena api serving")
		if err := server.WaitForExit(); err != nil {
			log.WithError(err).WithField("listen", apiListen).Fatal("api server failed")
		}
		cancel()
		wg.Wait()
	},
}

func newStore() controller.Store {
	var store controller.Store = controller.InMemStore()
	switch {
	case recordDir != "":
		store = filestore.Tee(store, recordDir)
	case recordDefaultLocation:
		store = filestore.Tee(store, "")
	}
	return controller.InstrumentStore(store)
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
