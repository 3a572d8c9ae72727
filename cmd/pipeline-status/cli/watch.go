package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/davarch/pipeline-status/internal/application"
	"github.com/davarch/pipeline-status/internal/infrastructure/config"
	"github.com/davarch/pipeline-status/internal/infrastructure/gitlab_api"
	"github.com/davarch/pipeline-status/internal/infrastructure/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <project>...",
	Short: "Re-render the status report on an interval",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(verbose)
		defer func() { _ = log.Sync() }()

		job, err := buildReportJob(args, log)
		if err != nil {
			return err
		}

		sched := application.NewScheduler(log, watchInterval, job)
		watchConfig(cfgPath, log, func() {
			if job, err := buildReportJob(args, log); err == nil {
				sched.UpdateJob(job)
			} else {
				log.Warn("config reload failed", zap.Error(err))
			}
		})

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		log.Info("watch",
			zap.Int("projects", len(args)),
			zap.Duration("every", watchInterval),
		)
		sched.Run(ctx)
		return nil
	},
}

func init() {
	watchCmd.Flags().StringSliceVarP(&runRefs, "ref", "r", nil, "ref pattern(s) to match, default: any ref")
	watchCmd.Flags().IntVar(&runLimitPipelines, "limit-pipelines", 0, "pipelines shown per project and ref pattern")
	watchCmd.Flags().IntVar(&runSearchDepth, "search-depth", 0, "recent pipelines scanned per target for glob patterns")
	watchCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "parallel fetches")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 30*time.Second, "time between reports")

	rootCmd.AddCommand(watchCmd)
}

// buildReportJob wires a fresh client and use case off the current
// config; watch mode rebuilds it whenever the config file changes.
func buildReportJob(projects []string, log *zap.Logger) (func(ctx context.Context) error, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	srv := cfg.ActiveServer()

	client, err := gitlab_api.New(srv.URL, srv.Token, time.Duration(cfg.Defaults.Timeout))
	if err != nil {
		return nil, err
	}

	uc := application.NewReportUseCase(client, pickPainter(os.Stdout), log)
	opt := reportOptions(cfg)

	return func(ctx context.Context) error {
		lines, err := uc.Run(ctx, projects, opt)
		if err != nil {
			return err
		}
		fmt.Printf("--- %s\n", time.Now().Format("15:04:05"))
		return writeLines(os.Stdout, lines)
	}, nil
}

// watchConfig fires onChange (debounced) when the config file is
// written, created, or renamed over.
func watchConfig(path string, log *zap.Logger, onChange func()) {
	if path == "" {
		return
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn("fsnotify init failed", zap.Error(err))
		return
	}

	go func() {
		defer func() { _ = w.Close() }()

		var timer *time.Timer
		fire := func() {
			if timer == nil {
				timer = time.AfterFunc(300*time.Millisecond, onChange)
				return
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(300 * time.Millisecond)
		}

		if err := w.Add(dir); err != nil {
			log.Warn("fsnotify add dir failed", zap.String("dir", dir), zap.Error(err))
			return
		}

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != base {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					fire()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("fsnotify error", zap.Error(err))
			}
		}
	}()
}
