package cli

import (
	"bufio"
	"io"
	"os"
	"time"

	"github.com/davarch/pipeline-status/internal/application"
	"github.com/davarch/pipeline-status/internal/domain"
	"github.com/davarch/pipeline-status/internal/infrastructure/config"
	"github.com/davarch/pipeline-status/internal/infrastructure/gitlab_api"
	"github.com/davarch/pipeline-status/internal/infrastructure/logging"
	"github.com/davarch/pipeline-status/internal/infrastructure/paint_lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	runRefs           []string
	runLimitPipelines int
	runSearchDepth    int
	runConcurrency    int
	runOutput         string
)

var runCmd = &cobra.Command{
	Use:   "run <project>...",
	Short: "Report pipeline status for one or more projects",
	Long: `Fetches the most recent pipeline(s) per project and ref pattern and
prints an indented status report. Projects are numeric IDs or
group/project paths; ref patterns are exact names or globs with '*'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New(verbose)
		defer func() { _ = log.Sync() }()

		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		srv := cfg.ActiveServer()

		client, err := gitlab_api.New(srv.URL, srv.Token, time.Duration(cfg.Defaults.Timeout))
		if err != nil {
			return err
		}

		out, closeOut, err := openSink()
		if err != nil {
			return err
		}
		defer closeOut()

		uc := application.NewReportUseCase(client, pickPainter(out), log)
		lines, err := uc.Run(cmd.Context(), args, reportOptions(cfg))
		if err != nil {
			return err
		}

		return writeLines(out, lines)
	},
}

func init() {
	runCmd.Flags().StringSliceVarP(&runRefs, "ref", "r", nil, "ref pattern(s) to match, default: any ref")
	runCmd.Flags().IntVar(&runLimitPipelines, "limit-pipelines", 0, "pipelines shown per project and ref pattern")
	runCmd.Flags().IntVar(&runSearchDepth, "search-depth", 0, "recent pipelines scanned per target for glob patterns")
	runCmd.Flags().IntVar(&runConcurrency, "concurrency", 0, "parallel fetches")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "write the report to a file instead of stdout")

	rootCmd.AddCommand(runCmd)
}

func reportOptions(cfg config.Config) application.ReportOptions {
	opt := application.ReportOptions{
		Refs:           runRefs,
		Verbose:        verbose,
		LimitPipelines: cfg.Defaults.LimitPipelines,
		SearchDepth:    cfg.Defaults.SearchDepth,
		Concurrency:    cfg.Defaults.Concurrency,
	}
	if runLimitPipelines > 0 {
		opt.LimitPipelines = runLimitPipelines
	}
	if runSearchDepth > 0 {
		opt.SearchDepth = runSearchDepth
	}
	if runConcurrency > 0 {
		opt.Concurrency = runConcurrency
	}
	return opt
}

func openSink() (io.Writer, func(), error) {
	if runOutput == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(runOutput)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func pickPainter(out io.Writer) domain.Painter {
	f, isFile := out.(*os.File)
	if noColor || !isFile || !isatty.IsTerminal(f.Fd()) {
		return domain.PlainPainter{}
	}
	return paint_lipgloss.New()
}

func writeLines(out io.Writer, lines []string) error {
	w := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
