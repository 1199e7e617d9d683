package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rohitfarmer/journal/internal/config"
	"github.com/rohitfarmer/journal/internal/journal"
	"github.com/rohitfarmer/journal/internal/markdown"
	"github.com/rohitfarmer/journal/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from the journal content tree",
	Long: `The build command parses every month file under the content root,
validates and normalizes each entry, and writes the full output tree:
year pages, tag pages, the tag index, the on-this-day page, rss.xml,
and the search index. Any malformed entry aborts the build; no partial
site is ever written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(appConfig, log)
	},
}

func runBuild(cfg *config.Config, log *zap.Logger) error {
	start := time.Now()

	repo, err := journal.Load(cfg.ContentRoot, markdown.New(), journal.LoadOptions{
		Order:         journal.Order(cfg.Order),
		IncludeDrafts: cfg.IncludeDrafts,
	}, log)
	if err != nil {
		return err
	}

	// The build date is captured once so every view of "today" agrees,
	// even when the run crosses midnight.
	builder, err := site.New(cfg, repo, time.Now(), log)
	if err != nil {
		return err
	}
	if err := builder.Build(); err != nil {
		return err
	}

	log.Info("build finished", zap.Duration("elapsed", time.Since(start)))
	return nil
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
