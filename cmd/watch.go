package cmd

import (
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuilds the site whenever the content tree changes",
	Long: `The watch command performs an initial build, then watches the content
root for changes and re-runs the full build when a month file is added,
edited, or removed. Every rebuild is a complete one; nothing is served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runBuild(appConfig, log); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		go func() {
			// Editors fire bursts of events per save; wait for the burst
			// to settle before rebuilding.
			var buildTimer *time.Timer
			const debounce = 500 * time.Millisecond

			for {
				select {
				case event, ok := <-watcher.Events:
					if !ok {
						return
					}
					if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
						!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
						continue
					}
					log.Debug("change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))

					if event.Has(fsnotify.Create) && isDir(event.Name) {
						if err := watcher.Add(event.Name); err != nil {
							log.Warn("failed to watch new directory", zap.String("path", event.Name), zap.Error(err))
						}
					}

					if buildTimer != nil {
						buildTimer.Stop()
					}
					buildTimer = time.AfterFunc(debounce, func() {
						log.Info("rebuilding site")
						if err := runBuild(appConfig, log); err != nil {
							log.Error("rebuild failed", zap.Error(err))
						}
					})
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					log.Warn("watcher error", zap.Error(err))
				}
			}
		}()

		err = filepath.WalkDir(appConfig.ContentRoot, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if watchErr := watcher.Add(path); watchErr != nil {
					log.Warn("failed to watch directory", zap.String("path", path), zap.Error(watchErr))
				}
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Info("watching for changes", zap.String("content_root", appConfig.ContentRoot))
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt)
		<-stop
		return nil
	},
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
