package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/franz/royaltyflow/internal/catalog"
	"github.com/franz/royaltyflow/internal/pipeline"
	"github.com/franz/royaltyflow/internal/report"
	"github.com/franz/royaltyflow/internal/util"
	"github.com/franz/royaltyflow/internal/warehouse"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and ingest new report files as they arrive",
	Long: `Watch the source directory for new or modified report files and
ingest each one as soon as it settles. Files still being written are given
a short grace period before processing.

Runs until interrupted.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("source", "s", "", "source directory to watch")
	watchCmd.Flags().Duration("settle", 2*time.Second, "wait after the last write before ingesting a file")
}

func runWatch(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = viper.GetString("source")
	}
	if source == "" {
		return fmt.Errorf("source directory is required (use --source/-s or set in config)")
	}
	settle, _ := cmd.Flags().GetDuration("settle")

	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	if _, err := os.Stat(source); os.IsNotExist(err) {
		return fmt.Errorf("source directory does not exist: %s", source)
	}

	store, err := warehouse.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("failed to open warehouse: %w", err)
	}
	defer store.Close()

	logger, err := report.NewEventLogger("artifacts", report.LevelInfo)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		logger = report.NullLogger()
	}
	defer logger.Close()

	session := pipeline.New(&pipeline.Config{
		Store:       store,
		Logger:      logger,
		Environment: viper.GetString("env"),
	})

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the root and every existing subdirectory
	err = filepath.WalkDir(source, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", source, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	util.InfoLog("Watching %s (settle %v). Press Ctrl-C to stop.", source, settle)

	var mu sync.Mutex
	pending := make(map[string]*time.Timer)

	ingestOne := func(path string) {
		mu.Lock()
		delete(pending, path)
		mu.Unlock()

		result, err := session.ProcessFile(path)
		if err != nil {
			util.ErrorLog("Failed to ingest %s: %v", path, err)
			return
		}
		util.SuccessLog("Ingested %s: %d rows, %d inserted, %d rejected",
			filepath.Base(path), result.RowsProcessed, result.Inserted, result.Rejected)
	}

	for {
		select {
		case <-ctx.Done():
			util.InfoLog("Stopping watch")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					watcher.Add(event.Name)
					continue
				}
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}

			if !catalog.IsSupported(event.Name) {
				continue
			}

			// Debounce: restart the settle timer on every write
			path := event.Name
			mu.Lock()
			if timer, exists := pending[path]; exists {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(settle, func() { ingestOne(path) })
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.WarnLog("Watcher error: %v", err)
		}
	}
}
