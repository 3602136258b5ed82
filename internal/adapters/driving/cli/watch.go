package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/logger"
)

var (
	watchEnhanced bool
	watchJSON     bool
	watchInitial  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Process files as they change",
	Long: `Watches a directory of .txt, .md and .pdf files and prints each file
that is created or modified, after cleaning, filtering and scoring.
Stops on interrupt.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchEnhanced, "enhanced", false, "add key terms, language, counts and a timestamp")
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "print one JSON document per line")
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "process existing files before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if loaderFactory == nil || preprocessService == nil {
		return fmt.Errorf("watch: %w", errNoServices)
	}

	loader, err := loaderFactory.Build(domain.SourceFile, map[string]any{"dir": args[0]})
	if err != nil {
		return err
	}
	watcher, ok := loader.(driven.Watcher)
	if !ok {
		return fmt.Errorf("%w: %s loader cannot watch", domain.ErrUnsupportedType, loader.Name())
	}

	settings, err := currentSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	svc := preprocessService
	if (watchEnhanced || settings.Pipeline.Enhanced) && enhancedService != nil {
		svc = enhancedService
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if watchInitial {
		docs, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := emitWatched(cmd, svc, doc, settings.Filter); err != nil {
				return err
			}
		}
	}

	docs, errs, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}
	logger.Info("Watching %s", args[0])

	for {
		select {
		case <-ctx.Done():
			return nil
		case doc, ok := <-docs:
			if !ok {
				return nil
			}
			if err := emitWatched(cmd, svc, doc, settings.Filter); err != nil {
				return err
			}
		case err, ok := <-errs:
			if ok {
				logger.Warn("Watch error: %v", err)
			}
		}
	}
}

// emitWatched processes one document and prints it if it is kept.
func emitWatched(cmd *cobra.Command, svc driving.PreprocessService, doc domain.Document, opts domain.FilterOptions) error {
	processed := svc.Preprocess([]domain.Document{doc})
	kept, err := svc.Filter(processed, opts)
	if err != nil {
		return err
	}
	if len(kept) == 0 {
		logger.Debug("Dropped %s", doc.GetString(domain.KeySourcePath))
		return nil
	}

	out := kept[0]
	if watchJSON {
		data, err := json.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	st := newStyles(cmd.OutOrStdout())
	score, _ := out.Get(domain.KeyQualityScore)
	cmd.Printf("%s %s\n",
		st.Label.Render(documentSource(out)),
		st.Muted.Render(fmt.Sprintf("(%d chars, score %.3f)", out.Len(), toFloat(score))),
	)
	cmd.Printf("  %s\n", preview(out.Text, terminalWidth(cmd.OutOrStdout(), 100)-2))
	return nil
}
