package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/docprep/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/docprep/internal/core/services"
	"github.com/custodia-labs/docprep/internal/enrichers"
	"github.com/custodia-labs/docprep/internal/enrichers/keyterms"
	"github.com/custodia-labs/docprep/internal/enrichers/metadata"
	"github.com/custodia-labs/docprep/internal/loaders"
	"github.com/custodia-labs/docprep/internal/scoring"
	"github.com/custodia-labs/docprep/internal/transforms"
)

// setupTestServices wires real services over an in-memory config store.
func setupTestServices(t *testing.T, store *memory.ConfigStore) {
	t.Helper()
	if store == nil {
		store = memory.NewConfigStore()
	}

	pipeline := services.NewDocumentPipeline(transforms.Default(), scoring.New())
	enrich := enrichers.NewPipeline(metadata.New())

	setServices(&Services{
		Settings:   services.NewSettingsService(store),
		Ingest:     services.NewIngestService(pipeline, enrich),
		Inspect:    services.NewInspectService(pipeline, keyterms.New()),
		Preprocess: pipeline,
		Enhanced:   services.NewEnhancedPipeline(pipeline, enrich),
		Loaders:    loaders.DefaultRegistry(),
	})
	t.Cleanup(func() { setServices(&Services{}) })
}

// executeCommand runs the root command with args and returns combined output.
// Flag values left over from earlier runs are reset first.
func executeCommand(t *testing.T, args ...string) (string, error) {
	return executeCommandContext(t, context.Background(), "", args...)
}

func executeCommandContext(t *testing.T, ctx context.Context, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
