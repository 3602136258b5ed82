package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/services"
	"github.com/custodia-labs/docprep/internal/logger"
)

var (
	runAPIURLs   []string
	runJSONPath  string
	runHTMLURLs  []string
	runHTMLMode  string
	runPDFPaths  []string
	runDir       string
	runS3        string
	runGCS       string
	runMinLength int
	runMaxLength int
	runEnhanced  bool
	runJSON      bool
	runNoConfig  bool
	runEvery     time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load, clean, score and filter documents",
	Long: `Loads documents from every source, cleans and normalises their text,
keeps those whose processed length is inside the filter window and scores
them. Sources come from flags and from [[sources]] tables in the config file.

Examples:
  docprep run --dir ./notes
  docprep run --api-url https://example.com/api --json-path data.body
  docprep run --s3 my-bucket/reports --enhanced --json
  docprep run --html-url https://example.com --every 1h`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringSliceVar(&runAPIURLs, "api-url", nil, "JSON or text API endpoint (repeatable)")
	runCmd.Flags().StringVar(&runJSONPath, "json-path", "", "dotted path to the text inside API responses")
	runCmd.Flags().StringSliceVar(&runHTMLURLs, "html-url", nil, "web page to load (repeatable)")
	runCmd.Flags().StringVar(&runHTMLMode, "html-mode", "simple", "HTML extraction mode: simple or structured")
	runCmd.Flags().StringSliceVar(&runPDFPaths, "pdf", nil, "PDF file to load, one document per page (repeatable)")
	runCmd.Flags().StringVar(&runDir, "dir", "", "directory of .txt, .md and .pdf files")
	runCmd.Flags().StringVar(&runS3, "s3", "", "S3 bucket and optional prefix, as bucket/prefix")
	runCmd.Flags().StringVar(&runGCS, "gcs", "", "GCS bucket and optional prefix, as bucket/prefix")
	runCmd.Flags().IntVar(&runMinLength, "min-length", domain.DefaultMinLength, "minimum processed length to keep")
	runCmd.Flags().IntVar(&runMaxLength, "max-length", domain.DefaultMaxLength, "maximum processed length to keep")
	runCmd.Flags().BoolVar(&runEnhanced, "enhanced", false, "add key terms, language, counts and a timestamp")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "output the run result as JSON")
	runCmd.Flags().BoolVar(&runNoConfig, "no-config-sources", false, "ignore [[sources]] from the config file")
	runCmd.Flags().DurationVar(&runEvery, "every", 0, "repeat the run at this interval until interrupted (e.g. 10m)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	if ingestService == nil || loaderFactory == nil {
		return fmt.Errorf("run: %w", errNoServices)
	}

	settings, err := currentSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	sources := flagSources()
	if !runNoConfig {
		sources = append(append([]domain.SourceConfig{}, settings.Sources...), sources...)
	}
	if len(sources) == 0 {
		return errors.New("no sources: pass --dir, --pdf, --api-url, --html-url, --s3 or --gcs, or add [[sources]] to the config file")
	}

	loaders, err := loaderFactory.BuildAll(sources)
	if err != nil {
		return err
	}

	opts := runOptions(cmd, settings)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if runEvery > 0 {
		return runScheduled(ctx, cmd, loaders, opts)
	}

	result, err := ingestService.Run(ctx, loaders, opts)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return outputRun(cmd, result, loaders)
}

// runScheduled repeats the run every runEvery until interrupted.
func runScheduled(ctx context.Context, cmd *cobra.Command, loaders []driven.Loader, opts domain.RunOptions) error {
	if err := opts.Filter.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	scheduler, err := services.NewScheduler(ingestService, runEvery, loaders, opts,
		func(result *domain.RunResult, err error) {
			if err != nil {
				return
			}
			if err := outputRun(cmd, result, loaders); err != nil {
				logger.Warn("Cannot print run %s: %v", result.RunID, err)
			}
		})
	if err != nil {
		return err
	}

	logger.Info("Running every %s", runEvery)
	err = scheduler.Start(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func outputRun(cmd *cobra.Command, result *domain.RunResult, loaders []driven.Loader) error {
	if runJSON {
		return outputRunJSON(cmd, result)
	}
	outputRunSummary(cmd, result, loaders)
	return nil
}

// runOptions merges settings with any flags set on the command line.
func runOptions(cmd *cobra.Command, settings *domain.Settings) domain.RunOptions {
	opts := domain.RunOptions{
		Filter:   settings.Filter,
		Enhanced: settings.Pipeline.Enhanced,
	}
	if cmd.Flags().Changed("min-length") {
		opts.Filter.MinLength = runMinLength
	}
	if cmd.Flags().Changed("max-length") {
		opts.Filter.MaxLength = runMaxLength
	}
	if cmd.Flags().Changed("enhanced") {
		opts.Enhanced = runEnhanced
	}
	return opts
}

// flagSources turns loader flags into source configs.
func flagSources() []domain.SourceConfig {
	var sources []domain.SourceConfig
	if len(runAPIURLs) > 0 {
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourceAPI,
			Options: map[string]any{"urls": runAPIURLs, "json_path": runJSONPath},
		})
	}
	if len(runHTMLURLs) > 0 {
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourceHTML,
			Options: map[string]any{"urls": runHTMLURLs, "mode": runHTMLMode},
		})
	}
	if len(runPDFPaths) > 0 {
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourcePDF,
			Options: map[string]any{"paths": runPDFPaths},
		})
	}
	if runDir != "" {
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourceFile,
			Options: map[string]any{"dir": runDir},
		})
	}
	if runS3 != "" {
		bucket, prefix := splitBucket(runS3)
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourceS3,
			Options: map[string]any{"bucket": bucket, "prefix": prefix},
		})
	}
	if runGCS != "" {
		bucket, prefix := splitBucket(runGCS)
		sources = append(sources, domain.SourceConfig{
			Type:    domain.SourceGCS,
			Options: map[string]any{"bucket": bucket, "prefix": prefix},
		})
	}
	return sources
}

// splitBucket splits "bucket/some/prefix" into its bucket and prefix.
func splitBucket(s string) (bucket, prefix string) {
	s = strings.TrimPrefix(s, "s3://")
	s = strings.TrimPrefix(s, "gs://")
	bucket, prefix, _ = strings.Cut(s, "/")
	return bucket, prefix
}

func outputRunJSON(cmd *cobra.Command, result *domain.RunResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputRunSummary(cmd *cobra.Command, result *domain.RunResult, loaders []driven.Loader) {
	out := cmd.OutOrStdout()
	st := newStyles(out)

	names := make([]string, len(loaders))
	for i, l := range loaders {
		names[i] = l.Name()
	}

	stats := result.Stats
	lines := []string{
		st.Title.Render("Run " + result.RunID),
		fmt.Sprintf("%s %s", st.Label.Render("Sources:"), strings.Join(names, ", ")),
		fmt.Sprintf("%s %d loaded, %s, %d dropped, %d skipped",
			st.Label.Render("Documents:"),
			stats.Loaded,
			st.Success.Render(fmt.Sprintf("%d kept", stats.Kept)),
			stats.Dropped,
			stats.Skipped,
		),
		fmt.Sprintf("%s %s", st.Label.Render("Duration:"), result.Duration.Round(time.Millisecond)),
	}
	if stats.LoaderErrors > 0 {
		lines = append(lines, st.Error.Render(fmt.Sprintf("%d loader(s) failed, run with --verbose for details", stats.LoaderErrors)))
	}
	cmd.Println(st.Box.Render(strings.Join(lines, "\n")))

	if len(result.Documents) == 0 {
		cmd.Println("No documents kept.")
		return
	}

	width := terminalWidth(out, 100)
	cmd.Println()
	for i, doc := range result.Documents {
		score, _ := doc.Get(domain.KeyQualityScore)
		cmd.Printf("  [%d] %s %s\n", i+1,
			st.Label.Render(documentSource(doc)),
			st.Muted.Render(fmt.Sprintf("(%d chars, score %.3f)", doc.Len(), toFloat(score))),
		)
		cmd.Printf("      %s\n", preview(doc.Text, width-6))
	}
}

// documentSource returns the most specific provenance a document carries.
func documentSource(doc domain.Document) string {
	for _, key := range []string{domain.KeyURL, domain.KeySourcePath, domain.KeyObjectKey} {
		if v := doc.GetString(key); v != "" {
			if page := doc.GetInt(domain.KeyPage); page > 0 {
				return fmt.Sprintf("%s#%d", v, page)
			}
			return v
		}
	}
	if t := doc.GetString(domain.KeySourceType); t != "" {
		return t
	}
	return "document"
}

// preview returns the first line of text, truncated to width characters.
func preview(text string, width int) string {
	line, _, _ := strings.Cut(text, "\n")
	if width < 10 {
		width = 10
	}
	runes := []rune(line)
	if len(runes) <= width {
		return line
	}
	return string(runes[:width-3]) + "..."
}

func toFloat(v any) float64 {
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	default:
		return 0
	}
}
