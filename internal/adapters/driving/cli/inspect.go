package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docprep/internal/core/domain"
)

var (
	inspectMinLength int
	inspectMaxLength int
	inspectJSON      bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [text]",
	Short: "Show what the pipeline does to a piece of text",
	Long: `Runs the cleaning, noise removal and normalisation stages on the given
text, or on stdin when no argument is given, and prints the result with its
quality score, word and sentence counts, key terms and filter decision.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectMinLength, "min-length", domain.DefaultMinLength, "minimum processed length to keep")
	inspectCmd.Flags().IntVar(&inspectMaxLength, "max-length", domain.DefaultMaxLength, "maximum processed length to keep")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectService == nil {
		return fmt.Errorf("inspect: %w", errNoServices)
	}

	text, err := inspectInput(cmd, args)
	if err != nil {
		return err
	}

	settings, err := currentSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	opts := settings.Filter
	if cmd.Flags().Changed("min-length") {
		opts.MinLength = inspectMinLength
	}
	if cmd.Flags().Changed("max-length") {
		opts.MaxLength = inspectMaxLength
	}

	report, err := inspectService.Inspect(text, opts)
	if err != nil {
		return fmt.Errorf("inspect failed: %w", err)
	}

	if inspectJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	outputReport(cmd, report, opts)
	return nil
}

// inspectInput returns the text argument, or all of stdin.
func inspectInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

func outputReport(cmd *cobra.Command, r *domain.TextReport, opts domain.FilterOptions) {
	st := newStyles(cmd.OutOrStdout())

	verdict := st.Success.Render("kept")
	if !r.Kept {
		verdict = st.Warning.Render(fmt.Sprintf("dropped (outside %d..%d)", opts.MinLength, opts.MaxLength))
	}

	terms := "(none)"
	if len(r.KeyTerms) > 0 {
		terms = strings.Join(r.KeyTerms, ", ")
	}

	cmd.Println(st.Title.Render("Processed text"))
	cmd.Println(r.Processed)
	cmd.Println()
	cmd.Printf("%s %d -> %d characters\n", st.Label.Render("Length:"), r.OriginalLength, r.ProcessedLength)
	cmd.Printf("%s %.4f\n", st.Label.Render("Quality:"), r.QualityScore)
	cmd.Printf("%s %d words, %d sentences\n", st.Label.Render("Counts:"), r.WordCount, r.SentenceCount)
	cmd.Printf("%s %s\n", st.Label.Render("Key terms:"), terms)
	cmd.Printf("%s %s\n", st.Label.Render("Filter:"), verdict)
}
