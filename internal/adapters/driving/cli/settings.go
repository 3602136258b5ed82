package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the filter window and pipeline settings stored in the
config file. Sources are edited in the config file directly.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings",
	Long: `Change one or more settings and save them to the config file.

Examples:
  docprep settings set --min-length 100 --max-length 5000
  docprep settings set --enhanced --workers 4`,
	RunE: runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().Int("min-length", 0, "minimum processed length to keep")
	settingsSetCmd.Flags().Int("max-length", 0, "maximum processed length to keep")
	settingsSetCmd.Flags().Int("workers", 0, "documents processed in parallel (0 = one per CPU)")
	settingsSetCmd.Flags().Bool("enhanced", false, "enable the enrichment stage by default")
	settingsSetCmd.Flags().Bool("log-verbose", false, "always print debug output")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Filter]")
	cmd.Printf("  Min length: %d\n", settings.Filter.MinLength)
	cmd.Printf("  Max length: %d\n", settings.Filter.MaxLength)
	cmd.Println()

	cmd.Println("[Pipeline]")
	if settings.Pipeline.Workers == 0 {
		cmd.Println("  Workers: one per CPU")
	} else {
		cmd.Printf("  Workers: %d\n", settings.Pipeline.Workers)
	}
	cmd.Printf("  Enhanced: %t\n", settings.Pipeline.Enhanced)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %t\n", settings.Verbose)
	cmd.Println()

	cmd.Println("[Sources]")
	if len(settings.Sources) == 0 {
		cmd.Println("  (none)")
	}
	for i, src := range settings.Sources {
		cmd.Printf("  %d. %s\n", i+1, src.Type)
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("min-length") {
		settings.Filter.MinLength, _ = flags.GetInt("min-length")
		changed = true
	}
	if flags.Changed("max-length") {
		settings.Filter.MaxLength, _ = flags.GetInt("max-length")
		changed = true
	}
	if flags.Changed("workers") {
		settings.Pipeline.Workers, _ = flags.GetInt("workers")
		changed = true
	}
	if flags.Changed("enhanced") {
		settings.Pipeline.Enhanced, _ = flags.GetBool("enhanced")
		changed = true
	}
	if flags.Changed("log-verbose") {
		settings.Verbose, _ = flags.GetBool("log-verbose")
		changed = true
	}
	if !changed {
		return errors.New("nothing to change: pass at least one flag")
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings saved.")
	return nil
}
