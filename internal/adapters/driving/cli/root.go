// Package cli implements the docprep command line.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docprep/internal/core/domain"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/ports/driving"
	"github.com/custodia-labs/docprep/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// LoaderFactory builds loaders from source configuration.
type LoaderFactory interface {
	Build(typ domain.SourceType, cfg map[string]any) (driven.Loader, error)
	BuildAll(sources []domain.SourceConfig) ([]driven.Loader, error)
}

// Services bundles the driving ports the commands use.
type Services struct {
	Settings   driving.SettingsService
	Ingest     driving.IngestService
	Inspect    driving.InspectService
	Preprocess driving.PreprocessService
	Enhanced   driving.PreprocessService
	Loaders    LoaderFactory
}

// ServicesFactory builds services for the config file at configPath.
// An empty path means the default location.
type ServicesFactory func(configPath string) (*Services, error)

var servicesFactory ServicesFactory

// Services used by commands. Populated by the factory before a command runs.
var (
	settingsService   driving.SettingsService
	ingestService     driving.IngestService
	inspectService    driving.InspectService
	preprocessService driving.PreprocessService
	enhancedService   driving.PreprocessService
	loaderFactory     LoaderFactory
)

var rootCmd = &cobra.Command{
	Use:   "docprep",
	Short: "Clean, score and filter text documents",
	Long: `docprep loads documents from APIs, object storage, web pages, PDFs and
local files, cleans and normalises their text, scores its quality and keeps
the documents that fall inside a length window.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docprep/config.toml)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServicesFactory sets how commands obtain their services.
func SetServicesFactory(f ServicesFactory) {
	servicesFactory = f
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(verbose)

	if servicesFactory == nil || cmd.Name() == versionCmd.Name() {
		return nil
	}

	svc, err := servicesFactory(configPath)
	if err != nil {
		return err
	}
	setServices(svc)

	if !verbose && settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Verbose {
			logger.SetVerbose(true)
		}
	}
	return nil
}

func setServices(svc *Services) {
	settingsService = svc.Settings
	ingestService = svc.Ingest
	inspectService = svc.Inspect
	preprocessService = svc.Preprocess
	enhancedService = svc.Enhanced
	loaderFactory = svc.Loaders
}

// currentSettings returns configured settings, or defaults when no settings
// service is available.
func currentSettings() (*domain.Settings, error) {
	if settingsService == nil {
		s := domain.DefaultSettings()
		return &s, nil
	}
	return settingsService.Get()
}

var errNoServices = errors.New("services not configured")
