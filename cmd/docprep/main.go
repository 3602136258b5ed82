// Command docprep cleans, scores and filters text documents.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docprep/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docprep/internal/adapters/driving/cli"
	"github.com/custodia-labs/docprep/internal/core/ports/driven"
	"github.com/custodia-labs/docprep/internal/core/services"
	"github.com/custodia-labs/docprep/internal/enrichers"
	"github.com/custodia-labs/docprep/internal/enrichers/keyterms"
	"github.com/custodia-labs/docprep/internal/enrichers/metadata"
	"github.com/custodia-labs/docprep/internal/loaders"
	"github.com/custodia-labs/docprep/internal/scoring"
	"github.com/custodia-labs/docprep/internal/transforms"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServicesFactory(newServices)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// newServices wires the application for the config file at configPath.
func newServices(configPath string) (*cli.Services, error) {
	store, err := openConfig(configPath)
	if err != nil {
		return nil, err
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	pipeline := services.NewDocumentPipeline(
		transforms.Default(),
		scoring.New(),
		services.WithWorkers(settings.Pipeline.Workers),
	)
	enrich := enrichers.NewPipeline(metadata.New())

	return &cli.Services{
		Settings:   settingsService,
		Ingest:     services.NewIngestService(pipeline, enrich),
		Inspect:    services.NewInspectService(pipeline, keyterms.New()),
		Preprocess: pipeline,
		Enhanced:   services.NewEnhancedPipeline(pipeline, enrich),
		Loaders:    loaders.DefaultRegistry(),
	}, nil
}

func openConfig(path string) (driven.ConfigStore, error) {
	if path != "" {
		store, err := file.NewConfigStoreFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening config %s: %w", path, err)
		}
		return store, nil
	}
	store, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	return store, nil
}
