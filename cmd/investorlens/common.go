package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/investorlens/investorlens/internal/analysis"
	"github.com/investorlens/investorlens/internal/config"
	"github.com/investorlens/investorlens/internal/logger"
	"github.com/investorlens/investorlens/internal/profile"
	"github.com/investorlens/investorlens/internal/report"
	"gopkg.in/yaml.v3"
)

var globalFlags struct {
	baseURL  string
	logLevel string
}

// loadConfig reads the layered config, applies flag overrides and configures
// the logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if globalFlags.baseURL != "" {
		cfg.BaseURL = globalFlags.baseURL
	}
	if globalFlags.logLevel != "" {
		cfg.LogLevel = globalFlags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	if !config.Exists() {
		logger.Debug("No config file found, using defaults")
	}
	return cfg, nil
}

// newClient builds an analysis client from cfg. The returned metrics are
// nil unless a metrics file is configured.
func newClient(cfg *config.Config) (*analysis.Client, *analysis.Metrics, error) {
	var metrics *analysis.Metrics
	if cfg.MetricsFile != "" {
		metrics = analysis.NewMetrics()
	}
	client, err := analysis.New(analysis.Options{
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		Retries:    cfg.Retries,
		RetryDelay: cfg.RetryDelay,
		Metrics:    metrics,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Analysis endpoint: %s", client.Endpoint())
	return client, metrics, nil
}

// flushMetrics writes the metrics textfile when one is configured. Failures
// are logged, never returned.
func flushMetrics(cfg *config.Config, m *analysis.Metrics) {
	if m == nil || cfg.MetricsFile == "" {
		return
	}
	if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn("Failed to write metrics file %s: %v", cfg.MetricsFile, err)
	}
}

// readProfile loads a YAML or JSON profile file.
func readProfile(path string) (*profile.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	if doc == nil {
		return nil, errors.New("profile file is empty")
	}
	in, err := profile.FromMap(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}
	return in, nil
}

// printResult writes the service response to stdout, highlighted when color
// is enabled.
func printResult(res *analysis.Result, color bool) error {
	pretty, err := report.Pretty(res.Payload)
	if err != nil {
		return err
	}
	if color {
		pretty = report.Highlight(pretty)
	}
	fmt.Println(pretty)
	return nil
}

// saveReport exports res when a report directory is configured.
func saveReport(dir string, startupName string, res *analysis.Result) error {
	if dir == "" {
		return nil
	}
	path, err := report.Save(dir, startupName, res, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Report saved to: %s\n", path)
	return nil
}
