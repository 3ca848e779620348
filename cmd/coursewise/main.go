// Coursewise - Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coursewise

// Package main is the coursewise command.
//
// It reads a student profile document, ranks the course catalog for that
// student and prints the recommendations as a JSON array on stdout:
//
//	coursewise [-top-n N] [-config path] <student.json> [catalog.json]
//
// stdout always carries exactly one JSON document: the recommendation list,
// or {"error": "..."} with exit code 1. Logs go to stderr, or to the file
// named by logging.file / LOG_FILE.
//
// # Configuration
//
// Configuration is loaded via koanf v2 with layered sources (highest priority wins):
//   - Environment variables (LOG_LEVEL, COURSEWISE_TOP_N, COURSEWISE_CATALOG_SOURCE, ...)
//   - Config file (-config, COURSEWISE_CONFIG, or ./coursewise.yaml)
//   - Built-in defaults
//
// A catalog argument always wins over the configured catalog source.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/coursewise/internal/catalog"
	"github.com/tomtom215/coursewise/internal/config"
	"github.com/tomtom215/coursewise/internal/logging"
	"github.com/tomtom215/coursewise/internal/metrics"
	"github.com/tomtom215/coursewise/internal/models"
	"github.com/tomtom215/coursewise/internal/recommend"
	"github.com/tomtom215/coursewise/internal/requirements"
)

// Error document messages.
const (
	errMissingInput    = "Missing input file"
	errInputNotFound   = "Input file not found"
	errInputUnreadable = "Input file could not be read"
	errInvalidProfile  = "Invalid student profile"
	errCatalogNotFound = "Catalog file not found"
	errInvalidArgs     = "Invalid arguments"
	errInvalidConfig   = "Invalid configuration"
	errInternal        = "Internal error"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one recommendation pass and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	logger := zerolog.New(stderr).With().Timestamp().Logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("unexpected failure")
			writeError(stdout, errInternal)
			code = 1
		}
	}()

	fs := flag.NewFlagSet("coursewise", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: coursewise [-top-n N] [-config path] <student.json> [catalog.json]")
		fs.PrintDefaults()
	}
	topN := fs.Int("top-n", 0, "number of recommendations, values below 1 mean 1 (default recommend.default_top_n)")
	configPath := fs.String("config", "", "path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		writeError(stdout, fmt.Sprintf("%s: %v", errInvalidArgs, err))
		return 1
	}

	if fs.NArg() < 1 {
		writeError(stdout, errMissingInput)
		return 1
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		writeError(stdout, fmt.Sprintf("%s: %v", errInvalidConfig, err))
		return 1
	}

	logger, closer, err := logging.New(loggingConfig(cfg, stderr))
	if err != nil {
		writeError(stdout, fmt.Sprintf("%s: %v", errInvalidConfig, err))
		return 1
	}
	defer closer.Close() //nolint:errcheck // nothing useful to do on close failure

	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())

	profile, msg := readProfile(fs.Arg(0))
	if msg != "" {
		logger.Error().Str("path", fs.Arg(0)).Str("reason", msg).Msg("cannot read student profile")
		writeError(stdout, msg)
		return 1
	}

	provider, msg, err := catalogProvider(cfg, fs.Arg(1), logger)
	if err != nil {
		logger.Error().Err(err).Msg("cannot build catalog source")
		writeError(stdout, fmt.Sprintf("%s: %v", errInvalidConfig, err))
		return 1
	}
	if msg != "" {
		writeError(stdout, msg)
		return 1
	}

	engine, err := recommend.NewEngine(ctx, provider, requirements.WithOverrides(cfg.Requirements.Majors), engineConfig(cfg), logger)
	if err != nil {
		logger.Error().Err(err).Msg("cannot build recommendation engine")
		writeError(stdout, fmt.Sprintf("%s: %v", errInvalidConfig, err))
		return 1
	}

	resp, err := engine.Recommend(ctx, recommend.Request{Profile: profile, TopN: requestedTopN(fs, *topN, cfg)})
	if err != nil {
		logger.Error().Err(err).Msg("recommendation aborted")
		writeError(stdout, errInternal)
		return 1
	}

	stats := engine.Stats()
	logger.Debug().
		Str("request_id", resp.Metadata.RequestID).
		Int("courses", stats.Courses).
		Int64("cache_hits", stats.CacheHits).
		Int64("cache_misses", stats.CacheMisses).
		Msg("engine stats")

	if err := writeJSON(stdout, resp.Recommendations); err != nil {
		logger.Error().Err(err).Msg("failed to write recommendations")
		return 1
	}

	if cfg.Metrics.Textfile != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Warn().Err(err).Msg("failed to write metrics textfile")
		}
	}

	return 0
}

// requestedTopN returns the -top-n value when given on the command line and
// recommend.default_top_n otherwise.
func requestedTopN(fs *flag.FlagSet, flagValue int, cfg *config.Config) int {
	n := cfg.Recommend.DefaultTopN
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "top-n" {
			n = flagValue
		}
	})
	return n
}

// readProfile loads the student document. A non-empty message means failure.
func readProfile(path string) (models.StudentProfile, string) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return models.StudentProfile{}, errInputNotFound
	case err != nil:
		return models.StudentProfile{}, fmt.Sprintf("%s: %v", errInputUnreadable, err)
	}

	profile, err := models.DecodeProfile(data)
	if err != nil {
		return models.StudentProfile{}, fmt.Sprintf("%s: %v", errInvalidProfile, err)
	}
	return profile, ""
}

// catalogProvider selects the catalog. An explicit path must exist; its
// contents may still be malformed, in which case the built-in catalog is used.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func catalogProvider(cfg *config.Config, path string, logger zerolog.Logger) (*catalog.Provider, string, error) {
	if path == "" {
		p, err := catalog.NewProviderFromConfig(cfg.Catalog, logger)
		return p, "", err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Error().Str("path", path).Msg("catalog file not found")
		return nil, errCatalogNotFound, nil
	}
	return catalog.NewProvider(catalog.NewFileSource(path), catalog.Builtin(cfg.Catalog.Builtin), logger), "", nil
}

func loggingConfig(cfg *config.Config, stderr io.Writer) logging.Config {
	return logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: cfg.Logging.Timestamp,
		File:      cfg.Logging.File,
		Output:    stderr,
	}
}

func engineConfig(cfg *config.Config) *recommend.Config {
	rc := cfg.Recommend
	return &recommend.Config{
		Weights: recommend.Weights{
			Career:     rc.Weights.Career,
			Learning:   rc.Weights.Learning,
			Workload:   rc.Weights.Workload,
			Difficulty: rc.Weights.Difficulty,
			Major:      rc.Weights.Major,
		},
		MinConfidence:  rc.MinConfidence,
		MajorBonus:     rc.MajorBonus,
		IncludeFactors: rc.IncludeFactors,
		Cache: recommend.CacheConfig{
			Enabled: rc.Cache.Enabled,
			Size:    rc.Cache.Size,
			TTL:     rc.Cache.TTL,
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeError(w io.Writer, msg string) {
	//nolint:errcheck // stdout failures cannot be reported anywhere else
	writeJSON(w, models.ErrorDocument{Error: msg})
}
