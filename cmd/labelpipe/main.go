// Command labelpipe uploads local images to S3, runs Rekognition label
// detection on every uploaded object, and writes the aggregated results
// as CSV and JSON reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	piperrors "github.com/visionforge/labelpipe/errors"
	"github.com/visionforge/labelpipe/labels"
	"github.com/visionforge/labelpipe/pipeline"
	"github.com/visionforge/labelpipe/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		bucket        string
		region        string
		prefix        string
		csvPath       string
		jsonPath      string
		perItemDir    string
		maxLabels     int
		minConfidence float64
		profile       string
		flushPartial  bool
		envFile       string
		verbose       bool
	)

	flag.StringVar(&bucket, "bucket", "", "destination S3 bucket (required)")
	flag.StringVar(&region, "region", "", "AWS region (default $AWS_REGION, then "+storage.DefaultRegion+")")
	flag.StringVar(&prefix, "prefix", "uploads", "key prefix for uploaded objects (empty uploads to the bucket root)")
	flag.StringVar(&csvPath, "csv", pipeline.DefaultCSVPath, "tabular report output path")
	flag.StringVar(&jsonPath, "json", pipeline.DefaultJSONPath, "combined report output path")
	flag.StringVar(&perItemDir, "per-item-dir", "", "directory for per-item JSON documents (disabled when empty)")
	flag.IntVar(&maxLabels, "max-labels", labels.DefaultMaxLabels, "maximum labels per image")
	flag.Float64Var(&minConfidence, "min-confidence", labels.DefaultMinConfidence, "minimum label confidence (0-100)")
	flag.StringVar(&profile, "profile", "", "shared config credential profile")
	flag.BoolVar(&flushPartial, "flush-partial", false, "write gathered results before aborting on a detection failure")
	flag.StringVar(&envFile, "env-file", "", "env file to load before reading the environment")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: labelpipe -bucket BUCKET [flags] FILE...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			fmt.Fprintf(os.Stderr, "labelpipe: cannot load env file %s: %v\n", envFile, err)
			return pipeline.ExitUsage
		}
	} else {
		// Load .env if present; silently ignore when absent.
		_ = godotenv.Load()
	}

	if bucket == "" {
		fmt.Fprintln(os.Stderr, "labelpipe: -bucket is required")
		flag.Usage()
		return pipeline.ExitUsage
	}
	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "labelpipe: at least one FILE argument is required")
		flag.Usage()
		return pipeline.ExitUsage
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = storage.DefaultRegion
	}

	// The OS filesystem is rooted at /, so every user-supplied path has to
	// be absolute before it goes in.
	paths, err := absAll(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "labelpipe: cannot resolve path: %v\n", err)
		return pipeline.ExitFailure
	}
	csvPath, err = filepath.Abs(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "labelpipe: cannot resolve path: %v\n", err)
		return pipeline.ExitFailure
	}
	jsonPath, err = filepath.Abs(jsonPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "labelpipe: cannot resolve path: %v\n", err)
		return pipeline.ExitFailure
	}
	if perItemDir != "" {
		perItemDir, err = filepath.Abs(perItemDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "labelpipe: cannot resolve path: %v\n", err)
			return pipeline.ExitFailure
		}
	}

	ctx := context.Background()

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(profile))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		err = piperrors.ClassifyConfig(err)
		logger.Error("failed to load AWS configuration", "error", err)
		return pipeline.ExitCode(&pipeline.StageError{Stage: pipeline.StageSession, Err: err})
	}

	store := storage.New(awsCfg, storage.WithLogger(logger))
	detector := labels.New(awsCfg,
		labels.WithLogger(logger),
		labels.WithMaxLabels(maxLabels),
		labels.WithMinConfidence(minConfidence))
	p := pipeline.New(store, detector, pipeline.WithLogger(logger))

	cfg := pipeline.Config{
		Bucket:       bucket,
		Region:       region,
		Prefix:       prefix,
		Paths:        paths,
		CSVPath:      csvPath,
		JSONPath:     jsonPath,
		PerItemDir:   perItemDir,
		FlushPartial: flushPartial,
	}

	if err := p.Run(ctx, cfg); err != nil {
		logger.Error("pipeline failed", "error", err)
		return pipeline.ExitCode(err)
	}

	return pipeline.ExitOK
}

// absAll resolves every path to an absolute one, preserving order.
func absAll(files []string) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, err
		}
		paths = append(paths, abs)
	}
	return paths, nil
}
