package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bryanwahyu/feedback-analyzer/internal/application"
	appai "github.com/bryanwahyu/feedback-analyzer/internal/application/ai"
	appfeedback "github.com/bryanwahyu/feedback-analyzer/internal/application/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/config"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/ai/provider"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/report"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/sentiment/vader"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/source"
	"github.com/bryanwahyu/feedback-analyzer/internal/logger"
)

// options shared by every subcommand
type options struct {
	configPath string
	file       string
	column     string
	asJSON     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{configPath: os.Getenv("CONFIG_PATH")}
	if opts.configPath == "" {
		opts.configPath = "config.yaml"
	}

	root := &cobra.Command{
		Use:           "feedbackctl",
		Short:         "Analyze a customer feedback column from a CSV or XLSX file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", opts.configPath, "path to config.yaml")
	pf.StringVarP(&opts.file, "file", "f", "", "CSV, TSV or XLSX file")
	pf.StringVarP(&opts.column, "column", "c", "", "text column to analyze")
	pf.BoolVar(&opts.asJSON, "json", false, "print JSON instead of text")
	_ = root.MarkPersistentFlagRequired("file")
	_ = root.MarkPersistentFlagRequired("column")

	root.AddCommand(
		newStatsCmd(opts),
		newWordsCmd(opts),
		newSentimentCmd(opts),
		newAnalyzeCmd(opts),
		newReportCmd(opts),
	)
	return root
}

// session is one loaded dataset plus the service that works on it
type session struct {
	svc   *appfeedback.Service
	table *feedback.Table
}

func (o *options) open(ctx context.Context) (*session, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	lg, err := logger.New(cfg.Logging.Level, "console")
	if err != nil {
		return nil, err
	}

	f, err := os.Open(o.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tbl, err := source.Parse(o.file, f)
	if err != nil {
		return nil, err
	}

	gen, desc, err := provider.New(ctx, provider.Config{
		Name:    cfg.AI.Provider,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		BaseURL: cfg.AI.BaseURL,
	})
	if err != nil {
		return nil, err
	}
	clock := application.SystemClock{}
	svc := &appfeedback.Service{
		Classifier: feedback.NewClassifier(vader.NewScorer()),
		Analyst: appai.NewService(gen, appai.Options{
			Provider: desc,
			Timeout:  cfg.AI.Timeout,
			Logger:   lg.Named("ai"),
		}),
		Renderer:      report.NewRenderer(clock.Now),
		Clock:         clock,
		MaxReportRows: cfg.Report.MaxRows,
		Log:           zap.NewNop(),
	}
	return &session{svc: svc, table: tbl}, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
