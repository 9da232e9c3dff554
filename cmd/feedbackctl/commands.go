package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
	"github.com/bryanwahyu/feedback-analyzer/internal/infra/report"
)

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Row counts, average words and sentiment distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			ov, err := s.svc.Overview(s.table, opts.column)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, ov)
			}
			fmt.Fprintln(out, report.StatsLine(ov.Stats))
			printDistribution(out, ov.Sentiment)
			return nil
		},
	}
}

func newWordsCmd(opts *options) *cobra.Command {
	var k int
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Most frequent words, stopwords removed",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			words, err := s.svc.TopWords(s.table, opts.column, k)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.asJSON {
				return printJSON(out, words)
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WORD\tCOUNT")
			for _, w := range words {
				fmt.Fprintf(tw, "%s\t%d\n", w.Word, w.Count)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&k, "top", "k", feedback.DefaultTopK, "number of words")
	return cmd
}

func newSentimentCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sentiment",
		Short: "Sentiment distribution of the column",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			ov, err := s.svc.Overview(s.table, opts.column)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), ov.Sentiment)
			}
			printDistribution(cmd.OutOrStdout(), ov.Sentiment)
			return nil
		},
	}
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var focusFlag string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the model for sentiment, themes or suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			focus, err := ai.ParseFocus(focusFlag)
			if err != nil {
				return err
			}
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			outcome, err := s.svc.Analyze(cmd.Context(), s.table, opts.column, focus)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(cmd.OutOrStdout(), outcome)
			}
			fmt.Fprintln(cmd.OutOrStdout(), outcome.Display())
			return nil
		},
	}
	cmd.Flags().StringVar(&focusFlag, "focus", ai.FocusAll.Slug(), "sentiment, themes, suggestions or all")
	return cmd
}

func newReportCmd(opts *options) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write the PDF insights report",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context())
			if err != nil {
				return err
			}
			rep, err := s.svc.Report(cmd.Context(), s.table, opts.column)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outPath, rep.PDF, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, summary: %s)\n", outPath, len(rep.PDF), rep.Summary.Kind)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", report.Filename, "output file")
	return cmd
}

func printDistribution(w io.Writer, d feedback.Distribution) {
	total := d.Total()
	for _, lc := range d {
		pct := 0.0
		if total > 0 {
			pct = float64(lc.Count) * 100 / float64(total)
		}
		fmt.Fprintf(w, "%-9s %5d  %5.1f%%\n", lc.Label, lc.Count, pct)
	}
}
