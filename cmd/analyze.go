package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/evaluation"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/screening"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze FILE",
	Short: "Screen a résumé (pdf, docx, txt or md) and print the verdicts and the rejection letter",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindScreeningFlags(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addScreeningFlags(analyzeCmd)
	analyzeCmd.Flags().StringP("output", "o", "", "write the evaluation bundle as JSON to this file")
}

func addScreeningFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("job-role", "r", "", "target job role (default is Software Engineer)")
	cmd.Flags().StringP("name", "n", "", "candidate name used in the rejection letter")
	cmd.Flags().Int("confidence", 0, "override the extraction confidence (0-100)")
	cmd.Flags().StringSlice("disable", nil, "evaluator steps to skip: ats, recruiter, engineer")
}

// bindScreeningFlags binds the flags of the command being run. Both analyze and
// correct define them, so binding happens per invocation.
func bindScreeningFlags(cmd *cobra.Command) {
	viper.BindPFlag("job-role", cmd.Flags().Lookup("job-role"))
	viper.BindPFlag("disable", cmd.Flags().Lookup("disable"))
}

func analyze(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	bundle, err := screen(ctx, cmd, config, path, logger)
	if err != nil {
		logger.Fatal("screening failed", zap.Error(err), zap.String("file", path))
	}

	printBundle(os.Stdout, bundle)

	if output := cmd.Flag("output").Value.String(); output != "" {
		filename, err := bundle.DumpToFile(output)
		if err != nil {
			logger.Fatal("dumping bundle", zap.Error(err))
		}
		logger.Info("bundle written", zap.String("filename", filename))
	}
}

// screen extracts the file and runs it through the configured evaluator steps.
func screen(ctx context.Context, cmd *cobra.Command, config *Config, path string, logger *zap.Logger) (*screening.Bundle, error) {
	tables, err := loadTables(config)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	doc, err := extract.FromFile(path)
	if err != nil {
		return nil, err
	}

	screener, err := screening.New(screening.Config{Tables: &tables, Logger: logger})
	if err != nil {
		return nil, err
	}

	for _, name := range config.Disable {
		if err := screener.Disable(strings.ToLower(strings.TrimSpace(name)), "disabled by configuration"); err != nil {
			return nil, err
		}
	}

	for _, status := range screener.Describe() {
		logger.Debug("evaluator step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	opts := screening.Options{
		JobRole:       config.JobRole,
		CandidateName: cmd.Flag("name").Value.String(),
	}
	if cmd.Flags().Changed("confidence") {
		confidence, err := cmd.Flags().GetInt("confidence")
		if err != nil {
			return nil, err
		}
		opts.Confidence = &confidence
	}

	return screener.Run(ctx, doc, opts)
}

func printBundle(w io.Writer, bundle *screening.Bundle) {
	for _, res := range []*evaluation.Result{bundle.ATS, bundle.Recruiter, bundle.Engineer} {
		if res == nil {
			continue
		}
		fmt.Fprintf(w, "%s: %s (%d/100)\n", res.Evaluator, res.Verdict, res.Score)
		if res.Summary != "" {
			fmt.Fprintf(w, "  %s\n", res.Summary)
		}
		for _, finding := range res.Findings {
			fmt.Fprintf(w, "  - %s\n", finding)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, bundle.Letter)
}
