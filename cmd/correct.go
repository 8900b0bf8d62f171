package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai/gemini"
	"github.com/spigell/resume-screener/internal/correction"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/secrets"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var prompt = promptui.Select{
	Label: "Send the résumé to the correction provider?",
	Items: []string{PromptYes, PromptNo},
}

var correctCmd = &cobra.Command{
	Use:   "correct FILE",
	Short: "Propose corrections for the structured errors of a résumé or a saved evaluation bundle",
	Args:  cobra.ExactArgs(1),
	PreRun: func(cmd *cobra.Command, _ []string) {
		bindScreeningFlags(cmd)
	},
	Run: func(cmd *cobra.Command, args []string) {
		correct(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(correctCmd)

	addScreeningFlags(correctCmd)
	correctCmd.Flags().StringP("output", "o", "", "write the bundle with the correction proposal as JSON to this file")
	correctCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before calling the provider")
}

func correct(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	var bundle *screening.Bundle
	if strings.EqualFold(filepath.Ext(path), ".json") {
		bundle, err = screening.LoadBundle(path)
	} else {
		bundle, err = screen(ctx, cmd, config, path, logger)
	}
	if err != nil {
		logger.Fatal("preparing the evaluation bundle", zap.Error(err), zap.String("file", path))
	}

	req := bundle.CorrectionRequest()
	actionable := correction.Actionable(req.Errors)
	logger.Info("structured errors collected",
		zap.Int("total", len(req.Errors)),
		zap.Int("actionable", len(actionable)),
	)

	if len(actionable) > 0 && cmd.Flag("auto-approve").Value.String() == "false" {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			logger.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	provider, err := newCorrectionProvider(ctx, config, logger)
	if err != nil {
		var cfgErr *correction.ConfigurationError
		if errors.As(err, &cfgErr) {
			logger.Fatal("correction provider is not configured", zap.Error(err),
				zap.String("hint", "the 'ai.gemini.api-key' and 'ai.gemini.api-key-file' keys in the configuration file work as well"),
			)
		}
		logger.Fatal("configuring the correction provider", zap.Error(err))
	}

	proposal, err := correction.NewEngine(provider, logger).Propose(ctx, req)
	if err != nil {
		logger.Fatal("correction failed", zap.Error(err))
	}
	bundle.Correction = proposal

	printProposal(os.Stdout, proposal)

	if output := cmd.Flag("output").Value.String(); output != "" {
		filename, err := bundle.DumpToFile(output)
		if err != nil {
			logger.Fatal("dumping bundle", zap.Error(err))
		}
		logger.Info("bundle written", zap.String("filename", filename))
	}
}

// newCorrectionProvider builds the configured provider. Gemini is the only one
// and is used when ai.provider is empty.
func newCorrectionProvider(ctx context.Context, config *Config, logger *zap.Logger) (correction.Provider, error) {
	ai := config.AI
	if ai == nil {
		ai = &AIConfig{}
	}

	provider := strings.ToLower(strings.TrimSpace(ai.Provider))
	if provider == "" {
		provider = gemini.ProviderName
	}
	if provider != gemini.ProviderName {
		return nil, fmt.Errorf("unsupported ai provider %q", ai.Provider)
	}

	geminiCfg := ai.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.GeminiSource(geminiCfg.APIKey, geminiCfg.APIKeyFile))
	if errors.Is(err, secrets.ErrNotConfigured) {
		return nil, &correction.ConfigurationError{Err: err}
	}
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, gemini.Config{
		APIKey:     apiKey,
		Model:      geminiCfg.Model,
		MaxRetries: geminiCfg.MaxRetries,
	}, logger)
	if err != nil {
		return nil, err
	}

	return gemini.NewCorrector(generator, logger, geminiCfg.MaxLogLength), nil
}

func printProposal(w io.Writer, p *correction.Proposal) {
	fmt.Fprintf(w, "Changes made: %d\n", len(p.ChangesMade))
	for _, c := range p.ChangesMade {
		fmt.Fprintf(w, "  [%s] %s\n    - %s\n    + %s\n", c.ErrorID, c.Action, c.Before, c.After)
	}

	if len(p.UnresolvedErrors) > 0 {
		fmt.Fprintf(w, "Unresolved errors: %d\n", len(p.UnresolvedErrors))
		for _, u := range p.UnresolvedErrors {
			fmt.Fprintf(w, "  [%s] %s\n", u.ErrorID, u.Reason)
		}
	}

	fmt.Fprintf(w, "\n%s\n", p.ModifiedResume)
}
