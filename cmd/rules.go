package cmd

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective rule tables as JSON",
	Run: func(_ *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		tables, err := loadTables(config)
		if err != nil {
			logger.Fatal("loading rules", zap.Error(err))
		}
		if err := tables.Validate(); err != nil {
			logger.Fatal("validating rules", zap.Error(err))
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tables); err != nil {
			logger.Fatal("printing rules", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
