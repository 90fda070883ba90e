package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/DoyleJ11/front-office-draft/internal/catalog"
	"github.com/DoyleJ11/front-office-draft/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogPath string
var modeName string
var logLevel string

var log = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "draftctl",
	Short: "Evaluate front-office builds from the command line",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logger.New(logLevel)
		if err != nil {
			return err
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML file (default is the built-in catalog)")
	rootCmd.PersistentFlags().StringVarP(&modeName, "mode", "m", "", "challenge mode (default is the catalog's default)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(catalogCmd, evaluateCmd, simulateCmd, draftCmd, recordsCmd)
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath == "" {
		return catalog.Reference(), nil
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, err
	}
	log.Debug("catalog loaded", zap.String("path", catalogPath), zap.Int("items", len(cat.Items)))
	return cat, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
