// Command fabricdb loads an FPGA chip description into an architecture graph
// and inspects, converts, checks or exports it.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/fabricdb/arch"
	"github.com/sarchlab/fabricdb/config"
	"github.com/sarchlab/fabricdb/util"
)

var (
	rootCmd = &cobra.Command{
		Use:           "fabricdb",
		Short:         "FPGA architecture graph database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	configPath string
	chipDBPath string
	logLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Fatalf("fabricdb: %v", err)
	}

	atexit.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to the YAML configuration")
	rootCmd.PersistentFlags().StringVar(&chipDBPath, "chipdb", "",
		"Path to the chip description (.yaml, .yml or binary)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Log level: trace, debug, info or warn")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the configuration, applies the command line flags on top
// of it and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if chipDBPath != "" {
		cfg.ChipDB = chipDBPath
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	level, err := util.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	util.SetupLogger(level)
	slog.Debug("Configuration loaded",
		"family", cfg.Family, "chipdb", cfg.ChipDB,
		"placer", cfg.Placer, "router", cfg.Router)

	return cfg, nil
}

func loadArch() (*config.Config, *arch.Arch, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	a, err := cfg.BuildArch()
	if err != nil {
		return nil, nil, err
	}

	return cfg, a, nil
}
