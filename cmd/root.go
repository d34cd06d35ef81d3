package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bin2hdr/internal/config"
	"github.com/xll-gen/bin2hdr/internal/converter"
	"github.com/xll-gen/bin2hdr/internal/ui"
	"github.com/xll-gen/bin2hdr/pkg/log"
	"github.com/xll-gen/bin2hdr/version"
)

var (
	cfgFile  string
	logLevel string
	logFile  string
	quiet    bool

	// cfg is the effective configuration, resolved in PersistentPreRunE.
	cfg *config.Config
)

// rootCmd converts a binary file into a C header.
var rootCmd = &cobra.Command{
	Use:   converter.Usage,
	Short: "Convert a binary file into a C header with a static byte array",
	Long: `bin2hdr embeds binary assets (audio clips, images, fonts) into firmware
that has no filesystem. It writes a header holding a length constant and a
byte array, optionally annotated with PROGMEM, or an Intel HEX image.`,
	Version:           version.Version,
	Args:              exactArgs(2),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd, args[0], args[1])
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ui.InitColor()
	err := rootCmd.Execute()
	log.Close()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// init initializes the root command and its flags.
func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./"+config.DefaultPath+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress status output")
}

// exactArgs is cobra.ExactArgs reporting a UsageError instead of cobra's message.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &converter.UsageError{Usage: cmd.CommandPath() + strings.TrimPrefix(cmd.Use, cmd.Name())}
		}
		return nil
	}
}

// loadConfig resolves the configuration file and logging flags and initializes the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	path, explicit := config.DefaultPath, false
	if cfgFile != "" {
		path, explicit = cfgFile, true
	}

	c, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if cmd.Flags().Changed("log-file") {
		c.Logging.Path = logFile
	}

	config.ApplyDefaults(c)
	if err := config.Validate(c); err != nil {
		return err
	}

	if err := log.Init(c.Logging.Path, c.Logging.Level); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	slog.Debug("configuration loaded", "path", path, "explicit", explicit)

	cfg = c
	return nil
}

// reportError prints err to stderr. Usage errors are printed verbatim.
func reportError(err error) {
	var usageErr *converter.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(ui.Err, usageErr.Error())
		return
	}
	slog.Error("bin2hdr failed", "error", err)
	ui.PrintError("Error", err.Error())
}
