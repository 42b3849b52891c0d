package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yaleman/shrinky/internal/encoder"
)

var (
	version = "0.1.0"

	flagDebug      bool
	flagOutputType string
	flagDelete     bool
	flagGeometry   string
	flagForce      bool
	flagInfo       bool
	flagQuality    int

	log *zap.SugaredLogger
)

// envFallbacks maps flag names to the environment variables that fill them
// in when the flag is not given on the command line.
var envFallbacks = map[string]string{
	"debug":       "SHRINKY_DEBUG",
	"output-type": "SHRINKY_TYPE",
	"delete":      "SHRINKY_DELETE",
	"geometry":    "SHRINKY_GEOMETRY",
	"force":       "SHRINKY_FORCE",
	"quality":     "SHRINKY_QUALITY",
}

var rootCmd = &cobra.Command{
	Use:   "shrinky <filename>",
	Short: "A simple tool for optimizing images",
	Long: `shrinky — shrinks one image at a time.

Optionally resizes the image, then either converts it to the format you ask
for or tries every supported encoder in parallel and keeps the smallest
result. Can offer to delete the original afterwards when the new file earns
its keep.`,
	Version:       version,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyEnvFallbacks(cmd); err != nil {
			return err
		}

		config := zap.NewDevelopmentConfig()
		config.DisableStacktrace = true
		if flagDebug {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
			config.DisableCaller = true
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		log = logger.Sugar()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: runOptimize,
}

// Execute runs the CLI and logs the failure, if any, exactly once.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if log != nil {
			log.Errorf("%v", err)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "activate debug mode")
	rootCmd.Flags().StringVarP(&flagOutputType, "output-type", "t", "", "output format (jpg, png, webp, avif, heic, heif); smallest wins when unset")
	rootCmd.Flags().BoolVarP(&flagDelete, "delete", "d", false, "offer to delete the original file after conversion")
	rootCmd.Flags().StringVarP(&flagGeometry, "geometry", "g", "", "target geometry, eg. 800x600, 800x or x600")
	rootCmd.Flags().BoolVarP(&flagForce, "force", "f", false, "overwrite the input file without complaining")
	rootCmd.Flags().BoolVarP(&flagInfo, "info", "i", false, "show image info and exit")
	rootCmd.Flags().IntVarP(&flagQuality, "quality", "q", encoder.DefaultQuality, "encoding quality 1-100")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"shrinky %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// applyEnvFallbacks fills flags from their SHRINKY_* environment variables
// when they were not set on the command line.
func applyEnvFallbacks(cmd *cobra.Command) error {
	for name, env := range envFallbacks {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		value, ok := os.LookupEnv(env)
		if !ok || value == "" {
			continue
		}
		if err := flag.Value.Set(value); err != nil {
			return fmt.Errorf("invalid %s value %q: %w", env, value, err)
		}
	}
	return nil
}
