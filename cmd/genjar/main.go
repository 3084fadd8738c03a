// genjar extracts annotation-processor output from a compiled class jar.
//
// Given the jar a compilation produced and a manifest recording which source
// units were generated by an annotation processor, it writes a second jar
// containing only the class files attributable to generated units, so build
// systems can cache and track generated code as a distinct artifact.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"genjar/internal/pipeline"
)

const version = "1.0.0"

var (
	classJar     string
	manifestPath string
	outputJar    string
	verbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:     "genjar",
	Short:   "Extract annotation-processor output from a class jar",
	Version: version,
	Long: `genjar post-processes a compilation's class jar.

It reads the compilation manifest to learn which top-level declarations came
from annotation-processor-generated source, then copies the matching class
files (including their nested and anonymous classes) into a new jar with
deterministic entry ordering. Class files attributable to no declared unit
are treated as generated. No flag alters classification.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.Run(pipeline.Options{
			ClassJar:  classJar,
			Manifest:  manifestPath,
			OutputJar: outputJar,
			RunID:     uuid.NewString(),
		}, logger)
		return err
	},
}

func init() {
	rootCmd.Flags().StringVar(&classJar, "class-jar", "", "path to the jar holding all compiled class files (required)")
	rootCmd.Flags().StringVar(&manifestPath, "manifest", "", "path to the compilation manifest (required)")
	rootCmd.Flags().StringVar(&outputJar, "output-jar", "", "path to write the generated-classes jar (required)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = rootCmd.MarkFlagRequired("class-jar")
	_ = rootCmd.MarkFlagRequired("manifest")
	_ = rootCmd.MarkFlagRequired("output-jar")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
