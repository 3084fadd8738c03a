// Package pipeline runs the single linear pass that turns a class jar and a
// compilation manifest into a generated-classes jar: read manifest, build the
// prefix indexes, extract the included class files into staging, repackage
// deterministically, remove staging.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"genjar/internal/classify"
	"genjar/internal/jar"
	"genjar/internal/manifest"
	"genjar/internal/staging"
)

// Options are the per-run inputs. All three paths are required.
type Options struct {
	ClassJar  string // jar holding every class file the compiler produced
	Manifest  string // compilation manifest (JSON or YAML)
	OutputJar string // destination for the generated-classes jar

	// RunID correlates the run's log lines and staging directory with the
	// invoking build. Generated when empty.
	RunID string
}

// Result summarizes a successful run.
type Result struct {
	// Extracted is the number of class files written to the output jar.
	Extracted int
}

// Run executes the pipeline sequentially. Every stage failure is fatal and
// wrapped with a stage-identifying message; no partial output jar is ever
// left in place. The staging directory is removed on every exit path; a
// removal failure is logged and does not change the run's outcome.
func Run(opts Options, logger *zap.Logger) (Result, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := logger.With(zap.String("run_id", runID))

	m, err := manifest.Read(opts.Manifest)
	if err != nil {
		return Result{}, fmt.Errorf("reading manifest: %w", err)
	}

	c := classify.NewClassifier(m)
	log.Debug("prefix indexes built",
		zap.Int("generated", len(c.GeneratedPrefixes())),
		zap.Int("user_written", len(c.UserWrittenPrefixes())))
	if both := c.Overlap(); len(both) > 0 {
		log.Debug("top-level names claimed by both generated and user-written units",
			zap.Strings("names", both))
	}

	st, err := staging.New(runID)
	if err != nil {
		return Result{}, fmt.Errorf("acquiring staging directory: %w", err)
	}
	defer func() {
		if rmErr := st.Remove(); rmErr != nil {
			log.Warn("staging cleanup failed", zap.Error(rmErr))
		}
	}()

	n, err := jar.ExtractClasses(opts.ClassJar, c.Includes, st.Path())
	if err != nil {
		return Result{}, fmt.Errorf("extracting generated classes: %w", err)
	}

	if err := jar.WriteDeterministic(opts.OutputJar, st.Path()); err != nil {
		return Result{}, fmt.Errorf("assembling output jar: %w", err)
	}

	log.Info("generated classes extracted",
		zap.Int("classes", n),
		zap.String("output", opts.OutputJar))
	return Result{Extracted: n}, nil
}
