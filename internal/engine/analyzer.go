package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/model"
)

// neutralScore is returned by analyzers that cannot form a meaningful
// judgment on degenerate input.
const neutralScore = 0.5

// SignalAnalyzer computes one suspicion signal from a raster image.
// Implementations must be pure and stateless: they read the shared raster
// without modifying it and always return a score in [0,1].
//
// Design decision: Analyze returns a plain float64 rather than
// (float64, error) because every degenerate input resolves locally to the
// neutral score. A signal that cannot fail keeps the fan-out trivial.
type SignalAnalyzer interface {
	// Name returns the signal name used in breakdowns and logging.
	Name() string

	// Analyze computes the suspicion score for the raster.
	Analyze(raster *imaging.Raster) float64
}

// ProbabilityProvider supplies the external AI-generation probability.
// Implementations must resolve every failure to the neutral 0.5 internally;
// the engine never treats the external signal as fatal.
type ProbabilityProvider interface {
	// Name returns the provider name for logging.
	Name() string

	// Probability returns the probability in [0,1] that the raster is
	// synthetically generated, or the neutral 0.5 on any failure.
	Probability(ctx context.Context, raster *imaging.Raster) float64
}

// Engine runs all signal analyzers over a raster and fuses their scores
// into an AuthenticityReport.
type Engine struct {
	// analyzers is the list of registered heuristic analyzers.
	analyzers []SignalAnalyzer

	// provider is the optional external probability source.
	// Nil selects heuristic-only fusion.
	provider ProbabilityProvider

	// weights configures score fusion. Immutable after construction.
	weights model.FusionWeights

	// logger is used for structured logging during analysis.
	logger *slog.Logger

	// now supplies report timestamps; overridable in tests.
	now func() time.Time
}

// Option configures an Engine.
// This follows the functional options pattern for clean API design.
type Option func(*Engine)

// WithProvider sets the external AI probability provider.
// When set, the engine fuses scores in hybrid mode.
func WithProvider(p ProbabilityProvider) Option {
	return func(e *Engine) {
		e.provider = p
	}
}

// WithWeights overrides the default fusion weights.
func WithWeights(w model.FusionWeights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

// WithLogger sets a custom logger for the engine.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock overrides the timestamp source. Intended for tests that need
// deterministic reports.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine with the four built-in signal analyzers registered.
// New panics if the configured weights are invalid; weights are static
// process configuration and an invalid set is a programming error.
func New(opts ...Option) *Engine {
	e := &Engine{
		weights: model.DefaultFusionWeights(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	if err := e.weights.Validate(); err != nil {
		panic(fmt.Sprintf("engine: invalid fusion weights: %v", err))
	}

	e.analyzers = []SignalAnalyzer{
		NewMetadataAnalyzer(),
		NewNoiseAnalyzer(),
		NewEdgeAnalyzer(),
		NewCompressionAnalyzer(),
	}

	return e
}

// Analyze runs all analyzers over the raster and returns the fused report.
//
// The four heuristic analyzers and the external probability request run
// concurrently: the analyzers are CPU bound while the external request is
// the only blocking step, so neither waits on the other. The provider is
// responsible for its own timeout; Analyze itself only fails if the context
// is cancelled before the heuristic work completes.
func (e *Engine) Analyze(ctx context.Context, raster *imaging.Raster) (*model.AuthenticityReport, error) {
	start := e.now()

	scores := model.AnalysisScores{}
	targets := map[string]*float64{
		model.SignalMetadataAnomaly:      &scores.MetadataAnomaly,
		model.SignalNoiseUniformity:      &scores.NoiseUniformity,
		model.SignalEdgeConsistency:      &scores.EdgeConsistency,
		model.SignalCompressionArtifacts: &scores.CompressionArtifact,
	}

	g, gctx := errgroup.WithContext(ctx)

	for _, analyzer := range e.analyzers {
		target, ok := targets[analyzer.Name()]
		if !ok {
			return nil, fmt.Errorf("engine: no score slot for analyzer %q", analyzer.Name())
		}

		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			*target = analyzer.Analyze(raster)
			e.logger.Debug("signal computed",
				"signal", analyzer.Name(),
				"score", *target,
				"filename", raster.Filename(),
			)
			return nil
		})
	}

	if e.provider != nil {
		g.Go(func() error {
			p := e.provider.Probability(gctx, raster)
			scores.ExternalAIProbability = &p
			e.logger.Debug("external probability obtained",
				"provider", e.provider.Name(),
				"probability", p,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	report := Combine(scores, e.weights, metadataFor(raster), e.now())

	e.logger.Info("analysis complete",
		"filename", raster.Filename(),
		"score", report.Score,
		"label", report.Label.String(),
		"duration", e.now().Sub(start),
	)

	return report, nil
}

// metadataFor builds the display metadata block from the raster.
func metadataFor(raster *imaging.Raster) model.ImageMetadata {
	return model.ImageMetadata{
		Format:     raster.Format(),
		Mode:       raster.Mode(),
		Size:       [2]int{raster.Width(), raster.Height()},
		Filename:   raster.Filename(),
		HasEXIF:    raster.EXIF().Present,
		EXIFFields: raster.EXIF().FieldCount,
	}
}
