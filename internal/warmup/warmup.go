package warmup

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baditaflorin/go_text_formatter/internal/core/domain"
	"github.com/baditaflorin/go_text_formatter/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Sample text size for warmup
	SampleTextSize int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency:    runtime.NumCPU(),
		Iterations:     200,
		SampleTextSize: 1000,
		Duration:       2 * time.Second,
		ForceGC:        true,
	}
}

// Stats reports what a warmup run did.
type Stats struct {
	Calls    int64
	Duration time.Duration
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	formatters  []ports.Formatter
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterFormatter adds a formatter to be warmed up
func (wm *Manager) RegisterFormatter(f ports.Formatter) {
	wm.formatters = append(wm.formatters, f)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs every registered component over generated sample text until
// the iterations are exhausted or ctx (bounded by Duration) is done.
func (wm *Manager) WarmUp(ctx context.Context) Stats {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.formatters)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	sample := generateSampleText(wm.config.SampleTextSize)
	modes := []domain.Mode{domain.Sentence, domain.Upper, domain.Lower, domain.Title}
	calls := make([]int64, wm.config.Concurrency)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < wm.config.Concurrency; i++ {
		routineID := i
		g.Go(func() error {
			for j := 0; j < wm.config.Iterations; j++ {
				select {
				case <-gctx.Done():
					return nil
				default:
				}

				for _, n := range wm.normalizers {
					_ = n.Normalize(sample)
					calls[routineID]++
				}
				for _, f := range wm.formatters {
					_, _ = f.FormatMode(sample, modes[j%len(modes)])
					calls[routineID]++
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	stats := Stats{Duration: time.Since(startTime)}
	for _, c := range calls {
		stats.Calls += c
	}

	wm.logger.Info("System warmup completed",
		"duration", stats.Duration,
		"calls", stats.Calls,
	)
	return stats
}

// generateSampleText creates messy sample text of roughly the specified size:
// irregular whitespace, mixed case and sentence terminators.
func generateSampleText(size int) string {
	words := []string{
		"the", "Quick", "BROWN", "fox.", "jumps", "over", "lazy", "dog!",
		"hello", "World", "lorem", "ipsum?", "dolor", "sit", "amet", "consectetur",
		"adipiscing", "elit", "sed", "do", "eiusmod", "tempor.", "incididunt",
	}
	separators := []string{" ", "  ", "\t", " \n "}

	var sb strings.Builder
	sb.Grow(size)
	for i := 0; sb.Len() < size; i++ {
		sb.WriteString(separators[i%len(separators)])
		sb.WriteString(words[i%len(words)])
	}
	return sb.String()
}
