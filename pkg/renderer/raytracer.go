package renderer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Config contains the parallelism settings of a render
type Config struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raytracer renders a scene into a frame, splitting the image into tiles shared by a worker pool
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     *zap.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, integratorInst integrator.Integrator, config Config, logger *zap.Logger) *Raytracer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	return &Raytracer{
		scene:      s,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// Render traces every pixel of the scene. On cancellation the partially filled frame is
// returned together with the context error.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	start := time.Now()
	width, height := rt.scene.SamplingConfig.Width, rt.scene.SamplingConfig.Height
	if width <= 0 || height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if rt.scene.Camera == nil {
		return nil, RenderStats{}, fmt.Errorf("scene has no camera")
	}

	frame := NewFrame(width, height)
	tiles := NewTileGrid(width, height, rt.config.TileSize)

	workerPool := NewWorkerPool(NewTileRenderer(rt.scene, rt.integrator), frame, len(tiles), rt.config.NumWorkers)
	rt.logger.Info("rendering",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("samples_per_pixel", rt.scene.SamplingConfig.SamplesPerPixel),
		zap.Int("max_depth", rt.scene.SamplingConfig.MaxDepth),
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", workerPool.NumWorkers()),
	)

	workerPool.Start(ctx)
	for i, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	var stats RenderStats
	var renderErr error
	for range tiles {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			if renderErr == nil {
				renderErr = result.Error
			}
			continue
		}
		stats.Merge(result.Stats)
	}
	workerPool.Stop()

	stats.Duration = time.Since(start)
	if renderErr != nil {
		return frame, stats, fmt.Errorf("render interrupted: %w", renderErr)
	}

	if stats.InvalidPixels > 0 {
		rt.logger.Warn("replaced non-finite pixels with black", zap.Int("count", stats.InvalidPixels))
	}
	rt.logger.Info("render complete",
		zap.Duration("duration", stats.Duration),
		zap.Int("samples", stats.TotalSamples),
	)

	return frame, stats, nil
}
