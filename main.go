package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-phong-raytracer/internal/config"
	"github.com/df07/go-phong-raytracer/internal/logger"
	"github.com/df07/go-phong-raytracer/pkg/imageio"
	"github.com/df07/go-phong-raytracer/pkg/integrator"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the renderer and returns the process exit status
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	flags := config.NewFlags(fs)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *flags.Help {
		printHelp(stdout, fs)
		return 0
	}

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	if *flags.SaveConfig != "" {
		if err := cfg.SaveTo(*flags.SaveConfig); err != nil {
			logger.Error("failed to save config", zap.String("path", *flags.SaveConfig), zap.Error(err))
			return 1
		}
		logger.Info("config saved", zap.String("path", *flags.SaveConfig))
		return 0
	}

	if *flags.List {
		if err := listScenes(stdout, cfg.Render.ScenesDir); err != nil {
			logger.Error("failed to list scenes", zap.Error(err))
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := render(ctx, cfg, stdout); err != nil {
		logger.Error("render failed", zap.Error(err))
		return 1
	}
	return 0
}

// render builds the configured scene, traces it and writes the image
func render(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	logger.Info("starting raytracer", zap.String("scene", cfg.Render.Scene))

	selectedScene, err := createScene(cfg.Render.Scene, cfg.Render.ScenesDir)
	if err != nil {
		return err
	}
	applyRenderOverrides(selectedScene, cfg.Render)
	if err := selectedScene.Preprocess(); err != nil {
		return err
	}

	counter := &integrator.CountingObserver{}
	var observer integrator.Observer = counter
	if cfg.Logging.Level == "debug" {
		observer = integrator.MultiObserver{counter, integrator.NewLogObserver(logger.Log)}
	}

	rt := renderer.NewRaytracer(
		selectedScene,
		integrator.NewTracer(observer),
		renderer.Config{TileSize: cfg.Render.TileSize, NumWorkers: cfg.Render.Workers},
		logger.Log.Named("renderer"),
	)

	frame, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	stats.AddTraceCounts(counter)

	logger.Info("render stats",
		zap.Duration("duration", stats.Duration),
		zap.Int("pixels", stats.TotalPixels),
		zap.Float64("samples_per_pixel", stats.AverageSamples),
		zap.Int64("primary_rays", stats.PrimaryRays),
		zap.Int64("shadow_rays", stats.ShadowRays),
		zap.Int64("reflection_rays", stats.ReflectionRays),
		zap.Int("invalid_pixels", stats.InvalidPixels),
		zap.Float64("average_luminance", frame.AverageLuminance()),
	)

	if cfg.Output.Path == config.Stdout {
		if err := imageio.WritePPM(stdout, frame); err != nil {
			return fmt.Errorf("failed to write image to stdout: %w", err)
		}
		return nil
	}

	filename := cfg.Output.Path
	if filename == "" {
		outputDir, err := createOutputDir(cfg.Output.Dir, sceneSlug(cfg.Render.Scene))
		if err != nil {
			return err
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, cfg.Output.GeneratedFormat()))
	}

	if err := imageio.WriteFile(filename, frame); err != nil {
		return err
	}
	logger.Info("render saved", zap.String("path", filename))
	return nil
}

// createScene resolves a built-in scene name, a scene file path, or a scene ID found in scenesDir
func createScene(name, scenesDir string) (*scene.Scene, error) {
	s, err := scene.Resolve(name, scenesDir)
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, fmt.Errorf("%w (use -list to see available scenes)", err)
	}
	return s, err
}

// applyRenderOverrides replaces scene sampling settings that were set in the config
func applyRenderOverrides(s *scene.Scene, cfg config.RenderConfig) {
	if cfg.Width > 0 {
		s.SetWidth(cfg.Width)
	}
	if cfg.MaxDepth >= 0 {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
	if cfg.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.SamplesPerPixel
	}
}

// sceneSlug turns a scene name or path into a directory name
func sceneSlug(name string) string {
	return strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
}

// createOutputDir creates <root>/<sceneName> and returns its path
func createOutputDir(root, sceneName string) (string, error) {
	outputDir := filepath.Join(root, sceneName)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	return outputDir, nil
}

// listScenes prints every built-in and discovered scene by group
func listScenes(w io.Writer, scenesDir string) error {
	groups, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Fprintf(w, "  %-16s %s - %s\n", info.ID, info.Name, info.Description)
			} else {
				fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Name)
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Phong Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Built-in scenes:")
	fmt.Fprintln(w, "  default       - Four Phong spheres lit by two point lights")
	fmt.Fprintln(w, "  single-sphere - One unlit sphere in front of the camera")
	fmt.Fprintln(w, "  sphere-grid   - A floor of colored, partly reflective spheres")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<format>, or streamed as PPM with -output -")
}
