package config

import "flag"

// Flags holds the command-line options of the renderer.
type Flags struct {
	fs *flag.FlagSet

	config     *string
	scene      *string
	scenesDir  *string
	width      *int
	depth      *int
	samples    *int
	workers    *int
	output     *string
	format     *string
	debug      *bool
	logFile    *string
	List       *bool
	Help       *bool
	SaveConfig *string
}

// NewFlags registers the renderer flags on fs.
func NewFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:         fs,
		config:     fs.String("config", "", "Path to config file"),
		scene:      fs.String("scene", "", "Scene: built-in name, scene file, or scene ID from -scenes-dir"),
		scenesDir:  fs.String("scenes-dir", "", "Directory containing scene files"),
		width:      fs.Int("width", 0, "Image width (height follows the scene aspect ratio)"),
		depth:      fs.Int("depth", -1, "Maximum reflection depth"),
		samples:    fs.Int("samples", 0, "Samples per pixel, jittered when above 1"),
		workers:    fs.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)"),
		output:     fs.String("output", "", "Output file, or - for PPM on stdout"),
		format:     fs.String("format", "", "Output format: ppm, png, bmp (default png; must match the -output extension)"),
		debug:      fs.Bool("debug", false, "Enable debug logging, including per-ray events"),
		logFile:    fs.String("log-file", "", "Also write logs to this file, rotated"),
		List:       fs.Bool("list", false, "List available scenes and exit"),
		Help:       fs.Bool("help", false, "Show help information"),
		SaveConfig: fs.String("save-config", "", "Write the effective config to this path and exit"),
	}
}

// Parse parses the given arguments.
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	return *f.config
}

// apply applies explicitly set flags to the config.
func (f *Flags) apply(cfg *Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "scene":
			cfg.Render.Scene = *f.scene
		case "scenes-dir":
			cfg.Render.ScenesDir = *f.scenesDir
		case "width":
			cfg.Render.Width = *f.width
		case "depth":
			cfg.Render.MaxDepth = *f.depth
		case "samples":
			cfg.Render.SamplesPerPixel = *f.samples
		case "workers":
			cfg.Render.Workers = *f.workers
		case "output":
			cfg.Output.Path = *f.output
		case "format":
			cfg.Output.Format = *f.format
		case "debug":
			if *f.debug {
				cfg.Logging.Level = "debug"
			}
		case "log-file":
			cfg.Logging.LogFile = *f.logFile
		}
	})
}
