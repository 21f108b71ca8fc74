package config

const (
	defaultWidth       = 1920
	defaultHeight      = 1080
	defaultDuration    = 300
	defaultFPS         = 30
	defaultLevels      = 10
	defaultXYScale     = 0.2
	defaultTScale      = 50
	defaultPersistence = 0.5
	defaultAlign       = 16
	defaultBasis       = "perlin"
	defaultShades      = 2
	defaultCombParam   = 0.08
	defaultOutputDir   = "visual_stimulus"
	defaultFormat      = FormatVideo
	defaultCodec       = "mjpeg"
	defaultContainer   = "avi"
	defaultQuality     = 2
	defaultFFmpeg      = "ffmpeg"
	defaultFFprobe     = "ffprobe"
	defaultMinFreeMiB  = 512
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Stimulus: Stimulus{
			Width:           defaultWidth,
			Height:          defaultHeight,
			DurationSeconds: defaultDuration,
			FPS:             defaultFPS,
		},
		Noise: Noise{
			Levels:      defaultLevels,
			XYScale:     defaultXYScale,
			TScale:      defaultTScale,
			XScale:      1,
			YScale:      1,
			Persistence: defaultPersistence,
			Align:       defaultAlign,
			Basis:       defaultBasis,
		},
		Discretize: Discretize{
			Shades: defaultShades,
		},
		Filters: DefaultFilters(),
		Output: Output{
			Dir:           defaultOutputDir,
			Format:        defaultFormat,
			Codec:         defaultCodec,
			Container:     defaultContainer,
			Quality:       defaultQuality,
			FFmpegBinary:  defaultFFmpeg,
			FFprobeBinary: defaultFFprobe,
			MinFreeMiB:    defaultMinFreeMiB,
			Manifest:      true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultFilters returns the single 0.08 comb used for photodiode sync.
func DefaultFilters() []Filter {
	return []Filter{{Name: "comb", Param: defaultCombParam}}
}
