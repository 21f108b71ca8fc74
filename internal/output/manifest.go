package output

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"zebranoise/internal/config"
	"zebranoise/internal/stimulus"
)

// Manifest records how a stimulus file was produced.
type Manifest struct {
	RunID      string          `toml:"run_id"`
	Tool       string          `toml:"tool"`
	StartedAt  time.Time       `toml:"started_at"`
	FinishedAt time.Time       `toml:"finished_at"`
	Artifact   string          `toml:"artifact"`
	Bytes      int64           `toml:"bytes"`
	Plan       ManifestPlan    `toml:"plan"`
	Stimulus   config.Stimulus `toml:"stimulus"`
	Noise      config.Noise    `toml:"noise"`
	Shades     int             `toml:"shades"`
	Filters    []config.Filter `toml:"filters"`
	Encoding   ManifestOutput  `toml:"encoding"`
}

// ManifestPlan is the frame accounting section.
type ManifestPlan struct {
	NominalFrames   int     `toml:"nominal_frames"`
	AdjustedTScale  float64 `toml:"adjusted_tscale"`
	Period          int     `toml:"period"`
	PaddingFrames   int     `toml:"padding_frames"`
	CorrectedFrames int     `toml:"corrected_frames"`
	BlackFrames     int     `toml:"black_frames"`
	GreyFrames      int     `toml:"grey_frames"`
	TotalFrames     int     `toml:"total_frames"`
	Width           int     `toml:"width"`
	Height          int     `toml:"height"`
}

// ManifestOutput describes the encoder settings.
type ManifestOutput struct {
	Format    string `toml:"format"`
	Codec     string `toml:"codec,omitempty"`
	Container string `toml:"container,omitempty"`
	Quality   int    `toml:"quality,omitempty"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.NewString() }

// NewManifest fills a manifest from the run inputs and result.
func NewManifest(runID string, cfg *config.Config, res stimulus.Result, artifact string, started, finished time.Time) Manifest {
	m := Manifest{
		RunID:      runID,
		Tool:       "zebranoise",
		StartedAt:  started.UTC().Truncate(time.Second),
		FinishedAt: finished.UTC().Truncate(time.Second),
		Artifact:   artifact,
		Plan: ManifestPlan{
			NominalFrames:   res.Plan.Nominal,
			AdjustedTScale:  res.Plan.TScale,
			Period:          res.Plan.Period,
			PaddingFrames:   res.Plan.Padding,
			CorrectedFrames: res.Plan.Corrected,
			BlackFrames:     res.Plan.Black,
			GreyFrames:      res.Plan.Grey,
			TotalFrames:     res.Plan.Total,
			Width:           res.Plan.Width,
			Height:          res.Plan.Height,
		},
		Stimulus: cfg.Stimulus,
		Noise:    cfg.Noise,
		Shades:   cfg.Discretize.Shades,
		Filters:  append([]config.Filter{}, cfg.Filters...),
		Encoding: ManifestOutput{Format: cfg.Output.Format},
	}
	if cfg.Output.Format == config.FormatVideo {
		m.Encoding.Codec = cfg.Output.Codec
		m.Encoding.Container = cfg.Output.Container
		m.Encoding.Quality = cfg.Output.Quality
	}
	return m
}

// ManifestPath is the sidecar path for an artifact.
func ManifestPath(artifact string) string { return artifact + ".toml" }

// WriteManifest writes m next to its artifact and returns the path.
func WriteManifest(m Manifest) (string, error) {
	data, err := toml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	path := ManifestPath(m.Artifact)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read manifest: %w", err)
	}
	if err := toml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}
