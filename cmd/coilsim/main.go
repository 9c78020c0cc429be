// Command coilsim sweeps the reference coil once and writes the figure, the
// interactive charts and the sample workbook to OUTPUT_DIR.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/RMahshie/coilsim/internal/config"
	"github.com/RMahshie/coilsim/internal/render"
	"github.com/RMahshie/coilsim/pkg/coil"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Simulation failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.SetupLogging()

	params := coil.DefaultParameters()
	if err := params.Validate(); err != nil {
		return err
	}

	res := coil.Sweep(params)
	log.Info().
		Int("samples", res.Len()).
		Float64("resistance_ohm", res.Resistance).
		Float64("current_a", res.Current).
		Float64("area_m2", res.Area).
		Float64("field_t", res.MagneticField[res.Len()-1]).
		Msg("Sweep finished")

	if err := os.MkdirAll(cfg.Render.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	renderer := render.New(cfg.Render.WidthInches, cfg.Render.HeightInches)
	outputs := []struct {
		name   string
		render func(io.Writer, *coil.Result) error
	}{
		{"figure.png", renderer.Figure},
		{"chart.html", renderer.Page},
		{"samples.xlsx", renderer.Workbook},
	}

	for _, out := range outputs {
		var buf bytes.Buffer
		if err := out.render(&buf, res); err != nil {
			return fmt.Errorf("failed to render %s: %w", out.name, err)
		}

		path := filepath.Join(cfg.Render.OutputDir, out.name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		log.Info().Str("path", path).Int("bytes", buf.Len()).Msg("Artifact written")
	}

	return nil
}
