package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/flowmatic/kineograph/config"
	"github.com/flowmatic/kineograph/ingest"
	"github.com/flowmatic/kineograph/logging"
	"github.com/flowmatic/kineograph/models"
	"github.com/flowmatic/kineograph/physics"
	"github.com/flowmatic/kineograph/render"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logging.Info("received shutdown signal, stopping simulation")
		cancel()
	}()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Debug {
		logging.SetLevel(slog.LevelDebug)
		logging.Debug("debug logging enabled")
	}

	if cfg.Data == "" {
		fmt.Fprintln(os.Stderr, "Please provide a data file using --data")
		os.Exit(1)
	}

	graph, err := loadGraph(cfg.Data)
	if err != nil {
		logging.Fatal("failed to load input", "file", cfg.Data, "error", err)
	}
	graph.Width = cfg.Width
	graph.Height = cfg.Height

	metrics := runLayout(ctx, graph, cfg)
	logging.Info("layout finished",
		"nodes", metrics.NodeCount,
		"energy", metrics.TotalEnergy,
		"max_force", metrics.MaxForce)

	if err := writeOutput(graph, cfg); err != nil {
		logging.Fatal("rendering failed", "error", err)
	}
}

func loadConfig() (*config.Config, error) {
	f := pflag.NewFlagSet("kineograph", pflag.ExitOnError)
	f.String("data", "", "Path to data file (JSON or CSV)")
	f.String("output", "", "Path to output file (defaults to stdout)")
	f.String("format", "json", "Output format: json, dot, ascii")
	f.Float64("width", 800, "Width of the layout area")
	f.Float64("height", 600, "Height of the layout area")
	f.Int("iterations", 1000, "Maximum simulation ticks")
	f.Float64("threshold", 0.001, "Equilibrium threshold for energy and force")
	f.Float64("noise", 0, "Amplitude of organic position jitter (0 disables)")
	f.Int64("seed", 0, "Random seed (0 uses the clock)")
	f.Bool("debug", false, "Enable debug logging")
	f.Float64("damping", physics.DefaultConfig().Damping, "Velocity damping per tick")
	f.Float64("repulsion", physics.DefaultConfig().Repulsion, "Repulsion strength")
	f.Float64("attraction", physics.DefaultConfig().Attraction, "Link attraction strength")
	f.Float64("grouping", physics.DefaultConfig().Grouping, "Same-type grouping strength")
	f.Float64("timestep", physics.DefaultConfig().TimeStep, "Integration time step")
	if err := f.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	return config.Load(f)
}

func loadGraph(path string) (*models.Graph, error) {
	processor, err := ingest.ForExtension(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	graph, err := processor.ProcessData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to process data: %w", err)
	}
	logging.Debug("input loaded",
		"processor", processor.Name(),
		"nodes", graph.NodeCount(),
		"links", len(graph.LinkSpecs()))
	return graph, nil
}

// runLayout ticks the simulation until equilibrium, the iteration cap or
// cancellation, then optionally applies the noise jitter.
func runLayout(ctx context.Context, graph *models.Graph, cfg *config.Config) physics.Metrics {
	sim := physics.NewSimulator(cfg.Physics())

	var rng *rand.Rand
	if cfg.Seed != 0 {
		sim.Reseed(cfg.Seed)
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	// Nodes the input left at the origin get scattered inside the
	// container so the pairwise pass has geometry to work with.
	for _, n := range graph.Nodes() {
		if n.Position.X == 0 && n.Position.Y == 0 && !n.Fixed {
			n.PlaceRandom(graph.Width, graph.Height, rng)
		}
	}

	var metrics physics.Metrics
	for i := 0; i < cfg.Iterations; i++ {
		select {
		case <-ctx.Done():
			logging.Warn("simulation interrupted, using partial layout", "tick", i)
			return metrics
		default:
		}

		metrics = sim.Tick(graph, nil)
		if i%100 == 0 {
			logging.Debug("tick",
				"i", i,
				"energy", metrics.TotalEnergy,
				"max_force", metrics.MaxForce,
				"avg_force", metrics.AverageForce)
		}
		if metrics.InEquilibrium(cfg.Threshold) {
			logging.Debug("equilibrium reached", "tick", i)
			break
		}
	}

	if cfg.Noise > 0 {
		seed := cfg.Seed
		if seed == 0 {
			seed = int64(os.Getpid())
		}
		physics.NewNoiseField(seed, cfg.Noise).Perturb(graph, nil)
	}

	return metrics
}

func writeOutput(graph *models.Graph, cfg *config.Config) error {
	renderer, err := render.GetRenderer(cfg.Format)
	if err != nil {
		return err
	}
	options := render.NewDefaultOptions(cfg.Format)
	options.Width = cfg.Width
	options.Height = cfg.Height

	output, err := renderer.Render(graph, options)
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}

	if cfg.Output == "" {
		_, err = os.Stdout.Write(output)
		return err
	}
	if err := os.WriteFile(cfg.Output, output, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logging.Info("output written", "file", cfg.Output, "format", cfg.Format)
	return nil
}
