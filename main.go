package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/renderer"
	"github.com/jmkw/go-scene-raytracer/pkg/scene"
)

// CLI limits.
const (
	minWidth  = 320
	maxWidth  = 4096
	minHeight = 240
	maxHeight = 3072
	minFov    = 50
	maxFov    = 170
)

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("go-scene-raytracer", pflag.ContinueOnError)
	flags.SetOutput(out)
	flags.Usage = func() {
		fmt.Fprintf(out, "Usage: go-scene-raytracer [OPTION]... FILE\n\n")
		fmt.Fprintf(out, "Renders a declarative scene description into a PNG image.\n\nOptions:\n")
		fmt.Fprint(out, flags.FlagUsages())
	}

	output := flags.StringP("output", "o", "output.png", "filename for the rendered image")
	resolution := flags.StringP("resolution", "r", "640x480", "resolution of the rendered image, e.g. 1024x768")
	fov := flags.Float64P("fov", "f", 70, "field of vision, in degrees")
	distance := flags.Float64P("distance", "d", 60, "distance to quench light")
	model := flags.StringP("model", "m", "quadratic", "light quenching model (none, linear, quadratic)")
	shadow := flags.Float64P("shadow", "s", 0.25, "shadow factor")
	threads := flags.IntP("threads", "t", 0, "number of render workers (0 = all CPUs)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("expected exactly one scene file, got %d", flags.NArg())
	}

	config := renderer.DefaultConfig()
	config.FieldOfVision = *fov
	config.MaxDistance = *distance
	config.ShadowBias = *shadow
	config.NumThreads = *threads

	var err error
	config.Width, config.Height, err = parseResolution(*resolution)
	if err != nil {
		return err
	}
	config.LightModel, err = renderer.ParseLightModel(*model)
	if err != nil {
		return err
	}
	if err := validate(config); err != nil {
		return err
	}

	world, err := scene.Load(flags.Arg(0))
	if err != nil {
		return err
	}

	logger := core.NewDefaultLogger()
	r := renderer.New(world, config, logger)

	start := time.Now()
	if err := r.Render(context.Background()); err != nil {
		return err
	}
	logger.Printf("OK. Elapsed time: %.2f sec\n", time.Since(start).Seconds())

	return r.WritePNG(*output)
}

// parseResolution parses "WIDTHxHEIGHT" and checks the allowed bounds.
func parseResolution(s string) (int, int, error) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid resolution %q", s)
	}

	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil {
		return 0, 0, fmt.Errorf("invalid resolution %q", s)
	}
	if width < minWidth || width > maxWidth || height < minHeight || height > maxHeight {
		return 0, 0, fmt.Errorf("resolution %q out of range %dx%d .. %dx%d",
			s, minWidth, minHeight, maxWidth, maxHeight)
	}
	return width, height, nil
}

func validate(config renderer.Config) error {
	if config.FieldOfVision < minFov || config.FieldOfVision > maxFov {
		return fmt.Errorf("fov %g out of range %d..%d", config.FieldOfVision, minFov, maxFov)
	}
	if config.MaxDistance <= 0 {
		return fmt.Errorf("distance must be positive, got %g", config.MaxDistance)
	}
	if config.ShadowBias < 0 || config.ShadowBias > 1 {
		return fmt.Errorf("shadow factor %g out of range [0, 1]", config.ShadowBias)
	}
	if config.NumThreads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", config.NumThreads)
	}
	return nil
}
