package renderer

import "fmt"

// LightModel selects how light fades with distance.
type LightModel int

const (
	LightModelNone LightModel = iota
	LightModelLinear
	LightModelQuadratic
)

// ParseLightModel converts a CLI model name into a LightModel.
func ParseLightModel(name string) (LightModel, error) {
	switch name {
	case "none":
		return LightModelNone, nil
	case "linear":
		return LightModelLinear, nil
	case "quadratic":
		return LightModelQuadratic, nil
	}
	return 0, fmt.Errorf("unsupported light model %q", name)
}

func (m LightModel) String() string {
	switch m {
	case LightModelLinear:
		return "linear"
	case LightModelQuadratic:
		return "quadratic"
	default:
		return "none"
	}
}

// Config contains rendering configuration. Zero NumThreads means one worker
// per CPU.
type Config struct {
	FieldOfVision float64    // horizontal field of view, degrees
	MaxDistance   float64    // light attenuation cutoff
	ShadowBias    float64    // multiplier on the diffuse term for shadowed surfaces
	RayBias       float64    // offset pushing secondary ray origins off the surface
	MaxRayDepth   int        // reflection recursion bound
	NumThreads    int        // worker count
	Width         int        // framebuffer width in pixels
	Height        int        // framebuffer height in pixels
	LightModel    LightModel // attenuation model
}

// DefaultConfig returns the renderer defaults.
func DefaultConfig() Config {
	return Config{
		FieldOfVision: 70,
		MaxDistance:   60,
		ShadowBias:    0.25,
		RayBias:       0.001,
		MaxRayDepth:   3,
		NumThreads:    0,
		Width:         640,
		Height:        480,
		LightModel:    LightModelQuadratic,
	}
}
