package shading

import (
	"embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"
)

//go:embed glsl/concrete.vs
var vertexSource string

//go:embed glsl/*.tmpl
var templateFS embed.FS

// Uniform names of the composed program.
const (
	UniformTime           = "time"
	UniformPointer        = "mousePos"
	UniformCubeSize       = "cubeSize"
	UniformTextureScale   = "textureScale"
	UniformVariation      = "variation"
	UniformBaseTint       = "baseTint"
	UniformAmbient        = "ambient"
	UniformLightCount     = "lightCount"
	UniformLightPos       = "lightPos"
	UniformLightIntensity = "lightIntensity"
	UniformLightRange     = "lightRange"
	UniformLightDecay     = "lightDecay"
)

// ProgramOptions selects what gets composed into the fragment shader.
type ProgramOptions struct {
	Palette     []Variation
	TextureMode string // CoordWorld or CoordUV
	MaxLights   int
}

// Program is a composed vertex/fragment pair and the uniforms it declares.
type Program struct {
	Vertex   string
	Fragment string
	Uniforms []UniformSpec
}

type programData struct {
	Variations  int
	TextureMode string
	MaxLights   int
	Octaves     int

	Base, Weight1, Weight2, Scale, PhaseFreq, PhaseCos, Imperfection string

	FlowWeight1, FlowWeight2, FlowPointerPull    float32
	FlowTimeForward, FlowTimeBackward, FlowFreq2 float32
	FBMFlowScale, FBMOctaveShift                 float32
	VariationFlow, LayerDrift, PatternOffset     float32
}

var fragmentTemplate = template.Must(
	template.New("concrete.fs.tmpl").
		Funcs(template.FuncMap{"glsl": glslFloat}).
		ParseFS(templateFS, "glsl/*.tmpl"),
)

// Compose builds the concrete program. The fragment shader is assembled from the noise,
// palette, material and lighting blocks; the palette and kernel constants are rendered
// from the same Go values the CPU material uses.
func Compose(opts ProgramOptions) (Program, error) {
	if len(opts.Palette) == 0 {
		return Program{}, fmt.Errorf("composing program: empty palette")
	}
	if opts.MaxLights < 1 {
		return Program{}, fmt.Errorf("composing program: max lights must be >= 1, got %d", opts.MaxLights)
	}
	mode := opts.TextureMode
	if mode == "" {
		mode = CoordWorld
	}
	if mode != CoordWorld && mode != CoordUV {
		return Program{}, fmt.Errorf("composing program: unknown texture mode %q", mode)
	}

	data := programData{
		Variations:       len(opts.Palette),
		TextureMode:      mode,
		MaxLights:        opts.MaxLights,
		Octaves:          Octaves,
		FlowWeight1:      flowWeight1,
		FlowWeight2:      flowWeight2,
		FlowPointerPull:  flowPointerPull,
		FlowTimeForward:  flowTimeForward,
		FlowTimeBackward: flowTimeBackward,
		FlowFreq2:        flowFreq2,
		FBMFlowScale:     fbmFlowScale,
		FBMOctaveShift:   fbmOctaveShift,
		VariationFlow:    variationFlow,
		LayerDrift:       layerDrift,
		PatternOffset:    patternOffset,
	}
	data.Base = column(opts.Palette, func(v Variation) float32 { return v.Base })
	data.Weight1 = column(opts.Palette, func(v Variation) float32 { return v.Weight1 })
	data.Weight2 = column(opts.Palette, func(v Variation) float32 { return v.Weight2 })
	data.Scale = column(opts.Palette, func(v Variation) float32 { return v.Scale })
	data.PhaseFreq = column(opts.Palette, func(v Variation) float32 { return v.PhaseFreq })
	data.Imperfection = column(opts.Palette, func(v Variation) float32 { return v.Imperfection })
	data.PhaseCos = column(opts.Palette, func(v Variation) float32 {
		if v.PhaseCos {
			return 1
		}
		return 0
	})

	var sb strings.Builder
	if err := fragmentTemplate.Execute(&sb, data); err != nil {
		return Program{}, fmt.Errorf("composing fragment shader: %w", err)
	}

	return Program{
		Vertex:   vertexSource,
		Fragment: sb.String(),
		Uniforms: programUniforms(opts.MaxLights),
	}, nil
}

func programUniforms(maxLights int) []UniformSpec {
	return []UniformSpec{
		{Name: UniformTime, Kind: UniformFloat, Count: 1},
		{Name: UniformPointer, Kind: UniformVec2, Count: 1},
		{Name: UniformCubeSize, Kind: UniformFloat, Count: 1},
		{Name: UniformTextureScale, Kind: UniformFloat, Count: 1},
		{Name: UniformVariation, Kind: UniformFloat, Count: 1},
		{Name: UniformBaseTint, Kind: UniformFloat, Count: 1},
		{Name: UniformAmbient, Kind: UniformFloat, Count: 1},
		{Name: UniformLightCount, Kind: UniformFloat, Count: 1},
		{Name: UniformLightPos, Kind: UniformVec3, Count: maxLights},
		{Name: UniformLightIntensity, Kind: UniformFloat, Count: maxLights},
		{Name: UniformLightRange, Kind: UniformFloat, Count: 1},
		{Name: UniformLightDecay, Kind: UniformFloat, Count: 1},
	}
}

func column(p []Variation, field func(Variation) float32) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = glslFloat(field(v))
	}
	return strings.Join(parts, ", ")
}

// glslFloat formats a float literal GLSL accepts without an implicit int conversion.
func glslFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
