package scene

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownScene = errors.New("scene: unknown builtin scene")

type builtin struct {
	summary string
	build   func() Description
}

const (
	defaultSummary      = "Three ellipsoids over a floor with a mirror wall"
	singleSphereSummary = "One ambient red sphere on black"
	mirrorsSummary      = "A sphere between two facing mirrors"
)

var builtins = map[string]builtin{
	"default":       {defaultSummary, NewDefaultDescription},
	"single-sphere": {singleSphereSummary, NewSingleSphereDescription},
	"mirrors":       {mirrorsSummary, NewMirrorsDescription},
}

// BuiltinNames returns the names of the builtin scenes in sorted order
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuiltinDescription returns the declarative form of a builtin scene
func BuiltinDescription(name string) (Description, error) {
	b, ok := builtins[name]
	if !ok {
		return Description{}, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return b.build(), nil
}

// Builtin builds a builtin scene by name
func Builtin(name string) (*Scene, error) {
	desc, err := BuiltinDescription(name)
	if err != nil {
		return nil, err
	}
	return Build(desc)
}

func phong(r, g, b, ia, id, is, n float64) MaterialRecord {
	return MaterialRecord{R: r, G: g, B: b, IA: ia, ID: id, IS: is, N: n}
}

func mirror(r, g, b, ia, id, is, n, ir float64) MaterialRecord {
	m := phong(r, g, b, ia, id, is, n)
	m.IR = &ir
	return m
}

// NewDefaultDescription is the reference scene: a matte red sphere, a glossy
// blue ellipsoid and a reflective sphere above a grey floor, in front of a
// mirror wall. Sized for a 256x256 frame seen from (0, 0, 700).
func NewDefaultDescription() Description {
	floor := phong(160, 160, 160, 0.1, 0.5, 0.2, 10)
	wall := mirror(200, 200, 220, 0.05, 0.1, 0.3, 50, 0.5)

	return Description{
		Name:        "default",
		Description: defaultSummary,
		Background:  ColorRecord{R: 30, G: 30, B: 60},
		PointLight:  LightRecord{X: 300, Y: 300, Z: 500, II: 1.0},
		Ellipses: []EllipseRecord{
			{X: -60, Y: -30, Z: -50, A: 50, B: 50, C: 50, Material: phong(220, 40, 40, 0.1, 0.6, 0.3, 20)},
			{X: 70, Y: -20, Z: -20, A: 40, B: 60, C: 40, Material: phong(40, 80, 220, 0.1, 0.5, 0.3, 30)},
			{X: 0, Y: 60, Z: -150, A: 40, B: 40, C: 40, Material: phong(230, 230, 230, 0.05, 0.1, 0.3, 80)},
		},
		Triangles: []TriangleRecord{
			// Floor at y=-80, normal +Y
			{X0: -300, Y0: -80, Z0: 200, X1: -300, Y1: -80, Z1: -400, X2: 300, Y2: -80, Z2: 200, Material: floor},
			{X0: 300, Y0: -80, Z0: 200, X1: -300, Y1: -80, Z1: -400, X2: 300, Y2: -80, Z2: -400, Material: floor},
			// Mirror wall at z=-300, normal +Z
			{X0: -250, Y0: -80, Z0: -300, X1: 0, Y1: 250, Z1: -300, X2: 250, Y2: -80, Z2: -300, Material: wall},
		},
	}
}

// NewSingleSphereDescription is a purely ambient red sphere of radius 50 at
// the origin on a black background
func NewSingleSphereDescription() Description {
	return Description{
		Name:        "single-sphere",
		Description: singleSphereSummary,
		Background:  ColorRecord{},
		PointLight:  LightRecord{X: 0, Y: 0, Z: 700, II: 1.0},
		Ellipses: []EllipseRecord{
			{X: 0, Y: 0, Z: 0, A: 50, B: 50, C: 50, Material: phong(255, 0, 0, 1, 0, 0, 1)},
		},
	}
}

// NewMirrorsDescription places a sphere between two parallel mirrors at
// x=±100 facing each other, so rays keep bouncing until the depth budget
// runs out
func NewMirrorsDescription() Description {
	glass := mirror(200, 220, 200, 0.02, 0.05, 0.1, 100, 0.85)

	return Description{
		Name:        "mirrors",
		Description: mirrorsSummary,
		Background:  ColorRecord{R: 10, G: 10, B: 10},
		PointLight:  LightRecord{X: 0, Y: 200, Z: 400, II: 1.0},
		Ellipses: []EllipseRecord{
			{X: 0, Y: 0, Z: -200, A: 40, B: 40, C: 40, Material: phong(230, 120, 30, 0.1, 0.6, 0.3, 20)},
		},
		Triangles: []TriangleRecord{
			// Left mirror, normal +X
			{X0: -100, Y0: -2000, Z0: -2000, X1: -100, Y1: -2000, Z1: 4000, X2: -100, Y2: 4000, Z2: -2000, Material: glass},
			// Right mirror, normal -X
			{X0: 100, Y0: -2000, Z0: -2000, X1: 100, Y1: 4000, Z1: -2000, X2: 100, Y2: -2000, Z2: 4000, Material: glass},
		},
	}
}
