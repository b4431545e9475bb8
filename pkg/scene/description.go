package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Description is the declarative form of a scene as it appears in scene
// files
type Description struct {
	Name        string           `json:"name,omitempty"`
	Description string           `json:"description,omitempty"`
	Background  ColorRecord      `json:"bgcolor"`
	PointLight  LightRecord      `json:"pointlight"`
	Ellipses    []EllipseRecord  `json:"ellipses"`
	Triangles   []TriangleRecord `json:"triangles"`
}

// ColorRecord is an RGB triple in [0, 255]
type ColorRecord struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// LightRecord is a point light position and intensity
type LightRecord struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Z  float64 `json:"z"`
	II float64 `json:"ii"`
}

// MaterialRecord holds the color and Phong coefficients. IR is optional;
// when absent the reflectivity is derived from ia, id and is.
type MaterialRecord struct {
	R  float64  `json:"r"`
	G  float64  `json:"g"`
	B  float64  `json:"b"`
	IA float64  `json:"ia"`
	ID float64  `json:"id"`
	IS float64  `json:"is"`
	N  float64  `json:"n"`
	IR *float64 `json:"ir,omitempty"`
}

// EllipseRecord is an axis-aligned ellipsoid center and radii
type EllipseRecord struct {
	X        float64        `json:"x"`
	Y        float64        `json:"y"`
	Z        float64        `json:"z"`
	A        float64        `json:"a"`
	B        float64        `json:"b"`
	C        float64        `json:"c"`
	Material MaterialRecord `json:"material"`
}

// TriangleRecord holds three vertices in clockwise order as seen from the
// visible side
type TriangleRecord struct {
	X0       float64        `json:"x0"`
	Y0       float64        `json:"y0"`
	Z0       float64        `json:"z0"`
	X1       float64        `json:"x1"`
	Y1       float64        `json:"y1"`
	Z1       float64        `json:"z1"`
	X2       float64        `json:"x2"`
	Y2       float64        `json:"y2"`
	Z2       float64        `json:"z2"`
	Material MaterialRecord `json:"material"`
}

func (m MaterialRecord) toMaterial() material.Material {
	color := core.NewColor(m.R, m.G, m.B)
	if m.IR != nil {
		return material.NewReflective(color, m.IA, m.ID, m.IS, m.N, *m.IR)
	}
	return material.NewPhong(color, m.IA, m.ID, m.IS, m.N)
}

// Build validates the description and constructs the scene. Ellipsoids
// come first in scan order, followed by triangles.
func Build(desc Description) (*Scene, error) {
	shapes := make([]geometry.Shape, 0, len(desc.Ellipses)+len(desc.Triangles))

	for i, e := range desc.Ellipses {
		ellipsoid, err := geometry.NewEllipsoid(
			core.NewVec3(e.X, e.Y, e.Z),
			core.NewVec3(e.A, e.B, e.C),
			e.Material.toMaterial(),
		)
		if err != nil {
			return nil, fmt.Errorf("ellipses[%d]: %w", i, err)
		}
		shapes = append(shapes, ellipsoid)
	}

	for i, tr := range desc.Triangles {
		triangle, err := geometry.NewTriangle(
			core.NewVec3(tr.X0, tr.Y0, tr.Z0),
			core.NewVec3(tr.X1, tr.Y1, tr.Z1),
			core.NewVec3(tr.X2, tr.Y2, tr.Z2),
			tr.Material.toMaterial(),
		)
		if err != nil {
			return nil, fmt.Errorf("triangles[%d]: %w", i, err)
		}
		shapes = append(shapes, triangle)
	}

	bg := desc.Background
	pl := desc.PointLight
	s, err := NewScene(
		core.NewColor(bg.R, bg.G, bg.B),
		lights.NewPointLight(core.NewVec3(pl.X, pl.Y, pl.Z), pl.II),
		shapes...,
	)
	if err != nil {
		return nil, fmt.Errorf("pointlight/bgcolor: %w", err)
	}
	return s, nil
}

// Decode reads a JSON scene description. Unknown fields are rejected so
// that typos in scene files surface as errors.
func Decode(r io.Reader) (Description, error) {
	var desc Description
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("failed to decode scene description: %w", err)
	}
	return desc, nil
}

// Encode writes desc as indented JSON
func Encode(w io.Writer, desc Description) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(desc)
}

// ReadDescription loads a scene description from a JSON file
func ReadDescription(filename string) (Description, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Description{}, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := Decode(file)
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// LoadFile reads and builds a scene from a JSON file
func LoadFile(filename string) (*Scene, error) {
	desc, err := ReadDescription(filename)
	if err != nil {
		return nil, err
	}

	s, err := Build(desc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}
