package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jmkw/go-scene-raytracer/pkg/core"
	"github.com/jmkw/go-scene-raytracer/pkg/geometry"
	"github.com/jmkw/go-scene-raytracer/pkg/loaders"
	"github.com/jmkw/go-scene-raytracer/pkg/texture"
)

// Texture scale defaults differ per primitive kind: planes tile much
// denser than spheres and cylinders.
const (
	defaultPlaneScale   = 0.15
	defaultTextureScale = 1.0
)

type fileVec = []float64

type cameraBlock struct {
	Position fileVec `toml:"position"`
	Target   fileVec `toml:"target"`
	Roll     float64 `toml:"roll"`
}

type lightBlock struct {
	Position fileVec `toml:"position"`
}

type planeBlock struct {
	Center  fileVec  `toml:"center"`
	Normal  fileVec  `toml:"normal"`
	Texture string   `toml:"texture"`
	Color   fileVec  `toml:"color"`
	Scale   *float64 `toml:"scale"`
	Reflect float64  `toml:"reflect"`
}

type sphereBlock struct {
	Center  fileVec  `toml:"center"`
	Axis    fileVec  `toml:"axis"`
	Radius  *float64 `toml:"radius"`
	Texture string   `toml:"texture"`
	Color   fileVec  `toml:"color"`
	Reflect float64  `toml:"reflect"`
}

type cylinderBlock struct {
	Center    fileVec  `toml:"center"`
	Direction fileVec  `toml:"direction"`
	Radius    *float64 `toml:"radius"`
	Span      *float64 `toml:"span"`
	Texture   string   `toml:"texture"`
	Color     fileVec  `toml:"color"`
	Reflect   float64  `toml:"reflect"`
}

type triangleBlock struct {
	A       fileVec `toml:"A"`
	B       fileVec `toml:"B"`
	C       fileVec `toml:"C"`
	Color   fileVec `toml:"color"`
	Reflect float64 `toml:"reflect"`
}

type cubeBlock struct {
	Center    fileVec  `toml:"center"`
	Direction fileVec  `toml:"direction"`
	Scale     *float64 `toml:"scale"`
	AngleX    float64  `toml:"angle_x"`
	AngleY    float64  `toml:"angle_y"`
	AngleZ    float64  `toml:"angle_z"`
	Color     fileVec  `toml:"color"`
	Reflect   float64  `toml:"reflect"`
}

type moleculeBlock struct {
	Mol2File    string   `toml:"mol2file"`
	Center      fileVec  `toml:"center"`
	Scale       *float64 `toml:"scale"`
	AtomScale   *float64 `toml:"atom_scale"`
	BondScale   *float64 `toml:"bond_scale"`
	AngleX      float64  `toml:"angle_x"`
	AngleY      float64  `toml:"angle_y"`
	AngleZ      float64  `toml:"angle_z"`
	AtomColor   fileVec  `toml:"atom_color"`
	AtomReflect float64  `toml:"atom_reflect"`
	BondColor   fileVec  `toml:"bond_color"`
	BondReflect float64  `toml:"bond_reflect"`
}

type meshBlock struct {
	File    string   `toml:"file"`
	Center  fileVec  `toml:"center"`
	Scale   *float64 `toml:"scale"`
	AngleX  float64  `toml:"angle_x"`
	AngleY  float64  `toml:"angle_y"`
	AngleZ  float64  `toml:"angle_z"`
	Color   fileVec  `toml:"color"`
	Reflect float64  `toml:"reflect"`
}

type sceneFile struct {
	Camera    *cameraBlock    `toml:"camera"`
	Light     *lightBlock     `toml:"light"`
	Planes    []planeBlock    `toml:"plane"`
	Spheres   []sphereBlock   `toml:"sphere"`
	Cylinders []cylinderBlock `toml:"cylinder"`
	Triangles []triangleBlock `toml:"triangle"`
	Cubes     []cubeBlock     `toml:"cube"`
	Molecules []moleculeBlock `toml:"molecule"`
	Meshes    []meshBlock     `toml:"mesh"`
}

// Load reads a declarative scene file and builds the world model. Actors
// are inserted per kind in file order, kinds in the fixed order planes,
// spheres, cylinders, triangles, cubes, molecules, meshes; that insertion
// order is part of the scene contract.
func Load(path string) (*World, error) {
	var file sceneFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}

	world := &World{Textures: texture.NewStore()}

	if err := loadCamera(&world.Camera, file.Camera); err != nil {
		return nil, err
	}
	if err := loadLight(&world.Light, file.Light); err != nil {
		return nil, err
	}

	loader := actorLoader{world: world}
	for n := range file.Planes {
		loader.plane(n, &file.Planes[n])
	}
	for n := range file.Spheres {
		loader.sphere(n, &file.Spheres[n])
	}
	for n := range file.Cylinders {
		loader.cylinder(n, &file.Cylinders[n])
	}
	for n := range file.Triangles {
		loader.triangle(n, &file.Triangles[n])
	}
	for n := range file.Cubes {
		loader.cube(n, &file.Cubes[n])
	}
	for n := range file.Molecules {
		loader.molecule(n, &file.Molecules[n])
	}
	for n := range file.Meshes {
		loader.mesh(n, &file.Meshes[n])
	}
	if loader.err != nil {
		return nil, loader.err
	}

	if len(world.Actors) == 0 {
		return nil, fmt.Errorf("scene %s has no actors", path)
	}
	return world, nil
}

func loadCamera(camera *Camera, block *cameraBlock) error {
	if block == nil {
		return fmt.Errorf("scene has no camera")
	}
	eye, err := parseVec(block.Position, "camera position")
	if err != nil {
		return err
	}
	target, err := parseVec(block.Target, "camera target")
	if err != nil {
		return err
	}
	if target.Subtract(eye).Length() < core.Epsilon {
		return fmt.Errorf("camera target coincides with its position")
	}
	*camera = Camera{Eye: eye, Target: target, Roll: degToRad(block.Roll)}
	return nil
}

func loadLight(light *Light, block *lightBlock) error {
	if block == nil {
		return fmt.Errorf("scene has no light")
	}
	position, err := parseVec(block.Position, "light position")
	if err != nil {
		return err
	}
	*light = Light{Position: position}
	return nil
}

// actorLoader accumulates actors and stops at the first error.
type actorLoader struct {
	world *World
	err   error
}

func (l *actorLoader) plane(n int, block *planeBlock) {
	if l.err != nil {
		return
	}
	center, err := parseVec(block.Center, fmt.Sprintf("plane %d center", n))
	if err != nil {
		l.fail(err)
		return
	}
	normal, err := parseNonZeroVec(block.Normal, fmt.Sprintf("plane %d normal", n))
	if err != nil {
		l.fail(err)
		return
	}
	pigment, err := l.pigment(block.Texture, block.Color, block.Reflect,
		orDefault(block.Scale, defaultPlaneScale), fmt.Sprintf("plane %d", n))
	if err != nil {
		l.fail(err)
		return
	}
	l.world.Actors = append(l.world.Actors, geometry.NewPlane(center, normal, pigment))
}

func (l *actorLoader) sphere(n int, block *sphereBlock) {
	if l.err != nil {
		return
	}
	center, err := parseVec(block.Center, fmt.Sprintf("sphere %d center", n))
	if err != nil {
		l.fail(err)
		return
	}
	axis := core.NewVec3(0, 0, 1)
	if block.Axis != nil {
		axis, err = parseNonZeroVec(block.Axis, fmt.Sprintf("sphere %d axis", n))
		if err != nil {
			l.fail(err)
			return
		}
	}
	radius, err := positive(orDefault(block.Radius, 1), fmt.Sprintf("sphere %d radius", n))
	if err != nil {
		l.fail(err)
		return
	}
	pigment, err := l.pigment(block.Texture, block.Color, block.Reflect,
		defaultTextureScale, fmt.Sprintf("sphere %d", n))
	if err != nil {
		l.fail(err)
		return
	}
	l.world.Actors = append(l.world.Actors, geometry.NewSphere(center, axis, radius, pigment))
}

func (l *actorLoader) cylinder(n int, block *cylinderBlock) {
	if l.err != nil {
		return
	}
	center, err := parseVec(block.Center, fmt.Sprintf("cylinder %d center", n))
	if err != nil {
		l.fail(err)
		return
	}
	direction, err := parseNonZeroVec(block.Direction, fmt.Sprintf("cylinder %d direction", n))
	if err != nil {
		l.fail(err)
		return
	}
	radius, err := positive(orDefault(block.Radius, 1), fmt.Sprintf("cylinder %d radius", n))
	if err != nil {
		l.fail(err)
		return
	}
	pigment, err := l.pigment(block.Texture, block.Color, block.Reflect,
		defaultTextureScale, fmt.Sprintf("cylinder %d", n))
	if err != nil {
		l.fail(err)
		return
	}
	l.world.Actors = append(l.world.Actors, geometry.NewCylinder(
		center, direction, radius, orDefault(block.Span, -1), pigment))
}

func (l *actorLoader) triangle(n int, block *triangleBlock) {
	if l.err != nil {
		return
	}
	what := fmt.Sprintf("triangle %d", n)
	a, errA := parseVec(block.A, what+" vertex A")
	b, errB := parseVec(block.B, what+" vertex B")
	c, errC := parseVec(block.C, what+" vertex C")
	for _, err := range []error{errA, errB, errC} {
		if err != nil {
			l.fail(err)
			return
		}
	}
	if b.Subtract(a).Cross(c.Subtract(a)).Length() < core.Epsilon {
		l.fail(fmt.Errorf("%s has zero area", what))
		return
	}
	pigment, err := flatPigment(block.Color, block.Reflect, what)
	if err != nil {
		l.fail(err)
		return
	}
	l.world.Actors = append(l.world.Actors, geometry.NewTriangle(a, b, c, pigment))
}

func (l *actorLoader) cube(n int, block *cubeBlock) {
	if l.err != nil {
		return
	}
	what := fmt.Sprintf("cube %d", n)
	center, err := parseVec(block.Center, what+" center")
	if err != nil {
		l.fail(err)
		return
	}
	direction, err := parseNonZeroVec(block.Direction, what+" direction")
	if err != nil {
		l.fail(err)
		return
	}
	edge, err := positive(orDefault(block.Scale, 1), what+" scale")
	if err != nil {
		l.fail(err)
		return
	}
	pigment, err := flatPigment(block.Color, block.Reflect, what)
	if err != nil {
		l.fail(err)
		return
	}
	l.world.Actors = append(l.world.Actors, geometry.BuildCube(geometry.Orientation{
		Center: center,
		AngleX: degToRad(block.AngleX),
		AngleY: degToRad(block.AngleY),
		AngleZ: degToRad(block.AngleZ),
	}, direction, edge, pigment)...)
}

func (l *actorLoader) molecule(n int, block *moleculeBlock) {
	if l.err != nil {
		return
	}
	what := fmt.Sprintf("molecule %d", n)
	if block.Mol2File == "" {
		l.fail(fmt.Errorf("%s has no mol2file", what))
		return
	}
	center, err := parseVec(block.Center, what+" center")
	if err != nil {
		l.fail(err)
		return
	}
	atomPigment, err := flatPigment(block.AtomColor, block.AtomReflect, what+" atom_color")
	if err != nil {
		l.fail(err)
		return
	}
	bondPigment, err := flatPigment(block.BondColor, block.BondReflect, what+" bond_color")
	if err != nil {
		l.fail(err)
		return
	}
	mol, err := loaders.LoadMol2(block.Mol2File)
	if err != nil {
		l.fail(fmt.Errorf("%s: %w", what, err))
		return
	}
	l.world.Actors = append(l.world.Actors, geometry.BuildMolecule(mol, geometry.MoleculeConfig{
		Orientation: geometry.Orientation{
			Center: center,
			AngleX: degToRad(block.AngleX),
			AngleY: degToRad(block.AngleY),
			AngleZ: degToRad(block.AngleZ),
		},
		Scale:       orDefault(block.Scale, 1),
		AtomScale:   orDefault(block.AtomScale, 1),
		BondScale:   orDefault(block.BondScale, 0.5),
		AtomPigment: atomPigment,
		BondPigment: bondPigment,
	})...)
}

func (l *actorLoader) mesh(n int, block *meshBlock) {
	if l.err != nil {
		return
	}
	what := fmt.Sprintf("mesh %d", n)
	if block.File == "" {
		l.fail(fmt.Errorf("%s has no file", what))
		return
	}
	center, err := parseVec(block.Center, what+" center")
	if err != nil {
		l.fail(err)
		return
	}
	pigment, err := flatPigment(block.Color, block.Reflect, what)
	if err != nil {
		l.fail(err)
		return
	}

	var data *loaders.MeshData
	switch strings.ToLower(filepath.Ext(block.File)) {
	case ".ply":
		data, err = loaders.LoadPLY(block.File)
	case ".glb", ".gltf":
		data, err = loaders.LoadGLTF(block.File)
	default:
		err = fmt.Errorf("unsupported mesh format %q", filepath.Ext(block.File))
	}
	if err != nil {
		l.fail(fmt.Errorf("%s: %w", what, err))
		return
	}

	l.world.Actors = append(l.world.Actors, geometry.BuildMesh(data, geometry.MeshConfig{
		Orientation: geometry.Orientation{
			Center: center,
			AngleX: degToRad(block.AngleX),
			AngleY: degToRad(block.AngleY),
			AngleZ: degToRad(block.AngleZ),
		},
		Scale:   orDefault(block.Scale, 1),
		Pigment: pigment,
	})...)
}

func (l *actorLoader) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// pigment builds the surface for kinds that accept either a texture file or
// a flat color. Exactly one of the two must be present.
func (l *actorLoader) pigment(file string, color fileVec, reflect, scale float64, what string) (texture.Pigment, error) {
	if file != "" && color != nil {
		return nil, fmt.Errorf("%s has both texture and color", what)
	}
	if err := checkReflect(reflect, what); err != nil {
		return nil, err
	}

	if file != "" {
		img, err := l.world.Textures.Load(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		return &texture.Mapped{Image: img, Reflect: reflect, Scale: scale}, nil
	}
	return flatPigment(color, reflect, what)
}

func flatPigment(color fileVec, reflect float64, what string) (texture.Pigment, error) {
	if color == nil {
		return nil, fmt.Errorf("%s has no color", what)
	}
	c, err := parseVec(color, what+" color")
	if err != nil {
		return nil, err
	}
	if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
		return nil, fmt.Errorf("%s color components must be in [0, 1]", what)
	}
	if err := checkReflect(reflect, what); err != nil {
		return nil, err
	}
	return &texture.Flat{Color: c, Reflect: reflect}, nil
}

func checkReflect(reflect float64, what string) error {
	if reflect < 0 || reflect > 1 {
		return fmt.Errorf("%s reflect must be in [0, 1]", what)
	}
	return nil
}

func parseVec(v fileVec, what string) (core.Vec3, error) {
	if v == nil {
		return core.Vec3{}, fmt.Errorf("%s is missing", what)
	}
	if len(v) != 3 {
		return core.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", what, len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func parseNonZeroVec(v fileVec, what string) (core.Vec3, error) {
	vec, err := parseVec(v, what)
	if err != nil {
		return core.Vec3{}, err
	}
	if vec.Length() < core.Epsilon {
		return core.Vec3{}, fmt.Errorf("%s must be non-zero", what)
	}
	return vec, nil
}

func positive(v float64, what string) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive", what)
	}
	return v, nil
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
