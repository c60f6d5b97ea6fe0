package programs

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var cubePositions = []mgl32.Vec3{
	{-0.2, 0, 0},
	{0.8, 0, 0},
}

func init() {
	register(Program{
		Name:         "cubes",
		Title:        "Raymarching merging cubes",
		VertexName:   "cubes.vert",
		FragmentName: "cubes.frag",
		Textures:     2,
		DepthTest:    true,
		Mesh: Mesh{
			Vertices:   cubeVertices,
			Attributes: []Attribute{{Location: 0, Size: 3}, {Location: 1, Size: 2}},
		},
		Animate: animateCubes,
	})
}

func animateCubes(clock Clock, state *State) {
	state.Uniforms.View = mgl32.LookAtV(
		mgl32.Vec3{0, 0, 3},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)

	tilt := mgl32.HomogRotate3DX(mgl32.DegToRad(-55))
	sway := float32(math.Sin(clock.Seconds))

	state.Models = make([]mgl32.Mat4, len(cubePositions))
	for i, pos := range cubePositions {
		pos[0] += sway * float32(i-1) * 0.6
		state.Models[i] = tilt.Mul4(mgl32.Translate3D(pos[0], pos[1], pos[2]))
	}
}

var cubeVertices = []float32{
	// position       texture coord
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,

	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,

	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,

	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,

	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,

	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}
