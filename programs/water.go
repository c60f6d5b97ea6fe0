package programs

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	rippleFrames    = 60
	rippleMaxRadius = 0.25
	rippleSeed      = 0x5eed
)

func init() {
	register(Program{
		Name:         "water-ripple",
		Title:        "Water Ripple",
		VertexName:   "water.vert",
		FragmentName: "water.frag",
		Textures:     1,
		Mesh: Mesh{
			Vertices: []float32{
				// position     texture coord
				1.0, 1.0, 0.0, 1.0, 1.0,
				1.0, -1.0, 0.0, 1.0, 0.0,
				-1.0, -1.0, 0.0, 0.0, 0.0,
				-1.0, 1.0, 0.0, 0.0, 1.0,
			},
			Indices: []uint32{
				0, 1, 2,
				3, 0, 2,
			},
			Attributes: []Attribute{{Location: 0, Size: 3}, {Location: 1, Size: 2}},
		},
		Animate: animateRipple,
		Prepare: func(frame Frame) (PixelFunc, error) {
			return ripplePixel, nil
		},
	})
}

// RippleCentre is where the ripple in the given cycle starts. Each cycle
// gets its own centre in [0.2,0.7) on both axes.
func RippleCentre(cycle int) mgl32.Vec2 {
	r := rand.New(rand.NewPCG(uint64(cycle), rippleSeed))
	return mgl32.Vec2{
		0.2 + r.Float32()*0.5,
		0.2 + r.Float32()*0.5,
	}
}

func animateRipple(clock Clock, state *State) {
	state.Uniforms.Ripple = float32(clock.Frame%rippleFrames) / rippleFrames
	state.Uniforms.Centre = RippleCentre(clock.Frame / rippleFrames)
}

func smoothstep(edge0, edge1, x float32) float32 {
	t := math32.Max(0, math32.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}

// RippleOffset is how far the texture lookup is pushed at dir from the
// centre, t of the way through the animation.
func RippleOffset(t float32, dir, aspect mgl32.Vec2) float32 {
	scaled := mgl32.Vec2{dir[0] / aspect[0], dir[1] / aspect[1]}
	d := scaled.Len() - t*rippleMaxRadius
	d *= 1 - smoothstep(0, 0.05, math32.Abs(d))
	d *= smoothstep(0, 0.05, t)
	d *= 1 - smoothstep(0.5, 1, t)
	return d
}

func ripplePixel(frame Frame, pos mgl32.Vec2) mgl32.Vec3 {
	u := frame.Uniforms
	uv := mgl32.Vec2{
		(pos[0]/u.Aspect[1] + 1) / 2,
		(pos[1] + 1) / 2,
	}

	dir := uv.Sub(u.Centre)
	d := RippleOffset(u.Ripple, dir, u.Aspect)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}

	shadow := d * 6
	c := frame.Texture(0).Sample(uv.Add(dir.Mul(d)))
	return c.Add(mgl32.Vec3{shadow, shadow, shadow})
}
