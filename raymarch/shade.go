package raymarch

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	LightDir   = v3.Vec{X: 0.5, Y: 1.0, Z: 0.7}.Normalize()
	Background = mgl32.Vec3{0.2, 0.3, 0.3}
)

// Sampler looks up a colour in a 2D texture.
type Sampler interface {
	Sample(uv mgl32.Vec2) mgl32.Vec3
}

// Diffuse is the lambert term for normal n, never negative.
func Diffuse(n v3.Vec) float64 {
	return math.Max(n.Dot(LightDir), 0)
}

// TriplanarWeights returns the blend weight of the yz, zx and xy
// projections. They always sum to 1; the zero normal weighs them equally.
func TriplanarWeights(n v3.Vec) v3.Vec {
	an := n.Abs()
	sum := an.X + an.Y + an.Z
	if sum == 0 {
		return v3.Vec{X: 1.0 / 3, Y: 1.0 / 3, Z: 1.0 / 3}
	}
	return an.MulScalar(1 / sum)
}

// Triplanar samples tex projected along each axis and blends the three by
// the normal.
func Triplanar(tex Sampler, p, n v3.Vec) mgl32.Vec3 {
	w := TriplanarWeights(n)

	xproj := tex.Sample(mgl32.Vec2{float32(p.Y), float32(p.Z)})
	yproj := tex.Sample(mgl32.Vec2{float32(p.Z), float32(p.X)})
	zproj := tex.Sample(mgl32.Vec2{float32(p.X), float32(p.Y)})

	return xproj.Mul(float32(w.X)).
		Add(yproj.Mul(float32(w.Y))).
		Add(zproj.Mul(float32(w.Z)))
}

// Shade colours a surface point with normal n.
func Shade(tex Sampler, p, n v3.Vec) mgl32.Vec3 {
	return Triplanar(tex, p, n).Mul(float32(Diffuse(n)))
}
