package raymarch

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	MaxSteps      = 100
	HitEpsilon    = 0.001
	MaxDistance   = 50.0
	NormalEpsilon = 0.0005
)

// Field is a signed distance function.
type Field interface {
	Evaluate(p v3.Vec) float64
}

// Result of tracing one ray.
type Result struct {
	// Distance travelled along the ray.
	Distance float64
	// Position is the last point sampled.
	Position v3.Vec
	// Steps is the number of distance evaluations made.
	Steps int
	// Hit is false only when Distance went past MaxDistance. Running out of
	// steps inside the distance budget counts as a hit.
	Hit bool
}

// March sphere traces from origin along the normalized direction dir.
func March(f Field, origin, dir v3.Vec) Result {
	var r Result

	for r.Steps < MaxSteps {
		r.Position = origin.Add(dir.MulScalar(r.Distance))
		d := f.Evaluate(r.Position)
		r.Steps++

		if d < HitEpsilon {
			break
		}

		r.Distance += d
		if r.Distance > MaxDistance {
			break
		}
	}

	r.Hit = r.Distance <= MaxDistance
	return r
}

// Normal estimates the outward surface normal at p with central differences.
// A flat field has no gradient and gives the zero vector.
func Normal(f Field, p v3.Vec) v3.Vec {
	dx := v3.Vec{X: NormalEpsilon}
	dy := v3.Vec{Y: NormalEpsilon}
	dz := v3.Vec{Z: NormalEpsilon}

	g := v3.Vec{
		X: f.Evaluate(p.Add(dx)) - f.Evaluate(p.Sub(dx)),
		Y: f.Evaluate(p.Add(dy)) - f.Evaluate(p.Sub(dy)),
		Z: f.Evaluate(p.Add(dz)) - f.Evaluate(p.Sub(dz)),
	}
	if g.Length() == 0 {
		return v3.Vec{}
	}
	return g.Normalize()
}
