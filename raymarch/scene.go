// Package raymarch renders the merging cubes scene by sphere tracing a
// signed distance field.
//
// Everything in this package is a pure function of its arguments, so a frame
// can be evaluated one pixel at a time in any order or in parallel.
package raymarch

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const (
	// MergeDistance is how far each cube sits from the origin when the
	// animation is fully apart.
	MergeDistance = 1.5

	// PreMerge is subtracted from each box distance so blending starts
	// before the solid boundaries touch.
	PreMerge = 1.2

	// Smoothing is the radius of the smooth union.
	Smoothing = 0.2
)

// HalfExtent of both cubes.
var HalfExtent = v3.Vec{X: 0.5, Y: 0.5, Z: 0.5}

// Scene is the smooth union of two enlarged boxes.
type Scene struct {
	Left, Right v3.Vec

	left, right sdf.SDF3
	union       sdf.SDF3
}

var _ sdf.SDF3 = (*Scene)(nil)

// NewScene places one cube at each of the given centers.
func NewScene(left, right v3.Vec) (*Scene, error) {
	l, err := enlargedBox(left)
	if err != nil {
		return nil, err
	}

	r, err := enlargedBox(right)
	if err != nil {
		return nil, err
	}

	union := sdf.Union3D(l, r)
	union.(*sdf.UnionSDF3).SetMin(sdf.PolyMin(Smoothing))

	return &Scene{
		Left:  left,
		Right: right,
		left:  l,
		right: r,
		union: union,
	}, nil
}

// SceneAt builds the scene for the given animation time.
func SceneAt(time float64) (*Scene, error) {
	left, right := Centers(time)
	return NewScene(left, right)
}

// Centers returns the cube centers at the given time. They are always
// symmetric about the origin on the x axis and coincide when sin(time) is 1.
func Centers(time float64) (left, right v3.Vec) {
	offset := Offset(time)
	return v3.Vec{X: -offset}, v3.Vec{X: offset}
}

// Offset is the distance of each cube from the origin at the given time.
func Offset(time float64) float64 {
	t := math.Sin(time)*0.5 + 0.5
	return MergeDistance * (1 - t)
}

func enlargedBox(center v3.Vec) (sdf.SDF3, error) {
	box, err := sdf.Box3D(HalfExtent.MulScalar(2), 0)
	if err != nil {
		return nil, fmt.Errorf("sdf.Box3D: %w", err)
	}

	box = sdf.Transform3D(box, sdf.Translate3d(center))
	return sdf.Offset3D(box, PreMerge), nil
}

// Evaluate returns the signed distance from p to the scene surface.
func (s *Scene) Evaluate(p v3.Vec) float64 {
	return s.union.Evaluate(p)
}

// Parts returns the distances to each enlarged box before they are blended.
func (s *Scene) Parts(p v3.Vec) (left, right float64) {
	return s.left.Evaluate(p), s.right.Evaluate(p)
}

func (s *Scene) BoundingBox() sdf.Box3 {
	return s.union.BoundingBox()
}

// SmoothUnion blends two distances with the polynomial smooth minimum of
// radius k.
func SmoothUnion(d1, d2, k float64) float64 {
	h := math.Max(0, math.Min(1, 0.5+0.5*(d2-d1)/k))
	return d2*(1-h) + d1*h - k*h*(1-h)
}
