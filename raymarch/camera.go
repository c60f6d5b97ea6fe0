package raymarch

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera looks down its local -z axis.
type Camera struct {
	Position mgl64.Vec3
	Rotation mgl64.Mat3
}

func DefaultCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 3},
		Rotation: mgl64.Ident3(),
	}
}

// Orbit is a camera distance away from the origin looking at it, turned
// yaw radians about y and then pitch radians about x.
func Orbit(yaw, pitch, distance float64) Camera {
	rot := mgl64.Rotate3DY(yaw).Mul3(mgl64.Rotate3DX(pitch))
	return Camera{
		Position: rot.Mul3x1(mgl64.Vec3{0, 0, distance}),
		Rotation: rot,
	}
}

// OrbitAngles finds the orbit that puts the camera at pos.
func OrbitAngles(pos mgl64.Vec3) (yaw, pitch, distance float64) {
	distance = pos.Len()
	if distance == 0 {
		return 0, 0, 0
	}
	return math.Atan2(pos[0], pos[2]), -math.Asin(pos[1] / distance), distance
}

// Origin is where every ray starts.
func (c Camera) Origin() v3.Vec {
	return toV3(c.Position)
}

// Ray returns the normalized direction through screen coordinate uv, where
// y spans [-1,1] and x is scaled by the aspect ratio.
func (c Camera) Ray(uv mgl64.Vec2) v3.Vec {
	return toV3(c.Rotation.Mul3x1(mgl64.Vec3{uv[0], uv[1], -1})).Normalize()
}

func toV3(v mgl64.Vec3) v3.Vec {
	return v3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// Frame is everything needed to colour the pixels of one frame.
type Frame struct {
	Camera  Camera
	Scene   *Scene
	Texture Sampler
}

// NewFrame sets up a frame at the given animation time.
func NewFrame(camera Camera, time float64, tex Sampler) (*Frame, error) {
	scene, err := SceneAt(time)
	if err != nil {
		return nil, fmt.Errorf("building scene at %v: %w", time, err)
	}

	return &Frame{
		Camera:  camera,
		Scene:   scene,
		Texture: tex,
	}, nil
}

// Pixel colours the screen coordinate uv.
func (f *Frame) Pixel(uv mgl64.Vec2) mgl32.Vec3 {
	r := March(f.Scene, f.Camera.Origin(), f.Camera.Ray(uv))
	if !r.Hit {
		return Background
	}

	n := Normal(f.Scene, r.Position)
	return Shade(f.Texture, r.Position, n)
}
