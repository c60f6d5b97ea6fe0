package programs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/raymarch"
)

func init() {
	register(Program{
		Name:         "raymarch-cubes",
		Title:        "Smooth Merge Cubes",
		VertexName:   "quad.vert",
		FragmentName: "raymarch.frag",
		Textures:     1,
		Mesh:         Quad,
		Animate:      animateTime,
		Prepare:      prepareRaymarch,
	})
}

// Camera converts the camera uniforms.
func (u *Uniforms) Camera() raymarch.Camera {
	return raymarch.Camera{
		Position: mgl64.Vec3{float64(u.CamPos[0]), float64(u.CamPos[1]), float64(u.CamPos[2])},
		Rotation: mat3To64(u.CamRot),
	}
}

// SetCamera is the inverse of Camera.
func (u *Uniforms) SetCamera(c raymarch.Camera) {
	u.CamPos = mgl32.Vec3{float32(c.Position[0]), float32(c.Position[1]), float32(c.Position[2])}
	for i, v := range c.Rotation {
		u.CamRot[i] = float32(v)
	}
}

func mat3To64(m mgl32.Mat3) mgl64.Mat3 {
	var out mgl64.Mat3
	for i, v := range m {
		out[i] = float64(v)
	}
	return out
}

func prepareRaymarch(frame Frame) (PixelFunc, error) {
	f, err := raymarch.NewFrame(frame.Uniforms.Camera(), float64(frame.Uniforms.Time), frame.Texture(0))
	if err != nil {
		return nil, err
	}

	return func(_ Frame, pos mgl32.Vec2) mgl32.Vec3 {
		return f.Pixel(mgl64.Vec2{float64(pos[0]), float64(pos[1])})
	}, nil
}
