package programs

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Uniforms holds every uniform any program reads. Fields a program's
// shaders don't declare are skipped when uploading.
type Uniforms struct {
	Time       float32    `uniform:"time"`
	Aspect     mgl32.Vec2 `uniform:"aspect"`
	CamPos     mgl32.Vec3 `uniform:"camPos"`
	CamRot     mgl32.Mat3 `uniform:"camRot"`
	Model      mgl32.Mat4 `uniform:"model"`
	View       mgl32.Mat4 `uniform:"view"`
	Projection mgl32.Mat4 `uniform:"projection"`
	Centre     mgl32.Vec2 `uniform:"centre"`
	Ripple     float32    `uniform:"ripple"`
	MixAmount  float32    `uniform:"mixAmount"`
	Texture0   int32      `uniform:"texture0"`
	Texture1   int32      `uniform:"texture1"`
}

func (u *Uniforms) DefaultValues() {
	*u = Uniforms{
		Aspect:     mgl32.Vec2{1, 1},
		CamPos:     mgl32.Vec3{0, 0, 3},
		CamRot:     mgl32.Ident3(),
		Model:      mgl32.Ident4(),
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Centre:     mgl32.Vec2{0.5, 0.5},
		MixAmount:  0.3,
		Texture0:   0,
		Texture1:   1,
	}
}

// Resize updates everything that depends on the viewport size.
func (u *Uniforms) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	ratio := float32(width) / float32(height)
	u.Aspect = mgl32.Vec2{1, ratio}
	u.Projection = mgl32.Perspective(mgl32.DegToRad(45), ratio, 0.1, 100)
}
