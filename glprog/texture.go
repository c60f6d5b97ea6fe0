package glprog

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/gldemos/texture"
)

type Texture struct {
	ID uint32
}

// textureFormat picks RGB for opaque images.
func textureFormat(img *texture.Image) (internal int32, format uint32, pix []uint8) {
	if img.HasAlpha() {
		return gl.RGBA, gl.RGBA, img.Pix
	}

	rgb := make([]uint8, 0, img.Width*img.Height*3)
	for i := 0; i+3 < len(img.Pix); i += 4 {
		rgb = append(rgb, img.Pix[i], img.Pix[i+1], img.Pix[i+2])
	}
	return gl.RGB, gl.RGB, rgb
}

// UploadTexture creates a mipmapped texture that repeats and filters
// linearly.
func UploadTexture(img *texture.Image) *Texture {
	t := &Texture{}
	gl.GenTextures(1, &t.ID)
	gl.BindTexture(gl.TEXTURE_2D, t.ID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	internal, format, pix := textureFormat(img)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, internal,
		int32(img.Width), int32(img.Height), 0,
		format, gl.UNSIGNED_BYTE, gl.Ptr(pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)

	return t
}

// Bind binds the texture to texture unit i.
func (t *Texture) Bind(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, t.ID)
}

func (t *Texture) Delete() {
	gl.DeleteTextures(1, &t.ID)
}
