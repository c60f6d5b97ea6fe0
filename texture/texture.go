// Package texture holds RGBA images laid out the way GL expects them and
// samples them on the CPU the way a GL_REPEAT, GL_LINEAR sampler would.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a non-premultiplied RGBA image whose first row is the bottom
// row of the picture, so (0,0) in texture space is the bottom left corner.
type Image struct {
	Width, Height int
	Pix           []uint8
}

func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies img, flipping it vertically.
func FromImage(img image.Image) *Image {
	b := img.Bounds()
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	t := New(b.Dx(), b.Dy())
	rowLen := t.Width * 4
	for y := 0; y < t.Height; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+rowLen]
		dst := (t.Height - 1 - y) * rowLen
		copy(t.Pix[dst:dst+rowLen], src)
	}

	return t
}

func Decode(r io.Reader) (*Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding texture: %w", err)
	}

	return FromImage(img), nil
}

func Load(path string) (*Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	t, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return t, nil
}

// Checker is a procedural stand in for when no texture file is available.
func Checker(size, cells int, a, b color.NRGBA) *Image {
	t := New(size, size)
	cell := size / cells
	if cell == 0 {
		cell = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			t.Set(x, y, c)
		}
	}
	return t
}

// Set writes the texel at x,y counted from the bottom left.
func (t *Image) Set(x, y int, c color.NRGBA) {
	i := (y*t.Width + x) * 4
	t.Pix[i+0] = c.R
	t.Pix[i+1] = c.G
	t.Pix[i+2] = c.B
	t.Pix[i+3] = c.A
}

// Texel returns the colour at x,y, wrapping coordinates outside the image.
func (t *Image) Texel(x, y int) mgl32.Vec3 {
	x = wrap(x, t.Width)
	y = wrap(y, t.Height)
	i := (y*t.Width + x) * 4
	return mgl32.Vec3{
		float32(t.Pix[i+0]) / 255,
		float32(t.Pix[i+1]) / 255,
		float32(t.Pix[i+2]) / 255,
	}
}

// Sample bilinearly filters the texture at uv, repeating outside [0,1).
func (t *Image) Sample(uv mgl32.Vec2) mgl32.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return mgl32.Vec3{}
	}

	x := uv[0]*float32(t.Width) - 0.5
	y := uv[1]*float32(t.Height) - 0.5
	x0, y0 := math32.Floor(x), math32.Floor(y)
	fx, fy := x-x0, y-y0
	ix, iy := int(x0), int(y0)

	bottom := lerp(t.Texel(ix, iy), t.Texel(ix+1, iy), fx)
	top := lerp(t.Texel(ix, iy+1), t.Texel(ix+1, iy+1), fx)
	return lerp(bottom, top, fy)
}

// HasAlpha reports whether any texel is not fully opaque.
func (t *Image) HasAlpha() bool {
	for i := 3; i < len(t.Pix); i += 4 {
		if t.Pix[i] != 0xff {
			return true
		}
	}
	return false
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func lerp(a, b mgl32.Vec3, f float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}
