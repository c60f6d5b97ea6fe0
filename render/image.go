// Package render turns programs with a CPU implementation into images.
package render

import (
	"context"
	"image"
	"image/color"
	"log"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldemos/programs"
)

// ChunkSize is the number of columns each goroutine renders.
const ChunkSize = 50

func WrapWithProgress(img *image.Image) func() float64 {
	p := &ProgressImage{
		Image: *img,
	}

	*img = p
	return p.Progress
}

type ProgressImage struct {
	image.Image
	count atomic.Int64
}

func (i *ProgressImage) At(x, y int) color.Color {
	i.count.Add(1)
	return i.Image.At(x, y)
}

func (i *ProgressImage) Progress() float64 {
	end := i.Bounds().Dx() * i.Bounds().Dy()
	if end == 0 {
		return 1
	}
	return float64(i.count.Load()) / float64(end)
}

func (i *ProgressImage) Opaque() bool {
	return true
}

// StopOnDone stops asking img for pixels once ctx is done. The rest of the
// image reads as black, for encoders that cannot be interrupted.
func StopOnDone(ctx context.Context, img image.Image) image.Image {
	return &stoppableImage{Image: img, ctx: ctx}
}

type stoppableImage struct {
	image.Image
	ctx context.Context
}

func (i *stoppableImage) At(x, y int) color.Color {
	if i.ctx.Err() != nil {
		return color.NRGBA{A: 255}
	}
	return i.Image.At(x, y)
}

func (i *stoppableImage) Opaque() bool {
	return true
}

// AntiAlias9x samples 9 posititions for each sampled position,
// returning the average colour.
//
// antialias is the number of pixels apart the sampled locations are.
func AntiAlias9x(img programs.Image, antialias float32) programs.Image {
	if antialias == 0 {
		log.Println("image uselessly antialiased with distance of 0")
	}

	return &antialias9xImage{
		Image:  img,
		offset: antialias / scaleFactor(img),
	}
}

type antialias9xImage struct {
	programs.Image
	offset float32
}

func (i *antialias9xImage) GetPixel(pos mgl32.Vec2) mgl32.Vec3 {
	avg := mgl32.Vec3{}
	for _, dx := range []float32{-i.offset, 0, i.offset} {
		for _, dy := range []float32{-i.offset, 0, i.offset} {
			avg = avg.Add(i.Image.GetPixel(mgl32.Vec2{pos[0] + dx, pos[1] + dy}))
		}
	}
	return avg.Mul(1 / float32(9))
}

func BufferImage(img image.Image) *BufferedImage {
	return &BufferedImage{
		Image:  img,
		height: img.Bounds().Dy(),
	}
}

// BufferedImage renders every pixel of its source up front, spread over
// goroutines.
type BufferedImage struct {
	image.Image
	height int
	buff   []color.Color
}

func (b *BufferedImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Image.Bounds().Dx(), b.Image.Bounds().Dy())
}

func (b *BufferedImage) At(x, y int) color.Color {
	return b.buff[x*b.height+y]
}

func (b *BufferedImage) Buffer(ctx context.Context) error {
	b.buff = make([]color.Color, b.Image.Bounds().Dx()*b.Image.Bounds().Dy())

	min, max := b.Image.Bounds().Min, b.Image.Bounds().Max
	var wg sync.WaitGroup

	for chunkMin := min.X; chunkMin < max.X; chunkMin += ChunkSize {
		chunkMax := chunkMin + ChunkSize
		if chunkMax > max.X {
			chunkMax = max.X
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			i := (chunkMin - min.X) * b.height
			for x := chunkMin; x < chunkMax; x++ {
				if ctx.Err() != nil {
					return
				}

				for y := min.Y; y < max.Y; y++ {
					b.buff[i] = b.Image.At(x, y)
					i++
				}
			}
		}()
	}

	wg.Wait()

	return ctx.Err()
}

func (i *BufferedImage) Opaque() bool {
	return true
}

// scaleFactor maps pixels to screen space, where y spans [-1,1].
func scaleFactor(img programs.Image) float32 {
	return float32(img.Bounds().Dy()) / 2
}

// ToImage samples img at pixel centres, flipping y so the top row of the
// result is the top of the screen.
func ToImage(img programs.Image) image.Image {
	return &imageImage{
		Image:       img,
		scaleFactor: scaleFactor(img),
	}
}

type imageImage struct {
	programs.Image
	scaleFactor float32
}

func (i *imageImage) At(x, y int) color.Color {
	c := i.GetPixel(mgl32.Vec2{
		(float32(x) + 0.5) / i.scaleFactor,
		-(float32(y) + 0.5) / i.scaleFactor,
	})

	return color.NRGBA{
		R: toByte(c[0]),
		G: toByte(c[1]),
		B: toByte(c[2]),
		A: 0xff,
	}
}

func (i *imageImage) ColorModel() color.Model {
	return color.NRGBAModel
}

func (i *imageImage) Opaque() bool {
	return true
}

func toByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xff
	}
	return uint8(v*255 + 0.5)
}
