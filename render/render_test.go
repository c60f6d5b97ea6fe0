package render

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradient is red in x and green in y, clamped by the output.
var gradient = programs.Program{
	Name: "gradient",
	Prepare: func(programs.Frame) (programs.PixelFunc, error) {
		return func(_ programs.Frame, pos mgl32.Vec2) mgl32.Vec3 {
			return mgl32.Vec3{pos[0], pos[1], 0.5}
		}, nil
	},
}

func raymarchFrame(t *testing.T) (programs.Program, programs.Frame) {
	t.Helper()
	p, err := programs.Lookup("raymarch-cubes")
	require.NoError(t, err)
	return p, programs.Frame{Uniforms: p.State(programs.Clock{Seconds: 0.8}, 64, 48).Uniforms}
}

func TestToImageOrientation(t *testing.T) {
	img, err := gradient.GetImage(programs.Frame{}, 4, 4)
	require.NoError(t, err)

	out := ToImage(img)
	assert.Equal(t, image.Rect(-2, -2, 2, 2), out.Bounds())

	// top right is red and green, bottom left is neither
	topRight := out.At(1, -2).(color.NRGBA)
	bottomLeft := out.At(-2, 1).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 191, G: 191, B: 128, A: 255}, topRight)
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 128, A: 255}, bottomLeft)
}

func TestToByte(t *testing.T) {
	assert.Equal(t, uint8(0), toByte(-1))
	assert.Equal(t, uint8(255), toByte(2))
	assert.Equal(t, uint8(128), toByte(0.5))
}

func TestAntiAlias(t *testing.T) {
	img, err := gradient.GetImage(programs.Frame{}, 10, 10)
	require.NoError(t, err)

	// a linear gradient averages to itself
	aa := AntiAlias9x(img, 1)
	pos := mgl32.Vec2{0.5, 0.5}
	for i, v := range img.GetPixel(pos) {
		assert.InDelta(t, v, aa.GetPixel(pos)[i], 1e-6)
	}
}

func TestBufferMatchesDirect(t *testing.T) {
	p, frame := raymarchFrame(t)
	img, err := p.GetImage(frame, 120, 30)
	require.NoError(t, err)

	direct := ToImage(img)
	buff := BufferImage(direct)
	require.NoError(t, buff.Buffer(context.Background()))

	b := direct.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			require.Equal(t, direct.At(x, y), buff.At(x-b.Min.X, y-b.Min.Y), "pixel %v,%v", x, y)
		}
	}
}

func TestBufferCancelled(t *testing.T) {
	p, frame := raymarchFrame(t)
	img, err := p.GetImage(frame, 120, 30)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, BufferImage(ToImage(img)).Buffer(ctx), context.Canceled)
}

func TestProgress(t *testing.T) {
	img, err := gradient.GetImage(programs.Frame{}, 4, 4)
	require.NoError(t, err)

	out := ToImage(img)
	progress := WrapWithProgress(&out)
	assert.Zero(t, progress())

	b := out.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		out.At(x, 0)
	}
	assert.InDelta(t, 0.25, progress(), 1e-9)
}

func TestEncodeSingleAndMultithreaded(t *testing.T) {
	p, frame := raymarchFrame(t)
	opts := SaveOptions{Width: 64, Height: 48}

	var single, multi bytes.Buffer
	stages := []string{}
	report := func(stage string, progress func() float64) {
		stages = append(stages, stage)
	}

	require.NoError(t, Encode(context.Background(), &single, opts, p, frame, report))
	assert.Equal(t, []string{"Rendering", "Encoding PNG"}, stages)

	opts.Multithread = true
	require.NoError(t, Encode(context.Background(), &multi, opts, p, frame, nil))

	a, err := png.Decode(&single)
	require.NoError(t, err)
	b, err := png.Decode(&multi)
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 64, 48), a.Bounds())
	assert.Equal(t, a.Bounds(), b.Bounds())
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			require.Equal(t, a.At(x, y), b.At(x, y))
		}
	}
}

func TestImageErrors(t *testing.T) {
	p, frame := raymarchFrame(t)
	_, err := Image(context.Background(), SaveOptions{}, p, frame, nil)
	assert.Error(t, err)

	cubes, err := programs.Lookup("cubes")
	require.NoError(t, err)
	_, err = Image(context.Background(), SaveOptions{Width: 4, Height: 4}, cubes, frame, nil)
	assert.ErrorIs(t, err, programs.ErrNoCPUImplementation)
}

func TestSave(t *testing.T) {
	p, frame := raymarchFrame(t)
	dir := t.TempDir()

	name := filepath.Join(dir, "out.png")
	require.NoError(t, Save(context.Background(), SaveOptions{Name: name, Width: 16, Height: 12, Antialias: 0.5}, p, frame, nil))

	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 12, cfg.Height)

	failed := filepath.Join(dir, "failed.png")
	cubes, err := programs.Lookup("cubes")
	require.NoError(t, err)
	assert.Error(t, Save(context.Background(), SaveOptions{Name: failed, Width: 16, Height: 12}, cubes, frame, nil))
	assert.NoFileExists(t, failed)
}

// cancelAfter is a program that cancels ctx once it has shaded n pixels.
func cancelAfter(n int64, cancel context.CancelFunc, shaded *atomic.Int64) programs.Program {
	return programs.Program{
		Name: "cancel-after",
		Prepare: func(programs.Frame) (programs.PixelFunc, error) {
			return func(programs.Frame, mgl32.Vec2) mgl32.Vec3 {
				if shaded.Add(1) == n {
					cancel()
				}
				return mgl32.Vec3{1, 1, 1}
			}, nil
		},
	}
}

func TestSaveSingleThreadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var shaded atomic.Int64
	p := cancelAfter(10, cancel, &shaded)

	name := filepath.Join(t.TempDir(), "cancelled.png")
	err := Save(ctx, SaveOptions{Name: name, Width: 100, Height: 100}, p, programs.Frame{}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, name)
	assert.Equal(t, int64(10), shaded.Load(), "no pixels are shaded after cancelling")
}

func TestSaveSingleThreadAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var shaded atomic.Int64
	p := cancelAfter(-1, cancel, &shaded)

	name := filepath.Join(t.TempDir(), "cancelled.png")
	err := Save(ctx, SaveOptions{Name: name, Width: 20, Height: 20}, p, programs.Frame{}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, name)
	assert.Zero(t, shaded.Load())
}

func TestStopOnDone(t *testing.T) {
	img, err := gradient.GetImage(programs.Frame{}, 4, 4)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	out := StopOnDone(ctx, ToImage(img))
	assert.Equal(t, ToImage(img).At(1, -2), out.At(1, -2))

	cancel()
	assert.Equal(t, color.NRGBA{A: 255}, out.At(1, -2))
}
