package programs

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/raymarch"
	"github.com/stewi1014/gldemos/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	assert.ElementsMatch(t, []string{
		"cubes",
		"raymarch-cubes",
		"texture",
		"triangle",
		"vertex-uniform",
		"water-ripple",
	}, Names())
	assert.Equal(t, len(Names()), NumPrograms())

	for i := 0; i < NumPrograms(); i++ {
		p := GetProgram(i)
		assert.Equal(t, i, Index(p.Name))
		assert.True(t, strings.HasPrefix(p.VertexShader, "#version 330 core"), p.Name)
		assert.True(t, strings.HasPrefix(p.FragmentShader, "#version 330 core"), p.Name)
		assert.Positive(t, p.Mesh.Count(), p.Name)
		assert.Zero(t, len(p.Mesh.Vertices)%int(p.Mesh.Stride()), p.Name)
	}

	_, err := Lookup("mandelbrot")
	assert.ErrorIs(t, err, ErrUnknownProgram)
	assert.Equal(t, -1, Index("mandelbrot"))

	assert.Error(t, NewProgram(GetProgram(0)))
}

func TestMesh(t *testing.T) {
	p, err := Lookup("cubes")
	require.NoError(t, err)
	assert.Equal(t, int32(5), p.Mesh.Stride())
	assert.Equal(t, int32(3), p.Mesh.Offset(1))
	assert.Equal(t, int32(36), p.Mesh.Count())

	p, err = Lookup("water-ripple")
	require.NoError(t, err)
	assert.Equal(t, int32(6), p.Mesh.Count())

	assert.Equal(t, int32(4), Quad.Count())
	assert.Zero(t, Mesh{}.Count())
}

func TestUniformDefaults(t *testing.T) {
	var u Uniforms
	u.DefaultValues()
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, u.CamPos)
	assert.Equal(t, mgl32.Ident3(), u.CamRot)
	assert.Equal(t, int32(1), u.Texture1)

	u.Resize(800, 600)
	assert.InDelta(t, 800.0/600.0, u.Aspect[1], 1e-6)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100), u.Projection)

	before := u
	u.Resize(0, 600)
	assert.Equal(t, before, u)
}

func TestTriangleWireframe(t *testing.T) {
	p, err := Lookup("triangle")
	require.NoError(t, err)

	assert.False(t, p.State(Clock{Frame: 0}, 800, 600).Wireframe)
	assert.False(t, p.State(Clock{Frame: 29}, 800, 600).Wireframe)
	assert.True(t, p.State(Clock{Frame: 30}, 800, 600).Wireframe)
	assert.False(t, p.State(Clock{Frame: 60}, 800, 600).Wireframe)
}

func TestTimeUniform(t *testing.T) {
	for _, name := range []string{"vertex-uniform", "texture", "raymarch-cubes"} {
		p, err := Lookup(name)
		require.NoError(t, err)
		assert.Equal(t, float32(2.5), p.State(Clock{Seconds: 2.5}, 800, 600).Uniforms.Time, name)
	}
}

func TestCubes(t *testing.T) {
	p, err := Lookup("cubes")
	require.NoError(t, err)
	assert.True(t, p.DepthTest)
	assert.Equal(t, 2, p.Textures)

	s := p.State(Clock{Seconds: math.Pi / 2}, 800, 600)
	require.Len(t, s.Models, 2)

	// the first cube sways by -0.6 at sin(t) = 1, the second stays put
	origin := mgl32.Vec4{0, 0, 0, 1}
	first := s.Models[0].Mul4x1(origin)
	second := s.Models[1].Mul4x1(origin)
	assert.InDelta(t, -0.8, first.X(), 1e-5)
	assert.InDelta(t, 0.8, second.X(), 1e-5)
}

func TestRipple(t *testing.T) {
	p, err := Lookup("water-ripple")
	require.NoError(t, err)

	s := p.State(Clock{Frame: 90}, 800, 600)
	assert.InDelta(t, 0.5, s.Uniforms.Ripple, 1e-6)
	assert.Equal(t, RippleCentre(1), s.Uniforms.Centre)
	assert.Equal(t, s.Uniforms.Centre, p.State(Clock{Frame: 61}, 800, 600).Uniforms.Centre)

	for cycle := range 100 {
		c := RippleCentre(cycle)
		for _, v := range c {
			assert.GreaterOrEqual(t, v, float32(0.2))
			assert.Less(t, v, float32(0.7))
		}
	}

	aspect := mgl32.Vec2{1, 1}
	assert.Zero(t, RippleOffset(0, mgl32.Vec2{0.1, 0}, aspect))
	assert.Zero(t, RippleOffset(0.3, mgl32.Vec2{0.3, 0}, aspect))
	assert.NotZero(t, RippleOffset(0.3, mgl32.Vec2{0.08, 0}, aspect))
}

func TestRipplePixelWithoutRipple(t *testing.T) {
	p, err := Lookup("water-ripple")
	require.NoError(t, err)

	frame := Frame{Uniforms: p.State(Clock{}, 600, 600).Uniforms}
	img, err := p.GetImage(frame, 10, 10)
	require.NoError(t, err)

	pos := mgl32.Vec2{0.3, -0.4}
	expected := frame.Texture(0).Sample(mgl32.Vec2{0.65, 0.3})
	got := img.GetPixel(pos)
	for i := range expected {
		assert.InDelta(t, expected[i], got[i], 1e-5)
	}
}

func TestRaymarchImage(t *testing.T) {
	p, err := Lookup("raymarch-cubes")
	require.NoError(t, err)

	frame := Frame{Uniforms: p.State(Clock{Seconds: 1}, 800, 600).Uniforms}
	img, err := p.GetImage(frame, 81, 60)
	require.NoError(t, err)
	assert.Equal(t, 81, img.Bounds().Dx())
	assert.Equal(t, 60, img.Bounds().Dy())

	rf, err := raymarch.NewFrame(frame.Uniforms.Camera(), 1, frame.Texture(0))
	require.NoError(t, err)
	pos := mgl32.Vec2{0.1, 0.2}
	assert.Equal(t, rf.Pixel(mgl64.Vec2{float64(pos[0]), float64(pos[1])}), img.GetPixel(pos))

	// far corner misses
	assert.Equal(t, raymarch.Background, img.GetPixel(mgl32.Vec2{20, 20}))
}

func TestNoCPUImplementation(t *testing.T) {
	p, err := Lookup("cubes")
	require.NoError(t, err)

	_, err = p.GetImage(Frame{}, 10, 10)
	assert.ErrorIs(t, err, ErrNoCPUImplementation)
}

func TestFrameTexture(t *testing.T) {
	var f Frame
	assert.Same(t, DefaultTextures[0], f.Texture(0))
	assert.Same(t, DefaultTextures[1], f.Texture(1))

	custom := DefaultTextures[1]
	f.Textures = []*texture.Image{custom, nil}
	assert.Same(t, custom, f.Texture(0))
	assert.Same(t, DefaultTextures[1], f.Texture(1))

	textures, err := LoadTextures([]string{""})
	require.NoError(t, err)
	assert.Equal(t, []*texture.Image{nil}, textures)

	_, err = LoadTextures([]string{filepath.Join(t.TempDir(), "missing.png")})
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	p, err := Lookup("raymarch-cubes")
	require.NoError(t, err)
	assert.True(t, p.Uses("raymarch.frag"))
	assert.False(t, p.Uses("water.frag"))

	dir := t.TempDir()
	same, err := p.Reload(dir)
	require.NoError(t, err)
	assert.Equal(t, p.FragmentShader, same.FragmentShader)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "raymarch.frag"), []byte("changed"), 0o644))
	changed, err := p.Reload(dir)
	require.NoError(t, err)
	assert.Equal(t, "changed", changed.FragmentShader)
	assert.Equal(t, p.VertexShader, changed.VertexShader)

	registered, err := Lookup("raymarch-cubes")
	require.NoError(t, err)
	assert.Equal(t, p.FragmentShader, registered.FragmentShader)
}

func TestWatchShaders(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 10)
	require.NoError(t, WatchShaders(ctx, dir, func(name string) {
		changed <- name
	}))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "water.frag"), []byte("x"), 0o644))

	select {
	case name := <-changed:
		assert.Equal(t, "water.frag", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	assert.Error(t, WatchShaders(ctx, filepath.Join(dir, "missing"), func(string) {}))
}

func TestCameraUniforms(t *testing.T) {
	var u Uniforms
	u.DefaultValues()
	assert.Equal(t, raymarch.DefaultCamera(), u.Camera())

	orbit := raymarch.Orbit(0.5, 0.25, 4)
	u.SetCamera(orbit)
	back := u.Camera()
	for i := range orbit.Position {
		assert.InDelta(t, orbit.Position[i], back.Position[i], 1e-6)
	}
	for i := range orbit.Rotation {
		assert.InDelta(t, orbit.Rotation[i], back.Rotation[i], 1e-6)
	}
}
