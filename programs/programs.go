package programs

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldemos/texture"
)

var (
	ErrNoCPUImplementation = errors.New("program does not have a CPU implementation")
	ErrUnknownProgram      = errors.New("unknown program")
)

var (
	ClearColour = mgl32.Vec3{0.2, 0.3, 0.3}
)

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// Lookup finds a program by name.
func Lookup(name string) (Program, error) {
	for _, p := range programs {
		if p.Name == name {
			return p, nil
		}
	}
	return Program{}, fmt.Errorf("%w %q", ErrUnknownProgram, name)
}

// Index returns the position of the named program, or -1.
func Index(name string) int {
	for i, p := range programs {
		if p.Name == name {
			return i
		}
	}
	return -1
}

func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

func NewProgram(p Program) error {
	if Index(p.Name) >= 0 {
		return fmt.Errorf("program %q registered twice", p.Name)
	}

	var err error
	if p.VertexShader == "" {
		if p.VertexShader, err = Source(p.VertexName); err != nil {
			return err
		}
	}
	if p.FragmentShader == "" {
		if p.FragmentShader, err = Source(p.FragmentName); err != nil {
			return err
		}
	}

	programs = append(programs, p)
	return nil
}

var programs []Program

// Clock says how far into its animation a program is.
type Clock struct {
	Frame   int
	Seconds float64
}

// State is what a program draws for one frame.
type State struct {
	Uniforms Uniforms
	// Models, when set, draws the mesh once per matrix with the
	// model uniform set.
	Models    []mgl32.Mat4
	Wireframe bool
}

// AnimateFunc advances state to the given clock.
type AnimateFunc func(clock Clock, state *State)

// Frame is the input to a CPU render.
type Frame struct {
	Uniforms Uniforms
	Textures []*texture.Image
}

// Texture returns the i'th texture, or a checker board when it was not
// supplied.
func (f Frame) Texture(i int) *texture.Image {
	if i < len(f.Textures) && f.Textures[i] != nil {
		return f.Textures[i]
	}
	return DefaultTextures[i%len(DefaultTextures)]
}

// PixelFunc colours screen position pos, where y spans [-1,1] and x spans
// the aspect ratio.
type PixelFunc func(frame Frame, pos mgl32.Vec2) mgl32.Vec3

// PrepareFunc is called once per CPU render before any pixels.
type PrepareFunc func(frame Frame) (PixelFunc, error)

type Program struct {
	Name  string
	Title string

	// VertexName and FragmentName are the shader asset file names. The
	// sources are filled from the embedded assets when left empty.
	VertexName     string
	FragmentName   string
	VertexShader   string
	FragmentShader string

	Mesh Mesh
	// Textures is the number of texture units the shaders sample.
	Textures  int
	DepthTest bool
	Animate   AnimateFunc
	Prepare   PrepareFunc
}

// State returns the program's state at the given clock.
func (p *Program) State(clock Clock, width, height int) State {
	var s State
	s.Uniforms.DefaultValues()
	s.Uniforms.Resize(width, height)
	if p.Animate != nil {
		p.Animate(clock, &s)
	}
	return s
}

func (p *Program) GetImage(frame Frame, width, height int) (Image, error) {
	if p.Prepare == nil {
		return nil, ErrNoCPUImplementation
	}

	pixelFunc, err := p.Prepare(frame)
	if err != nil {
		return nil, fmt.Errorf("preparing %v: %w", p.Name, err)
	}

	// odd sizes keep their exact width and height
	return &programImage{
		frame: frame,
		bounds: image.Rect(
			-width/2,
			-height/2,
			width-width/2,
			height-height/2,
		),
		pixelFunc: pixelFunc,
	}, nil
}

type Image interface {
	GetPixel(mgl32.Vec2) mgl32.Vec3
	Bounds() image.Rectangle
}

type programImage struct {
	frame     Frame
	bounds    image.Rectangle
	pixelFunc PixelFunc
}

func (i *programImage) GetPixel(pos mgl32.Vec2) mgl32.Vec3 {
	return i.pixelFunc(i.frame, pos)
}

func (i *programImage) Bounds() image.Rectangle {
	return i.bounds
}

func register(p Program) {
	if err := NewProgram(p); err != nil {
		panic(err)
	}
}
