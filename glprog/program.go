package glprog

import (
	"reflect"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/gldemos/programs"
)

var uniformsType = reflect.TypeOf(programs.Uniforms{})

// Program is a linked shader program with the locations of its uniforms.
type Program struct {
	ID       uint32
	fields   []uniformField
	location map[string]int32
}

// NewProgram compiles and links a vertex and fragment shader.
func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := CompileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}

	fragmentShader, err := CompileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, err
	}

	id, err := Link(vertexShader, fragmentShader)
	if err != nil {
		return nil, err
	}

	fields, err := uniformFields(uniformsType)
	if err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}

	p := &Program{
		ID:       id,
		fields:   fields,
		location: make(map[string]int32, len(fields)),
	}
	for _, f := range fields {
		p.location[f.name] = gl.GetUniformLocation(id, gl.Str(f.name+"\x00"))
	}

	return p, nil
}

// Location is the uniform's location, or -1 when the shaders don't use it.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.location[name]; ok {
		return loc
	}
	return -1
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// SetUniforms uploads every uniform the program declares. The program must
// be in use.
func (p *Program) SetUniforms(u *programs.Uniforms) {
	v := reflect.ValueOf(u).Elem()
	for _, f := range p.fields {
		loc := p.location[f.name]
		if loc < 0 {
			continue
		}
		f.setter(loc, f.count, v.Field(f.index).Addr().UnsafePointer())
	}
}

func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
