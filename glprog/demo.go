package glprog

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stewi1014/gldemos/texture"
)

// Demo is everything needed to draw one program.
type Demo struct {
	Program  programs.Program
	shader   *Program
	mesh     *Mesh
	textures []*Texture
}

// Load builds the GL objects for p. Missing textures fall back to the
// defaults.
func Load(p programs.Program, textures []*texture.Image) (*Demo, error) {
	shader, err := NewProgram(p.VertexShader, p.FragmentShader)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", p.Name, err)
	}

	d := &Demo{
		Program: p,
		shader:  shader,
		mesh:    UploadMesh(p.Mesh),
	}

	frame := programs.Frame{Textures: textures}
	for i := 0; i < p.Textures; i++ {
		d.textures = append(d.textures, UploadTexture(frame.Texture(i)))
	}

	return d, nil
}

// Reload swaps in new shaders, keeping the old ones if they fail to build.
func (d *Demo) Reload(p programs.Program) error {
	shader, err := NewProgram(p.VertexShader, p.FragmentShader)
	if err != nil {
		return fmt.Errorf("reloading %v: %w", p.Name, err)
	}

	d.shader.Delete()
	d.shader = shader
	d.Program.VertexShader = p.VertexShader
	d.Program.FragmentShader = p.FragmentShader
	return nil
}

// Draw clears the framebuffer and draws state.
func (d *Demo) Draw(state programs.State) {
	if d.Program.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}

	if state.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	c := programs.ClearColour
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	for i, t := range d.textures {
		t.Bind(i)
	}

	d.shader.Use()
	uniforms := state.Uniforms
	if len(state.Models) == 0 {
		d.shader.SetUniforms(&uniforms)
		d.mesh.Draw()
		return
	}

	for _, model := range state.Models {
		uniforms.Model = model
		d.shader.SetUniforms(&uniforms)
		d.mesh.Draw()
	}
}

func (d *Demo) Delete() {
	d.shader.Delete()
	d.mesh.Delete()
	for _, t := range d.textures {
		t.Delete()
	}
}
