package programs

func init() {
	register(Program{
		Name:         "vertex-uniform",
		Title:        "LearnOpenGL",
		VertexName:   "vertex_uniform.vert",
		FragmentName: "vertex_uniform.frag",
		Mesh: Mesh{
			Vertices: []float32{
				// position      colour
				-0.5, 0.2, 0.0, 1.0, 0.0, 0.0,
				0.3, 0.8, 0.0, 0.0, 1.0, 0.0,
				0.0, -0.8, 0.0, 0.0, 0.0, 1.0,
				0.5, -0.8, 0.0, 0.0, 0.5, 0.5,
			},
			Indices: []uint32{
				0, 1, 2,
				1, 2, 3,
			},
			Attributes: []Attribute{
				{Location: 0, Size: 3},
				{Location: 1, Size: 3},
			},
		},
		Animate: animateTime,
	})
}

func animateTime(clock Clock, state *State) {
	state.Uniforms.Time = float32(clock.Seconds)
}
