package programs

// wireframeFrames is how many frames pass between wireframe toggles.
const wireframeFrames = 30

func init() {
	register(Program{
		Name:         "triangle",
		Title:        "LearnOpenGL",
		VertexName:   "triangle.vert",
		FragmentName: "triangle.frag",
		Mesh: Mesh{
			Vertices: []float32{
				-0.5, 0.2, 0.0,
				0.3, 0.8, 0.0,
				0.0, -0.8, 0.0,
				0.5, -0.8, 0.0,
			},
			Indices: []uint32{
				0, 1, 2,
				1, 2, 3,
			},
			Attributes: []Attribute{{Location: 0, Size: 3}},
		},
		Animate: func(clock Clock, state *State) {
			state.Wireframe = (clock.Frame/wireframeFrames)%2 == 1
		},
	})
}
