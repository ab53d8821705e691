package mesh

import "math"

// Vertex is the CPU-side vertex layout uploaded to the GPU: position and
// color, tightly packed. Must match the vertex buffer layout declared by the
// render pipeline (24 bytes per vertex).
type Vertex struct {
	Position [3]float32
	Color    [3]float32
}

// meshImpl is the implementation of the Mesh interface.
type meshImpl struct {
	name           string
	vertices       []Vertex
	indices        []uint32
	boundingRadius float32
}

// Mesh is an immutable index-drawn geometry resource. The batcher hands it to
// the renderer, which uploads the vertex and index data once and caches the
// GPU buffers against the mesh identity.
type Mesh interface {
	// Name returns the mesh name, used for GPU resource labels and logging.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices returns the vertex data. Callers must not mutate the slice.
	//
	// Returns:
	//   - []Vertex: the vertex data
	Vertices() []Vertex

	// Indices returns the index data. Callers must not mutate the slice.
	//
	// Returns:
	//   - []uint32: the index data
	Indices() []uint32

	// IndexCount returns the number of indices drawn per instance.
	//
	// Returns:
	//   - uint32: the index count
	IndexCount() uint32

	// BoundingRadius returns the radius of the smallest origin-centered
	// sphere containing every vertex.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Mesh = &meshImpl{}

// NewMesh creates a Mesh from vertex and index data. Both are required and
// NewMesh panics if either is empty.
//
// Parameters:
//   - name: the mesh name
//   - vertices: the vertex data
//   - indices: the index data
//
// Returns:
//   - Mesh: a new Mesh instance
func NewMesh(name string, vertices []Vertex, indices []uint32) Mesh {
	if len(vertices) == 0 {
		panic("mesh: NewMesh requires vertex data")
	}
	if len(indices) == 0 {
		panic("mesh: NewMesh requires index data")
	}

	var maxSq float32
	for i := range vertices {
		p := vertices[i].Position
		sq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if sq > maxSq {
			maxSq = sq
		}
	}

	return &meshImpl{
		name:           name,
		vertices:       vertices,
		indices:        indices,
		boundingRadius: float32(math.Sqrt(float64(maxSq))),
	}
}

func (m *meshImpl) Name() string {
	return m.name
}

func (m *meshImpl) Vertices() []Vertex {
	return m.vertices
}

func (m *meshImpl) Indices() []uint32 {
	return m.indices
}

func (m *meshImpl) IndexCount() uint32 {
	return uint32(len(m.indices))
}

func (m *meshImpl) BoundingRadius() float32 {
	return m.boundingRadius
}

// UnitCube creates a unit cube mesh centered at the origin with one flat
// color per face. Useful as a stand-in grain mesh for demos and tests.
//
// Returns:
//   - Mesh: the cube mesh
func UnitCube() Mesh {
	faceColors := [6][3]float32{
		{0.9, 0.3, 0.3},
		{0.3, 0.9, 0.3},
		{0.3, 0.3, 0.9},
		{0.9, 0.9, 0.3},
		{0.3, 0.9, 0.9},
		{0.9, 0.3, 0.9},
	}
	// One quad per face, 4 unique vertices each so face colors stay flat.
	facePositions := [6][4][3]float32{
		{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}},     // +Z
		{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}, // -Z
		{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}},     // +X
		{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}, // -X
		{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}},     // +Y
		{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}, // -Y
	}

	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for f := 0; f < 6; f++ {
		base := uint32(len(vertices))
		for v := 0; v < 4; v++ {
			vertices = append(vertices, Vertex{
				Position: facePositions[f][v],
				Color:    faceColors[f],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewMesh("unit_cube", vertices, indices)
}
