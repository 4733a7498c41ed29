package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-globe/engine/renderer/material"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	material              material.Material
	meshProvider          bind_group_provider.BindGroupProvider
	vertexData, indexData []byte
	vertexCount           int
	indexCount            int
	boundingRadius        float32
}

// Model is a renderable mesh: packed vertex and index data, the material it is drawn with, and the
// BindGroupProvider that receives its GPU buffers. Buffers are created by the scene on first draw.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Material retrieves the material the mesh is drawn with, or nil.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// MeshProvider retrieves the BindGroupProvider holding the vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider, never nil
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the packed GPUVertex bytes.
	VertexData() []byte

	// IndexData returns the packed uint32 index bytes.
	IndexData() []byte

	// VertexCount returns the number of vertices.
	VertexCount() int

	// IndexCount returns the number of indices.
	IndexCount() int

	// BoundingRadius returns the largest vertex distance from the model origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + " Mesh")
	}
	return m
}

// NewSphere creates a textured sphere model.
//
// Parameters:
//   - name: the model identifier
//   - radius: sphere radius
//   - widthSegments: longitudinal segments
//   - heightSegments: latitudinal segments
//   - mat: the material to draw the sphere with
//
// Returns:
//   - Model: the sphere
func NewSphere(name string, radius float32, widthSegments, heightSegments int, mat material.Material) Model {
	vertices, indices := SphereGeometry(radius, widthSegments, heightSegments)
	return NewModel(
		WithName(name),
		WithGeometry(vertices, indices),
		WithMaterial(mat),
	)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Material() material.Material {
	return m.material
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) VertexCount() int {
	return m.vertexCount
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// computeBoundingRadius returns the maximum distance from the origin across all vertices.
func computeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
