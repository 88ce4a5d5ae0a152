package chunks

import (
	"buildcraft/internal/graphics/gpu"
	"buildcraft/internal/world"
)

// Vertex: position(3) texCoord(2) texSlot(1) light(1).
const (
	floatsPerVertex = 7
	verticesPerQuad = 4
	indicesPerQuad  = 6
	floatsPerQuad   = floatsPerVertex * verticesPerQuad

	slotOffset = 5
)

// Quad is the vertex data of one face.
type Quad [floatsPerQuad]float32

// VertexLayout is the interleaved block vertex format.
var VertexLayout = gpu.NewBufferLayout(
	gpu.Attr(gpu.ShaderFloat3, "a_Pos"),
	gpu.Attr(gpu.ShaderFloat2, "a_TexCoord"),
	gpu.Attr(gpu.ShaderFloat, "a_TexID"),
	gpu.Attr(gpu.ShaderFloat, "a_LightLevel"),
)

// quadIndexPattern splits a quad into two triangles.
var quadIndexPattern = [indicesPerQuad]uint32{0, 1, 2, 2, 3, 0}

// faceTemplates hold a unit cube centered on the origin. They are never
// written; emission works on a copy.
var faceTemplates = [world.FaceCount]Quad{
	world.FaceBack: {
		-0.5, 0.5, 0.5, 1, 0, 0, 1,
		-0.5, 0.5, -0.5, 1, 1, 0, 1,
		-0.5, -0.5, -0.5, 0, 1, 0, 1,
		-0.5, -0.5, 0.5, 0, 0, 0, 1,
	},
	world.FaceFront: {
		0.5, -0.5, -0.5, 0, 1, 0, 1,
		0.5, 0.5, -0.5, 1, 1, 0, 1,
		0.5, 0.5, 0.5, 1, 0, 0, 1,
		0.5, -0.5, 0.5, 0, 0, 0, 1,
	},
	world.FaceLeft: {
		0.5, 0.5, -0.5, 1, 1, 0, 1,
		0.5, -0.5, -0.5, 1, 0, 0, 1,
		-0.5, -0.5, -0.5, 0, 0, 0, 1,
		-0.5, 0.5, -0.5, 0, 1, 0, 1,
	},
	world.FaceRight: {
		-0.5, -0.5, 0.5, 0, 0, 0, 1,
		0.5, -0.5, 0.5, 1, 0, 0, 1,
		0.5, 0.5, 0.5, 1, 1, 0, 1,
		-0.5, 0.5, 0.5, 0, 1, 0, 1,
	},
	world.FaceBottom: {
		-0.5, -0.5, -0.5, 0, 1, 0, 1,
		0.5, -0.5, -0.5, 1, 1, 0, 1,
		0.5, -0.5, 0.5, 1, 0, 0, 1,
		-0.5, -0.5, 0.5, 0, 0, 0, 1,
	},
	world.FaceTop: {
		0.5, 0.5, 0.5, 1, 0, 0, 1,
		0.5, 0.5, -0.5, 1, 1, 0, 1,
		-0.5, 0.5, -0.5, 0, 1, 0, 1,
		-0.5, 0.5, 0.5, 0, 0, 0, 1,
	},
}

// FaceTemplate returns a copy of the template quad for face.
func FaceTemplate(face world.BlockFace) Quad {
	if !face.Valid() {
		panic("chunks: invalid block face " + face.String())
	}
	return faceTemplates[face]
}

// QuadIndices returns the six indices of the quad starting at vertex base.
func QuadIndices(base uint32) [indicesPerQuad]uint32 {
	var out [indicesPerQuad]uint32
	for i, off := range quadIndexPattern {
		out[i] = base + off
	}
	return out
}

// placeQuad translates q and stamps the texture slot on every vertex.
func placeQuad(q *Quad, x, y, z float32, slot int) {
	for v := range verticesPerQuad {
		o := v * floatsPerVertex
		q[o] += x
		q[o+1] += y
		q[o+2] += z
		q[o+slotOffset] = float32(slot)
	}
}
