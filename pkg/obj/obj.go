// Package obj provides a parser for the Wavefront OBJ subset used by the
// game's mesh assets: v/vt/vn records, triangular f records, and mtllib
// material references resolved to a diffuse texture path.
package obj

import "errors"

// OBJ format errors.
var (
	ErrMalformedRecord = errors.New("malformed OBJ record")
	ErrIndexOutOfRange = errors.New("OBJ face index out of range")
	ErrMissingChannel  = errors.New("OBJ face omits an indexed channel")
)

// IndexUnset marks a face index channel that was absent from the record.
const IndexUnset = -1

// Position is a geometric vertex (v record).
type Position struct {
	X, Y, Z float32
}

// TexCoord is a texture coordinate (vt record).
type TexCoord struct {
	U, V float32
}

// Normal is a vertex normal (vn record).
type Normal struct {
	X, Y, Z float32
}

// FaceVertex holds the zero-based indices of one face corner. Channels the
// record did not supply are IndexUnset.
type FaceVertex struct {
	Position int
	TexCoord int
	Normal   int
}

// Face is one triangular f record.
type Face [3]FaceVertex

// Model is a parsed OBJ mesh. Face indices are zero-based; the parser
// subtracts one from every index present in the source.
type Model struct {
	Positions []Position
	TexCoords []TexCoord
	Normals   []Normal
	Faces     []Face

	// TexturePath is the diffuse texture resolved through the material
	// library, or empty when the model has none.
	TexturePath string
}

// TriangleCount returns the number of faces in the model.
func (m *Model) TriangleCount() int {
	return len(m.Faces)
}
