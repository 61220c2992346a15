package obj

import "fmt"

// Triangle is one face with every index resolved to its value. Corner order
// follows the source record.
type Triangle struct {
	Positions [3]Position
	TexCoords [3]TexCoord
	Normals   [3]Normal
}

// Defaults used for channels the model carries no data for.
var (
	defaultTexCoord = TexCoord{}
	defaultNormal   = Normal{Z: 1}
)

// Triangles resolves every face against the model's vertex data. Models
// without texcoords get zero UVs, models without normals get a flat +Z
// normal. A face indexing outside the data fails with ErrIndexOutOfRange;
// a face omitting a channel the model does provide data for fails with
// ErrMissingChannel.
func (m *Model) Triangles() ([]Triangle, error) {
	tris := make([]Triangle, 0, len(m.Faces))

	for i, face := range m.Faces {
		var tri Triangle
		for j, fv := range face {
			if fv.Position < 0 || fv.Position >= len(m.Positions) {
				return nil, fmt.Errorf("face %d: %w: position %d of %d", i, ErrIndexOutOfRange, fv.Position, len(m.Positions))
			}
			tri.Positions[j] = m.Positions[fv.Position]

			switch {
			case fv.TexCoord == IndexUnset && len(m.TexCoords) == 0:
				tri.TexCoords[j] = defaultTexCoord
			case fv.TexCoord == IndexUnset:
				return nil, fmt.Errorf("face %d: %w: texcoord", i, ErrMissingChannel)
			case fv.TexCoord >= len(m.TexCoords):
				return nil, fmt.Errorf("face %d: %w: texcoord %d of %d", i, ErrIndexOutOfRange, fv.TexCoord, len(m.TexCoords))
			default:
				tri.TexCoords[j] = m.TexCoords[fv.TexCoord]
			}

			switch {
			case fv.Normal == IndexUnset && len(m.Normals) == 0:
				tri.Normals[j] = defaultNormal
			case fv.Normal == IndexUnset:
				return nil, fmt.Errorf("face %d: %w: normal", i, ErrMissingChannel)
			case fv.Normal >= len(m.Normals):
				return nil, fmt.Errorf("face %d: %w: normal %d of %d", i, ErrIndexOutOfRange, fv.Normal, len(m.Normals))
			default:
				tri.Normals[j] = m.Normals[fv.Normal]
			}
		}
		tris = append(tris, tri)
	}

	return tris, nil
}
