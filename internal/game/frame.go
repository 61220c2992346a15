package game

import (
	"github.com/Faultbox/dinorun/internal/assets"
	"github.com/Faultbox/dinorun/internal/engine/renderer"
)

// Texcoord shifts applied by the frame builder. The color offset nudges
// the sample window sideways in the texture atlas; the scroll step slides
// the background once per tick and wraps every 125 ticks.
const (
	colorOffsetStep = 0.003906
	scrollStep      = 0.004
	scrollPeriod    = 125
)

// Span is one model's contiguous vertex range in the frame buffer, with
// the texture it is drawn with. First and Count are in vertices.
type Span struct {
	Kind        assets.Kind
	TexturePath string
	First       int32
	Count       int32
}

// BuildFrame flattens the models' triangles into one interleaved buffer
// of renderer.FloatsPerVertex floats per vertex (position, normal,
// texcoord), applying each kind's state-driven offset. Models are emitted
// in slice order; nil models are skipped.
func BuildFrame(models []*assets.Model, st *State) ([]float32, []Span) {
	total := 0
	for _, m := range models {
		if m != nil {
			total += len(m.Tris) * 3 * renderer.FloatsPerVertex
		}
	}

	buf := make([]float32, 0, total)
	spans := make([]Span, 0, len(models))

	for _, m := range models {
		if m == nil || len(m.Tris) == 0 {
			continue
		}

		var dx, dy, du float32
		switch m.Kind {
		case assets.KindCharacter:
			dy = float32(st.DinoHeight) * 0.01
			du = float32(st.ColorOffset) * colorOffsetStep
		case assets.KindObstacle:
			dx = float32(st.ObstacleOffset) * 0.01
			du = float32(st.ColorOffset) * colorOffsetStep
		case assets.KindBackground:
			du = -float32(st.Tick%scrollPeriod) * scrollStep
		}

		first := int32(len(buf) / renderer.FloatsPerVertex)
		for _, tri := range m.Tris {
			for i := 0; i < 3; i++ {
				p := tri.Positions[i]
				n := tri.Normals[i]
				t := tri.TexCoords[i]
				buf = append(buf,
					p.X+dx, p.Y+dy, p.Z,
					n.X, n.Y, n.Z,
					t.U+du, t.V,
				)
			}
		}

		spans = append(spans, Span{
			Kind:        m.Kind,
			TexturePath: m.TexturePath,
			First:       first,
			Count:       int32(len(m.Tris) * 3),
		})
	}

	return buf, spans
}
