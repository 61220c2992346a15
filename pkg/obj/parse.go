package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Parse reads an OBJ model from r. Material library references are resolved
// relative to dir; a library that cannot be opened leaves the model without
// a texture path rather than failing the parse.
func Parse(r io.Reader, dir string) (*Model, error) {
	model := &Model{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRecord, err)
			}
			model.Positions = append(model.Positions, Position{p[0], p[1], p[2]})

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: %w: vt needs 2 coordinates", line, ErrMalformedRecord)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: %w: bad vt coordinate", line, ErrMalformedRecord)
			}
			model.TexCoords = append(model.TexCoords, TexCoord{u, v})

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %v", line, ErrMalformedRecord, err)
			}
			model.Normals = append(model.Normals, Normal{n[0], n[1], n[2]})

		case "f":
			// Only triangles are supported; anything else is rejected
			// instead of being silently mangled.
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: %w: face has %d vertices, want 3", line, ErrMalformedRecord, len(fields)-1)
			}
			var face Face
			for i, field := range fields[1:] {
				fv, err := parseFaceVertex(field)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w: %q", line, ErrMalformedRecord, field)
				}
				face[i] = fv
			}
			model.Faces = append(model.Faces, face)

		case "mtllib":
			if len(fields) < 2 || model.TexturePath != "" {
				continue
			}
			if tex := scanMaterialLibrary(filepath.Join(dir, fields[1])); tex != "" {
				model.TexturePath = filepath.Join(dir, tex)
			}
		}
		// Everything else (o, g, s, usemtl, ...) is ignored.
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ data: %w", err)
	}

	return model, nil
}

// ParseFile parses an OBJ file from disk. Material libraries are resolved
// relative to the file's directory.
func ParseFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening OBJ file: %w", err)
	}
	defer f.Close()

	model, err := Parse(f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model, nil
}

// parseFaceVertex parses one face corner: "v", "v/t", "v//n" or "v/t/n".
// Indices are one-based in the source and stored zero-based.
func parseFaceVertex(s string) (FaceVertex, error) {
	fv := FaceVertex{Position: IndexUnset, TexCoord: IndexUnset, Normal: IndexUnset}

	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return fv, fmt.Errorf("too many index separators")
	}

	pos, err := parseIndex(parts[0])
	if err != nil {
		return fv, err
	}
	fv.Position = pos

	if len(parts) >= 2 {
		// The texcoord slot may be empty only in the v//n form.
		if parts[1] == "" && len(parts) != 3 {
			return fv, fmt.Errorf("empty texcoord index")
		}
		if parts[1] != "" {
			tex, err := parseIndex(parts[1])
			if err != nil {
				return fv, err
			}
			fv.TexCoord = tex
		}
	}

	if len(parts) == 3 {
		norm, err := parseIndex(parts[2])
		if err != nil {
			return fv, err
		}
		fv.Normal = norm
	}

	return fv, nil
}

// parseIndex converts a one-based source index to zero-based. Zero and
// negative (relative) indices are outside the supported subset.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return IndexUnset, err
	}
	if n < 1 {
		return IndexUnset, fmt.Errorf("index %d out of the one-based range", n)
	}
	return n - 1, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("need 3 coordinates, have %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := parseFloat(fields[i])
		if err != nil {
			return out, fmt.Errorf("bad coordinate %q", fields[i])
		}
		out[i] = f
	}
	return out, nil
}

// scanMaterialLibrary returns the first diffuse texture (map_Kd) named by
// the material file, or "" when the file is unreadable or has none.
func scanMaterialLibrary(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) >= 2 && fields[0] == "map_Kd" {
			return fields[1]
		}
	}
	return ""
}
