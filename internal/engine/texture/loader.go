package texture

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/dinorun/internal/logger"
)

// Loader decodes texture files and uploads them to the GPU, caching by
// path. Models that have no texture, or whose texture fails to decode, get
// the checkerboard fallback so they stay visible.
//
// Requires a current OpenGL context.
type Loader struct {
	byPath   map[string]uint32
	fallback uint32
}

// NewLoader creates the loader and its fallback texture.
func NewLoader() *Loader {
	l := &Loader{
		byPath: make(map[string]uint32),
	}
	l.fallback = upload(Checkerboard(64, 8))
	return l
}

// Load returns the GL texture for path, uploading it on first use. An empty
// path or a failed load returns the fallback texture; rendering never
// stops for a bad image file.
func (l *Loader) Load(path string) uint32 {
	if path == "" {
		return l.fallback
	}
	if id, ok := l.byPath[path]; ok {
		return id
	}

	img, err := DecodeImage(path)
	if err != nil {
		logger.Warn("texture load failed, using fallback", zap.Error(err))
		l.byPath[path] = l.fallback
		return l.fallback
	}

	id := upload(img)
	l.byPath[path] = id
	logger.Debug("texture loaded",
		zap.String("path", path),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return id
}

// Fallback returns the checkerboard texture ID.
func (l *Loader) Fallback() uint32 {
	return l.fallback
}

// Close deletes every texture the loader uploaded.
func (l *Loader) Close() {
	for _, id := range l.byPath {
		if id != l.fallback {
			gl.DeleteTextures(1, &id)
		}
	}
	l.byPath = nil
	if l.fallback != 0 {
		gl.DeleteTextures(1, &l.fallback)
		l.fallback = 0
	}
}

// upload pushes an RGBA image to the GPU with mipmaps and repeat wrapping.
// Repeat matters: the background scroll pushes texcoords outside [0,1].
func upload(img *image.RGBA) uint32 {
	var texID uint32
	gl.GenTextures(1, &texID)
	gl.BindTexture(gl.TEXTURE_2D, texID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texID
}
