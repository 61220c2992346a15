// Package assets handles game asset loading and caching.
package assets

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/dinorun/internal/logger"
	"github.com/Faultbox/dinorun/pkg/obj"
)

// Kind tells the frame builder which motion rule applies to a model.
type Kind int32

const (
	KindCharacter  Kind = 1
	KindObstacle   Kind = 2
	KindBackground Kind = 3
)

// Mesh files the game scene is built from.
const (
	FileBackground      = "bg.obj"
	FileBackgroundNight = "bg_night.obj"
	FileCharacter       = "dino.obj"
	FileCharacterAlt    = "dino2.obj"
	FileObstacle        = "cactus.obj"
)

// Model is a parsed mesh ready for frame assembly.
type Model struct {
	Kind        Kind
	Source      string
	TexturePath string
	Tris        []obj.Triangle
}

// Manager loads OBJ models from a directory, parsing each file once.
type Manager struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Model
}

// NewManager creates a manager rooted at the given asset directory.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:   dir,
		cache: make(map[string]*Model),
	}
}

// Load parses the named OBJ file and assembles its triangles. Repeated
// loads of the same name return the cached model.
func (m *Manager) Load(name string, kind Kind) (*Model, error) {
	m.mu.RLock()
	cached, ok := m.cache[name]
	m.mu.RUnlock()
	if ok {
		return cached, nil
	}

	parsed, err := obj.ParseFile(filepath.Join(m.dir, name))
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", name, err)
	}
	tris, err := parsed.Triangles()
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", name, err)
	}

	model := &Model{
		Kind:        kind,
		Source:      name,
		TexturePath: parsed.TexturePath,
		Tris:        tris,
	}

	m.mu.Lock()
	m.cache[name] = model
	m.mu.Unlock()

	return model, nil
}

// LoadGameModels loads every mesh the scene uses and returns how many
// succeeded. A mesh that fails to load is logged and its entity stays
// out of the frame; the game runs with whatever loaded.
func (m *Manager) LoadGameModels() int {
	files := []struct {
		name string
		kind Kind
	}{
		{FileBackground, KindBackground},
		{FileBackgroundNight, KindBackground},
		{FileCharacter, KindCharacter},
		{FileCharacterAlt, KindCharacter},
		{FileObstacle, KindObstacle},
	}

	loaded := 0
	for _, f := range files {
		if _, err := m.Load(f.name, f.kind); err != nil {
			logger.Warn("Failed to load model",
				zap.String("file", f.name),
				zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded
}

// cached returns a previously loaded model, or nil.
func (m *Manager) cached(name string) *Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache[name]
}

// Background returns the scenery mesh for the given phase of day.
func (m *Manager) Background(daytime bool) *Model {
	if daytime {
		return m.cached(FileBackground)
	}
	return m.cached(FileBackgroundNight)
}

// Character returns the character mesh for the given tick. The pose
// alternates every 15 ticks, which reads as a running gait.
func (m *Manager) Character(tick int) *Model {
	if tick%30 < 15 {
		return m.cached(FileCharacterAlt)
	}
	return m.cached(FileCharacter)
}

// Obstacle returns the obstacle mesh.
func (m *Manager) Obstacle() *Model {
	return m.cached(FileObstacle)
}
