// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms the interleaved scene vertices.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader textures and lights the scene.
//
//go:embed scene.frag
var SceneFragmentShader string
