// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// StandardVertexShader transforms lit meshes and applies displacement.
//
//go:embed standard.vert
var StandardVertexShader string

// StandardFragmentShader shades meshes with the standard material model,
// shadows and fog.
//
//go:embed standard.frag
var StandardFragmentShader string

// DepthVertexShader is the vertex shader for the shadow depth pass.
//
//go:embed depth.vert
var DepthVertexShader string

// DepthFragmentShader is the fragment shader for the shadow depth pass.
//
//go:embed depth.frag
var DepthFragmentShader string
