package assets

import (
	"bytes"
	"errors"
	"fmt"
	"path"
	"strconv"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// ErrInvalidModel reports a structurally broken glTF document.
var ErrInvalidModel = errors.New("invalid model")

// maxNodeDepth bounds node recursion so a cyclic document fails instead of
// overflowing the stack.
const maxNodeDepth = 64

// Model is a glTF scene converted to scene graph nodes.
type Model struct {
	Root *scenegraph.Node
	// Images holds embedded image data keyed by the virtual path the
	// model's materials reference.
	Images map[string][]byte
}

// ParseGLB decodes binary (or JSON) glTF data.
func ParseGLB(data []byte) (*gltf.Document, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(bytes.NewReader(data)).Decode(doc); err != nil {
		return nil, fmt.Errorf("decoding glTF: %w", err)
	}
	return doc, nil
}

// BuildScene converts the default scene of doc into a group named name.
// Texture paths are resolved relative to name.
func BuildScene(doc *gltf.Document, name string) (*Model, error) {
	b := &sceneBuilder{
		doc:       doc,
		name:      name,
		meshes:    make(map[int][]*scenegraph.Node),
		materials: make(map[int]*material.Standard),
		images:    make(map[string][]byte),
		built:     make(map[int]bool),
	}

	root := scenegraph.NewGroup(name)
	if len(doc.Scenes) == 0 {
		return &Model{Root: root, Images: b.images}, nil
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = *doc.Scene
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: scene %d out of range", ErrInvalidModel, sceneIdx)
	}

	for _, ni := range doc.Scenes[sceneIdx].Nodes {
		n, err := b.node(ni, 0)
		if err != nil {
			return nil, err
		}
		if err := root.Add(n); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
		}
	}
	return &Model{Root: root, Images: b.images}, nil
}

type sceneBuilder struct {
	doc  *gltf.Document
	name string

	meshes    map[int][]*scenegraph.Node // primitives per mesh, cloned per use
	materials map[int]*material.Standard
	images    map[string][]byte
	built     map[int]bool // node indices already instanced
}

func (b *sceneBuilder) node(idx, depth int) (*scenegraph.Node, error) {
	if depth > maxNodeDepth {
		return nil, fmt.Errorf("%w: node hierarchy deeper than %d", ErrInvalidModel, maxNodeDepth)
	}
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return nil, fmt.Errorf("%w: node %d out of range", ErrInvalidModel, idx)
	}
	// glTF nodes form disjoint trees, so a second visit means a shared
	// child or a cycle.
	if b.built[idx] {
		return nil, fmt.Errorf("%w: node %d has more than one parent", ErrInvalidModel, idx)
	}
	b.built[idx] = true
	src := b.doc.Nodes[idx]

	name := src.Name
	if name == "" {
		name = "node" + strconv.Itoa(idx)
	}
	n := scenegraph.NewGroup(name)
	applyTransform(n, src)

	if src.Mesh != nil {
		prims, err := b.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		for _, p := range prims {
			n.MustAdd(scenegraph.NewMesh(p.Name, p.Mesh, p.Material))
		}
	}

	for _, ci := range src.Children {
		child, err := b.node(ci, depth+1)
		if err != nil {
			return nil, err
		}
		if err := n.Add(child); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
		}
	}
	return n, nil
}

func applyTransform(n *scenegraph.Node, src *gltf.Node) {
	m := src.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var mat math.Mat4
		for i, v := range m {
			mat[i] = float32(v)
		}
		pos, rot, scale := math.Decompose(mat)
		n.SetPositionVec(pos)
		n.SetRotation(rot.X, rot.Y, rot.Z)
		n.SetScale(scale.X, scale.Y, scale.Z)
		return
	}

	t := src.Translation
	r := src.RotationOrDefault()
	s := src.ScaleOrDefault()
	q := math.Quat{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])}
	e := q.Normalize().Euler()

	n.SetPosition(float32(t[0]), float32(t[1]), float32(t[2]))
	n.SetRotation(e.X, e.Y, e.Z)
	n.SetScale(float32(s[0]), float32(s[1]), float32(s[2]))
}

// mesh returns one template node per triangle primitive of mesh idx.
// Geometry is shared by every node instancing the mesh.
func (b *sceneBuilder) mesh(idx int) ([]*scenegraph.Node, error) {
	if prims, ok := b.meshes[idx]; ok {
		return prims, nil
	}
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return nil, fmt.Errorf("%w: mesh %d out of range", ErrInvalidModel, idx)
	}
	src := b.doc.Meshes[idx]

	var prims []*scenegraph.Node
	for pi, p := range src.Primitives {
		if p.Mode != gltf.PrimitiveTriangles {
			continue
		}
		geo, err := b.primitive(p)
		if err != nil {
			return nil, fmt.Errorf("mesh %q primitive %d: %w", src.Name, pi, err)
		}
		geo.Name = src.Name
		mat, err := b.material(p.Material)
		if err != nil {
			return nil, err
		}
		prims = append(prims, scenegraph.NewMesh(src.Name, geo, mat))
	}
	b.meshes[idx] = prims
	return prims, nil
}

func (b *sceneBuilder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrInvalidModel, idx)
	}
	return b.doc.Accessors[idx], nil
}

func (b *sceneBuilder) primitive(p *gltf.Primitive) (*geometry.Mesh, error) {
	posIdx, ok := p.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("%w: primitive without POSITION", ErrInvalidModel)
	}
	acr, err := b.accessor(posIdx)
	if err != nil {
		return nil, err
	}
	positions, err := modeler.ReadPosition(b.doc, acr, nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	mesh := &geometry.Mesh{Vertices: make([]geometry.Vertex, len(positions))}
	for i, v := range positions {
		mesh.Vertices[i].Position = v
	}

	if uvIdx, ok := p.Attributes[gltf.TEXCOORD_0]; ok {
		acr, err := b.accessor(uvIdx)
		if err != nil {
			return nil, err
		}
		uvs, err := modeler.ReadTextureCoord(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading texture coordinates: %w", err)
		}
		// glTF puts the image origin top left; images are flipped on upload.
		for i := 0; i < len(uvs) && i < len(mesh.Vertices); i++ {
			mesh.Vertices[i].TexCoord = [2]float32{uvs[i][0], 1 - uvs[i][1]}
		}
	}

	if p.Indices != nil {
		acr, err := b.accessor(*p.Indices)
		if err != nil {
			return nil, err
		}
		mesh.Indices, err = modeler.ReadIndices(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
	} else {
		mesh.Indices = make([]uint32, len(mesh.Vertices))
		for i := range mesh.Indices {
			mesh.Indices[i] = uint32(i)
		}
	}
	for _, i := range mesh.Indices {
		if int(i) >= len(mesh.Vertices) {
			return nil, fmt.Errorf("%w: index %d out of %d vertices", ErrInvalidModel, i, len(mesh.Vertices))
		}
	}

	if nIdx, ok := p.Attributes[gltf.NORMAL]; ok {
		acr, err := b.accessor(nIdx)
		if err != nil {
			return nil, err
		}
		normals, err := modeler.ReadNormal(b.doc, acr, nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		for i := 0; i < len(normals) && i < len(mesh.Vertices); i++ {
			mesh.Vertices[i].Normal = normals[i]
		}
	} else {
		mesh.ComputeNormals()
	}

	mesh.ComputeBounds()
	return mesh, nil
}

func (b *sceneBuilder) material(idx *int) (*material.Standard, error) {
	if idx == nil {
		return material.NewStandard(), nil
	}
	if m, ok := b.materials[*idx]; ok {
		return m, nil
	}
	if *idx < 0 || *idx >= len(b.doc.Materials) {
		return nil, fmt.Errorf("%w: material %d out of range", ErrInvalidModel, *idx)
	}
	src := b.doc.Materials[*idx]

	m := material.NewStandard()
	m.Name = src.Name
	m.DoubleSided = src.DoubleSided
	if src.AlphaMode == gltf.AlphaBlend {
		m.Transparent = true
	}

	if pbr := src.PBRMetallicRoughness; pbr != nil {
		c := pbr.BaseColorFactorOrDefault()
		m.Color = material.FromLinear(float32(c[0]), float32(c[1]), float32(c[2]))
		m.Opacity = float32(c[3])
		m.Metalness = float32(pbr.MetallicFactorOrDefault())
		m.Roughness = float32(pbr.RoughnessFactorOrDefault())

		if ti := pbr.BaseColorTexture; ti != nil {
			m.Map = b.texture(ti.Index, true)
		}
		if ti := pbr.MetallicRoughnessTexture; ti != nil {
			ref := b.texture(ti.Index, false)
			m.RoughnessMap = ref
			m.MetalnessMap = ref
		}
	}
	if nt := src.NormalTexture; nt != nil && nt.Index != nil {
		m.NormalMap = b.texture(*nt.Index, false)
	}
	if ot := src.OcclusionTexture; ot != nil && ot.Index != nil {
		m.AOMap = b.texture(*ot.Index, false)
	}

	b.materials[*idx] = m
	return m, nil
}

// texture returns a reference to texture idx, registering embedded image
// bytes under a virtual path. Unresolvable textures yield nil.
func (b *sceneBuilder) texture(idx int, srgb bool) *material.TextureRef {
	if idx < 0 || idx >= len(b.doc.Textures) {
		return nil
	}
	tex := b.doc.Textures[idx]
	if tex.Source == nil || *tex.Source < 0 || *tex.Source >= len(b.doc.Images) {
		return nil
	}
	img := b.doc.Images[*tex.Source]

	var p string
	switch {
	case img.BufferView != nil:
		p = b.name + "#image" + strconv.Itoa(*tex.Source)
		if _, ok := b.images[p]; !ok {
			if *img.BufferView < 0 || *img.BufferView >= len(b.doc.BufferViews) {
				return nil
			}
			data, err := modeler.ReadBufferView(b.doc, b.doc.BufferViews[*img.BufferView])
			if err != nil {
				return nil
			}
			b.images[p] = data
		}
	case img.URI != "" && !img.IsEmbeddedResource():
		p = path.Join(path.Dir(b.name), img.URI)
	default:
		return nil
	}

	ref := material.Texture(p)
	if srgb {
		ref = material.ColorTexture(p)
	}
	ref.WrapS, ref.WrapT = material.Repeat, material.Repeat
	if tex.Sampler != nil && *tex.Sampler >= 0 && *tex.Sampler < len(b.doc.Samplers) {
		s := b.doc.Samplers[*tex.Sampler]
		ref.WrapS = wrapMode(s.WrapS)
		ref.WrapT = wrapMode(s.WrapT)
	}
	return ref
}

func wrapMode(w gltf.WrappingMode) material.Wrap {
	switch w {
	case gltf.WrapClampToEdge:
		return material.ClampToEdge
	case gltf.WrapMirroredRepeat:
		return material.MirroredRepeat
	default:
		return material.Repeat
	}
}
