// Package scenegraph implements the transform hierarchy the scene is built
// from. A Node is either a group (children only), a drawable mesh or a light.
// World transforms are the product of every ancestor's local transform and
// are cached until a transform along the chain changes.
package scenegraph

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
	"github.com/Faultbox/hauntedhouse/internal/engine/lighting"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

var (
	// ErrSelfParent is returned when a node is added to itself.
	ErrSelfParent = errors.New("node cannot be its own child")
	// ErrCycle is returned when an ancestor is added below its descendant.
	ErrCycle = errors.New("adding node would create a cycle")
)

// Kind says what a node carries.
type Kind int

// Node kinds.
const (
	KindGroup Kind = iota
	KindMesh
	KindLight
)

// Node is an element of the scene graph.
type Node struct {
	ID   uuid.UUID
	Name string
	Kind Kind

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool

	Mesh     *geometry.Mesh
	Material *material.Standard
	Light    lighting.Light

	position math.Vec3
	rotation math.Euler
	scale    math.Vec3

	parent   *Node
	children []*Node

	dirty bool
	world math.Mat4
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		ID:      uuid.New(),
		Name:    name,
		Kind:    kind,
		Visible: true,
		scale:   math.Splat(1),
		dirty:   true,
	}
}

// NewGroup returns an empty transform node.
func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

// NewMesh returns a drawable node.
func NewMesh(name string, mesh *geometry.Mesh, mat *material.Standard) *Node {
	n := newNode(name, KindMesh)
	n.Mesh = mesh
	n.Material = mat
	return n
}

// NewLight returns a node carrying a light.
func NewLight(name string, light lighting.Light) *Node {
	n := newNode(name, KindLight)
	n.Light = light
	return n
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, n.ID.String()[:8])
}

// Position returns the local position.
func (n *Node) Position() math.Vec3 { return n.position }

// Rotation returns the local rotation.
func (n *Node) Rotation() math.Euler { return n.rotation }

// Scale returns the local scale.
func (n *Node) Scale() math.Vec3 { return n.scale }

// SetPosition sets the local position.
func (n *Node) SetPosition(x, y, z float32) *Node {
	n.position = math.Vec3{X: x, Y: y, Z: z}
	n.invalidate()
	return n
}

// SetPositionVec sets the local position from a vector.
func (n *Node) SetPositionVec(p math.Vec3) *Node {
	n.position = p
	n.invalidate()
	return n
}

// SetRotation sets the local rotation in radians.
func (n *Node) SetRotation(x, y, z float32) *Node {
	n.rotation = math.Euler{X: x, Y: y, Z: z}
	n.invalidate()
	return n
}

// SetRotationY changes only the yaw, keeping X and Z.
func (n *Node) SetRotationY(y float32) *Node {
	n.rotation.Y = y
	n.invalidate()
	return n
}

// SetScale sets the local scale.
func (n *Node) SetScale(x, y, z float32) *Node {
	n.scale = math.Vec3{X: x, Y: y, Z: z}
	n.invalidate()
	return n
}

// SetUniformScale sets the same scale on every axis.
func (n *Node) SetUniformScale(s float32) *Node {
	return n.SetScale(s, s, s)
}

// SetShadows sets both shadow flags.
func (n *Node) SetShadows(cast, receive bool) *Node {
	n.CastShadow = cast
	n.ReceiveShadow = receive
	return n
}

// Parent returns the parent node, nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Add attaches children to n. A child that already has another parent is
// moved. Adding a node that is already a child of n is a no-op.
func (n *Node) Add(children ...*Node) error {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c == n {
			return ErrSelfParent
		}
		if c.parent == n {
			continue
		}
		for a := n.parent; a != nil; a = a.parent {
			if a == c {
				return fmt.Errorf("%w: %s is an ancestor of %s", ErrCycle, c, n)
			}
		}
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.children = append(n.children, c)
		c.invalidate()
	}
	return nil
}

// MustAdd is Add for static construction where a cycle is a programming error.
func (n *Node) MustAdd(children ...*Node) *Node {
	if err := n.Add(children...); err != nil {
		panic(err)
	}
	return n
}

// Remove detaches a direct child. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			child.invalidate()
			return true
		}
	}
	return false
}

// LocalMatrix returns T·R·S of this node alone.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.position, n.rotation, n.scale)
}

// WorldMatrix returns the composition of the parent chain with the local
// transform.
func (n *Node) WorldMatrix() math.Mat4 {
	if n.dirty {
		local := n.LocalMatrix()
		if n.parent != nil {
			n.world = n.parent.WorldMatrix().Mul(local)
		} else {
			n.world = local
		}
		n.dirty = false
	}
	return n.world
}

// WorldPosition returns the node origin in world space.
func (n *Node) WorldPosition() math.Vec3 {
	return n.WorldMatrix().Translation()
}

// invalidate marks the subtree stale. A dirty node never has a clean
// descendant, so the walk stops at the first dirty node.
func (n *Node) invalidate() {
	if n.dirty {
		return
	}
	n.dirty = true
	for _, c := range n.children {
		c.invalidate()
	}
}

// Traverse visits n and its descendants depth-first, parents before
// children. Returning false from fn skips that node's subtree.
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// TraverseVisible is Traverse restricted to visible nodes.
func (n *Node) TraverseVisible(fn func(*Node)) {
	n.Traverse(func(v *Node) bool {
		if !v.Visible {
			return false
		}
		fn(v)
		return true
	})
}

// Find returns the first node named name in depth-first order.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(v *Node) bool {
		if found != nil {
			return false
		}
		if v.Name == name {
			found = v
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree including n.
func (n *Node) Count() int {
	count := 0
	n.Traverse(func(*Node) bool {
		count++
		return true
	})
	return count
}

// Meshes calls fn for every mesh node in the subtree.
func (n *Node) Meshes(fn func(*Node)) {
	n.Traverse(func(v *Node) bool {
		if v.Kind == KindMesh {
			fn(v)
		}
		return true
	})
}
