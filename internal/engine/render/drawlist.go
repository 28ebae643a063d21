package render

import (
	"sort"

	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Item is one mesh node queued for drawing.
type Item struct {
	Node  *scenegraph.Node
	World math.Mat4
	Depth float32 // distance in front of the camera along its view axis
}

// DrawList holds a frame's visible mesh nodes split by blending.
type DrawList struct {
	Opaque      []Item
	Transparent []Item
	Casters     []Item
}

// Reset empties the list keeping its storage.
func (l *DrawList) Reset() {
	l.Opaque = l.Opaque[:0]
	l.Transparent = l.Transparent[:0]
	l.Casters = l.Casters[:0]
}

// Build fills the list from the visible mesh nodes under root. Opaque items
// are ordered near to far, transparent items far to near.
func (l *DrawList) Build(root *scenegraph.Node, view math.Mat4) {
	l.Reset()
	if root == nil {
		return
	}

	root.TraverseVisible(func(n *scenegraph.Node) {
		if n.Kind != scenegraph.KindMesh || n.Mesh == nil || n.Material == nil {
			return
		}
		world := n.WorldMatrix()
		item := Item{
			Node:  n,
			World: world,
			Depth: -view.TransformPoint(world.Translation()).Z,
		}
		if n.CastShadow {
			l.Casters = append(l.Casters, item)
		}
		if n.Material.Blended() {
			l.Transparent = append(l.Transparent, item)
		} else {
			l.Opaque = append(l.Opaque, item)
		}
	})

	sort.SliceStable(l.Opaque, func(i, j int) bool {
		return l.Opaque[i].Depth < l.Opaque[j].Depth
	})
	sort.SliceStable(l.Transparent, func(i, j int) bool {
		return l.Transparent[i].Depth > l.Transparent[j].Depth
	})
}
