// Package picking casts rays from the screen into the scene graph.
package picking

import (
	gomath "math"
	"slices"
	"strings"

	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// Hit is the nearest mesh under a ray.
type Hit struct {
	Node     *scenegraph.Node
	Distance float32
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates, viewportW/H are viewport dimensions.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, viewProj math.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	inv := viewProj.Inverse()
	near := inv.TransformPoint(math.V3(ndcX, ndcY, -1))
	far := inv.TransformPoint(math.V3(ndcX, ndcY, 1))

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectPlaneY intersects a ray with a horizontal plane at the given Y level.
// Returns the intersection point (X, Z) and whether the intersection is valid.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math.Abs(r.Direction.Y) < 0.001 {
		return 0, 0, false // Ray parallel to plane
	}

	t := (planeY - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return 0, 0, false // Intersection behind ray origin
	}
	return r.Origin.X + t*r.Direction.X, r.Origin.Z + t*r.Direction.Z, true
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin := r.Origin.Array()
	dir := r.Direction.Array()
	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < box.Min[i] || origin[i] > box.Max[i] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[i] - origin[i]) / dir[i]
		t2 := (box.Max[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// TransformBounds returns the world box enclosing local bounds under m.
func TransformBounds(b geometry.Bounds, m math.Mat4) AABB {
	var box AABB
	for i := 0; i < 8; i++ {
		corner := math.V3(b.Min[0], b.Min[1], b.Min[2])
		if i&1 != 0 {
			corner.X = b.Max[0]
		}
		if i&2 != 0 {
			corner.Y = b.Max[1]
		}
		if i&4 != 0 {
			corner.Z = b.Max[2]
		}
		p := m.TransformPoint(corner).Array()
		if i == 0 {
			box.Min, box.Max = p, p
			continue
		}
		for a := 0; a < 3; a++ {
			box.Min[a] = min(box.Min[a], p[a])
			box.Max[a] = max(box.Max[a], p[a])
		}
	}
	return box
}

// Pick returns the nearest visible mesh under r. Bounds are tested, not
// triangles.
func Pick(root *scenegraph.Node, r Ray) (Hit, bool) {
	var best Hit
	found := false
	root.Traverse(func(n *scenegraph.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Kind != scenegraph.KindMesh || n.Mesh == nil {
			return true
		}
		t, ok := r.IntersectAABB(TransformBounds(n.Mesh.Bounds, n.WorldMatrix()))
		if ok && (!found || t < best.Distance) {
			best = Hit{Node: n, Distance: t}
			found = true
		}
		return true
	})
	return best, found
}

// Path names n by the node names between root and n, joined with "/".
func Path(root, n *scenegraph.Node) string {
	var names []string
	for p := n; p != nil && p != root; p = p.Parent() {
		names = append(names, p.Name)
	}
	slices.Reverse(names)
	return strings.Join(names, "/")
}
