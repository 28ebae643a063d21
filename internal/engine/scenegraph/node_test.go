package scenegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func near(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-4, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-4, "z")
}

func TestWorldMatrixComposesParentChain(t *testing.T) {
	house := NewGroup("house").SetPosition(3, 0, 0).SetRotation(0, -0.2*math.Pi, 0)
	doorLight := NewGroup("door light").SetPosition(0, 2.7, 2.7)
	require.NoError(t, house.Add(doorLight))

	want := house.LocalMatrix().TransformPoint(math.V3(0, 2.7, 2.7))
	near(t, want, doorLight.WorldPosition())
}

func TestWorldMatrixRecomputesAfterParentMoves(t *testing.T) {
	root := NewGroup("root")
	fence := NewGroup("fence").SetPosition(0, 0.5, 0)
	post := NewGroup("post").SetPosition(1, 0, 0)
	root.MustAdd(fence)
	fence.MustAdd(post)

	near(t, math.V3(1, 0.5, 0), post.WorldPosition())

	fence.SetPosition(0, 2, 0)
	near(t, math.V3(1, 2, 0), post.WorldPosition())

	root.SetUniformScale(2)
	near(t, math.V3(2, 4, 0), post.WorldPosition())
}

func TestAddRejectsCycles(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	c := NewGroup("c")
	a.MustAdd(b)
	b.MustAdd(c)

	assert.ErrorIs(t, a.Add(a), ErrSelfParent)
	assert.ErrorIs(t, c.Add(a), ErrCycle)
	assert.ErrorIs(t, c.Add(b), ErrCycle)
	assert.Nil(t, a.Parent(), "failed add leaves the graph untouched")
	assert.Panics(t, func() { c.MustAdd(a) })
}

func TestAddIsIdempotent(t *testing.T) {
	root := NewGroup("root")
	ghost := NewGroup("ghost")

	require.NoError(t, root.Add(ghost))
	require.NoError(t, root.Add(ghost))
	assert.Len(t, root.Children(), 1)
}

func TestAddReparents(t *testing.T) {
	left := NewGroup("left")
	right := NewGroup("right").SetPosition(10, 0, 0)
	n := NewGroup("n")

	left.MustAdd(n)
	near(t, math.Vec3{}, n.WorldPosition())

	right.MustAdd(n)
	assert.Empty(t, left.Children())
	assert.Same(t, right, n.Parent())
	near(t, math.V3(10, 0, 0), n.WorldPosition())
}

func TestRemove(t *testing.T) {
	root := NewGroup("root").SetPosition(0, 5, 0)
	n := NewGroup("n")
	root.MustAdd(n)
	near(t, math.V3(0, 5, 0), n.WorldPosition())

	assert.True(t, root.Remove(n))
	assert.False(t, root.Remove(n))
	assert.Nil(t, n.Parent())
	near(t, math.Vec3{}, n.WorldPosition())
}

func TestTraverseOrderAndPruning(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")
	a1 := NewGroup("a1")
	root.MustAdd(a, b)
	a.MustAdd(a1)

	var order []string
	root.Traverse(func(n *Node) bool {
		order = append(order, n.Name)
		return true
	})
	assert.Equal(t, []string{"root", "a", "a1", "b"}, order)

	order = nil
	root.Traverse(func(n *Node) bool {
		order = append(order, n.Name)
		return n.Name != "a"
	})
	assert.Equal(t, []string{"root", "a", "b"}, order)

	a.Visible = false
	order = nil
	root.TraverseVisible(func(n *Node) { order = append(order, n.Name) })
	assert.Equal(t, []string{"root", "b"}, order)
}

func TestFindAndCount(t *testing.T) {
	root := NewGroup("root")
	box := geometry.Box(0.6, 0.8, 0.2)
	for i := 0; i < 3; i++ {
		root.MustAdd(NewMesh("grave", box, material.NewStandard()))
	}
	walls := NewMesh("walls", geometry.Box(4.5, 4, 4), material.NewStandard())
	root.MustAdd(walls)

	assert.Same(t, walls, root.Find("walls"))
	assert.Nil(t, root.Find("crypt"))
	assert.Equal(t, 5, root.Count())

	meshes := 0
	root.Meshes(func(*Node) { meshes++ })
	assert.Equal(t, 4, meshes)
}

func TestNewNodeDefaults(t *testing.T) {
	n := NewGroup("g")
	assert.True(t, n.Visible)
	assert.Equal(t, math.Splat(1), n.Scale())
	assert.NotEqual(t, NewGroup("g").ID, n.ID)
	assert.Contains(t, n.String(), "g(")

	n.SetShadows(true, false)
	assert.True(t, n.CastShadow)
	assert.False(t, n.ReceiveShadow)

	n.SetRotation(0.1, 0.2, 0.3).SetRotationY(1)
	assert.Equal(t, math.Euler{X: 0.1, Y: 1, Z: 0.3}, n.Rotation())
}
