package world

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
	"github.com/Faultbox/hauntedhouse/pkg/math"
)

func TestWorld_TickAttachesOnce(t *testing.T) {
	models := newFakeModels()
	w := New(&ManualClock{}, models, nil, nil)
	p := w.RequestModel(StaticModels[0])
	require.NotNil(t, p)

	root := fakeModel()
	models.results <- assetsResult(p, root)
	models.results <- assetsResult(p, root)
	w.Tick()
	w.Tick()

	attached := 0
	for _, c := range w.Root.Children() {
		if c == root {
			attached++
		}
	}
	assert.Equal(t, 1, attached)
	assert.Equal(t, StateAttached, p.State)
	assert.Equal(t, StaticModels[0].Name, root.Name)
}

func TestWorld_AppliesPlacementAndFinish(t *testing.T) {
	models := newFakeModels()
	w := New(&ManualClock{}, models, nil, nil)
	spec := StaticModels[len(StaticModels)-3] // shovel
	p := w.RequestModel(spec)
	root := models.succeed(p.ID)
	w.Tick()

	assert.Equal(t, spec.Placement.Position, root.Position())
	assert.Equal(t, spec.Placement.Scale, root.Scale())
	assert.InDelta(t, spec.Placement.RotationY, root.Rotation().Y, 1e-6)

	body := root.Find("body")
	require.NotNil(t, body)
	assert.True(t, body.CastShadow)
	assert.True(t, body.ReceiveShadow)
	assert.InDelta(t, 0.7, body.Material.Metalness, 1e-6)
	assert.InDelta(t, 0.2, body.Material.Roughness, 1e-6)
}

func TestWorld_IronFencesGoToTheirGroup(t *testing.T) {
	models := newFakeModels()
	w := New(&ManualClock{}, models, nil, nil)
	var ids []*PendingLoad
	for _, spec := range StaticModels {
		if spec.Group == ironFenceGroup {
			ids = append(ids, w.RequestModel(spec))
		}
	}
	for _, p := range ids {
		models.succeed(p.ID)
	}
	w.Tick()

	group := w.Root.Find(ironFenceGroup)
	require.NotNil(t, group)
	assert.Len(t, group.Children(), 14)
}

func TestWorld_FailedLoadDoesNotStopTheFrame(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	models := newFakeModels()
	drawer := &countingDrawer{}
	w := New(&ManualClock{}, models, drawer, zap.New(core))

	bad := w.RequestModel(GhostModels[0])
	good := w.RequestModel(GhostModels[1])
	models.fail(bad.ID, errors.New("unexpected EOF"))
	goodRoot := models.succeed(good.ID)

	w.Tick()

	assert.Equal(t, 1, drawer.draws)
	assert.Equal(t, LoadStats{Attached: 1, Failed: 1}, w.Stats().Loads)
	assert.Nil(t, w.Root.Find(GhostModels[0].Name))
	assert.Same(t, goodRoot, w.Root.Find(GhostModels[1].Name))
	assert.Equal(t, 1, logs.FilterMessage("model load failed").Len())

	require.Len(t, w.Animated(), 1)
	assert.Equal(t, GhostModels[1].Name, w.Animated()[0].Name)
}

func TestWorld_GhostMovesOnlyAfterLoad(t *testing.T) {
	models := newFakeModels()
	clock := &ManualClock{}
	w := New(clock, models, nil, nil)
	spec := GhostModels[2]
	p := w.RequestModel(spec)

	clock.Set(2)
	w.Tick()
	assert.Empty(t, w.Animated())

	root := models.succeed(p.ID)
	clock.Set(3.5)
	w.Tick()

	want, _, _ := spec.Motion.Evaluate(3.5)
	assert.True(t, near(want, root.Position()), "got %v want %v", root.Position(), want)

	clock.Set(4)
	w.Tick()
	want, _, _ = spec.Motion.Evaluate(4)
	assert.True(t, near(want, root.Position()))
}

func TestWorld_GhostFadesIn(t *testing.T) {
	models := newFakeModels()
	clock := &ManualClock{}
	w := New(clock, models, nil, nil)
	w.fadeTime = 1
	p := w.RequestModel(GhostModels[0])
	root := models.succeed(p.ID)

	w.Tick()
	mat := root.Find("body").Material
	assert.True(t, mat.Transparent)
	assert.False(t, mat.DepthWrite)
	assert.InDelta(t, 0, mat.Opacity, 1e-6)

	clock.Advance(0.5)
	w.Tick()
	assert.Greater(t, mat.Opacity, float32(0))
	assert.Less(t, mat.Opacity, float32(ghostOpacity))

	clock.Advance(1)
	w.Tick()
	assert.InDelta(t, ghostOpacity, mat.Opacity, 1e-6)
	assert.Empty(t, w.fades)
}

func TestWorld_GhostWithoutFade(t *testing.T) {
	models := newFakeModels()
	w := New(&ManualClock{}, models, nil, nil)
	p := w.RequestModel(GhostModels[0])
	root := models.succeed(p.ID)
	w.Tick()

	assert.InDelta(t, ghostOpacity, root.Find("body").Material.Opacity, 1e-6)
	assert.Empty(t, w.fades)
}

func TestWorld_ResizeOnlyChangesAspect(t *testing.T) {
	models := newFakeModels()
	clock := &ManualClock{}
	w := New(clock, models, nil, nil)
	opts := DefaultOptions()
	opts.GraveSeed = 3
	NewBuilder(opts).Build(w)
	models.succeedAll()
	clock.Set(1.25)
	w.Tick()

	before := make(map[*scenegraph.Node]math.Mat4)
	w.Root.Traverse(func(n *scenegraph.Node) bool {
		before[n] = n.WorldMatrix()
		return true
	})
	camPos := w.Camera.Position

	w.Resize(800, 600)

	assert.InDelta(t, 800.0/600.0, w.Camera.Aspect, 1e-6)
	assert.Equal(t, camPos, w.Camera.Position)
	w.Root.Traverse(func(n *scenegraph.Node) bool {
		assert.Equal(t, before[n], n.WorldMatrix(), n.Name)
		return true
	})
}

func TestWorld_TickWithoutModelSource(t *testing.T) {
	drawer := &countingDrawer{}
	w := New(&ManualClock{}, nil, drawer, nil)
	assert.Nil(t, w.RequestModel(StaticModels[0]))
	w.Tick()
	w.Tick()
	assert.Equal(t, 2, drawer.draws)
	assert.Equal(t, uint64(2), w.Stats().Frames)
}

func TestWorld_ClosedResultsChannel(t *testing.T) {
	models := newFakeModels()
	w := New(&ManualClock{}, models, nil, nil)
	close(models.results)
	w.Tick()
	w.Tick()
	assert.Equal(t, uint64(2), w.Stats().Frames)
}

func near(a, b math.Vec3) bool {
	return math.Abs(a.X-b.X) < 1e-4 && math.Abs(a.Y-b.Y) < 1e-4 && math.Abs(a.Z-b.Z) < 1e-4
}
