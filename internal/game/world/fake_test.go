package world

import (
	"github.com/google/uuid"

	"github.com/Faultbox/hauntedhouse/internal/assets"
	"github.com/Faultbox/hauntedhouse/internal/engine/camera"
	"github.com/Faultbox/hauntedhouse/internal/engine/geometry"
	"github.com/Faultbox/hauntedhouse/internal/engine/material"
	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
)

// fakeModels records requests and lets a test decide how each one ends.
type fakeModels struct {
	paths   map[uuid.UUID]string
	order   []uuid.UUID
	results chan assets.ModelResult
}

func newFakeModels() *fakeModels {
	return &fakeModels{
		paths:   make(map[uuid.UUID]string),
		results: make(chan assets.ModelResult, 128),
	}
}

func (f *fakeModels) Load(path string) uuid.UUID {
	id := uuid.New()
	f.paths[id] = path
	f.order = append(f.order, id)
	return id
}

func (f *fakeModels) Results() <-chan assets.ModelResult { return f.results }

func (f *fakeModels) succeed(id uuid.UUID) *scenegraph.Node {
	root := fakeModel()
	f.results <- assets.ModelResult{ID: id, Path: f.paths[id], Root: root}
	return root
}

func (f *fakeModels) fail(id uuid.UUID, err error) {
	f.results <- assets.ModelResult{ID: id, Path: f.paths[id], Err: err}
}

func (f *fakeModels) succeedAll() {
	for _, id := range f.order {
		f.succeed(id)
	}
}

func fakeModel() *scenegraph.Node {
	root := scenegraph.NewGroup("Scene")
	root.MustAdd(scenegraph.NewMesh("body", geometry.Box(1, 1, 1), material.NewStandard()))
	return root
}

type countingDrawer struct {
	draws int
	nodes int
}

func (d *countingDrawer) Draw(root *scenegraph.Node, _ *camera.Perspective) {
	d.draws++
	d.nodes = root.Count()
}

func assetsResult(p *PendingLoad, root *scenegraph.Node) assets.ModelResult {
	return assets.ModelResult{ID: p.ID, Path: p.Spec.Path(), Root: root}
}
