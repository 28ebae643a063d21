package assets

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/engine/scenegraph"
)

// ModelResult is the outcome of one model load. Exactly one of Root and
// Err is set.
type ModelResult struct {
	ID   uuid.UUID
	Path string
	Root *scenegraph.Node
	Err  error
}

// ModelLoader reads and converts models on background goroutines and
// delivers each result on a channel, to be consumed by the goroutine that
// owns the scene graph.
type ModelLoader struct {
	manager *Manager
	log     *zap.Logger
	results chan ModelResult
	wg      sync.WaitGroup
}

// NewModelLoader creates a loader whose result channel holds up to buffer
// undelivered results before load goroutines block.
func NewModelLoader(m *Manager, log *zap.Logger, buffer int) *ModelLoader {
	return &ModelLoader{
		manager: m,
		log:     log,
		results: make(chan ModelResult, buffer),
	}
}

// Load starts loading the model at path and returns the id its result
// will carry. Each call is an independent load, even for the same path.
func (l *ModelLoader) Load(path string) uuid.UUID {
	id := uuid.New()
	l.log.Debug("loading model", zap.String("path", path), zap.Stringer("id", id))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		root, err := l.load(path)
		l.results <- ModelResult{ID: id, Path: path, Root: root, Err: err}
	}()
	return id
}

func (l *ModelLoader) load(path string) (*scenegraph.Node, error) {
	data, err := l.manager.Load(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseGLB(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	model, err := BuildScene(doc, Clean(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for p, img := range model.Images {
		l.manager.Put(p, img)
	}
	return model.Root, nil
}

// Results returns the channel completed loads are delivered on.
func (l *ModelLoader) Results() <-chan ModelResult {
	return l.results
}

// Wait blocks until every started load has delivered its result. The
// results must be drained concurrently or the buffer must be large enough.
func (l *ModelLoader) Wait() {
	l.wg.Wait()
}
