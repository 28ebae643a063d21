package world

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/hauntedhouse/internal/assets"
)

func TestLoads_SettleSuccess(t *testing.T) {
	l := NewLoads(nil)
	id := uuid.New()
	l.Register(id, StaticModels[0])

	p, attach := l.Settle(assets.ModelResult{ID: id, Root: fakeModel()})
	require.True(t, attach)
	assert.Equal(t, StateAttached, p.State)
	assert.Equal(t, LoadStats{Attached: 1}, l.Stats())
}

func TestLoads_SettleFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	l := NewLoads(zap.New(core))
	id := uuid.New()
	l.Register(id, StaticModels[0])

	p, attach := l.Settle(assets.ModelResult{ID: id, Err: errors.New("boom")})
	assert.False(t, attach)
	assert.Equal(t, StateFailed, p.State)
	assert.EqualError(t, p.Err, "boom")

	entries := logs.FilterMessage("model load failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, StaticModels[0].Path(), entries[0].ContextMap()["path"])
}

func TestLoads_EmptyRootFails(t *testing.T) {
	l := NewLoads(nil)
	id := uuid.New()
	l.Register(id, StaticModels[0])

	p, attach := l.Settle(assets.ModelResult{ID: id})
	assert.False(t, attach)
	assert.Equal(t, StateFailed, p.State)
	assert.Error(t, p.Err)
}

func TestLoads_SettlesOnce(t *testing.T) {
	l := NewLoads(nil)
	id := uuid.New()
	l.Register(id, StaticModels[0])

	_, attach := l.Settle(assets.ModelResult{ID: id, Root: fakeModel()})
	assert.True(t, attach)
	_, attach = l.Settle(assets.ModelResult{ID: id, Root: fakeModel()})
	assert.False(t, attach)
	_, attach = l.Settle(assets.ModelResult{ID: id, Err: errors.New("late")})
	assert.False(t, attach)

	p, ok := l.Get(id)
	require.True(t, ok)
	assert.Equal(t, StateAttached, p.State)
	assert.NoError(t, p.Err)
}

func TestLoads_UnknownIDIgnored(t *testing.T) {
	l := NewLoads(nil)
	p, attach := l.Settle(assets.ModelResult{ID: uuid.New(), Root: fakeModel()})
	assert.Nil(t, p)
	assert.False(t, attach)
	assert.Zero(t, l.Stats().Total())
}

func TestLoads_AllKeepsOrder(t *testing.T) {
	l := NewLoads(nil)
	var ids []uuid.UUID
	for _, spec := range StaticModels[:4] {
		id := uuid.New()
		ids = append(ids, id)
		l.Register(id, spec)
	}
	all := l.All()
	require.Len(t, all, 4)
	for i, p := range all {
		assert.Equal(t, ids[i], p.ID)
		assert.Equal(t, StateLoading, p.State)
	}
	assert.Equal(t, LoadStats{Loading: 4}, l.Stats())
}

func TestLoadStateString(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "attached", StateAttached.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "LoadState(9)", LoadState(9).String())
}
