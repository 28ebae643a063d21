package texture

import (
	"image"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/hauntedhouse/internal/engine/material"
)

// Source reads raw asset bytes by relative path.
type Source interface {
	ReadFile(path string) ([]byte, error)
}

// Params are the sampler settings baked into a GPU texture object.
type Params struct {
	WrapS, WrapT material.Wrap
	SRGB         bool
}

// ParamsOf returns the sampler settings of a material texture reference.
func ParamsOf(ref *material.TextureRef) Params {
	return Params{WrapS: ref.WrapS, WrapT: ref.WrapT, SRGB: ref.SRGB}
}

// Uploader turns a decoded image into a GPU texture name.
type Uploader interface {
	Upload(img *image.RGBA, p Params) (uint32, error)
	Delete(id uint32)
}

type key struct {
	path string
	p    Params
}

type decoded struct {
	path string
	img  *image.RGBA
	err  error
}

// Cache decodes textures in the background and uploads them on the
// goroutine that calls Poll, which must own the GL context.
type Cache struct {
	src     Source
	up      Uploader
	log     *zap.Logger
	maxSize int

	mu      sync.Mutex
	pending map[string]bool

	ready  chan decoded
	images map[string]*image.RGBA
	failed map[string]error
	gpu    map[key]uint32
}

// NewCache creates a texture cache. maxSize caps the larger image side,
// 0 for no cap.
func NewCache(src Source, up Uploader, log *zap.Logger, maxSize int) *Cache {
	return &Cache{
		src:     src,
		up:      up,
		log:     log,
		maxSize: maxSize,
		pending: make(map[string]bool),
		ready:   make(chan decoded, 64),
		images:  make(map[string]*image.RGBA),
		failed:  make(map[string]error),
		gpu:     make(map[key]uint32),
	}
}

// Request starts decoding path unless it is already known.
func (c *Cache) Request(path string) {
	if path == "" {
		return
	}
	c.mu.Lock()
	if c.pending[path] {
		c.mu.Unlock()
		return
	}
	c.pending[path] = true
	c.mu.Unlock()

	go func() {
		data, err := c.src.ReadFile(path)
		if err != nil {
			c.ready <- decoded{path: path, err: err}
			return
		}
		img, err := Decode(data)
		if err == nil {
			img = Downscale(img, c.maxSize)
			FlipVertical(img)
		}
		c.ready <- decoded{path: path, img: img, err: err}
	}()
}

// RequestMaterial requests every map of m.
func (c *Cache) RequestMaterial(m *material.Standard) {
	for _, t := range m.Textures() {
		c.Request(t.Path)
	}
}

// Poll collects finished decodes without blocking.
func (c *Cache) Poll() {
	for {
		select {
		case d := <-c.ready:
			if d.err != nil {
				c.failed[d.path] = d.err
				c.log.Warn("texture unavailable", zap.String("path", d.path), zap.Error(d.err))
				continue
			}
			c.images[d.path] = d.img
		default:
			return
		}
	}
}

// Get returns the GPU texture for ref, uploading on first use. ok is false
// while the image is still decoding or after it failed.
func (c *Cache) Get(ref *material.TextureRef) (id uint32, ok bool) {
	if ref == nil {
		return 0, false
	}
	k := key{path: ref.Path, p: ParamsOf(ref)}
	if id, ok := c.gpu[k]; ok {
		return id, true
	}
	img, ok := c.images[ref.Path]
	if !ok {
		c.Request(ref.Path)
		return 0, false
	}
	id, err := c.up.Upload(img, k.p)
	if err != nil {
		c.log.Warn("texture upload failed", zap.String("path", ref.Path), zap.Error(err))
		c.failed[ref.Path] = err
		delete(c.images, ref.Path)
		return 0, false
	}
	c.gpu[k] = id
	return id, true
}

// Failed returns the error recorded for path, if any.
func (c *Cache) Failed(path string) error {
	return c.failed[path]
}

// Stats reports decoded, uploaded and failed counts.
func (c *Cache) Stats() (decodedCount, uploaded, failed int) {
	return len(c.images), len(c.gpu), len(c.failed)
}

// Destroy releases every GPU texture.
func (c *Cache) Destroy() {
	for k, id := range c.gpu {
		c.up.Delete(id)
		delete(c.gpu, k)
	}
}
