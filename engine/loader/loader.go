package loader

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-globe/common"
)

// completion is a decoded texture waiting to be handed to its callback on the polling goroutine.
type completion struct {
	src      string
	texture  common.TextureStagingData
	onLoaded func(common.TextureStagingData)
}

// loader is the implementation of the Loader interface.
type loader struct {
	pool      worker.DynamicWorkerPool
	workers   int
	queueSize int

	client *http.Client

	results chan completion
	nextID  atomic.Int64
	pending atomic.Int64
	closed  atomic.Bool
}

// Loader fetches and decodes textures off the render thread. Sources are local file paths or
// http(s) URLs holding PNG or JPEG data. Decoded textures are delivered only through Poll, so
// callbacks always run on the goroutine that polls.
type Loader interface {
	// Load starts an asynchronous fetch of src. On success, onLoaded is invoked during a later
	// Poll with the decoded RGBA pixels. On failure the error is logged and onLoaded is never invoked.
	//
	// Parameters:
	//   - src: local file path or http(s) URL
	//   - onLoaded: callback receiving the decoded texture
	Load(src string, onLoaded func(common.TextureStagingData))

	// Poll runs the callbacks of every load that has completed since the last call.
	// It never blocks.
	//
	// Returns:
	//   - int: the number of callbacks invoked
	Poll() int

	// Pending returns the number of loads that have been started but not yet delivered or dropped.
	Pending() int

	// Close stops the worker pool. Loads requested after Close are logged and dropped.
	// Completions already queued can still be drained with Poll.
	Close()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader backed by a dynamic worker pool.
//
// Parameters:
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader
func NewLoader(options ...LoaderBuilderOption) Loader {
	l := &loader{
		workers:   4,
		queueSize: 16,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(l)
	}
	l.results = make(chan completion, l.queueSize)
	l.pool = worker.NewDynamicWorkerPool(l.workers, l.queueSize, time.Second)
	return l
}

func (l *loader) Load(src string, onLoaded func(common.TextureStagingData)) {
	if l.closed.Load() {
		log.Printf("[Loader] loader: load %q after close", src)
		return
	}
	l.pending.Add(1)
	id := int(l.nextID.Add(1))
	l.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			tex, err := l.fetch(src)
			if err != nil {
				l.pending.Add(-1)
				log.Printf("[Loader] %v", err)
				return nil, err
			}
			l.results <- completion{src: src, texture: tex, onLoaded: onLoaded}
			return nil, nil
		},
	})
}

func (l *loader) Poll() int {
	n := 0
	for {
		select {
		case c := <-l.results:
			l.pending.Add(-1)
			if c.onLoaded != nil {
				c.onLoaded(c.texture)
			}
			n++
		default:
			return n
		}
	}
}

func (l *loader) Pending() int {
	return int(l.pending.Load())
}

func (l *loader) Close() {
	if l.closed.Swap(true) {
		return
	}
	l.pool.Stop()
}

// fetch opens src and decodes it into RGBA staging data.
func (l *loader) fetch(src string) (common.TextureStagingData, error) {
	rc, err := l.open(src)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("loader: fetch %q: %w", src, err)
	}
	defer rc.Close()

	tex, err := common.DecodeImage(rc)
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("loader: decode %q: %w", src, err)
	}
	return tex, nil
}

func (l *loader) open(src string) (io.ReadCloser, error) {
	if !isRemote(src) {
		return os.Open(src)
	}

	resp, err := l.client.Get(src)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}

func isRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}
