package chart

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSurfaceSize is returned when a surface has no drawable area.
var ErrSurfaceSize = errors.New("surface has no drawable area")

// Surface is a 2-D drawing area that charts attach to while they are live.
type Surface interface {
	Size() (width, height int)
	Acquire() error
	Release()
}

// Canvas is an in-memory Surface that counts attached charts.
type Canvas struct {
	width, height int

	mu       sync.Mutex
	attached int
}

// NewCanvas creates a canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Acquire attaches a chart. It fails when the canvas has no drawable area.
func (c *Canvas) Acquire() error {
	if c.width <= 0 || c.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrSurfaceSize, c.width, c.height)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attached++
	return nil
}

// Release detaches a chart.
func (c *Canvas) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.attached > 0 {
		c.attached--
	}
}

// Attached reports how many charts are currently bound to the canvas.
func (c *Canvas) Attached() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attached
}
