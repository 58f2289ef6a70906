package workload

import (
	"context"
	"errors"
)

// Device simulates an asynchronous compute backend: kernels are cheap to
// submit and only guaranteed complete after a Sync readback. A single
// consumer goroutine executes kernels in submission order.
type Device struct {
	queue chan func()
	done  chan struct{}
	free  chan []float64
	size  int
}

// NewDevice starts a device whose buffers are slabs of size float64s.
func NewDevice(size int) *Device {
	d := &Device{
		queue: make(chan func(), 1024),
		done:  make(chan struct{}),
		free:  make(chan []float64, 128),
		size:  size,
	}
	go d.loop()
	return d
}

func (d *Device) loop() {
	defer close(d.done)
	for fn := range d.queue {
		fn()
	}
}

// Submit enqueues a kernel for asynchronous execution. Submission blocks
// only when the device queue is full.
func (d *Device) Submit(kernel func()) {
	d.queue <- kernel
}

// Sync blocks until every previously submitted kernel has executed. This is
// the readback point: timing against this device is only valid once Sync
// returns.
func (d *Device) Sync(ctx context.Context) error {
	fence := make(chan struct{})
	d.Submit(func() { close(fence) })
	select {
	case <-fence:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Alloc hands out a slab from the free list, growing the list on a cold
// start. After a warm-up pass allocation settles into pure reuse.
func (d *Device) Alloc() []float64 {
	select {
	case buf := <-d.free:
		return buf
	default:
		return make([]float64, d.size)
	}
}

func (d *Device) recycle(buf []float64) {
	select {
	case d.free <- buf:
	default:
		// Free list full; let the slab go to the collector.
	}
}

// Close shuts the device down after outstanding kernels run to completion.
func (d *Device) Close() {
	close(d.queue)
	<-d.done
}

// Buffer is a device-owned slab handed back by a repetition. Releasing it
// returns the slab to the device free list; a Buffer must be released
// exactly once.
type Buffer struct {
	dev      *Device
	data     []float64
	released bool
}

// Release returns the slab to the device. Calling it twice is an error.
func (b *Buffer) Release() error {
	if b.released {
		return errors.New("workload: buffer released twice")
	}
	b.released = true
	b.dev.recycle(b.data)
	b.data = nil
	return nil
}
