// Package workload provides benchmark kernels that run against a simulated
// asynchronous compute device, for exercising the trial harness with a
// workload whose results must be materialized by a readback.
package workload

import (
	"context"
	"fmt"
	"math/rand"

	"stint/internal/trial"
)

// Kernel names accepted by New.
const (
	Saxpy  = "saxpy"
	Matmul = "matmul"
)

// Names lists the available kernels.
func Names() []string {
	return []string{Saxpy, Matmul}
}

// Bench drives one kernel against a Device. It implements trial.Workload:
// each repetition submits a kernel execution and transfers ownership of the
// output buffer; ending a trial waits for the device queue to drain.
type Bench struct {
	dev  *Device
	name string
	n    int
	x, y []float64
	run  func(dst, x, y []float64, n int)
}

// New builds a Bench for the named kernel. The size n is the vector length
// for saxpy and the matrix dimension for matmul.
func New(name string, n int) (*Bench, error) {
	if n < 1 {
		return nil, fmt.Errorf("workload size must be positive, got %d", n)
	}

	var (
		run  func(dst, x, y []float64, n int)
		slab int
	)
	switch name {
	case Saxpy:
		run, slab = saxpy, n
	case Matmul:
		run, slab = matmul, n*n
	default:
		return nil, fmt.Errorf("unknown workload %q (available: %v)", name, Names())
	}

	return &Bench{
		dev:  NewDevice(slab),
		name: name,
		n:    n,
		x:    randomSlab(slab),
		y:    randomSlab(slab),
		run:  run,
	}, nil
}

// Name returns the kernel name.
func (b *Bench) Name() string { return b.name }

// DoRep submits one kernel execution and hands the output buffer to the
// caller, which owns it until release.
func (b *Bench) DoRep() ([]trial.Resource, error) {
	dst := b.dev.Alloc()
	b.dev.Submit(func() { b.run(dst, b.x, b.y, b.n) })
	return []trial.Resource{&Buffer{dev: b.dev, data: dst}}, nil
}

// EndTrial is the readback: it blocks until every kernel submitted during
// the trial has executed.
func (b *Bench) EndTrial(ctx context.Context) error {
	return b.dev.Sync(ctx)
}

// Close shuts the underlying device down.
func (b *Bench) Close() {
	b.dev.Close()
}

func saxpy(dst, x, y []float64, n int) {
	const a = 2.5
	for i := 0; i < n; i++ {
		dst[i] = a*x[i] + y[i]
	}
}

func matmul(dst, x, y []float64, n int) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var sum float64
			for k := 0; k < n; k++ {
				sum += x[i*n+k] * y[k*n+j]
			}
			dst[i*n+j] = sum
		}
	}
}

func randomSlab(n int) []float64 {
	buf := make([]float64, n)
	for i := range buf {
		buf[i] = rand.Float64()
	}
	return buf
}
