// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/framegraph"
)

// createNoopDevice creates a noop HAL device for tests.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// newNoopDevice wraps a noop HAL device in a native Device.
func newNoopDevice(t *testing.T) *Device {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	dev, err := NewDevice(device, queue, DefaultConfig())
	if err != nil {
		t.Fatalf("NewDevice failed: %v", err)
	}
	return dev
}

// newGraph returns a graph with private metrics so tests do not share
// counters through DefaultMetrics.
func newGraph() *framegraph.FrameGraph {
	m := framegraph.NewGraphMetrics()
	cfg := framegraph.DefaultCacheConfig()
	cfg.Metrics = m
	return framegraph.New(
		framegraph.WithMetrics(m),
		framegraph.WithCache(framegraph.NewTransientResourceCache(cfg)),
	)
}

// addPass declares a pass through the graph's Pass helper and fails the
// test on a declaration error.
func addPass(t *testing.T, g *framegraph.FrameGraph, name string, fn func(pb *framegraph.PassBuilder)) {
	t.Helper()
	if _, err := g.Pass(name, func(pb *framegraph.PassBuilder) error {
		fn(pb)
		return nil
	}); err != nil {
		t.Fatalf("pass %q: %v", name, err)
	}
}

func storageBuffer(label string, size uint64) framegraph.BufferDescriptor {
	return framegraph.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: gputypes.BufferUsageStorage | gputypes.BufferUsageCopySrc | gputypes.BufferUsageCopyDst,
	}
}

// skipOnNagaLimitation skips the test when naga reports a missing feature.
func skipOnNagaLimitation(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		return
	}
	errStr := err.Error()
	if strings.Contains(errStr, "not yet implemented") || strings.Contains(errStr, "not supported") {
		t.Skipf("Skipping: naga feature not yet implemented: %v", err)
	}
	if strings.Contains(errStr, "lowering error") {
		t.Skipf("Skipping: naga lowering limitation: %v", err)
	}
	if strings.Contains(errStr, "native: compile shader") {
		t.Skipf("Skipping: naga cannot compile the shader: %v", err)
	}
}

// mockDevice implements gpucontext.Device for testing.
type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

// mockQueue implements gpucontext.Queue for testing.
type mockQueue struct{}

// mockAdapter implements gpucontext.Adapter for testing.
type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

// halMockProvider additionally exposes HAL objects.
type halMockProvider struct {
	mockProvider
	device any
	queue  any
}

func (m *halMockProvider) HalDevice() any { return m.device }
func (m *halMockProvider) HalQueue() any  { return m.queue }
