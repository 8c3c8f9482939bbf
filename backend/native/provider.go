// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/framegraph"
	"github.com/gogpu/framegraph/backend"
)

// halProvider is implemented by providers that expose their HAL objects,
// such as the gogpu application context.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// NewDeviceFromProvider wraps the HAL device and queue of a shared
// gpucontext provider. The provider keeps ownership of both.
func NewDeviceFromProvider(provider gpucontext.DeviceProvider, cfg Config) (*Device, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrProviderNotHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrProviderNotHAL, hp.HalQueue())
	}

	framegraph.Logger().Info("native: attached to shared device", "label", cfg.withDefaults().Label)
	return NewDevice(device, queue, cfg)
}

// Register makes the provider's device available from the backend
// registry under backend.BackendNative. The device is created lazily by
// backend.Get.
func Register(provider gpucontext.DeviceProvider, cfg Config) {
	backend.Register(backend.BackendNative, func() (framegraph.Device, error) {
		return NewDeviceFromProvider(provider, cfg)
	})
}
