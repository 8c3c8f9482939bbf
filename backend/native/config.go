// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package native

import "time"

// Config configures a native Device.
type Config struct {
	// FenceTimeout bounds how long Submit waits for the GPU.
	// Default: 5 seconds.
	FenceTimeout time.Duration

	// Label prefixes the debug labels of HAL objects the device creates.
	// Default: "framegraph".
	Label string
}

// DefaultConfig returns the default device configuration.
func DefaultConfig() Config {
	return Config{
		FenceTimeout: 5 * time.Second,
		Label:        "framegraph",
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FenceTimeout <= 0 {
		c.FenceTimeout = d.FenceTimeout
	}
	if c.Label == "" {
		c.Label = d.Label
	}
	return c
}
