//go:build !linux && !darwin

// Package processhardening provides a fallback for unsupported platforms.
package processhardening

import (
	"runtime"

	"github.com/JessicaMulein/BrightChain/internal/tlog"
)

// HardenProcess is a no-op on platforms without a known hardening path.
func (ph *ProcessHardening) HardenProcess() {
	if !ph.enabled {
		return
	}
	tlog.Debug.Printf("ProcessHardening: no hardening available on this platform")
}

// KeepAlive ensures that a buffer remains in memory and is not garbage collected.
func (ph *ProcessHardening) KeepAlive(data []byte) {
	runtime.KeepAlive(data)
}

// SecureWipe zeroes memory; no memory locking is available on this platform.
func (ph *ProcessHardening) SecureWipe(data []byte) {
	if len(data) == 0 {
		return
	}
	for i := range data {
		data[i] = 0
	}
	runtime.GC()
	ph.KeepAlive(data)
}
