//go:build darwin
// +build darwin

// Package memprotect provides memory protection utilities for macOS.
package memprotect

import (
	"runtime"
	"syscall"
	"unsafe"

	"github.com/JessicaMulein/BrightChain/internal/tlog"
)

// LockMemory locks a memory region to prevent it from being swapped to disk.
// Returns false if protection is disabled or data is empty; otherwise the
// region is tracked and true is returned, with an mlock failure only
// logged.
func (mp *MemoryProtection) LockMemory(data []byte) bool {
	if !mp.enabled || len(data) == 0 {
		return false
	}

	ptr := unsafe.Pointer(&data[0])
	size := uintptr(len(data))

	if err := mlock(ptr, size); err != nil {
		tlog.Debug.Printf("MemoryProtection: mlock failed: %v", err)
	}

	mp.lockedPages = append(mp.lockedPages, ptr)
	tlog.Debug.Printf("MemoryProtection: Locked %d bytes at %p", len(data), ptr)
	return true
}

// UnlockMemory unlocks a previously locked memory region.
func (mp *MemoryProtection) UnlockMemory(data []byte) {
	if len(data) == 0 {
		return
	}

	ptr := unsafe.Pointer(&data[0])
	size := uintptr(len(data))

	if err := munlock(ptr, size); err != nil {
		tlog.Debug.Printf("MemoryProtection: munlock failed: %v", err)
	}

	for i, p := range mp.lockedPages {
		if p == ptr {
			mp.lockedPages = append(mp.lockedPages[:i], mp.lockedPages[i+1:]...)
			break
		}
	}
}

// LockAllMemory locks all current and future memory allocations.
func (mp *MemoryProtection) LockAllMemory() bool {
	if !mp.enabled {
		return false
	}
	if err := mlockall(syscall.MCL_CURRENT | syscall.MCL_FUTURE); err != nil {
		tlog.Debug.Printf("MemoryProtection: mlockall failed: %v", err)
		return false
	}
	return true
}

// UnlockAllMemory unlocks all memory.
func (mp *MemoryProtection) UnlockAllMemory() {
	if err := munlockall(); err != nil {
		tlog.Debug.Printf("MemoryProtection: munlockall failed: %v", err)
	}
}

// SecureWipe zeroes memory before unlocking.
func (mp *MemoryProtection) SecureWipe(data []byte) {
	if len(data) == 0 {
		return
	}
	for i := range data {
		data[i] = 0
	}
	runtime.GC()
	mp.UnlockMemory(data)
}

func mlock(ptr unsafe.Pointer, size uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_MLOCK, uintptr(ptr), size, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func munlock(ptr unsafe.Pointer, size uintptr) error {
	_, _, errno := syscall.Syscall(syscall.SYS_MUNLOCK, uintptr(ptr), size, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func mlockall(flags int) error {
	_, _, errno := syscall.Syscall(syscall.SYS_MLOCKALL, uintptr(flags), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

func munlockall() error {
	_, _, errno := syscall.Syscall(syscall.SYS_MUNLOCKALL, 0, 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}
