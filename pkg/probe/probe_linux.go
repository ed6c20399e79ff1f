//go:build linux

package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"go.uber.org/zap"
)

const (
	nvmemGlob = "/sys/bus/nvmem/devices/*/nvmem"
	cpufreq   = "/sys/devices/system/cpu/cpu0/cpufreq/cpuinfo_max_freq"
	midrPath  = "/sys/devices/system/cpu/cpu0/regs/identification/midr_el1"

	// Used when cpufreq is not exposed, matching the rate the reference
	// boards run their big cores at.
	fallbackClockHz = 1_416_000_000
)

// Host probes the running Linux machine through sysfs and sysinfo(2).
type Host struct {
	sugar *zap.SugaredLogger
}

// NewHost returns a probe backed by the local machine.
func NewHost(logger *zap.Logger) *Host {
	return &Host{sugar: logger.Sugar()}
}

// Identity reads the first IdentitySize bytes from the first nvmem cell
// that is large enough. Parts without an exposed OTP block get an error;
// callers fall back to configured identity.
func (h *Host) Identity() ([]byte, error) {
	paths, err := filepath.Glob(nvmemGlob)
	if err != nil {
		return nil, err
	}
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil || len(raw) < IdentitySize {
			continue
		}
		h.sugar.Debugw("identity read", "nvmem", p, "bytes", len(raw))
		return raw[:IdentitySize], nil
	}
	return nil, fmt.Errorf("identity: no nvmem cell with %d bytes", IdentitySize)
}

// CoreClockHz reads the cpu0 max frequency. cpufreq reports kHz.
func (h *Host) CoreClockHz() (uint64, error) {
	raw, err := os.ReadFile(cpufreq)
	if err != nil {
		h.sugar.Debugw("cpufreq unavailable, using fallback rate", "err", err)
		return fallbackClockHz, nil
	}
	khz, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("cpufreq: %w", err)
	}
	return khz * 1000, nil
}

// MemoryBytes reports total RAM via sysinfo(2).
func (h *Host) MemoryBytes() (uint64, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0, err
	}
	return uint64(info.Totalram) * uint64(info.Unit), nil
}

// ProcessorID returns the cpu0 MIDR register value where the kernel
// exposes it (arm64), zero otherwise.
func (h *Host) ProcessorID() (uint64, error) {
	raw, err := os.ReadFile(midrPath)
	if err != nil {
		return 0, nil
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(string(raw)), "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("midr: %w", err)
	}
	return id, nil
}
