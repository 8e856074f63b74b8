// Package clipboard stores copied suggestion text in an internal register,
// optionally mirrored to the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	sysclip "github.com/atotto/clipboard"

	"github.com/averill/quill/internal/logger"
)

// Manager holds the internal register. With system mirroring enabled,
// writes also land on the OS clipboard and reads prefer it.
type Manager struct {
	mu        sync.Mutex
	register  string
	useSystem bool
}

// NewManager creates a clipboard manager. useSystem enables OS clipboard
// mirroring via the platform clipboard utilities.
func NewManager(useSystem bool) *Manager {
	if useSystem && sysclip.Unsupported {
		logger.WarnTagf("clipboard", "system clipboard unsupported on this platform, using internal register only")
		useSystem = false
	}
	return &Manager{useSystem: useSystem}
}

// Write stores text in the register and, when enabled, the system
// clipboard. The register is written even if the system copy fails.
func (m *Manager) Write(text string) error {
	m.mu.Lock()
	m.register = text
	useSystem := m.useSystem
	m.mu.Unlock()

	logger.DebugTagf("clipboard", "stored %d bytes", len(text))
	if useSystem {
		if err := sysclip.WriteAll(text); err != nil {
			return fmt.Errorf("write system clipboard: %w", err)
		}
	}
	return nil
}

// Read returns the clipboard content, preferring the system clipboard when
// mirroring is enabled and falling back to the register.
func (m *Manager) Read() (string, error) {
	m.mu.Lock()
	register := m.register
	useSystem := m.useSystem
	m.mu.Unlock()

	if useSystem {
		text, err := sysclip.ReadAll()
		if err != nil {
			return register, fmt.Errorf("read system clipboard: %w", err)
		}
		return text, nil
	}
	return register, nil
}
