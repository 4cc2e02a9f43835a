package envstore

import (
	"fmt"
	"sync"
)

// Memory is an in-process Store, used where the real registry is not
// available or must not be touched.
type Memory struct {
	mu       sync.Mutex
	value    string
	writes   int
	readErr  error
	writeErr error
}

func NewMemory(value string) *Memory {
	return &Memory{value: value}
}

func (m *Memory) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return "", fmt.Errorf("%w: %w", ErrRegistryAccess, m.readErr)
	}
	return m.value, nil
}

func (m *Memory) Write(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return fmt.Errorf("%w: %w", ErrRegistryAccess, m.writeErr)
	}
	m.value = value
	m.writes++
	return nil
}

// Value returns the stored value without counting as a read.
func (m *Memory) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Writes returns how many successful writes have happened.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// FailReads makes subsequent reads return err. Pass nil to clear.
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	m.readErr = err
	m.mu.Unlock()
}

// FailWrites makes subsequent writes return err. Pass nil to clear.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	m.writeErr = err
	m.mu.Unlock()
}
