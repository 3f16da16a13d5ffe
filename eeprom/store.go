// Package eeprom is the opaque non-volatile byte store the options
// record lives in. Reads and writes are by fixed address with no error
// channel; storage faults are a collaborator concern.
package eeprom

import (
	"os"

	"github.com/hotchk155/midihub/debug"
)

// Size is the number of addressable cells.
const Size = 64

// ByteStore is the narrow interface the core consumes.
type ByteStore interface {
	ReadByte(addr int) byte
	WriteByte(addr int, b byte)
}

// MemStore is a volatile store for tests and ephemeral runs. Cells
// start zeroed, so a validity cookie never matches by accident.
type MemStore struct {
	cells [Size]byte
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) ReadByte(addr int) byte {
	if addr < 0 || addr >= Size {
		return 0
	}
	return s.cells[addr]
}

func (s *MemStore) WriteByte(addr int, b byte) {
	if addr < 0 || addr >= Size {
		return
	}
	s.cells[addr] = b
}

// FileStore keeps the cells in a flat file, write-through on every
// WriteByte the way the device rewrites its EEPROM.
type FileStore struct {
	path  string
	cells [Size]byte
}

// OpenFile loads the store from path. A missing or short file reads as
// zeroed cells, which the cookie check upstream treats as unwritten.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	copy(s.cells[:], data)
	return s, nil
}

func (s *FileStore) ReadByte(addr int) byte {
	if addr < 0 || addr >= Size {
		return 0
	}
	return s.cells[addr]
}

func (s *FileStore) WriteByte(addr int, b byte) {
	if addr < 0 || addr >= Size {
		return
	}
	s.cells[addr] = b
	if err := os.WriteFile(s.path, s.cells[:], 0644); err != nil {
		debug.Log("eeprom", "write %s: %v", s.path, err)
	}
}
