package eeprom

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemStoreBounds(t *testing.T) {
	s := NewMemStore()
	s.WriteByte(-1, 0xFF)
	s.WriteByte(Size, 0xFF)
	if s.ReadByte(-1) != 0 || s.ReadByte(Size) != 0 {
		t.Error("out-of-range read returned nonzero")
	}
	s.WriteByte(0, 0x12)
	s.WriteByte(Size-1, 0x34)
	if s.ReadByte(0) != 0x12 || s.ReadByte(Size-1) != 0x34 {
		t.Error("edge cells did not hold their values")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.ReadByte(9) != 0 {
		t.Fatal("fresh store not zeroed")
	}
	s.WriteByte(9, 0xA5)
	s.WriteByte(10, 0b00010110)

	// Reopen: the write-through file carries the cells across runs.
	s2, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s2.ReadByte(9) != 0xA5 || s2.ReadByte(10) != 0b00010110 {
		t.Errorf("reopened cells = %x %x, want a5 16", s2.ReadByte(9), s2.ReadByte(10))
	}
}

func TestFileStoreShortFileReadsZeroed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eeprom.bin")
	if err := os.WriteFile(path, []byte{0x01, 0x02}, 0644); err != nil {
		t.Fatal(err)
	}
	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.ReadByte(0) != 0x01 || s.ReadByte(1) != 0x02 {
		t.Error("leading cells not loaded")
	}
	if s.ReadByte(2) != 0 || s.ReadByte(Size-1) != 0 {
		t.Error("cells past the short file not zeroed")
	}
}
