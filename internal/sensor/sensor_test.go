package sensor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScale(t *testing.T) {
	tests := []struct {
		raw  string
		bits int
		want uint16
	}{
		{"0", 12, 0},
		{"4095", 12, 0xfff0},
		{"2048", 12, 0x8000},
		{"65535", 16, 65535},
		{"1023", 10, 0xffc0},
		{"5000", 12, 0xfff0}, // clamped
	}
	for _, tt := range tests {
		got, err := scale(tt.raw, tt.bits)
		if err != nil {
			t.Errorf("scale(%q, %d): unexpected error: %v", tt.raw, tt.bits, err)
			continue
		}
		if got != tt.want {
			t.Errorf("scale(%q, %d) = %#x, want %#x", tt.raw, tt.bits, got, tt.want)
		}
	}
}

func TestScaleInvalid(t *testing.T) {
	if _, err := scale("abc", 12); err == nil {
		t.Error("expected parse error")
	}
}

func TestIIOReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	if err := os.WriteFile(path, []byte("1234\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewIIOReader(path, 12)
	if err != nil {
		t.Fatalf("NewIIOReader: %v", err)
	}
	got, err := r.ReadRaw()
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	if got != 1234<<4 {
		t.Errorf("got %d, want %d", got, 1234<<4)
	}

	// The kernel rewrites the file on every read.
	if err := os.WriteFile(path, []byte("10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, _ = r.ReadRaw()
	if got != 160 {
		t.Errorf("got %d, want 160", got)
	}
}

func TestNewIIOReaderErrors(t *testing.T) {
	if _, err := NewIIOReader(filepath.Join(t.TempDir(), "missing"), 12); err == nil {
		t.Error("expected error for missing channel")
	}
	if _, err := NewIIOReader(DefaultIIOPath, 0); err == nil {
		t.Error("expected error for 0-bit resolution")
	}
}

func TestFakePulse(t *testing.T) {
	f := NewFakePulse([]uint16{1, 2})
	for i, want := range []uint16{1, 2, 2} {
		got, err := f.ReadRaw()
		if err != nil {
			t.Fatalf("read %d: unexpected error: %v", i, err)
		}
		if got != want {
			t.Errorf("read %d: got %d, want %d", i, got, want)
		}
	}
	if f.Reads != 3 {
		t.Errorf("expected 3 reads, got %d", f.Reads)
	}

	f.ReadError = errors.New("adc fault")
	if _, err := f.ReadRaw(); err == nil {
		t.Error("expected error")
	}

	if _, err := NewFakePulse(nil).ReadRaw(); err == nil {
		t.Error("expected error with no samples")
	}
}
