package inventory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"usbagent/internal/peripheral"
)

func TestFileName(t *testing.T) {
	at := time.Date(2026, time.March, 9, 13, 5, 7, 0, time.UTC)
	if got := FileName(at); got != "03092026130507_usb.json" {
		t.Errorf("FileName() = %q, want 03092026130507_usb.json", got)
	}
}

func TestNewStoreCreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".peripherals", "usb", "buffer")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("buffer directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Fatalf("%s is not a directory", dir)
	}
}

func TestNewStoreIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		if _, err := NewStore(dir); err != nil {
			t.Fatalf("NewStore attempt %d: %v", i, err)
		}
	}
}

func TestNewStoreFailsWhenPathIsAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(path); err == nil {
		t.Fatal("NewStore over a regular file succeeded, want error")
	}
}

func TestWriteEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	at := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	path, err := store.Write(at, make(peripheral.Snapshot))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(dir, "01022026030405_usb.json"); path != want {
		t.Errorf("Write returned path %q, want %q", path, want)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot file: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("empty snapshot serialized as %q, want {}", data)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	snapshot := peripheral.Snapshot{
		"046d:082d": {
			Identifier:   "046d:082d",
			Name:         "HD Pro Webcam C920",
			Interface:    peripheral.InterfaceUSB,
			Classes:      []string{"Video"},
			Available:    peripheral.Available,
			SerialNumber: "ABC123",
			VideoDevice:  "/dev/video0",
		},
	}

	path, err := store.Write(time.Now(), snapshot)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot file: %v", err)
	}
	var got peripheral.Snapshot
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshaling snapshot file: %v", err)
	}
	rec, ok := got["046d:082d"]
	if !ok {
		t.Fatalf("snapshot file is missing 046d:082d: %s", data)
	}
	if rec.SerialNumber != "ABC123" || rec.VideoDevice != "/dev/video0" {
		t.Errorf("record round-tripped as %+v", rec)
	}
}

func TestWriteProducesOneFilePerPass(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	base := time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := store.Write(base.Add(time.Duration(i)*30*time.Second), make(peripheral.Snapshot)); err != nil {
			t.Fatalf("Write pass %d: %v", i, err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("buffer holds %d files after 3 passes, want 3", len(entries))
	}
}
