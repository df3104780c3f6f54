package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpenFileMissingFileIsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if snapshot := st.Snapshot(); len(snapshot) != 0 {
		t.Fatalf("snapshot of missing file = %v, want empty", snapshot)
	}
}

func TestFileStorePersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	err = st.Update(func(tx Tx) error {
		tx.Set("receiver_name", "Test Receiver")
		tx.Set("fft_fps", 25)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	want := map[string]any{
		"receiver_name": "Test Receiver",
		"fft_fps":       float64(25), // JSON numbers decode as float64
	}
	if diff := cmp.Diff(want, reopened.Snapshot()); diff != "" {
		t.Fatalf("persisted state mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStoreUpdateRollsBackOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	st.Set("keep", "original")
	if err := st.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	boom := errors.New("boom")
	err = st.Update(func(tx Tx) error {
		tx.Set("keep", "mutated")
		tx.Set("extra", true)
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v, want boom", err)
	}

	if value, _ := st.Get("keep"); value != "original" {
		t.Fatalf("keep = %v after failed update, want original", value)
	}
	if _, ok := st.Get("extra"); ok {
		t.Fatal("extra leaked from failed update")
	}
}

func TestFileStorePersistLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.json")
	st, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	st.Set("key", "value")
	if err := st.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".settings-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestFileStoreUpdateSurfacesPersistFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	st, err := OpenFile(filepath.Join(dir, "settings.json"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := st.Update(func(tx Tx) error {
		tx.Set("keep", "original")
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Removing the directory makes the temp file creation inside persist
	// fail after the callback already succeeded.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}

	err = st.Update(func(tx Tx) error {
		tx.Set("keep", "mutated")
		tx.Set("extra", true)
		return nil
	})
	var storageErr *StorageError
	if !errors.As(err, &storageErr) {
		t.Fatalf("Update error = %v (%T), want *StorageError", err, err)
	}

	if value, _ := st.Get("keep"); value != "original" {
		t.Fatalf("keep = %v after failed persist, want original", value)
	}
	if _, ok := st.Get("extra"); ok {
		t.Fatal("extra leaked from an update whose persist failed")
	}
}

func TestFileStoreDefaultsLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	st, err := OpenFile(path, WithDefaults(map[string]any{
		"fft_fps":       9,
		"receiver_name": "Default Receiver",
	}))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	// Reads fall through to defaults.
	if value, ok := st.Get("fft_fps"); !ok || value != 9 {
		t.Fatalf("Get(fft_fps) = %v, %v; want default 9", value, ok)
	}

	// Overlay wins over defaults.
	st.Set("receiver_name", "Mine")
	if value, _ := st.Get("receiver_name"); value != "Mine" {
		t.Fatalf("overlay did not shadow default: %v", value)
	}

	// Deleting an overlay key falls back to the default.
	st.Delete("receiver_name")
	if value, _ := st.Get("receiver_name"); value != "Default Receiver" {
		t.Fatalf("delete did not restore default: %v", value)
	}

	// Persist writes the overlay only, never the defaults.
	st.Set("receiver_name", "Mine")
	if err := st.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if _, ok := onDisk["fft_fps"]; ok {
		t.Fatal("default value leaked into the overlay file")
	}
	if onDisk["receiver_name"] != "Mine" {
		t.Fatalf("overlay file = %v", onDisk)
	}
}

func TestParseDefaultsYAML(t *testing.T) {
	defaults, err := ParseDefaults([]byte(`
receiver_name: Default Receiver
fft_fps: 9
services_decoders:
  - ft8
  - wspr
nested:
  lat: 47.5
  lon: 19.05
`))
	if err != nil {
		t.Fatalf("ParseDefaults: %v", err)
	}

	if defaults["receiver_name"] != "Default Receiver" {
		t.Fatalf("receiver_name = %v", defaults["receiver_name"])
	}
	decoders, ok := defaults["services_decoders"].([]any)
	if !ok || len(decoders) != 2 {
		t.Fatalf("services_decoders = %#v", defaults["services_decoders"])
	}
	nested, ok := defaults["nested"].(map[string]any)
	if !ok || nested["lat"] != 47.5 {
		t.Fatalf("nested = %#v", defaults["nested"])
	}
}

func TestParseDefaultsRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseDefaults([]byte("key: [unclosed")); err == nil {
		t.Fatal("ParseDefaults accepted malformed YAML")
	}
	var storageErr *StorageError
	_, err := ParseDefaults([]byte("key: [unclosed"))
	if !errors.As(err, &storageErr) {
		t.Fatalf("error is %T, want *StorageError", err)
	}
}

func TestMemoryStoreUpdateIsAtomic(t *testing.T) {
	st := NewMemory(map[string]any{"existing": "value"})

	boom := errors.New("boom")
	err := st.Update(func(tx Tx) error {
		tx.Set("new", "value")
		tx.Delete("existing")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v", err)
	}

	want := map[string]any{"existing": "value"}
	if diff := cmp.Diff(want, st.Snapshot()); diff != "" {
		t.Fatalf("state changed after failed update (-want +got):\n%s", diff)
	}
}
