package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.db")
	st, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	err = st.Update(func(tx Tx) error {
		tx.Set("receiver_name", "Test Receiver")
		tx.Set("fft_fps", 25)
		tx.Set("services_decoders", []string{"ft8", "wspr"})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	st.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	// Values travel through JSON, so numbers come back as float64 and
	// string slices as []any.
	want := map[string]any{
		"receiver_name":     "Test Receiver",
		"fft_fps":           float64(25),
		"services_decoders": []any{"ft8", "wspr"},
	}
	if diff := cmp.Diff(want, reopened.Snapshot()); diff != "" {
		t.Fatalf("persisted state mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteStoreDelete(t *testing.T) {
	st := openTestDB(t)

	if err := st.Update(func(tx Tx) error {
		tx.Set("key", "value")
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := st.Update(func(tx Tx) error {
		tx.Delete("key")
		return nil
	}); err != nil {
		t.Fatalf("Update delete: %v", err)
	}

	if _, ok := st.Get("key"); ok {
		t.Fatal("key still present after delete")
	}
}

func TestSQLiteStoreUpdateSurfacesPersistFailure(t *testing.T) {
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "settings.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := st.Update(func(tx Tx) error {
		tx.Set("keep", "original")
		return nil
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	// Closing the database makes the persist step fail after the callback
	// already mutated the working copy.
	st.Close()

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

func TestSQLiteStoreUpdateRollsBackOnError(t *testing.T) {
	st := openTestDB(t)
	st.Set("keep", "original")
	if err := st.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	boom := errors.New("boom")
	err := st.Update(func(tx Tx) error {
		tx.Set("keep", "mutated")
		tx.Delete("keep")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update error = %v", err)
	}

	if value, _ := st.Get("keep"); value != "original" {
		t.Fatalf("keep = %v after failed update", value)
	}
}
