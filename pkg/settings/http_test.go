package settings

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-settingsforms/pkg/store"
)

func newTestServer(t *testing.T, st store.Store) *httptest.Server {
	t.Helper()
	controller, err := New(testSchema(t), st, WithAction("/settings"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/settings", Handler(controller))
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHandlerGetRendersPage(t *testing.T) {
	server := newTestServer(t, store.NewMemory(map[string]any{"receiver_name": "Web Receiver"}))

	resp, err := http.Get(server.URL + "/settings")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Web Receiver") {
		t.Fatalf("stored value missing from page:\n%s", body)
	}
}

func TestHandlerPostRedirectsOnSuccess(t *testing.T) {
	st := store.NewMemory(nil)
	server := newTestServer(t, st)

	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Post(server.URL+"/settings",
		"application/x-www-form-urlencoded",
		strings.NewReader("receiver_name=Posted&fft_fps=25"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/settings" {
		t.Fatalf("redirect location = %q", loc)
	}
	if value, _ := st.Get("receiver_name"); value != "Posted" {
		t.Fatalf("store not updated: %v", value)
	}
}

func TestHandlerPostRerendersOnValidationFailure(t *testing.T) {
	st := store.NewMemory(map[string]any{"fft_fps": 9})
	server := newTestServer(t, st)

	resp, err := http.Post(server.URL+"/settings",
		"application/x-www-form-urlencoded",
		strings.NewReader("receiver_name=New&fft_fps=fast"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "sf-error") {
		t.Fatalf("field error missing:\n%s", body)
	}
	if value, _ := st.Get("fft_fps"); value != 9 {
		t.Fatalf("rejected submission mutated store: %v", value)
	}
}

func TestHandlerPostRejectsMalformedBody(t *testing.T) {
	st := store.NewMemory(map[string]any{"receiver_name": "Keep"})
	server := newTestServer(t, st)

	resp, err := http.Post(server.URL+"/settings",
		"application/x-www-form-urlencoded",
		strings.NewReader("receiver_name=%zz"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if value, _ := st.Get("receiver_name"); value != "Keep" {
		t.Fatalf("malformed submission mutated store: %v", value)
	}
}

// brokenStore answers every commit with a storage failure.
type brokenStore struct {
	*store.MemoryStore
	err error
}

func (s *brokenStore) Update(func(store.Tx) error) error { return s.err }

func TestHandlerPostReportsStorageFailure(t *testing.T) {
	st := &brokenStore{
		MemoryStore: store.NewMemory(nil),
		err:         &store.StorageError{Op: "write", Path: "settings.json", Err: io.ErrClosedPipe},
	}
	server := newTestServer(t, st)

	resp, err := http.Post(server.URL+"/settings",
		"application/x-www-form-urlencoded",
		strings.NewReader("receiver_name=Posted&fft_fps=25"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}
}

func TestHandlerRejectsOtherMethods(t *testing.T) {
	server := newTestServer(t, store.NewMemory(nil))

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/settings", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(raw)
}
