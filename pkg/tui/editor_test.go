package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-settingsforms/pkg/forms"
	"github.com/goliatone/go-settingsforms/pkg/schema"
	"github.com/goliatone/go-settingsforms/pkg/store"
)

// fakeDriver feeds scripted answers to the editor and records everything it
// was asked to display.
type fakeDriver struct {
	inputs   []string
	confirms []bool
	selects  []int
	multis   [][]int
	infos    []string
}

func (d *fakeDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	return d.popInput()
}

func (d *fakeDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	return d.popInput()
}

func (d *fakeDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, errors.New("fake: no confirm scripted")
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *fakeDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, errors.New("fake: no select scripted")
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *fakeDriver) MultiSelect(_ context.Context, _ SelectConfig) ([]int, error) {
	if len(d.multis) == 0 {
		return nil, errors.New("fake: no multi-select scripted")
	}
	out := d.multis[0]
	d.multis = d.multis[1:]
	return out, nil
}

func (d *fakeDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	return d.popInput()
}

func (d *fakeDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func (d *fakeDriver) popInput() (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("fake: no input scripted")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func editorSchema(t *testing.T) *schema.Schema {
	t.Helper()
	page, err := schema.New(
		schema.NewSection("Receiver",
			forms.NewText("receiver_name", "Receiver name"),
			forms.NewCheckbox("services_enabled", "Service", "Enable background decoding"),
			forms.NewDropdown("audio_compression", "Audio compression", []forms.Option{
				forms.NewOption("adpcm", "ADPCM"),
				forms.NewOption("none", "None"),
			}),
		),
	)
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}
	return page
}

func TestEditorAppliesAnswers(t *testing.T) {
	st := store.NewMemory(map[string]any{"receiver_name": "Old Name"})
	driver := &fakeDriver{
		inputs:   []string{"New Name"},
		confirms: []bool{true, true}, // checkbox, then final apply
		selects:  []int{1},
	}

	editor := NewEditor(editorSchema(t), st, WithDriver(driver))
	if err := editor.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := map[string]any{
		"receiver_name":     "New Name",
		"services_enabled":  true,
		"audio_compression": "none",
	}
	if diff := cmp.Diff(want, st.Snapshot()); diff != "" {
		t.Fatalf("store state mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorRepromptsOnInvalidValue(t *testing.T) {
	page, err := schema.New(
		schema.NewSection("Waterfall", forms.NewNumber("fft_fps", "FFT speed")),
	)
	if err != nil {
		t.Fatalf("schema.New: %v", err)
	}

	st := store.NewMemory(nil)
	driver := &fakeDriver{
		inputs:   []string{"fast", "25"},
		confirms: []bool{true},
	}

	editor := NewEditor(page, st, WithDriver(driver))
	if err := editor.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if value, _ := st.Get("fft_fps"); value != 25 {
		t.Fatalf("fft_fps = %v, want 25", value)
	}

	var sawInvalid bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, "Invalid value") {
			sawInvalid = true
		}
	}
	if !sawInvalid {
		t.Fatalf("no invalid-value message shown: %v", driver.infos)
	}
}

func TestEditorDeclinedConfirmationAborts(t *testing.T) {
	seed := map[string]any{"receiver_name": "Old Name"}
	st := store.NewMemory(seed)
	driver := &fakeDriver{
		inputs:   []string{"New Name"},
		confirms: []bool{true, false}, // answer prompts, decline apply
		selects:  []int{0},
	}

	editor := NewEditor(editorSchema(t), st, WithDriver(driver))
	if err := editor.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("Run error = %v, want ErrAborted", err)
	}

	if diff := cmp.Diff(seed, st.Snapshot()); diff != "" {
		t.Fatalf("declined edit mutated the store (-want +got):\n%s", diff)
	}
}
