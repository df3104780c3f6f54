package demo

import (
	"testing"
)

func TestSchemaConstructs(t *testing.T) {
	page := Schema()
	if got := len(page.Sections()); got == 0 {
		t.Fatal("schema has no sections")
	}
}

func TestDefaultsCoverSchemaKeysOnly(t *testing.T) {
	known := make(map[string]struct{})
	for _, section := range Schema().Sections() {
		for _, input := range section.Inputs() {
			for _, key := range input.Keys() {
				known[key] = struct{}{}
			}
		}
	}

	for key := range Defaults() {
		if _, ok := known[key]; !ok {
			t.Errorf("default %q has no input on the page", key)
		}
	}
}
