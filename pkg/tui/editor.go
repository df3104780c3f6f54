package tui

import (
	"context"
	"fmt"
	"net/url"

	"github.com/goliatone/go-settingsforms/pkg/forms"
	"github.com/goliatone/go-settingsforms/pkg/schema"
	"github.com/goliatone/go-settingsforms/pkg/store"
)

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithDriver replaces the interactive survey driver, mainly for tests.
func WithDriver(driver PromptDriver) EditorOption {
	return func(e *Editor) {
		if driver != nil {
			e.driver = driver
		}
	}
}

// Editor walks a settings schema input by input, prompting for each value
// and validating through the same Parse path the web form uses. Nothing is
// written until every prompt has been answered and the operator confirms.
type Editor struct {
	schema *schema.Schema
	store  store.Store
	driver PromptDriver
}

// NewEditor builds an editor over a schema and its backing store.
func NewEditor(pageSchema *schema.Schema, st store.Store, opts ...EditorOption) *Editor {
	e := &Editor{
		schema: pageSchema,
		store:  st,
		driver: NewSurveyDriver(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// field is the accessor surface every concrete input shares.
type field interface {
	Key() string
	Label() string
	Display(forms.Values) string
}

// Run prompts through every section, then commits the merged delta in one
// store update. Returns ErrAborted when the operator interrupts or declines
// the final confirmation.
func (e *Editor) Run(ctx context.Context) error {
	values := forms.Values(e.store.Snapshot())
	delta := make(forms.Delta)

	for _, section := range e.schema.Sections() {
		if err := e.driver.Info(ctx, "== "+section.Title()+" =="); err != nil {
			return err
		}
		for _, input := range section.Inputs() {
			partial, err := e.editInput(ctx, input, values)
			if err != nil {
				return err
			}
			for key, value := range partial {
				delta[key] = value
			}
		}
	}

	if len(delta) == 0 {
		return e.driver.Info(ctx, "No changes to apply.")
	}

	ok, err := e.driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Apply %d setting(s)?", len(delta)),
		Default: true,
	})
	if err != nil {
		return err
	}
	if !ok {
		return ErrAborted
	}

	return e.store.Update(func(tx store.Tx) error {
		for key, value := range delta {
			if _, isDelete := value.(forms.DeleteMarker); isDelete {
				tx.Delete(key)
			} else {
				tx.Set(key, value)
			}
		}
		return nil
	})
}

// editInput prompts for one input and re-prompts until the submission
// validates.
func (e *Editor) editInput(ctx context.Context, input forms.Input, values forms.Values) (forms.Delta, error) {
	for {
		data, skip, err := e.prompt(ctx, input, values)
		if err != nil {
			return nil, err
		}
		if skip {
			return forms.Delta{}, nil
		}

		delta, err := input.Parse(data)
		if err == nil {
			return delta, nil
		}
		if infoErr := e.driver.Info(ctx, "Invalid value: "+err.Error()); infoErr != nil {
			return nil, infoErr
		}
	}
}

// prompt renders one input as a terminal interaction and encodes the answer
// the way a browser would submit it.
func (e *Editor) prompt(ctx context.Context, input forms.Input, values forms.Values) (url.Values, bool, error) {
	data := url.Values{}

	switch in := input.(type) {
	case *forms.CheckboxInput:
		checked, err := e.driver.Confirm(ctx, ConfirmConfig{
			Message: in.Label(),
			Default: in.Checked(values),
			Help:    in.CheckboxText(),
		})
		if err != nil {
			return nil, false, err
		}
		if checked {
			data.Set(in.Key(), "on")
		}
		return data, false, nil

	case *forms.DropdownInput:
		labels, ids := optionColumns(in.Options())
		idx, err := e.driver.Select(ctx, SelectConfig{
			Message:      in.Label(),
			Options:      labels,
			DefaultIndex: indexOf(ids, in.Selected(values)),
		})
		if err != nil {
			return nil, false, err
		}
		if idx >= 0 && idx < len(ids) {
			data.Set(in.Key(), ids[idx])
		}
		return data, false, nil

	case *forms.MultiCheckboxInput:
		labels, ids := optionColumns(in.Options())
		picked, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message:  in.Label(),
			Options:  labels,
			Defaults: indicesOf(ids, in.Selected(values)),
		})
		if err != nil {
			return nil, false, err
		}
		for _, idx := range picked {
			data.Add(in.Key(), ids[idx])
		}
		return data, false, nil

	case *forms.CheckboxMatrixInput:
		cells := in.Cells()
		picked, err := e.driver.MultiSelect(ctx, SelectConfig{
			Message:  in.Label(),
			Options:  cells,
			Defaults: indicesOf(cells, in.Selected(values)),
		})
		if err != nil {
			return nil, false, err
		}
		for _, idx := range picked {
			data.Add(in.Key(), cells[idx])
		}
		return data, false, nil

	case *forms.TextAreaInput:
		answer, err := e.driver.TextArea(ctx, TextAreaConfig{
			Message: in.Label(),
			Default: in.Display(values),
		})
		if err != nil {
			return nil, false, err
		}
		data.Set(in.Key(), answer)
		return data, false, nil

	case *forms.PasswordInput:
		answer, err := e.driver.Password(ctx, InputConfig{
			Message: in.Label(),
			Help:    "leave empty to keep the current value",
		})
		if err != nil {
			return nil, false, err
		}
		if answer != "" {
			data.Set(in.Key(), answer)
		}
		return data, false, nil

	case *forms.LocationInput:
		return e.promptLocation(ctx, in, values)

	case *forms.AvatarInput:
		// Image uploads need the web page; nothing to edit here.
		if err := e.driver.Info(ctx, in.Label()+": managed through the web interface, skipping."); err != nil {
			return nil, false, err
		}
		return nil, true, nil

	default:
		f, ok := input.(field)
		if !ok {
			return nil, true, nil
		}
		answer, err := e.driver.Input(ctx, InputConfig{
			Message: f.Label(),
			Default: f.Display(values),
		})
		if err != nil {
			return nil, false, err
		}
		data.Set(f.Key(), answer)
		return data, false, nil
	}
}

func (e *Editor) promptLocation(ctx context.Context, in *forms.LocationInput, values forms.Values) (url.Values, bool, error) {
	var latDefault, lonDefault string
	if lat, lon, ok := in.Coordinates(values); ok {
		latDefault = fmt.Sprintf("%g", lat)
		lonDefault = fmt.Sprintf("%g", lon)
	}

	lat, err := e.driver.Input(ctx, InputConfig{
		Message: in.Label() + " latitude",
		Default: latDefault,
	})
	if err != nil {
		return nil, false, err
	}
	lon, err := e.driver.Input(ctx, InputConfig{
		Message: in.Label() + " longitude",
		Default: lonDefault,
	})
	if err != nil {
		return nil, false, err
	}

	data := url.Values{}
	data.Set(in.Key()+"-lat", lat)
	data.Set(in.Key()+"-lon", lon)
	return data, false, nil
}

func optionColumns(options []forms.Option) (labels, ids []string) {
	labels = make([]string, len(options))
	ids = make([]string, len(options))
	for i, option := range options {
		labels[i] = option.Label
		ids[i] = option.ID
	}
	return labels, ids
}
