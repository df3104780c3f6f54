// Package demo declares the SDR receiver settings page used by the CLI and
// the HTTP example. It exercises every input variant the framework ships.
package demo

import (
	"github.com/goliatone/go-settingsforms/pkg/forms"
	"github.com/goliatone/go-settingsforms/pkg/schema"
)

var compressionOptions = []forms.Option{
	forms.NewOption("adpcm", "ADPCM"),
	forms.NewOption("none", "None"),
}

var deemphasisOptions = []forms.Option{
	forms.NewOption("50", "50 µs (everywhere else)"),
	forms.NewOption("75", "75 µs (Americas, South Korea)"),
}

// Schema builds the receiver settings page. Panics on a malformed page
// definition, which is a programming error.
func Schema() *schema.Schema {
	return schema.MustNew(
		schema.NewSection(
			"Receiver information",
			forms.NewText("receiver_name", "Receiver name"),
			forms.NewText("receiver_location", "Receiver location"),
			forms.NewNumber("receiver_asl", "Receiver elevation",
				forms.WithAppend("meters above mean sea level")),
			forms.NewText("receiver_admin", "Receiver admin",
				forms.WithConverter(forms.OptionalConverter{}),
				forms.WithPlaceholder("admin@example.com")),
			forms.NewLocation("receiver_gps", "Receiver coordinates"),
			forms.NewTextArea("photo_desc", "Photo description",
				forms.WithConverter(forms.OptionalConverter{})),
		),
		schema.NewSection(
			"Receiver images",
			forms.NewAvatar("receiver_avatar", "Receiver avatar", "/static/avatar.png"),
		),
		schema.NewSection(
			"Receiver listings",
			forms.NewTextArea("receiver_keys", "Receiver keys",
				forms.WithConverter(forms.TextListConverter{}),
				forms.WithInfoText(`Put the keys you receive on listing sites (e.g. <a href="https://www.receiverbook.de">Receiverbook</a>) here, one per line`)),
		),
		schema.NewSection(
			"Waterfall settings",
			forms.NewNumber("fft_fps", "FFT speed",
				forms.WithInfoText("How many waterfall lines are drawn per second. Higher values use more CPU."),
				forms.WithAppend("frames per second")),
			forms.NewNumber("fft_size", "FFT size", forms.WithAppend("bins")),
			forms.NewFloat("fft_voverlap_factor", "FFT vertical overlap factor"),
			forms.NewNumber("waterfall_min_level", "Lowest waterfall level", forms.WithAppend("dBFS")),
			forms.NewNumber("waterfall_max_level", "Highest waterfall level", forms.WithAppend("dBFS")),
		),
		schema.NewSection(
			"Compression",
			forms.NewDropdown("audio_compression", "Audio compression", compressionOptions),
			forms.NewDropdown("fft_compression", "Waterfall compression", compressionOptions),
		),
		schema.NewSection(
			"Demodulator settings",
			forms.NewNumber("squelch_auto_margin", "Auto-squelch threshold",
				forms.WithInfoText("Offset added to the current signal level when using the auto-squelch"),
				forms.WithAppend("dB")),
			forms.NewDropdown("wfm_deemphasis_tau", "WFM deemphasis tau", deemphasisOptions),
		),
		schema.NewSection(
			"Decoding settings",
			forms.NewNumber("decoding_queue_workers", "Number of decoding workers"),
			forms.NewNumber("decoding_queue_length", "Maximum length of decoding job queue"),
			forms.NewNumber("wsjt_decoding_depth", "Default WSJT decoding depth",
				forms.WithInfoText("A higher decoding depth allows more results but consumes more CPU")),
			forms.NewMultiCheckbox("fst4_enabled_intervals", "Enabled FST4 intervals",
				intervalOptions(60, 120, 300, 900, 1800)),
			forms.NewMultiCheckbox("fst4w_enabled_intervals", "Enabled FST4W intervals",
				intervalOptions(120, 300, 900, 1800)),
			forms.NewCheckboxMatrix("q65_enabled_combinations", "Enabled Q65 mode combinations",
				[]forms.Option{
					forms.NewOption("A", "Mode A"),
					forms.NewOption("B", "Mode B"),
					forms.NewOption("C", "Mode C"),
				},
				intervalOptions(15, 30, 60, 120, 300),
			),
		),
		schema.NewSection(
			"Background decoding",
			forms.NewCheckbox("services_enabled", "Service", "Enable background decoding services"),
			forms.NewMultiCheckbox("services_decoders", "Enabled services", []forms.Option{
				forms.NewOption("ft8", "FT8"),
				forms.NewOption("ft4", "FT4"),
				forms.NewOption("wspr", "WSPR"),
				forms.NewOption("packet", "Packet"),
			}),
		),
		schema.NewSection(
			"APRS settings",
			forms.NewText("aprs_callsign", "APRS callsign",
				forms.WithConverter(forms.OptionalConverter{}),
				forms.WithInfoText("This callsign will be used to send data to the APRS-IS network")),
			forms.NewCheckbox("aprs_igate_enabled", "APRS I-Gate", "Send received APRS data to APRS-IS"),
			forms.NewText("aprs_igate_server", "APRS-IS server",
				forms.WithConverter(forms.OptionalConverter{})),
			forms.NewPassword("aprs_igate_password", "APRS-IS network password"),
		),
	)
}

// Defaults are the values the page falls back to for keys the operator has
// never set, in the shape the file store's defaults layer expects.
func Defaults() map[string]any {
	return map[string]any{
		"receiver_name":           "OpenWebRX receiver",
		"receiver_location":       "The Internet",
		"receiver_asl":            200,
		"fft_fps":                 9,
		"fft_size":                4096,
		"fft_voverlap_factor":     0.3,
		"waterfall_min_level":     -88,
		"waterfall_max_level":     -20,
		"audio_compression":       "adpcm",
		"fft_compression":         "adpcm",
		"squelch_auto_margin":     10,
		"wfm_deemphasis_tau":      "50",
		"decoding_queue_workers":  2,
		"decoding_queue_length":   10,
		"wsjt_decoding_depth":     3,
		"fst4_enabled_intervals":  []string{},
		"fst4w_enabled_intervals": []string{},
		"services_enabled":        false,
		"services_decoders":       []string{"ft8", "wspr"},
	}
}

func intervalOptions(seconds ...int) []forms.Option {
	return forms.OptionRange(seconds, "%ds")
}
