package theme

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name    string        `toml:"name"`
	Base    thTOMLBase    `toml:"base"`
	Widget  thTOMLWidget  `toml:"widget"`
	Risk    thTOMLRisk    `toml:"risk"`
	Source  thTOMLSource  `toml:"source"`
	Diff    thTOMLDiff    `toml:"diff"`
	Special thTOMLSpecial `toml:"special"`
}

type thTOMLBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type thTOMLWidget struct {
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
}

type thTOMLRisk struct {
	Low    string `toml:"low"`
	Medium string `toml:"medium"`
	High   string `toml:"high"`
}

type thTOMLSource struct {
	Official  string `toml:"official"`
	AUR       string `toml:"aur"`
	OutOfDate string `toml:"out_of_date"`
}

type thTOMLDiff struct {
	New     string `toml:"new"`
	Changed string `toml:"changed"`
	Removed string `toml:"removed"`
	Config  string `toml:"config"`
}

type thTOMLSpecial struct {
	SearchHighlight string `toml:"search_highlight"`
	HelpKey         string `toml:"help_key"`
	HelpDesc        string `toml:"help_desc"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFromTOML parses a TOML theme definition from raw bytes.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Border:      tt.Widget.Border,
		BorderFocus: tt.Widget.BorderFocus,
		Title:       tt.Widget.Title,

		RiskLow:    tt.Risk.Low,
		RiskMedium: tt.Risk.Medium,
		RiskHigh:   tt.Risk.High,

		SourceOfficial:  tt.Source.Official,
		SourceAUR:       tt.Source.AUR,
		SourceOutOfDate: tt.Source.OutOfDate,

		DiffNew:     tt.Diff.New,
		DiffChanged: tt.Diff.Changed,
		DiffRemoved: tt.Diff.Removed,
		DiffConfig:  tt.Diff.Config,

		SearchHighlight: tt.Special.SearchHighlight,
		HelpKey:         tt.Special.HelpKey,
		HelpDesc:        tt.Special.HelpDesc,
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}

	return t, nil
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	tt := thTOMLTheme{
		Name: t.Name,
		Base: thTOMLBase{
			Background: t.Background,
			Foreground: t.Foreground,
			Dim:        t.Dim,
			Accent:     t.Accent,
		},
		Widget: thTOMLWidget{
			Border:      t.Border,
			BorderFocus: t.BorderFocus,
			Title:       t.Title,
		},
		Risk: thTOMLRisk{
			Low:    t.RiskLow,
			Medium: t.RiskMedium,
			High:   t.RiskHigh,
		},
		Source: thTOMLSource{
			Official:  t.SourceOfficial,
			AUR:       t.SourceAUR,
			OutOfDate: t.SourceOutOfDate,
		},
		Diff: thTOMLDiff{
			New:     t.DiffNew,
			Changed: t.DiffChanged,
			Removed: t.DiffRemoved,
			Config:  t.DiffConfig,
		},
		Special: thTOMLSpecial{
			SearchHighlight: t.SearchHighlight,
			HelpKey:         t.HelpKey,
			HelpDesc:        t.HelpDesc,
		},
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thValidateTheme checks that all required color fields are present and valid hex.
func thValidateTheme(t Theme) error {
	fields := map[string]string{
		"name":             t.Name,
		"background":       t.Background,
		"foreground":       t.Foreground,
		"dim":              t.Dim,
		"accent":           t.Accent,
		"border":           t.Border,
		"border_focus":     t.BorderFocus,
		"title":            t.Title,
		"risk_low":         t.RiskLow,
		"risk_medium":      t.RiskMedium,
		"risk_high":        t.RiskHigh,
		"source_official":  t.SourceOfficial,
		"source_aur":       t.SourceAUR,
		"source_out_of_date": t.SourceOutOfDate,
		"diff_new":         t.DiffNew,
		"diff_changed":     t.DiffChanged,
		"diff_removed":     t.DiffRemoved,
		"diff_config":      t.DiffConfig,
		"search_highlight": t.SearchHighlight,
		"help_key":         t.HelpKey,
		"help_desc":        t.HelpDesc,
	}

	for field, value := range fields {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if field != "name" && !thHexColorRegex.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for field %q (expected #RRGGBB)", value, field)
		}
	}

	return nil
}
