package theme

import "testing"

func ptr[T any](v T) *T { return &v }

func TestMergePrecedence(t *testing.T) {
	system := &Partial{
		Background: &BackgroundPartial{Opacity: ptr(0.9), URL: ptr("/bg/system.jpg")},
		Appearance: &AppearancePartial{PrimaryColor: ptr("#ff0000")},
	}
	user := &Partial{
		Appearance: &AppearancePartial{PrimaryColor: ptr("#112233")},
	}

	got := Merge(Default(), system, user)

	if got.Appearance.PrimaryColor != "#112233" {
		t.Errorf("user layer should win for primaryColor, got %q", got.Appearance.PrimaryColor)
	}
	if got.Background.Opacity != 0.9 {
		t.Errorf("system opacity should survive, got %v", got.Background.Opacity)
	}
	if got.Background.URL != "/bg/system.jpg" {
		t.Errorf("system url should survive, got %q", got.Background.URL)
	}
	// Fields no layer touches keep the default.
	if got.Background.Blur != Default().Background.Blur {
		t.Errorf("untouched blur should stay default, got %d", got.Background.Blur)
	}
	if got.Appearance.FontFamily != Default().Appearance.FontFamily {
		t.Errorf("untouched fontFamily should stay default, got %q", got.Appearance.FontFamily)
	}
}

func TestMergeFieldLevelNotSectionLevel(t *testing.T) {
	system := &Partial{Background: &BackgroundPartial{URL: ptr("/bg/system.jpg")}}
	user := &Partial{Background: &BackgroundPartial{Opacity: ptr(0.25)}}

	got := Merge(Default(), system, user)

	// The user override of one background field must not wipe the system's
	// override of a sibling field.
	if got.Background.URL != "/bg/system.jpg" {
		t.Errorf("section merge must be field-level; url = %q", got.Background.URL)
	}
	if got.Background.Opacity != 0.25 {
		t.Errorf("opacity = %v, want 0.25", got.Background.Opacity)
	}
}

func TestMergeNilLayers(t *testing.T) {
	if got := Merge(Default(), nil, nil); got != Default() {
		t.Errorf("merging nil layers changed the config: %+v", got)
	}
}

func TestMergeIdempotent(t *testing.T) {
	p := &Partial{
		Background: &BackgroundPartial{Type: ptr(BackgroundVideo), Blur: ptr(4)},
		Appearance: &AppearancePartial{Mode: ptr(ModeDark)},
	}
	once := Merge(Default(), p)
	twice := Merge(Default(), p, p)
	if once != twice {
		t.Errorf("applying the same layer twice diverged:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestMergerClearUserLayer(t *testing.T) {
	m := NewMerger()
	system := &Partial{Background: &BackgroundPartial{Opacity: ptr(0.4)}}
	m.SetSystemConfig(system)
	m.SetUserConfig(&Partial{Appearance: &AppearancePartial{PrimaryColor: ptr("#abcdef")}})

	m.SetUserConfig(nil)

	want := Merge(Default(), system)
	if got := m.Effective(); got != want {
		t.Errorf("clearing user layer should revert to system+default:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestMergerResetThemeKeepsSystemLayer(t *testing.T) {
	m := NewMerger()
	m.SetSystemConfig(&Partial{Background: &BackgroundPartial{URL: ptr("/bg/global.png")}})
	m.SetUserConfig(&Partial{Background: &BackgroundPartial{URL: ptr("/bg/mine.png")}})

	m.ResetTheme()

	got := m.Effective()
	if got.Background.URL != "/bg/global.png" {
		t.Errorf("reset should keep system layer, url = %q", got.Background.URL)
	}
}

func TestMergerLayersIndependent(t *testing.T) {
	m := NewMerger()
	m.SetSystemConfig(&Partial{Background: &BackgroundPartial{Opacity: ptr(0.9)}})
	m.SetUserConfig(&Partial{Appearance: &AppearancePartial{PrimaryColor: ptr("#112233")}})

	got := m.Effective()
	if got.Background.Opacity != 0.9 {
		t.Errorf("background.opacity = %v, want 0.9", got.Background.Opacity)
	}
	if got.Appearance.PrimaryColor != "#112233" {
		t.Errorf("appearance.primaryColor = %q, want #112233", got.Appearance.PrimaryColor)
	}
	// Everything else stays at the default.
	def := Default()
	if got.Background.Type != def.Background.Type || got.Background.URL != def.Background.URL ||
		got.Background.Blur != def.Background.Blur ||
		got.Appearance.FontFamily != def.Appearance.FontFamily ||
		got.Appearance.BorderRadius != def.Appearance.BorderRadius ||
		got.Appearance.Mode != def.Appearance.Mode {
		t.Errorf("untouched fields drifted from default: %+v", got)
	}
}

func TestMergerSubscriberNotifiedOnChange(t *testing.T) {
	m := NewMerger()
	var calls []Config
	m.Subscribe(func(c Config) { calls = append(calls, c) })

	m.SetUserConfig(&Partial{Appearance: &AppearancePartial{Mode: ptr(ModeDark)}})
	if len(calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(calls))
	}
	if calls[0].Appearance.Mode != ModeDark {
		t.Errorf("notified config mode = %q, want dark", calls[0].Appearance.Mode)
	}

	// Re-applying an identical layer must not notify again.
	m.SetUserConfig(&Partial{Appearance: &AppearancePartial{Mode: ptr(ModeDark)}})
	if len(calls) != 1 {
		t.Errorf("no-op update should not notify, got %d calls", len(calls))
	}
}
