package theme

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubSource struct {
	blob       string
	fetchErr   error
	persistErr error
	persisted  chan string
}

func newStubSource() *stubSource {
	return &stubSource{persisted: make(chan string, 4)}
}

func (s *stubSource) Fetch(ctx context.Context) (string, error) {
	return s.blob, s.fetchErr
}

func (s *stubSource) Persist(ctx context.Context, blob string) error {
	s.persisted <- blob
	return s.persistErr
}

func waitPersist(t *testing.T, s *stubSource) string {
	t.Helper()
	select {
	case blob := <-s.persisted:
		return blob
	case <-time.After(2 * time.Second):
		t.Fatal("persist was never called")
		return ""
	}
}

func TestLoadSystemAppliesLayer(t *testing.T) {
	m := NewMerger()
	system := newStubSource()
	system.blob = `{"background":{"opacity":0.9}}`
	l := NewLoader(m, system, newStubSource())

	l.LoadSystem(context.Background())

	if got := m.Effective().Background.Opacity; got != 0.9 {
		t.Errorf("opacity = %v, want 0.9", got)
	}
}

func TestLoadSystemToleratesFailure(t *testing.T) {
	tests := []struct {
		name string
		prep func(*stubSource)
	}{
		{name: "fetch_error", prep: func(s *stubSource) { s.fetchErr = errors.New("boom") }},
		{name: "absent", prep: func(s *stubSource) { s.blob = "" }},
		{name: "malformed", prep: func(s *stubSource) { s.blob = "{nope" }},
		{name: "non_object", prep: func(s *stubSource) { s.blob = `"just a string"` }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := NewMerger()
			system := newStubSource()
			test.prep(system)
			l := NewLoader(m, system, newStubSource())

			l.LoadSystem(context.Background())

			if got := m.Effective(); got != Default() {
				t.Errorf("effective config should stay default, got %+v", got)
			}
		})
	}
}

func TestApplyUserBlob(t *testing.T) {
	m := NewMerger()
	l := NewLoader(m, newStubSource(), newStubSource())

	l.ApplyUserBlob(`{"appearance":{"primaryColor":"#112233"}}`)
	if got := m.Effective().Appearance.PrimaryColor; got != "#112233" {
		t.Errorf("primaryColor = %q", got)
	}

	// Logout path: empty blob clears the layer.
	l.ApplyUserBlob("")
	if got := m.Effective(); got != Default() {
		t.Errorf("empty blob should clear user layer, got %+v", got)
	}
}

func TestSaveUserOptimisticAndPersisted(t *testing.T) {
	m := NewMerger()
	user := newStubSource()
	l := NewLoader(m, newStubSource(), user)

	p := &Partial{Appearance: &AppearancePartial{PrimaryColor: ptr("#445566")}}
	l.SaveUser(p)

	// The local layer applies synchronously, before persistence resolves.
	if got := m.Effective().Appearance.PrimaryColor; got != "#445566" {
		t.Errorf("local update not applied, primaryColor = %q", got)
	}

	blob := waitPersist(t, user)
	decoded, err := DecodeConfig(blob)
	if err != nil {
		t.Fatalf("persisted blob does not decode: %v", err)
	}
	if Merge(Default(), decoded) != Merge(Default(), p) {
		t.Error("persisted blob differs from the saved layer")
	}
}

func TestSaveUserPersistFailureKeepsLocalValue(t *testing.T) {
	m := NewMerger()
	user := newStubSource()
	user.persistErr = errors.New("backend down")
	l := NewLoader(m, newStubSource(), user)

	l.SaveUser(&Partial{Background: &BackgroundPartial{Blur: ptr(2)}})
	waitPersist(t, user)

	// Fire-and-forget: the optimistic value stays even though persistence
	// failed.
	if got := m.Effective().Background.Blur; got != 2 {
		t.Errorf("blur = %d, want optimistic 2", got)
	}
}
