// internal/theme/merger.go
package theme

import (
	"reflect"
	"sync"
)

// Merge overlays the given layers onto base in order. Later layers win
// field-by-field: a present field overwrites, an absent field never does,
// so a user who customizes only the primary color still inherits the
// system background.
func Merge(base Config, overrides ...*Partial) Config {
	out := base
	for _, layer := range overrides {
		if layer == nil {
			continue
		}
		if layer.Background != nil {
			overlayFields(&out.Background, layer.Background)
		}
		if layer.Appearance != nil {
			overlayFields(&out.Appearance, layer.Appearance)
		}
	}
	return out
}

// overlayFields copies every non-nil pointer field of src onto the field of
// the same name in dst. One implementation serves both sections so their
// merge behavior cannot drift.
func overlayFields(dst, src any) {
	dstVal := reflect.ValueOf(dst).Elem()
	srcVal := reflect.ValueOf(src).Elem()
	srcType := srcVal.Type()

	for i := 0; i < srcVal.NumField(); i++ {
		field := srcVal.Field(i)
		if field.Kind() != reflect.Pointer || field.IsNil() {
			continue
		}
		target := dstVal.FieldByName(srcType.Field(i).Name)
		if !target.IsValid() || !target.CanSet() {
			continue
		}
		target.Set(field.Elem())
	}
}

// Merger owns the three configuration layers and recomputes the effective
// configuration synchronously whenever a layer changes. It is safe for
// concurrent use; calls apply in lock acquisition order.
type Merger struct {
	mu      sync.Mutex
	system  *Partial
	user    *Partial
	current Config
	subs    []func(Config)
}

func NewMerger() *Merger {
	return &Merger{current: Default()}
}

// SetUserConfig replaces the user layer; nil clears it. The operation has
// no I/O side effects — persistence is the caller's concern.
func (m *Merger) SetUserConfig(p *Partial) {
	m.mu.Lock()
	m.user = p
	m.recomputeLocked()
}

// SetSystemConfig replaces the admin/global layer; nil clears it.
func (m *Merger) SetSystemConfig(p *Partial) {
	m.mu.Lock()
	m.system = p
	m.recomputeLocked()
}

// ResetTheme clears only the user layer, reverting the effective
// configuration to default plus the system layer.
func (m *Merger) ResetTheme() {
	m.SetUserConfig(nil)
}

// Effective returns the current merged configuration.
func (m *Merger) Effective() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe registers fn to be called with the new effective configuration
// whenever it changes. fn runs synchronously on the mutating call.
func (m *Merger) Subscribe(fn func(Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

// recomputeLocked recomputes the effective config and releases the lock
// before notifying subscribers.
func (m *Merger) recomputeLocked() {
	next := Merge(Default(), m.system, m.user)
	changed := next != m.current
	m.current = next
	subs := m.subs
	m.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range subs {
		fn(next)
	}
}
