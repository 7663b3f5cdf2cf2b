package theme

import (
	"strings"
	"testing"
)

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace", raw: "   ", wantErr: true},
		{name: "not_json", raw: "{background", wantErr: true},
		{name: "json_null", raw: "null", wantErr: true},
		{name: "json_array", raw: "[1,2]", wantErr: true},
		{name: "json_number", raw: "42", wantErr: true},
		{name: "empty_object", raw: "{}"},
		{name: "single_encoded", raw: `{"background":{"opacity":0.5}}`},
		{name: "double_encoded", raw: `"{\"background\":{\"opacity\":0.5}}"`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeConfig(test.raw)
			if (err != nil) != test.wantErr {
				t.Fatalf("DecodeConfig(%q) error = %v, wantErr %t", test.raw, err, test.wantErr)
			}
		})
	}
}

func TestDecodeConfigUnwrapsToSameValue(t *testing.T) {
	single := `{"background":{"type":"video","opacity":0.8},"appearance":{"primaryColor":"#112233"}}`
	double := `"{\"background\":{\"type\":\"video\",\"opacity\":0.8},\"appearance\":{\"primaryColor\":\"#112233\"}}"`

	fromSingle, err := DecodeConfig(single)
	if err != nil {
		t.Fatalf("decode single: %v", err)
	}
	fromDouble, err := DecodeConfig(double)
	if err != nil {
		t.Fatalf("decode double: %v", err)
	}

	if Merge(Default(), fromSingle) != Merge(Default(), fromDouble) {
		t.Errorf("single and double encoded blobs should decode to the same layer")
	}
}

func TestDecodeConfigMalformedEqualsAbsent(t *testing.T) {
	m := NewMerger()
	system := &Partial{Background: &BackgroundPartial{Opacity: ptr(0.9)}}
	m.SetSystemConfig(system)

	// A corrupt user blob must be rejected before it reaches the merger, so
	// the effective config equals the layer being absent.
	if _, err := DecodeConfig(`{"background":`); err == nil {
		t.Fatal("expected error for corrupt blob")
	}
	want := Merge(Default(), system)
	if got := m.Effective(); got != want {
		t.Errorf("effective config changed despite corrupt blob:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestEncodeConfigSingleEncoding(t *testing.T) {
	p := &Partial{Background: &BackgroundPartial{URL: ptr("/bg/a.png"), Opacity: ptr(0.5)}}
	blob, err := EncodeConfig(p)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if strings.HasPrefix(blob, `"`) {
		t.Errorf("blob must not be string-wrapped: %s", blob)
	}
	if strings.Contains(blob, `\"`) {
		t.Errorf("blob contains nested encoding: %s", blob)
	}

	roundTrip, err := DecodeConfig(blob)
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if Merge(Default(), roundTrip) != Merge(Default(), p) {
		t.Error("round trip changed the layer")
	}
}

func TestEncodeConfigNil(t *testing.T) {
	if _, err := EncodeConfig(nil); err == nil {
		t.Error("expected error for nil layer")
	}
}
