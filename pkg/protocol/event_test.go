package protocol

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{"input", `{"seq":1,"type":"input","field":"email","value":"jane@"}`, Event{Seq: 1, Type: EventInput, Field: "email", Value: "jane@"}},
		{"blur", `{"seq":2,"type":"blur","field":"name"}`, Event{Seq: 2, Type: EventBlur, Field: "name"}},
		{"submit", `{"seq":3,"type":"submit"}`, Event{Seq: 3, Type: EventSubmit}},
		{"reset", `{"seq":4,"type":"reset"}`, Event{Seq: 4, Type: EventReset}},
		{"ping", `{"seq":5,"type":"ping"}`, Event{Seq: 5, Type: EventPing}},
		{"empty value", `{"seq":6,"type":"input","field":"name","value":""}`, Event{Seq: 6, Type: EventInput, Field: "name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeEvent([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeEvent failed: %v", err)
			}
			if *got != tt.want {
				t.Errorf("got %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestDecodeEventErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"not json", `hello`, ErrMalformed},
		{"array", `[]`, ErrMalformed},
		{"trailing", `{"seq":1,"type":"ping"}{}`, ErrMalformed},
		{"unknown key", `{"seq":1,"type":"ping","hid":"h1"}`, ErrMalformed},
		{"bad seq", `{"seq":"one","type":"ping"}`, ErrMalformed},
		{"unknown type", `{"seq":1,"type":"click"}`, ErrUnknownEventType},
		{"missing type", `{"seq":1}`, ErrUnknownEventType},
		{"input without field", `{"seq":1,"type":"input","value":"x"}`, ErrMissingField},
		{"blur without field", `{"seq":1,"type":"blur"}`, ErrMissingField},
		{"long field", `{"seq":1,"type":"blur","field":"` + strings.Repeat("f", MaxFieldNameLength+1) + `"}`, ErrValueTooLong},
		{"long value", `{"seq":1,"type":"input","field":"message","value":"` + strings.Repeat("x", MaxValueLength+1) + `"}`, ErrValueTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeEventFrameTooLarge(t *testing.T) {
	data := make([]byte, MaxFrameSize+1)
	if _, err := DecodeEvent(data); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestDecodeEventCustomLimits(t *testing.T) {
	limits := Limits{FrameSize: 1024, ValueBytes: 4}

	if _, err := DecodeEventWithLimits([]byte(`{"seq":1,"type":"input","field":"name","value":"abcd"}`), limits); err != nil {
		t.Errorf("value at limit should pass, got %v", err)
	}
	_, err := DecodeEventWithLimits([]byte(`{"seq":1,"type":"input","field":"name","value":"abcde"}`), limits)
	if !errors.Is(err, ErrValueTooLong) {
		t.Errorf("expected ErrValueTooLong, got %v", err)
	}
}

func TestEncodeEvent(t *testing.T) {
	data, err := EncodeEvent(&Event{Seq: 9, Type: EventSubmit})
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if string(data) != `{"seq":9,"type":"submit"}` {
		t.Errorf("got %s", data)
	}

	back, err := DecodeEvent(data)
	if err != nil || back.Type != EventSubmit || back.Seq != 9 {
		t.Errorf("round trip failed: %+v, %v", back, err)
	}
}

func TestEventString(t *testing.T) {
	e := &Event{Seq: 3, Type: EventInput, Field: "email", Value: "secret"}
	if got := e.String(); got != "input(email)#3" {
		t.Errorf("got %q", got)
	}
	if got := (&Event{Seq: 4, Type: EventSubmit}).String(); got != "submit#4" {
		t.Errorf("got %q", got)
	}
}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ""},
		{ErrFrameTooLarge, ErrCodeInvalidFrame},
		{ErrMalformed, ErrCodeInvalidFrame},
		{ErrUnknownEventType, ErrCodeInvalidEvent},
		{ErrMissingField, ErrCodeInvalidEvent},
		{ErrValueTooLong, ErrCodeInvalidEvent},
		{errors.New("boom"), ErrCodeServerError},
	}
	for _, tt := range tests {
		if got := CodeFor(tt.err); got != tt.want {
			t.Errorf("CodeFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// FuzzDecodeEvent tests that decoding arbitrary bytes doesn't panic and
// that accepted events satisfy the decoding rules.
func FuzzDecodeEvent(f *testing.F) {
	f.Add([]byte(`{"seq":1,"type":"input","field":"email","value":"jane@"}`))
	f.Add([]byte(`{"seq":2,"type":"submit"}`))
	f.Add([]byte(`{"seq":3,"type":"blur"}`))
	f.Add([]byte(`{`))

	f.Fuzz(func(t *testing.T, data []byte) {
		e, err := DecodeEvent(data)
		if err != nil {
			return
		}
		if !e.Type.Valid() {
			t.Errorf("accepted unknown type %q", e.Type)
		}
		if e.Type.NeedsField() && e.Field == "" {
			t.Errorf("accepted %s without field", e.Type)
		}
		if len(e.Value) > MaxValueLength {
			t.Errorf("accepted value of %d bytes", len(e.Value))
		}
	})
}
