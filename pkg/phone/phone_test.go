package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"(555) 123-4567", "+15551234567"},
		{"555.123.4567", "+15551234567"},
		{"1-555-123-4567", "+15551234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"12345", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDisplay(t *testing.T) {
	if got := Display("5551234567"); got != "(555) 123-4567" {
		t.Fatalf("unexpected display %q", got)
	}
	if got := Display("abc"); got != "abc" {
		t.Fatalf("invalid input should be returned as is, got %q", got)
	}
}

func TestMask(t *testing.T) {
	if got := Mask("+15551234567"); got != "********4567" {
		t.Fatalf("unexpected mask %q", got)
	}
	if got := Mask("123"); got != "****" {
		t.Fatalf("short input should be fully masked, got %q", got)
	}
}
