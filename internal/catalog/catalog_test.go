package catalog

import (
	"testing"
	"time"
)

func TestLanguageCodes(t *testing.T) {
	want := map[Language]string{
		English: "en",
		Hindi:   "hi",
		Tamil:   "ta",
		Telugu:  "te",
		Spanish: "es",
	}
	for lang, code := range want {
		if got := lang.Code(); got != code {
			t.Errorf("%s.Code() = %q, want %q", lang, got, code)
		}
	}
	if got := Language("Klingon").Code(); got != "en" {
		t.Errorf("unknown language code = %q, want en", got)
	}
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{in: "English", want: English},
		{in: "tamil", want: Tamil},
		{in: " te ", want: Telugu},
		{in: "ES", want: Spanish},
		{in: "French", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLanguage(%q) succeeded", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLanguage(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSmartSuggestion(t *testing.T) {
	// 2024-06-03 is a Monday.
	monday := func(hour int) time.Time {
		return time.Date(2024, 6, 3, hour, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"weekend", time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), "🏥 Health emergency"},
		{"early morning", monday(7), "🚗 Traffic delay"},
		{"morning", monday(10), "💼 Urgent meeting called"},
		{"lunch", monday(13), "🩺 Doctor appointment"},
		{"afternoon", monday(16), "👨‍👩‍👧 Family responsibility"},
		{"night", monday(22), "⚡ Technical issues"},
		{"before dawn", monday(3), "⚡ Technical issues"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SmartSuggestion(tt.at); got != tt.want {
				t.Errorf("SmartSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBelievabilityBadge(t *testing.T) {
	if got := HighlyBelievable.Badge(); got != "🟢 Highly Believable" {
		t.Errorf("Badge() = %q", got)
	}
	if got := LessBelievable.Badge(); got != "🔴 Less Believable" {
		t.Errorf("Badge() = %q", got)
	}
	if got := SomewhatBelievable.Badge(); got != "🟡 Somewhat Believable" {
		t.Errorf("Badge() = %q", got)
	}
}
