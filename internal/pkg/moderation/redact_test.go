package moderation

import (
	"testing"
	"unicode/utf8"
)

func TestRedact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		flagged []string
		want    string
	}{
		{
			name:    "single flagged word",
			text:    "Eres un pendejo",
			flagged: []string{"pendejo"},
			want:    "Eres un *******",
		},
		{
			name:    "case insensitive match",
			text:    "Eres un PENDEJO total",
			flagged: []string{"pendejo"},
			want:    "Eres un ******* total",
		},
		{
			name:    "whole word only",
			text:    "el pendejismo no cuenta",
			flagged: []string{"pendejo"},
			want:    "el pendejismo no cuenta",
		},
		{
			name:    "every occurrence masked",
			text:    "idiota dice el idiota",
			flagged: []string{"idiota"},
			want:    "****** dice el ******",
		},
		{
			name:    "word flagged twice is idempotent",
			text:    "Eres un pendejo",
			flagged: []string{"pendejo", "pendejo"},
			want:    "Eres un *******",
		},
		{
			name:    "multiple distinct words",
			text:    "callate idiota, eres un imbecil",
			flagged: []string{"idiota", "imbecil"},
			want:    "callate ******, eres un *******",
		},
		{
			name:    "no flagged words",
			text:    "hola mundo",
			flagged: nil,
			want:    "hola mundo",
		},
		{
			name:    "empty flagged word skipped",
			text:    "hola mundo",
			flagged: []string{""},
			want:    "hola mundo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Redact(tt.text, tt.flagged)
			if got != tt.want {
				t.Errorf("Redact() = %q, want %q", got, tt.want)
			}
			if utf8.RuneCountInString(got) != utf8.RuneCountInString(tt.text) {
				t.Errorf("Redact() changed length: %q from %q", got, tt.text)
			}
		})
	}
}
