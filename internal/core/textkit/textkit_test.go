package textkit

import (
	"reflect"
	"testing"
)

func TestNormalize_Table(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "identity ascii",
			in:   "screen cracked",
			out:  "screen cracked",
		},
		{
			name: "case fold",
			in:   "Screen CRACKED",
			out:  "screen cracked",
		},
		{
			name: "utf8 repair drops invalid bytes",
			in:   string([]byte{0xff, 'b', 'a', 't', 0x80, 't', 'e', 'r', 'y'}),
			out:  "battery",
		},
		{
			name: "strip accents",
			in:   "pantalla dañada, botón roto",
			out:  "pantalla danada, boton roto",
		},
		{
			name: "width fold fullwidth",
			in:   "ＢＡＴＴＥＲＹ drain",
			out:  "battery drain",
		},
		{
			name: "collapse whitespace",
			in:   "no\t\tenciende   la\npantalla",
			out:  "no enciende la pantalla",
		},
		{
			name: "empty",
			in:   "",
			out:  "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Normalize(tc.in); got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  []string
	}{
		{
			name: "drops short and stop words",
			in:   "The screen is cracked and the battery drains",
			out:  []string{"screen", "cracked", "battery", "drains"},
		},
		{
			name: "dedupes preserving first-seen order",
			in:   "battery battery screen battery",
			out:  []string{"battery", "screen"},
		},
		{
			name: "spanish stop words",
			in:   "la pantalla del telefono no enciende",
			out:  []string{"pantalla", "telefono", "enciende"},
		},
		{
			name: "punctuation splits tokens",
			in:   "water-damage: charging/port",
			out:  []string{"water", "damage", "charging", "port"},
		},
		{
			name: "empty input",
			in:   "",
			out:  nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Keywords(tc.in); !reflect.DeepEqual(got, tc.out) {
				t.Fatalf("Keywords(%q) = %v, want %v", tc.in, got, tc.out)
			}
		})
	}
}

func TestKeywords_Deterministic(t *testing.T) {
	in := "Pantalla rota, batería agotada, cámara borrosa"
	a := Keywords(in)
	b := Keywords(in)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("keyword extraction not deterministic: %v vs %v", a, b)
	}
}
