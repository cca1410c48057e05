package resolver

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Run("canonical forms", func(t *testing.T) {
		tc := []struct {
			name  string
			input string
			want  string
		}{
			{"lowercases", "HELLO World", "hello world"},
			{"strips diacritics", "Canción de Ayer", "cancion de ayer"},
			{"spanish n tilde", "Año Nuevo", "ano nuevo"},
			{"collapses punctuation", "don't -- stop!!", "don t stop"},
			{"collapses whitespace", "  a   b\t c ", "a b c"},
			{"keeps digits", "Track 42", "track 42"},
			{"empty input", "", ""},
			{"only punctuation", "!!! ???", ""},
			{"emoji dropped", "🎵 música 🎵", "musica"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				if got := Normalize(tt.input); got != tt.want {
					t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
				}
			})
		}
	})

	t.Run("idempotent and total over arbitrary input", func(t *testing.T) {
		fixed := []string{
			"La Playera (Bandolera) - Zion y Lennox",
			"ÀÉÎÕÜ ñ Ç",
			"spotify:track:abc123",
			"\x00\x01 control ​ chars",
			"ｗｉｄｅ ｔｅｘｔ",
		}
		for _, s := range fixed {
			once := Normalize(s)
			if twice := Normalize(once); twice != once {
				t.Errorf("not idempotent for %q: %q != %q", s, once, twice)
			}
		}

		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 500; i++ {
			runes := make([]rune, rng.Intn(40))
			for j := range runes {
				runes[j] = rune(rng.Intn(0x2FFF))
			}
			s := string(runes)

			once := Normalize(s)
			if twice := Normalize(once); twice != once {
				t.Fatalf("not idempotent for %q: %q != %q", s, once, twice)
			}
		}
	})
}

func TestTokenize(t *testing.T) {
	got := Tokenize("La Playera (Bandolera)")
	want := []string{"la", "playera", "bandolera"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize() = %v, want %v", got, want)
	}

	if toks := Tokenize("   "); len(toks) != 0 {
		t.Errorf("expected no tokens for whitespace, got %v", toks)
	}
}
