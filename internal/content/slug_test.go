// File path: internal/content/slug_test.go
package content

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Agendas 2026", "agendas-2026"},
		{"  Café con Leche!  ", "cafe-con-leche"},
		{"Planificación -- Anual", "planificacion-anual"},
		{"¿Qué regalar en Navidad?", "que-regalar-en-navidad"},
		{"---", ""},
		{"Ümläut Straße", "umlaut-strae"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugWithSuffixDistinct(t *testing.T) {
	base := "agendas-2026"
	got := SlugWithSuffix(base)
	if got == base {
		t.Fatalf("expected suffixed slug to differ from %q", base)
	}
	if !strings.HasPrefix(got, base+"-") {
		t.Fatalf("expected suffixed slug to extend base, got %q", got)
	}
}

func TestSlugWithSuffixEmptyBase(t *testing.T) {
	got := SlugWithSuffix("")
	if !strings.HasPrefix(got, "untitled-") {
		t.Fatalf("expected untitled fallback, got %q", got)
	}
}
