package scanner

import "testing"

func TestFromExtension(t *testing.T) {
	cases := []struct {
		ext  string
		want Language
		ok   bool
	}{
		{".rs", LanguageRust, true},
		{"rs", LanguageRust, true},
		{".GO", LanguageGo, true},
		{".py", LanguagePython, true},
		{".tsx", LanguageTypeScript, true},
		{".jsx", LanguageJavaScript, true},
		{".sysml", LanguageSysML, true},
		{".kerml", LanguageKerML, true},
		{".txt", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := FromExtension(tc.ext)
		if ok != tc.ok || got != tc.want {
			t.Errorf("FromExtension(%q) = (%q, %v), want (%q, %v)", tc.ext, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFromPath(t *testing.T) {
	lang, ok := FromPath("src/main.go")
	if !ok || lang != LanguageGo {
		t.Fatalf("FromPath(main.go) = (%q, %v), want (%q, true)", lang, ok, LanguageGo)
	}

	if _, ok := FromPath("README.md"); ok {
		t.Fatalf("FromPath(README.md) should not resolve a language")
	}
}

func TestLanguageString(t *testing.T) {
	if got := LanguageRust.String(); got != "Rust" {
		t.Errorf("LanguageRust.String() = %q, want Rust", got)
	}

	if got := Language("cobol").String(); got != "cobol" {
		t.Errorf("unknown language String() = %q, want raw value", got)
	}
}
