package gfont

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestLoadFonts(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	fonts, err := LoadFonts(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if fonts.Normal.Metrics().Height <= 0 || fonts.Title.Metrics().Height <= fonts.Normal.Metrics().Height {
		t.Fatalf("unexpected metrics normal=%v title=%v", fonts.Normal.Metrics().Height, fonts.Title.Metrics().Height)
	}
}

func TestLoadFontsErrors(t *testing.T) {
	if _, err := LoadFonts(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Fatal("missing file must fail")
	}
	if _, err := ParseFonts([]byte("not a font")); err == nil {
		t.Fatal("garbage must fail")
	}
}

func TestDefault(t *testing.T) {
	d := Default()
	if d.Normal == nil || d.Title == nil {
		t.Fatal("default faces missing")
	}
}
