package gfont

import (
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// FileName is looked up in the assets directory.
const FileName = "font.ttf"

type Fonts struct {
	Normal font.Face
	Title  font.Face
}

// Default is the built-in bitmap face, used until (or instead of) a TTF.
func Default() *Fonts {
	return &Fonts{Normal: basicfont.Face7x13, Title: basicfont.Face7x13}
}

func LoadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseFonts(data)
}

func ParseFonts(data []byte) (*Fonts, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	fonts := &Fonts{}
	fonts.Normal, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    13,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}

	// header line
	fonts.Title, err = opentype.NewFace(f, &opentype.FaceOptions{
		Size:    15,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	return fonts, nil
}
