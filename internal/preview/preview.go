// Package preview draws the social preview card linked from each detail
// page's metadata.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/meur/dexforge/internal/dex"
	"github.com/meur/dexforge/internal/models"
)

// Card dimensions follow the common 1.91:1 social preview ratio
const (
	Width  = 1200
	Height = 630

	artSize      = 520
	maxImageSize = 4 << 20
)

var typeColors = map[string]string{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

const fallbackColor = "#DC0A2D"

// TypeColor returns the badge colour of an elemental type
func TypeColor(typeName string) color.RGBA {
	if hex, ok := typeColors[typeName]; ok {
		return ParseHexColor(hex)
	}
	return ParseHexColor(fallbackColor)
}

// ParseHexColor converts #rrggbb or #rrggbbaa to color.RGBA
func ParseHexColor(s string) color.RGBA {
	c := color.RGBA{0, 0, 0, 255}
	switch len(s) {
	case 7:
		fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	return c
}

// Renderer draws preview cards
type Renderer struct {
	http *http.Client

	fontsOnce sync.Once
	fontsErr  error
	title     font.Face
	body      font.Face
}

// NewRenderer creates a Renderer that downloads artwork with hc
func NewRenderer(hc *http.Client) *Renderer {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Renderer{http: hc}
}

func (r *Renderer) loadFonts() error {
	r.fontsOnce.Do(func() {
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			r.fontsErr = err
			return
		}
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			r.fontsErr = err
			return
		}
		if r.title, err = opentype.NewFace(bold, &opentype.FaceOptions{Size: 84, DPI: 72, Hinting: font.HintingFull}); err != nil {
			r.fontsErr = err
			return
		}
		r.body, r.fontsErr = opentype.NewFace(regular, &opentype.FaceOptions{Size: 40, DPI: 72, Hinting: font.HintingFull})
	})
	return r.fontsErr
}

// Artwork picks a raster image for the card. SVG dream-world art is skipped.
func Artwork(s models.Sprites) string {
	for _, u := range []string{s.Other.OfficialArtwork.FrontDefault, s.Other.Home.FrontDefault, s.FrontDefault} {
		if u != "" && !strings.HasSuffix(strings.ToLower(u), ".svg") {
			return u
		}
	}
	return ""
}

// Render draws the card for p as PNG. A missing or broken artwork image
// leaves the art area empty.
func (r *Renderer) Render(ctx context.Context, p models.Pokemon) ([]byte, error) {
	if err := r.loadFonts(); err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}

	types := dex.TypeNames(p)
	primary := ParseHexColor(fallbackColor)
	if len(types) > 0 {
		primary = TypeColor(types[0])
	}

	dc := gg.NewContext(Width, Height)

	grad := gg.NewLinearGradient(0, 0, Width, Height)
	grad.AddColorStop(0, primary)
	grad.AddColorStop(1, color.RGBA{29, 29, 29, 255})
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, Width, Height)
	dc.Fill()

	// Halo behind the artwork
	halo := gg.NewRadialGradient(880, Height/2, 0, 880, Height/2, 300)
	halo.AddColorStop(0, color.RGBA{255, 255, 255, 90})
	halo.AddColorStop(1, color.RGBA{255, 255, 255, 0})
	dc.SetFillStyle(halo)
	dc.DrawCircle(880, Height/2, 300)
	dc.Fill()

	if art := Artwork(p.Sprites); art != "" {
		if img, err := r.download(ctx, art); err == nil {
			img = imaging.Fit(img, artSize, artSize, imaging.Lanczos)
			b := img.Bounds()
			dc.DrawImage(img, 880-b.Dx()/2, Height/2-b.Dy()/2)
		}
	}

	dc.SetColor(color.White)
	dc.SetFontFace(r.body)
	dc.DrawString(fmt.Sprintf("#%03d", p.ID), 80, 170)

	dc.SetFontFace(r.title)
	dc.DrawStringWrapped(dex.DisplayName(p.Name), 80, 200, 0, 0, 560, 1.1, gg.AlignLeft)

	dc.SetFontFace(r.body)
	x := 80.0
	for _, t := range types {
		w, _ := dc.MeasureString(strings.ToUpper(t))
		dc.SetColor(TypeColor(t))
		dc.DrawRoundedRectangle(x, 440, w+48, 64, 32)
		dc.Fill()
		dc.SetColor(color.White)
		dc.DrawStringAnchored(strings.ToUpper(t), x+(w+48)/2, 472, 0.5, 0.35)
		x += w + 72
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encoding preview: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) download(ctx context.Context, rawURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d", rawURL, resp.StatusCode)
	}
	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageSize))
	return img, err
}
