package stub

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// template holds the visual parameters of a document style.
type template struct {
	accent string
	text   string
}

var templates = map[string]template{
	"minimal":   {accent: "#3b82f6", text: "#1e293b"},
	"corporate": {accent: "#1e3a8a", text: "#374151"},
	"creative":  {accent: "#8b5cf6", text: "#4b5563"},
	"luxury":    {accent: "#b45309", text: "#854d0e"},
}

const (
	pageWidth    = 595
	pageHeight   = 842
	margin       = 40
	headerHeight = 140
	footerHeight = 50
	logoMaxPts   = 100
	placeholder  = "Your professional text will be here."
	documentName = "Commercial offer"
)

var (
	markupRun  = regexp.MustCompile("[*_#`]+")
	blankRun   = regexp.MustCompile(`\n{3,}`)
	spaceRun   = regexp.MustCompile(` {2,}`)
	disallowed = regexp.MustCompile(`[^\w\s.,!?;:()\-\n]`)
)

// cleanText strips markdown markup and symbols from drafted text.
func cleanText(text string) string {
	text = disallowed.ReplaceAllString(text, "")
	text = markupRun.ReplaceAllString(text, "")
	text = blankRun.ReplaceAllString(text, "\n\n")
	text = spaceRun.ReplaceAllString(text, " ")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Page description understood by pdfcpu's create command. Only the parts
// the stub draws are modelled.
type (
	pdfDocument struct {
		Paper  string             `json:"paper"`
		Origin string             `json:"origin"`
		Pages  map[string]pdfPage `json:"pages"`
	}
	pdfPage struct {
		Content pdfContent `json:"content"`
	}
	pdfContent struct {
		Boxes  []pdfBox   `json:"box,omitempty"`
		Texts  []pdfText  `json:"text,omitempty"`
		Images []pdfImage `json:"image,omitempty"`
	}
	pdfBox struct {
		Pos     [2]float64 `json:"pos"`
		Width   float64    `json:"width"`
		Height  float64    `json:"height"`
		FillCol string     `json:"fillCol"`
	}
	pdfText struct {
		Value string     `json:"value"`
		Pos   [2]float64 `json:"pos"`
		Width float64    `json:"width,omitempty"`
		Align string     `json:"align,omitempty"`
		Font  pdfFont    `json:"font"`
	}
	pdfFont struct {
		Name string `json:"name"`
		Size int    `json:"size"`
		Col  string `json:"col"`
	}
	pdfImage struct {
		Src    string     `json:"src"`
		Pos    [2]float64 `json:"pos"`
		Width  float64    `json:"width"`
		Height float64    `json:"height"`
	}
)

// renderDocument produces a single-page A4 PDF with an accent header and
// footer, the logo when it decodes as an image, and the cleaned text.
func renderDocument(logo []byte, text, style string, now time.Time) ([]byte, error) {
	tpl, ok := templates[style]
	if !ok {
		tpl = templates["minimal"]
	}
	body := cleanText(text)
	if body == "" {
		body = placeholder
	}

	dir, err := os.MkdirTemp("", "pitchdeck-stub-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	content := pdfContent{
		Boxes: []pdfBox{
			{Pos: [2]float64{0, pageHeight - headerHeight}, Width: pageWidth, Height: headerHeight, FillCol: tpl.accent},
			{Pos: [2]float64{0, 0}, Width: pageWidth, Height: footerHeight, FillCol: tpl.accent},
		},
		Texts: []pdfText{
			{
				Value: documentName,
				Pos:   [2]float64{pageWidth/2 - 90, pageHeight - 80},
				Font:  pdfFont{Name: "Helvetica-Bold", Size: 22, Col: "#ffffff"},
			},
			{
				Value: "PDF Generator Pro - " + now.Format("02.01.2006"),
				Pos:   [2]float64{margin, 20},
				Font:  pdfFont{Name: "Helvetica", Size: 10, Col: "#ffffff"},
			},
			{
				Value: body,
				Pos:   [2]float64{margin, pageHeight - headerHeight - 40},
				Width: pageWidth - 2*margin,
				Align: "left",
				Font:  pdfFont{Name: "Helvetica", Size: 12, Col: tpl.text},
			},
		},
	}

	if img, w, h, ok := logoImage(logo, dir); ok {
		content.Images = append(content.Images, pdfImage{
			Src:    img,
			Pos:    [2]float64{margin, float64(pageHeight - 20 - h)},
			Width:  float64(w),
			Height: float64(h),
		})
	}

	spec, err := json.Marshal(pdfDocument{
		Paper:  "A4P",
		Origin: "LowerLeft",
		Pages:  map[string]pdfPage{"1": {Content: content}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode page description: %w", err)
	}

	var out bytes.Buffer
	if err := api.Create(nil, bytes.NewReader(spec), &out, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("create pdf: %w", err)
	}
	return out.Bytes(), nil
}

// logoImage writes a JPEG thumbnail of logo into dir. It reports false when
// the logo is not a decodable image; the document is then rendered without
// it.
func logoImage(logo []byte, dir string) (path string, width, height int, ok bool) {
	img, err := imaging.Decode(bytes.NewReader(logo))
	if err != nil {
		return "", 0, 0, false
	}
	thumb := imaging.Fit(img, logoMaxPts*2, logoMaxPts, imaging.Lanczos)
	path = filepath.Join(dir, "logo.jpg")
	if err := imaging.Save(flatten(thumb), path); err != nil {
		return "", 0, 0, false
	}
	return path, thumb.Bounds().Dx(), thumb.Bounds().Dy(), true
}

// flatten composites img onto white, since JPEG has no alpha channel.
func flatten(img image.Image) image.Image {
	bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White.C)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}
