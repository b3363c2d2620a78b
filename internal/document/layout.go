// Package document turns a workout program into a paginated PDF. Layout is
// computed as a plain list of draw operations so it can be tested without
// touching the PDF library; rendering those operations is a separate step.
package document

import (
	"fmt"
	"strings"
	"time"

	"ironpeak/gym-app/internal/domain"
)

// Page geometry in points (US Letter, 50pt margins).
const (
	PageWidth  = 612.0
	PageHeight = 792.0
	Margin     = 50.0

	headerBandHeight = 120.0
	contentTop       = 140.0

	// Running-cursor thresholds that force a page break.
	dayBreakThreshold      = 650.0
	exerciseBreakThreshold = 700.0
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B int
}

var (
	colorHeaderBand = RGB{0x1a, 0x1a, 0x2e}
	colorDayBand    = RGB{0x16, 0x21, 0x3e}
	colorRow        = RGB{0xf0, 0xf0, 0xf0}
	colorInk        = RGB{0x1a, 0x1a, 0x2e}
	colorDetail     = RGB{0x66, 0x66, 0x66}
	colorFooter     = RGB{0x99, 0x99, 0x99}
	colorWhite      = RGB{0xff, 0xff, 0xff}
)

// RectOp fills a rectangle.
type RectOp struct {
	X, Y, W, H float64
	Color      RGB
}

// TextOp draws a line of text. Y is the top of the line, matching the
// cursor coordinates the layout tracks. Centered text ignores X.
type TextOp struct {
	X, Y     float64
	Size     float64
	Bold     bool
	Color    RGB
	Centered bool
	Content  string
}

// Op is a single draw operation: either a RectOp or a TextOp.
type Op interface{ op() }

func (RectOp) op() {}
func (TextOp) op() {}

// Page is an ordered list of draw operations.
type Page struct {
	Ops []Op
}

// Layout is the fully paginated document, deterministic for a given input.
type Layout struct {
	Pages []Page
}

// BuildLayout lays out a program document: a header band with the title and
// athlete name, a section bar per day, a row per exercise, and a generation
// stamp at the bottom of the final page.
func BuildLayout(title, athlete string, days []domain.ProgramDay, generatedAt time.Time) Layout {
	var layout Layout
	page := Page{}

	// Header band on the first page only.
	page.Ops = append(page.Ops,
		RectOp{X: 0, Y: 0, W: PageWidth, H: headerBandHeight, Color: colorHeaderBand},
		TextOp{Y: 40, Size: 28, Bold: true, Color: colorWhite, Centered: true, Content: title},
		TextOp{Y: 80, Size: 16, Color: colorWhite, Centered: true, Content: "Athlete: " + athlete},
	)

	y := contentTop

	newPage := func() {
		layout.Pages = append(layout.Pages, page)
		page = Page{}
		y = Margin
	}

	for _, day := range days {
		if y > dayBreakThreshold {
			newPage()
		}

		page.Ops = append(page.Ops,
			RectOp{X: Margin, Y: y, W: PageWidth - 2*Margin, H: 30, Color: colorDayBand},
			TextOp{X: Margin + 10, Y: y + 8, Size: 14, Bold: true, Color: colorWhite, Content: strings.ToUpper(day.DayName)},
		)
		y += 40

		for i, ex := range day.Exercises {
			if y > exerciseBreakThreshold {
				newPage()
			}

			detail := ex.SetsReps
			if ex.Notes != "" {
				detail += " | " + ex.Notes
			}

			page.Ops = append(page.Ops,
				RectOp{X: Margin, Y: y, W: PageWidth - 2*Margin, H: 40, Color: colorRow},
				TextOp{X: Margin + 10, Y: y + 8, Size: 12, Color: colorInk, Content: fmt.Sprintf("%d. %s", i+1, ex.Name)},
				TextOp{X: Margin + 10, Y: y + 24, Size: 10, Color: colorDetail, Content: detail},
			)
			y += 50
		}

		y += 20
	}

	// Footer stamp on the final page only.
	page.Ops = append(page.Ops, TextOp{
		Y:        PageHeight - Margin,
		Size:     10,
		Color:    colorFooter,
		Centered: true,
		Content:  "Generated on " + generatedAt.Format("1/2/2006"),
	})
	layout.Pages = append(layout.Pages, page)

	return layout
}
