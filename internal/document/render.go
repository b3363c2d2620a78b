package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Renderer turns a Layout into document bytes. Services depend on this
// interface so tests can swap in a fake.
type Renderer interface {
	Render(layout Layout) ([]byte, error)
}

// pdfRenderer implements Renderer on top of gofpdf.
type pdfRenderer struct{}

// NewPDFRenderer returns the production PDF renderer.
func NewPDFRenderer() Renderer {
	return &pdfRenderer{}
}

// Render replays the layout's draw operations onto PDF pages.
func (r *pdfRenderer) Render(layout Layout) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for _, page := range layout.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch o := op.(type) {
			case RectOp:
				pdf.SetFillColor(o.Color.R, o.Color.G, o.Color.B)
				pdf.Rect(o.X, o.Y, o.W, o.H, "F")
			case TextOp:
				style := ""
				if o.Bold {
					style = "B"
				}
				pdf.SetFont("Helvetica", style, o.Size)
				pdf.SetTextColor(o.Color.R, o.Color.G, o.Color.B)

				x := o.X
				if o.Centered {
					x = (PageWidth - pdf.GetStringWidth(o.Content)) / 2
				}
				// TextOp.Y is the top of the line; gofpdf wants a baseline.
				pdf.Text(x, o.Y+o.Size, o.Content)
			default:
				return nil, fmt.Errorf("unknown draw op %T", op)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
