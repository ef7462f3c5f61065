package report

import (
	"fmt"
	"time"

	coil "Coil/internal/calc/coil"

	"github.com/phpdave11/gofpdf"
)

type Input struct {
	Project string     `json:"project"`
	Author  string     `json:"author"`
	Title   string     `json:"title"`
	Notes   string     `json:"notes"`
	Coil    coil.Input `json:"coil"`
}

type line struct {
	label string
	value string
	unit  string
}

var formulas = []string{
	"Retention volume: V = Q * t",
	"Cross-section: A = pi * D^2 / 4",
	"Length: L = V / A",
	"Velocity: v = Q / A",
	"Reynolds: Re = rho * v * D / mu",
	"Total local loss: SK = n * K(90) + K(in/out)",
	"Darcy-Weisbach: dp = (f * L / D + SK) * rho * v^2 / 2",
	"Friction factor: f = 64 / Re (Re < 2300), Swamee-Jain otherwise",
}

const disclaimer = "This report is a preliminary sizing. Confirm the parameters for the final design " +
	"against the company standard and the applicable EN requirements for the installation. " +
	"Density and viscosity must be entered for the actual product temperature; " +
	"temperature strongly affects viscosity and pressure drop."

// Build calculates the coil and lays out the report. now stamps the date line.
// With an empty fontPath the core Helvetica font is used, which only covers
// Latin-1 text; Cyrillic needs a UTF-8 TrueType font at fontPath.
func Build(in Input, now time.Time, fontPath string) (*gofpdf.Fpdf, coil.Result, error) {
	res, err := coil.DefaultLimits.CalculateChecked(in.Coil)
	if err != nil {
		return nil, coil.Result{}, err
	}
	if in.Title == "" {
		in.Title = "Retention Coil Sizing"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath != "" {
		family = "body"
		for _, style := range []string{"", "B", "I"} {
			pdf.AddUTF8Font(family, style, fontPath)
		}
		if err := pdf.Error(); err != nil {
			return nil, coil.Result{}, fmt.Errorf("report font: %w", err)
		}
		tr = func(s string) string { return s }
	}
	pdf.AddPage()
	pdf.SetFont(family, "B", 16)
	pdf.Cell(0, 10, tr(in.Title))
	pdf.Ln(12)
	pdf.SetFont(family, "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", in.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", in.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	c := in.Coil
	inletOutlet := "no"
	if c.IncludeInletOutletLoss {
		inletOutlet = "yes"
	}
	table(pdf, family, tr, "Inputs", []line{
		{"Flow Q", fmt.Sprintf("%.2f", c.FlowM3H), "m³/h"},
		{"Retention time t", fmt.Sprintf("%.0f", c.RetentionTimeS), "s"},
		{"Inner diameter D", fmt.Sprintf("%.1f", c.DiameterMM), "mm"},
		{"Roughness", fmt.Sprintf("%.4f", c.RoughnessMM), "mm"},
		{"Density", fmt.Sprintf("%.0f", c.DensityKgM3), "kg/m³"},
		{"Dynamic viscosity", fmt.Sprintf("%.2f", c.ViscosityMPaS), "mPa·s"},
		{"Straight segment", fmt.Sprintf("%.1f", c.StraightSegmentM), "m"},
		{"K per 90° elbow", fmt.Sprintf("%.2f", c.ElbowKFactor), "-"},
		{"Inlet/outlet loss (K=1.5)", inletOutlet, ""},
	})
	table(pdf, family, tr, "Results", []line{
		{"Pipe length L", fmt.Sprintf("%.2f", res.LengthM), "m"},
		{"Required volume V", fmt.Sprintf("%.4f", res.RequiredVolumeM3), "m³"},
		{"Straight segments", fmt.Sprintf("%d", res.NStraights), "-"},
		{"U-turns", fmt.Sprintf("%d", res.NUturns), "-"},
		{"90° elbows", fmt.Sprintf("%d", res.Elbows90), "-"},
		{"Total local coefficient SK", fmt.Sprintf("%.2f", res.KTotal), "-"},
		{"Velocity v", fmt.Sprintf("%.3f", res.Velocity), "m/s"},
		{"Reynolds Re", fmt.Sprintf("%.0f (%s)", res.Re, res.Regime), "-"},
		{"Friction factor f", fmt.Sprintf("%.4f", res.F), "-"},
		{"Distributed pressure drop", fmt.Sprintf("%.2f", res.DpDistributedPa/1000.0), "kPa"},
		{"Local pressure drop", fmt.Sprintf("%.2f", res.DpLocalPa/1000.0), "kPa"},
		{"Total pressure drop", fmt.Sprintf("%.2f", res.DpTotalPa/1000.0), "kPa"},
	})

	pdf.SetFont(family, "B", 12)
	pdf.Cell(0, 8, "Formulas")
	pdf.Ln(8)
	pdf.SetFont(family, "", 10)
	for _, f := range formulas {
		pdf.Cell(0, 5, "- "+f)
		pdf.Ln(5)
	}
	pdf.Ln(4)
	pdf.SetFont(family, "I", 9)
	pdf.MultiCell(0, 5, disclaimer, "", "L", false)
	if in.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont(family, "", 11)
		pdf.MultiCell(0, 6, tr(in.Notes), "", "L", false)
	}
	return pdf, res, pdf.Error()
}

func table(pdf *gofpdf.Fpdf, family string, tr func(string) string, title string, lines []line) {
	pdf.SetFont(family, "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont(family, "", 10)
	for _, l := range lines {
		pdf.CellFormat(80, 6, tr(l.label), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, l.value, "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, tr(l.unit), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}
