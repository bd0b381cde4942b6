package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"al-muallim/backend/internal/constants"
	"al-muallim/backend/internal/model"
)

// ═══════════════════════════════════════════════════════════
// PDF exports
// ═══════════════════════════════════════════════════════════
//
// Single subject: one landscape page with a colored header band, subject
// title, info strip, 7-column day table, signature block.
// Master: portrait cover page, then one colored section + 6-column
// table per subject, flowing across pages, signatures last.
//
// Arabic-capable typeface is fetched remotely once and cached; any
// failure degrades to the built-in Helvetica, never aborting the export.

const arabicFontFamily = "Amiri"

func (s *exportService) PlanPDF(ctx context.Context, subject, grade string, week int) (*bytes.Buffer, string, error) {
	plan, err := s.plans.GetByKey(ctx, subject, grade, week)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	font := s.setupFont(ctx, pdf)
	pdf.AddPage()

	r, g, b := hexToRGB(constants.SubjectColor(plan.Subject))
	subTitle := fmt.Sprintf("Grade: %s   |   Week: %d   |   Date: %s to %s",
		plan.Grade, plan.WeekNum, plan.StartDate, plan.EndDate)
	s.drawPlanHeader(pdf, font, settings, fmt.Sprintf("%s Plan", plan.Subject), subTitle, r, g, b)

	spec := tableSpec{
		head:     []string{"Day", "Subject", "Classwork", "Homework", "Items Required", "Tests/Quizzes", "Events"},
		widths:   []float64{25, 30, 60, 50, 35, 35, 34},
		marginL:  14,
		headSize: 11,
		bodySize: 10,
		fillR:    r, fillG: g, fillB: b,
	}
	finalY := s.drawTable(pdf, font, spec, planTableRows(plan, true), 55)

	_, pageH := pdf.GetPageSize()
	sigY := finalY + 30
	if sigY > pageH-25 {
		pdf.AddPage()
		sigY = 40
	}
	s.drawSignatures(pdf, font, sigY)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		s.logger.Error("write pdf failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_Week%d_%s.pdf", plan.Subject, plan.WeekNum, plan.Grade)
	return buf, filename, nil
}

func (s *exportService) MasterPDF(ctx context.Context, grade string, week int) (*bytes.Buffer, string, error) {
	plans, err := s.plans.FullWeekSet(ctx, grade, week)
	if err != nil {
		return nil, "", err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	font := s.setupFont(ctx, pdf)
	pageW, pageH := pdf.GetPageSize()

	// ── cover page ──
	pdf.AddPage()
	pdf.SetFillColor(245, 247, 250)
	pdf.Rect(0, 0, pageW, pageH, "F")

	br, bg, bb := hexToRGB(constants.SubjectColor("Arabic"))
	pdf.SetDrawColor(br, bg, bb)
	pdf.SetLineWidth(1)
	pdf.Rect(10, 10, pageW-20, pageH-20, "D")
	pdf.SetLineWidth(0.2)

	if raw, format, ok := decodeLogo(settings.SchoolLogo); ok {
		s.placeLogo(pdf, raw, format, pageW/2-25, 40, 50, 50)
	}

	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont(font, "", 30)
	centerText(pdf, 105, "MASTER WEEKLY PLAN")
	if settings.SchoolName != "" {
		pdf.SetFont(font, "", 16)
		pdf.SetTextColor(100, 100, 100)
		centerText(pdf, 117, settings.SchoolName)
	}
	pdf.SetFont(font, "", 20)
	pdf.SetTextColor(60, 60, 60)
	centerText(pdf, 145, grade)
	centerText(pdf, 157, fmt.Sprintf("Week %d", week))
	if len(plans) > 0 && plans[0].StartDate != "" {
		pdf.SetFont(font, "", 14)
		centerText(pdf, 168, fmt.Sprintf("%s to %s", plans[0].StartDate, plans[0].EndDate))
	}

	// ── content pages ──
	pdf.AddPage()
	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(0, 6)
	pdf.CellFormat(pageW-15, 5, fmt.Sprintf("%s - Week %d Summary", grade, week), "", 0, "R", false, 0, "")

	y := 20.0
	for i := range plans {
		plan := &plans[i]
		r, g, b := hexToRGB(constants.SubjectColor(plan.Subject))

		// start a new page when the section header would sit too low
		if y > 230 {
			pdf.AddPage()
			y = 20
		}

		pdf.SetFillColor(r, g, b)
		pdf.RoundedRect(14, y, pageW-28, 8, 1, "1234", "F")
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont(font, "", 12)
		pdf.SetXY(19, y+1)
		pdf.CellFormat(pageW-38, 6, strings.ToUpper(plan.Subject), "", 0, "L", false, 0, "")

		spec := tableSpec{
			head:     []string{"Day", "Classwork", "Homework", "Items", "Tests", "Events"},
			widths:   []float64{18, 45, 45, 25, 25, 25},
			marginL:  14,
			headSize: 9,
			bodySize: 8,
			fillR:    r, fillG: g, fillB: b,
		}
		y = s.drawTable(pdf, font, spec, planTableRows(plan, false), y+10) + 15
	}

	if y > 240 {
		pdf.AddPage()
	}
	s.drawSignatures(pdf, font, pageH-30)

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		s.logger.Error("write pdf failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("Master_Grade_%s_Week_%d.pdf", grade, week)
	return buf, filename, nil
}

// planTableRows flattens a plan's days into table rows in school-week
// order. withSubject adds the subject column used by the single-subject
// layout.
func planTableRows(plan *model.WeeklyPlan, withSubject bool) [][]string {
	rows := make([][]string, 0, len(constants.Days))
	for _, day := range constants.Days {
		entry := plan.Days[day]
		if withSubject {
			rows = append(rows, []string{day, plan.Subject, entry.Classwork, entry.Homework, entry.Items, entry.Tests, entry.Events})
		} else {
			rows = append(rows, []string{day, entry.Classwork, entry.Homework, entry.Items, entry.Tests, entry.Events})
		}
	}
	return rows
}

// ── header / footer blocks ──

func (s *exportService) drawPlanHeader(pdf *fpdf.Fpdf, font string, settings *model.GlobalSettings, title, subTitle string, r, g, b int) {
	pageW, _ := pdf.GetPageSize()

	pdf.SetFillColor(r, g, b)
	pdf.Rect(0, 0, pageW, 25, "F")

	if raw, format, ok := decodeLogo(settings.SchoolLogo); ok {
		pdf.SetFillColor(255, 255, 255)
		pdf.RoundedRect(10, 5, 20, 20, 3, "1234", "F")
		s.placeLogo(pdf, raw, format, 11, 6, 18, 18)
	}

	schoolName := settings.SchoolName
	if schoolName == "" {
		schoolName = "School Weekly Planner"
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(font, "", 18)
	pdf.Text(40, 12, schoolName)
	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(240, 240, 240)
	pdf.Text(40, 18, "Weekly Planning System")

	pdf.SetTextColor(r, g, b)
	pdf.SetFont(font, "", 22)
	pdf.SetXY(0, 27)
	pdf.CellFormat(pageW-15, 9, title, "", 0, "R", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(250, 250, 250)
	pdf.RoundedRect(14, 38, pageW-28, 12, 2, "1234", "FD")
	pdf.SetTextColor(60, 60, 60)
	pdf.SetFont(font, "", 11)
	pdf.SetXY(14, 41)
	pdf.CellFormat(pageW-28, 6, subTitle, "", 0, "C", false, 0, "")
}

func (s *exportService) drawSignatures(pdf *fpdf.Fpdf, font string, y float64) {
	pageW, _ := pdf.GetPageSize()

	pdf.SetDrawColor(100, 100, 100)
	pdf.SetFont(font, "", 10)
	pdf.SetTextColor(50, 50, 50)

	pdf.Line(30, y, 80, y)
	pdf.SetXY(30, y+1)
	pdf.CellFormat(50, 5, "Teacher's Signature", "", 0, "C", false, 0, "")

	pdf.Line(pageW-80, y, pageW-30, y)
	pdf.SetXY(pageW-80, y+1)
	pdf.CellFormat(50, 5, "Principal / Coordinator", "", 0, "C", false, 0, "")

	pdf.SetFont(font, "", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.SetXY(0, y+12)
	pdf.CellFormat(pageW, 5, "Generated on: "+time.Now().Format("2006-01-02 15:04"), "", 0, "C", false, 0, "")
}

// ── table rendering ──

type tableSpec struct {
	head                []string
	widths              []float64
	marginL             float64
	headSize            float64
	bodySize            float64
	fillR, fillG, fillB int
}

// drawTable renders a wrapped grid table starting at startY and returns
// the Y position below the last row. A new page (with a repeated head
// row) is started whenever the next row would cross the bottom margin.
func (s *exportService) drawTable(pdf *fpdf.Fpdf, font string, spec tableSpec, body [][]string, startY float64) float64 {
	const lineH = 4.5
	const cellPad = 1.5
	_, pageH := pdf.GetPageSize()
	bottom := pageH - 20

	y := s.drawTableHead(pdf, font, spec, startY)
	setBodyStyle := func() {
		pdf.SetFont(font, "", spec.bodySize)
		pdf.SetTextColor(40, 40, 40)
		pdf.SetDrawColor(220, 220, 220)
	}
	setBodyStyle()

	for _, row := range body {
		maxLines := 1
		for j, text := range row {
			if lines := pdf.SplitText(text, spec.widths[j]-2*cellPad); len(lines) > maxLines {
				maxLines = len(lines)
			}
		}
		rowH := float64(maxLines)*lineH + 2*cellPad

		if y+rowH > bottom {
			pdf.AddPage()
			y = s.drawTableHead(pdf, font, spec, 20)
			setBodyStyle()
		}

		x := spec.marginL
		for j, text := range row {
			w := spec.widths[j]
			pdf.Rect(x, y, w, rowH, "D")
			pdf.SetXY(x+cellPad, y+cellPad)
			pdf.MultiCell(w-2*cellPad, lineH, text, "", cellAlign(text, "L"), false)
			x += w
		}
		y += rowH
	}
	return y
}

func (s *exportService) drawTableHead(pdf *fpdf.Fpdf, font string, spec tableSpec, y float64) float64 {
	const headH = 8.0
	pdf.SetFont(font, "", spec.headSize)
	pdf.SetFillColor(spec.fillR, spec.fillG, spec.fillB)
	pdf.SetTextColor(255, 255, 255)

	x := spec.marginL
	for j, h := range spec.head {
		pdf.SetXY(x, y)
		pdf.CellFormat(spec.widths[j], headH, h, "", 0, "C", true, 0, "")
		x += spec.widths[j]
	}
	return y + headH
}

// ── typeface handling ──

// setupFont embeds the Arabic-capable typeface, degrading to the
// built-in Helvetica when the fetch or the embed fails.
func (s *exportService) setupFont(ctx context.Context, pdf *fpdf.Fpdf) string {
	data := s.arabicFont(ctx)
	if data == nil {
		return "Helvetica"
	}
	pdf.AddUTF8FontFromBytes(arabicFontFamily, "", data)
	if !pdf.Ok() {
		s.logger.Warn("embed Arabic font failed, falling back to built-in typeface", zap.Error(pdf.Error()))
		pdf.ClearError()
		return "Helvetica"
	}
	return arabicFontFamily
}

// arabicFont fetches the configured TTF, caching it after the first
// success. Returns nil when unavailable.
func (s *exportService) arabicFont(ctx context.Context) []byte {
	if s.cfg.FontURL == "" {
		return nil
	}

	s.fontMu.Lock()
	defer s.fontMu.Unlock()
	if s.fontData != nil {
		return s.fontData
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.FontTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, s.cfg.FontURL, nil)
	if err != nil {
		s.logger.Warn("build font request failed", zap.Error(err))
		return nil
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		s.logger.Warn("fetch Arabic font failed, falling back to built-in typeface", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("fetch Arabic font failed, falling back to built-in typeface",
			zap.Int("status", resp.StatusCode))
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Warn("read Arabic font failed, falling back to built-in typeface", zap.Error(err))
		return nil
	}

	s.fontData = data
	return data
}

// ── logo handling ──

// decodeLogo decodes the stored base64 logo (optionally a data URL) and
// verifies it is a renderable PNG or JPEG. Any failure means "no logo".
func decodeLogo(encoded string) ([]byte, string, bool) {
	if encoded == "" {
		return nil, "", false
	}
	payload := encoded
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, ","); i >= 0 {
			payload = encoded[i+1:]
		}
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, "", false
	}
	switch format {
	case "png":
		return raw, "PNG", true
	case "jpeg":
		return raw, "JPG", true
	}
	return nil, "", false
}

// placeLogo embeds the logo image; an embed failure is logged and the
// document continues without it.
func (s *exportService) placeLogo(pdf *fpdf.Fpdf, raw []byte, format string, x, y, w, h float64) {
	opts := fpdf.ImageOptions{ImageType: format}
	pdf.RegisterImageOptionsReader("school_logo", opts, bytes.NewReader(raw))
	if !pdf.Ok() {
		s.logger.Warn("embed logo failed, continuing without it", zap.Error(pdf.Error()))
		pdf.ClearError()
		return
	}
	pdf.ImageOptions("school_logo", x, y, w, h, false, opts, 0, "")
}

// ── text helpers ──

var arabicPattern = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

// containsArabic reports whether the text holds characters from the
// Arabic Unicode block.
func containsArabic(text string) bool {
	return arabicPattern.MatchString(text)
}

// cellAlign picks the horizontal alignment for one cell: Arabic content
// is right-aligned regardless of the table's overall alignment.
func cellAlign(text, fallback string) string {
	if containsArabic(text) {
		return "R"
	}
	return fallback
}

func centerText(pdf *fpdf.Fpdf, y float64, text string) {
	pageW, _ := pdf.GetPageSize()
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW, 10, text, "", 0, "C", false, 0, "")
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16), int(v >> 8 & 0xff), int(v & 0xff)
}
