package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"al-muallim/backend/config"
	"al-muallim/backend/internal/constants"
	"al-muallim/backend/internal/model"
)

// ── export module business errors ──

var (
	ErrExportGenerateFail = errors.New("failed to generate export document")
)

// ExportService renders weekly plans into downloadable documents.
//
// Scope × format matrix:
//   - single subject/week × Excel / PDF
//   - full grade/week ("master") × multi-sheet Excel / multi-section PDF
//
// Every method returns the document content, a suggested filename, and
// an error. Missing plans are synthesized blank, so an export is always
// producible for a valid week.
type ExportService interface {
	PlanExcel(ctx context.Context, subject, grade string, week int) (*bytes.Buffer, string, error)
	MasterExcel(ctx context.Context, grade string, week int) (*bytes.Buffer, string, error)
	PlanPDF(ctx context.Context, subject, grade string, week int) (*bytes.Buffer, string, error)
	MasterPDF(ctx context.Context, grade string, week int) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg      *config.ExportConfig
	plans    PlanService
	settings SettingsService
	logger   *zap.Logger

	fontMu   sync.Mutex
	fontData []byte // cached Arabic TTF after the first successful fetch
}

// NewExportService creates an ExportService instance.
func NewExportService(cfg *config.ExportConfig, plans PlanService, settings SettingsService, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, plans: plans, settings: settings, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Excel exports
// ═══════════════════════════════════════════════════════════
//
// Sheet layout (fixed): title row, metadata row, blank separator,
// header row, one row per school day. Column widths are format hints,
// not content-derived.

// sheetNameLimit is the xlsx sheet name cap; overlong subject names are
// truncated, never rejected.
const sheetNameLimit = 31

func (s *exportService) PlanExcel(ctx context.Context, subject, grade string, week int) (*bytes.Buffer, string, error) {
	plan, err := s.plans.GetByKey(ctx, subject, grade, week)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := s.addPlanSheet(f, "Weekly Plan", plan); err != nil {
		return nil, "", err
	}
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_Week%d_%s.xlsx", plan.Subject, plan.WeekNum, plan.Grade)
	return buf, filename, nil
}

func (s *exportService) MasterExcel(ctx context.Context, grade string, week int) (*bytes.Buffer, string, error) {
	plans, err := s.plans.FullWeekSet(ctx, grade, week)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	for i := range plans {
		if err := s.addPlanSheet(f, truncateSheetName(plans[i].Subject), &plans[i]); err != nil {
			return nil, "", err
		}
	}
	f.DeleteSheet("Sheet1")

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("Master_Grade_%s_Week_%d.xlsx", grade, week)
	return buf, filename, nil
}

// addPlanSheet writes one plan as one sheet.
func (s *exportService) addPlanSheet(f *excelize.File, sheet string, plan *model.WeeklyPlan) error {
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	widths := []float64{12, 15, 40, 30, 20, 20, 20}
	for i, w := range widths {
		f.SetColWidth(sheet, colName(i), colName(i), w)
	}

	f.SetCellValue(sheet, "A1", fmt.Sprintf("Weekly Plan - %s", plan.Subject))
	f.SetCellValue(sheet, "A2", fmt.Sprintf("Grade: %s", plan.Grade))
	f.SetCellValue(sheet, "B2", fmt.Sprintf("Week: %d", plan.WeekNum))
	f.SetCellValue(sheet, "C2", fmt.Sprintf("Date: %s - %s", plan.StartDate, plan.EndDate))

	// row 3 stays blank as a separator

	headers := []string{"Day", "Subject", "Classwork", "Homework", "Items Required", "Tests/Quizzes", "Events"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 4), h)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13},
	})
	f.SetCellStyle(sheet, "A1", "A1", titleStyle)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{constants.SubjectColor(plan.Subject)}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	f.SetCellStyle(sheet, "A4", "G4", headerStyle)

	row := 5
	for _, day := range constants.Days {
		entry := plan.Days[day]
		values := []string{day, plan.Subject, entry.Classwork, entry.Homework, entry.Items, entry.Tests, entry.Events}
		for i, v := range values {
			f.SetCellValue(sheet, cell(colName(i), row), v)
		}
		row++
	}

	return nil
}

// truncateSheetName caps a subject name at the xlsx sheet name limit.
func truncateSheetName(name string) string {
	runes := []rune(name)
	if len(runes) > sheetNameLimit {
		return string(runes[:sheetNameLimit])
	}
	return name
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
