package handler

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/aleksacoach93b/wellness-monitor-sub000/internal/service"
)

// ExportHandler отдает таблицу ответов опроса в CSV или XLSX
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler создает новый обработчик экспорта
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportSurvey выгружает таблицу ответов опроса
// GET /api/surveys/:id/export?format=csv|xlsx
func (h *ExportHandler) ExportSurvey(c *gin.Context) {
	surveyID := c.MustGet("surveyID").(string)
	filename := "survey-" + surveyID

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportXLSX(c, surveyID, filename)
	default:
		h.exportCSV(c, surveyID, filename)
	}
}

// exportCSV отдает CSV как есть: порядок колонок и экранирование формирует
// сервис экспорта, выход побайтно стабилен между запусками
func (h *ExportHandler) exportCSV(c *gin.Context, surveyID, filename string) {
	csv, err := h.exportService.ExportCSV(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})
	c.Writer.Write([]byte(csv))
}

// exportXLSX отдает таблицу в Excel через StreamWriter
func (h *ExportHandler) exportXLSX(c *gin.Context, surveyID, filename string) {
	table, err := h.exportService.BuildTable(surveyID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Responses"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ExportHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := make([]interface{}, len(table.Headers))
	for i, header := range table.Headers {
		headers[i] = sanitizeForExcel(header)
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[ExportHandler] Ошибка записи заголовков: %v", err)
	}

	for i, row := range table.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			cells[j] = sanitizeForExcel(cell)
		}
		cellRef := fmt.Sprintf("A%d", i+2)
		if err := sw.SetRow(cellRef, cells); err != nil {
			log.Printf("[ExportHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ExportHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ExportHandler] Ошибка записи Excel в response: %v", err)
	}
}
