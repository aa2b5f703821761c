package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"company-system/internal/entities"
	"company-system/internal/services"
	"company-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetTaskReport отдаёт отчёт по задачам: JSON по умолчанию,
// ?format=xlsx — файлом Excel.
func (c *ReportController) GetTaskReport(ctx echo.Context) error {
	filter, format := c.parseFilters(ctx)
	c.logger.Debug("Запрос на отчёт по задачам", zap.Any("filters", filter), zap.String("format", format))

	data, err := c.reportService.GetTaskReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}

	return utils.SuccessResponse(ctx, data, "Отчёт успешно сформирован", http.StatusOK)
}

func (c *ReportController) parseFilters(ctx echo.Context) (entities.TaskReportFilter, string) {
	var filter entities.TaskReportFilter
	format := strings.ToLower(ctx.QueryParam("format"))

	if df := ctx.QueryParam("date_from"); df != "" {
		if t, err := time.Parse(time.RFC3339, df); err == nil {
			filter.DateFrom = &t
		}
	}
	if dt := ctx.QueryParam("date_to"); dt != "" {
		if t, err := time.Parse(time.RFC3339, dt); err == nil {
			filter.DateTo = &t
		}
	}

	var strs []string
	if arr, ok := ctx.QueryParams()["department_ids[]"]; ok {
		strs = arr
	} else if s := ctx.QueryParam("department_ids"); s != "" {
		strs = strings.Split(s, ",")
	}
	filter.DepartmentIDs, _ = utils.ParseUint64Slice(strs)

	filter.Status = ctx.QueryParam("status")

	return filter, format
}

var taskReportHeaders = []string{
	"№", "Название", "Статус", "Отдел", "Исполнитель", "Срок", "Дата выполнения", "Дата создания",
}

func taskReportRowToSlice(row entities.TaskReportRow) []interface{} {
	dateFmt := "02.01.2006 15:04"
	var deadline, completedAt, createdAt string
	if row.Deadline != nil {
		deadline = row.Deadline.Format(dateFmt)
	}
	if row.CompletedAt != nil {
		completedAt = row.CompletedAt.Format(dateFmt)
	}
	if row.CreatedAt != nil {
		createdAt = row.CreatedAt.Format(dateFmt)
	}
	return []interface{}{
		row.ID, row.Title, row.Status, row.DepartmentName, row.AssigneeName,
		deadline, completedAt, createdAt,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []entities.TaskReportRow) error {
	f := excelize.NewFile()
	sheet := "Отчёт по задачам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &taskReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := taskReportRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetColWidth(sheet, "C", "E", 22)
	f.SetColWidth(sheet, "F", "H", 20)

	fileName := fmt.Sprintf("tasks_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
