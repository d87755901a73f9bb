package handlers

import (
	"context"
	"fmt"
	"time"

	"assochub/internal/adapters/export"
	"assochub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ExportHandler handles Excel export endpoints
type ExportHandler struct {
	exporter *export.ExcelExporter
}

// NewExportHandler creates a new export handler
func NewExportHandler(exporter *export.ExcelExporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

// Members exports members to an Excel file
// @Summary Export members
// @Description Download all members as an Excel workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/members [get]
func (h *ExportHandler) Members(c *fiber.Ctx) error {
	return h.send(c, "members", h.exporter.Members)
}

// Reports exports reports to an Excel file
// @Summary Export reports
// @Description Download all reports as an Excel workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/reports [get]
func (h *ExportHandler) Reports(c *fiber.Ctx) error {
	return h.send(c, "reports", h.exporter.Reports)
}

// Tasks exports tasks to an Excel file
// @Summary Export tasks
// @Description Download all tasks as an Excel workbook
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Security BearerAuth
// @Router /export/tasks [get]
func (h *ExportHandler) Tasks(c *fiber.Ctx) error {
	return h.send(c, "tasks", h.exporter.Tasks)
}

// send builds the workbook and streams it as an attachment
func (h *ExportHandler) send(c *fiber.Ctx, name string, build func(context.Context) (*excelize.File, error)) error {
	f, err := build(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to build export")
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return response.InternalServerError(c, "Failed to write export")
	}

	filename := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(buf.Bytes())
}
