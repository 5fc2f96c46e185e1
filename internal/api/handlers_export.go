package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"github.com/xuri/excelize/v2"

	"github.com/bahadricoz/shift/internal/schedule"
)

// @Summary Export the schedule as CSV
// @Tags    Export
// @Produce text/csv
// @Param   from query string true "YYYY-MM-DD, inclusive"
// @Param   to query string true "YYYY-MM-DD, inclusive"
// @Param   member_ids query string false "comma-separated team_member_id values"
// @Param   work_types query string false "comma-separated work types"
// @Param   food_payment query string false "YES or NO; anything else passes all"
// @Success 200 {string} string "CSV body"
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /export.csv [get]
func (s *Service) exportCSV(ctx *fasthttp.RequestCtx) {
	rows, done := s.exportRows(ctx)
	if done {
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write(schedule.ExportColumns)
	for _, r := range rows {
		_ = w.Write(r.Values())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("csv.Writer: %w", err))
		return
	}

	ctx.Response.Header.Set("Content-Type", "text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename("csv")))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}

// @Summary Export the schedule as an XLSX workbook
// @Tags    Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   from query string true "YYYY-MM-DD, inclusive"
// @Param   to query string true "YYYY-MM-DD, inclusive"
// @Param   member_ids query string false "comma-separated team_member_id values"
// @Param   work_types query string false "comma-separated work types"
// @Param   food_payment query string false "YES or NO; anything else passes all"
// @Success 200 {string} string "XLSX body"
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router  /export.xlsx [get]
func (s *Service) exportXLSX(ctx *fasthttp.RequestCtx) {
	rows, done := s.exportRows(ctx)
	if done {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Schedule"
	f.SetSheetName(f.GetSheetName(0), sheet)

	header := make([]interface{}, len(schedule.ExportColumns))
	for i, c := range schedule.ExportColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("excelize.SetSheetRow: %w", err))
		return
	}

	for i, r := range rows {
		cells := r.Values()
		row := make([]interface{}, len(cells))
		for j, v := range cells {
			row[j] = v
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("excelize.SetSheetRow: %w", err))
			return
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("excelize.Write: %w", err))
		return
	}

	ctx.Response.Header.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, exportFilename("xlsx")))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(buf.Bytes())
}

// exportRows loads, filters and formats the rows for both export formats;
// it writes the response itself on failure (done=true).
func (s *Service) exportRows(ctx *fasthttp.RequestCtx) ([]schedule.ExportRow, bool) {
	acc := accessFrom(ctx)

	from, to, err := dateRange(string(ctx.QueryArgs().Peek("from")), string(ctx.QueryArgs().Peek("to")))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err)
		return nil, true
	}

	entries, err := s.shifts.ListForDepartmentAndRange(ctx, acc.DepartmentID, from.Format(schedule.DateLayout), to.Format(schedule.DateLayout))
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, fmt.Errorf("shiftRepository.ListForDepartmentAndRange: %w", err))
		return nil, true
	}

	filter := schedule.ExportFilter{
		MemberIDs:   splitCSVParam(ctx, "member_ids"),
		WorkTypes:   splitCSVParam(ctx, "work_types"),
		FoodPayment: string(ctx.QueryArgs().Peek("food_payment")),
	}

	return schedule.BuildExportRows(entries, filter), false
}

func splitCSVParam(ctx *fasthttp.RequestCtx, name string) []string {
	raw := string(ctx.QueryArgs().Peek(name))
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

func exportFilename(ext string) string {
	return fmt.Sprintf("schedule_%s.%s", time.Now().Format("20060102_150405"), ext)
}
