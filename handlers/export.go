// handlers/export.go
package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"mjengo.ke/estimator/pkg/boq"
	"mjengo.ke/estimator/pkg/schedule"
)

// ExportBOQToExcel renders the persisted document as a styled workbook.
func ExportBOQToExcel(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	sections, err := quote.DecodeBOQ()
	if err != nil {
		http.Error(w, "corrupt boq payload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	f, err := createBOQWorkbook(quote.Title, sections)
	if err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.xlsx", sanitizeFilename(quote.Title), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

func createBOQWorkbook(title string, sections []boq.Section) (*excelize.File, error) {
	f := excelize.NewFile()
	sheetName := "BOQ"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", title)
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	sectionStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D9E1F2"},
			Pattern: 1,
		},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})

	headers := []string{"Item", "Description", "Unit", "Qty", "Rate", "Amount"}
	widths := []float64{10, 50, 8, 10, 12, 14}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, widths[i])
	}

	row := 5
	for _, sec := range sections {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), sec.Title)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), sectionStyle)
		row++

		for _, it := range sec.Items {
			if it.IsHeader {
				f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), it.Description)
				f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), totalStyle)
				row++
				continue
			}
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), it.ItemNo)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), it.Description)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), it.Unit)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), it.Quantity)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), it.Rate)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), it.Amount)
			row++
		}

		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("Section Total: %s", sec.Title))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), boq.SectionTotal(sec))
		f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("F%d", row), totalStyle)
		row += 2
	}

	f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), "GRAND TOTAL")
	f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), boq.GrandTotal(sections))
	f.SetCellStyle(sheetName, fmt.Sprintf("B%d", row), fmt.Sprintf("F%d", row), totalStyle)

	return f, nil
}

// ExportScheduleToCSV streams a fresh consolidation as CSV for procurement.
func ExportScheduleToCSV(w http.ResponseWriter, r *http.Request) {
	quote, ok := loadQuote(w, r)
	if !ok {
		return
	}
	sections, err := quote.DecodeBOQ()
	if err != nil {
		http.Error(w, "corrupt boq payload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	consolidated := schedule.Consolidate(schedule.NewExtractor().FromSections(sections))

	filename := fmt.Sprintf("%s_materials_%s.csv", sanitizeFilename(quote.Title), time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	cw := csv.NewWriter(w)
	defer cw.Flush()

	cw.Write([]string{"Item", "Description", "Unit", "Quantity", "Rate", "Amount", "Category", "Locations"})
	for _, line := range consolidated {
		cw.Write([]string{
			line.ItemNo,
			line.Description,
			line.Unit,
			strconv.FormatFloat(line.Quantity, 'f', 2, 64),
			strconv.FormatFloat(line.Rate, 'f', 2, 64),
			strconv.FormatFloat(line.Amount, 'f', 2, 64),
			line.Category,
			strings.Join(line.Locations, "; "),
		})
	}
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(strings.TrimSpace(name))
}
