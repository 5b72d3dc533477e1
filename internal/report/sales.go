// Package report renders the sales ledger as an xlsx workbook.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/florzoye/shop/internal/domain/sales"
)

const SheetSales = "Продажи"

var salesHeader = []interface{}{
	"ID",
	"Дата",
	"Категория",
	"Бренд",
	"Вкус",
	"Количество",
	"Сумма, ₽",
	"Админ",
}

// FileName builds the attachment name for a period.
func FileName(from, to time.Time) string {
	return fmt.Sprintf("sales_%s_%s.xlsx", from.Format("20060102"), to.Format("20060102"))
}

// WriteSales writes one row per sale and a totals row. Dates are shown in loc.
func WriteSales(w io.Writer, list []sales.Sale, totals sales.Totals, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetSales); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	// Заголовок
	if err := f.SetSheetRow(SheetSales, "A1", &salesHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, s := range list {
		category := ""
		if s.Category != "" {
			category = s.Category.Label()
		}
		admin := s.AdminUsername
		if admin == "" {
			admin = fmt.Sprintf("%d", s.AdminID)
		}
		excelRow := []interface{}{
			s.ID,
			s.SaleDate.In(loc).Format("02.01.2006 15:04"),
			category,
			s.BrandName,
			s.Flavor,
			s.Quantity,
			s.Price,
			admin,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSales, cell, &excelRow); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	// Итого
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	total := []interface{}{"Итого", totals.Count, "", "", "", totals.Quantity, totals.Revenue, ""}
	if err := f.SetSheetRow(SheetSales, cell, &total); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	_ = f.SetColWidth(SheetSales, "B", "B", 18)
	_ = f.SetColWidth(SheetSales, "C", "E", 16)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
