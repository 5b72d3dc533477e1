package ingest_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/ingest"
)

func workbook(rows ...[]interface{}) *bytes.Buffer {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SetSheetRow(sheet, cell, &row)).To(Succeed())
	}
	buf := &bytes.Buffer{}
	Expect(f.Write(buf)).To(Succeed())
	return buf
}

var _ = Describe("ParseWorkbook", func() {
	It("should skip the header row and parse the rest", func() {
		buf := workbook(
			[]interface{}{"Категория", "Бренд", "Вкус", "Количество", "Цена"},
			[]interface{}{"снюс", "VELO", "Ice Cool", 50, 450},
			[]interface{}{"", "", "", "", ""},
			[]interface{}{"поды", "Elf Bar", "Mango", 10, "890,50"},
		)

		items, errs, err := ingest.NewParser(false).ParseWorkbook(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(errs).To(BeEmpty())
		Expect(items).To(HaveLen(2))
		Expect(items[0].Category).To(Equal(catalog.Snus))
		Expect(items[0].Quantity).To(Equal(50))
		Expect(items[1].Price).To(Equal(890.5))
	})

	It("should keep the first row when it is data", func() {
		buf := workbook([]interface{}{"жидкости", "Husky", "Ice", 3, 400})

		items, errs, err := ingest.NewParser(false).ParseWorkbook(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(errs).To(BeEmpty())
		Expect(items).To(HaveLen(1))
	})

	It("should report a misspelled category in the first row", func() {
		buf := workbook(
			[]interface{}{"снус", "VELO", "Ice", 5, 450},
			[]interface{}{"снюс", "VELO", "Mint", 5, 450},
		)

		items, errs, err := ingest.NewParser(false).ParseWorkbook(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(items).To(HaveLen(1))
		Expect(items[0].Flavor).To(Equal("Mint"))
		Expect(errs).To(HaveLen(1))
		Expect(errs[0]).To(HavePrefix("⚠️ Строка 1: неизвестная категория 'снус'"))
	})

	It("should report row errors like text lines", func() {
		buf := workbook(
			[]interface{}{"снюс", "VELO", "Ice", "много", 450},
		)

		items, errs, err := ingest.NewParser(false).ParseWorkbook(buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(items).To(BeEmpty())
		Expect(errs).To(ConsistOf("⚠️ Строка 1: 'много' не является числом"))
	})

	It("should fail on an empty workbook", func() {
		_, _, err := ingest.NewParser(false).ParseWorkbook(workbook())
		Expect(err).To(MatchError(ingest.ErrEmptyWorkbook))
	})

	It("should fail on bytes that are not xlsx", func() {
		_, _, err := ingest.NewParser(false).ParseWorkbook(bytes.NewBufferString("plain text"))
		Expect(err).To(HaveOccurred())
	})
})
