package ingest_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/florzoye/shop/internal/domain/catalog"
	"github.com/florzoye/shop/internal/ingest"
)

var _ = Describe("Parse", func() {
	It("should accept a canonical line", func() {
		items, errs := ingest.Parse("снюс|Brand|Mint|10|99.5")
		Expect(errs).To(BeEmpty())
		Expect(items).To(HaveLen(1))
		Expect(items[0]).To(Equal(ingest.Item{
			Line:     1,
			Category: catalog.Snus,
			Brand:    "Brand",
			Flavor:   "Mint",
			Quantity: 10,
			Price:    99.5,
		}))
	})

	It("should reject a four-field line with a field-count error", func() {
		items, errs := ingest.Parse("снюс|Brand|Mint|10")
		Expect(items).To(BeEmpty())
		Expect(errs).To(ConsistOf("⚠️ Строка 1: неверное количество полей (ожидается 5, получено 4)"))
	})

	It("should return nothing for blank input", func() {
		items, errs := ingest.Parse("  \n\t\n ")
		Expect(items).To(BeEmpty())
		Expect(errs).To(BeEmpty())
	})

	It("should keep valid lines when others fail and number non-blank lines", func() {
		text := "поды | Elf Bar | Mango | 10 | 890,50\n\n" +
			"табак | X | Y | 1 | 1\n" +
			"ЖИДКОСТИ | Husky | Ice | 0 | 450"
		items, errs := ingest.Parse(text)

		Expect(items).To(HaveLen(2))
		Expect(items[0].Price).To(Equal(890.5))
		Expect(items[1].Category).To(Equal(catalog.Liquids))
		Expect(items[1].Line).To(Equal(3))
		Expect(items[1].Quantity).To(BeZero())

		Expect(errs).To(HaveLen(1))
		Expect(errs[0]).To(HavePrefix("⚠️ Строка 2: неизвестная категория 'табак'. Доступные: "))
		Expect(errs[0]).To(ContainSubstring("снюс, поды, жидкости, пластики, расходники"))
	})

	DescribeTable("category matching ignores case",
		func(label string, want catalog.Category) {
			items, errs := ingest.Parse(label + " | Brand | Mint | 1 | 10")
			Expect(errs).To(BeEmpty())
			Expect(items[0].Category).To(Equal(want))
		},
		Entry("lower", "снюс", catalog.Snus),
		Entry("upper", "ПОДЫ", catalog.Pods),
		Entry("mixed", "ПлАсТиКи", catalog.Plastics),
		Entry("title", "Расходники", catalog.Consumables),
	)

	DescribeTable("rejected lines",
		func(line, message string) {
			items, errs := ingest.Parse(line)
			Expect(items).To(BeEmpty())
			Expect(errs).To(ConsistOf("⚠️ Строка 1: " + message))
		},
		Entry("stable code instead of label", "snus | Brand | Mint | 1 | 10",
			"неизвестная категория 'snus'. Доступные: снюс, поды, жидкости, пластики, расходники"),
		Entry("short brand", "снюс | B | Mint | 1 | 10", "название бренда слишком короткое"),
		Entry("short flavor", "снюс | Brand | M | 1 | 10", "название вкуса слишком короткое"),
		Entry("non-numeric quantity", "снюс | Brand | Mint | много | 10", "'много' не является числом"),
		Entry("fractional quantity", "снюс | Brand | Mint | 1.5 | 10", "'1.5' не является числом"),
		Entry("negative quantity", "снюс | Brand | Mint | -3 | 10", "количество не может быть отрицательным"),
		Entry("non-numeric price", "снюс | Brand | Mint | 1 | дёшево", "'дёшево' не является числом"),
		Entry("NaN price", "снюс | Brand | Mint | 1 | NaN", "'NaN' не является числом"),
		Entry("zero price", "снюс | Brand | Mint | 1 | 0", "цена должна быть больше 0"),
		Entry("negative price", "снюс | Brand | Mint | 1 | -5,5", "цена должна быть больше 0"),
		Entry("six fields", "снюс | Brand | Mint | 1 | 10 | x", "неверное количество полей (ожидается 5, получено 6)"),
	)

	It("should count runes, not bytes, for name length", func() {
		items, errs := ingest.Parse("снюс | Ё | Мята | 1 | 10")
		Expect(items).To(BeEmpty())
		Expect(errs).To(HaveLen(1))

		items, errs = ingest.Parse("снюс | Ёж | Мята | 1 | 10")
		Expect(errs).To(BeEmpty())
		Expect(items).To(HaveLen(1))
	})
})

var _ = Describe("ParseLegacy", func() {
	It("should map the title to the brand with the default flavor", func() {
		items, errs := ingest.ParseLegacy("снюс | VELO Ice Cool Mint | 50 | 450")
		Expect(errs).To(BeEmpty())
		Expect(items).To(ConsistOf(ingest.Item{
			Line:     1,
			Category: catalog.Snus,
			Brand:    "VELO Ice Cool Mint",
			Flavor:   ingest.DefaultFlavor,
			Quantity: 50,
			Price:    450,
		}))
	})

	It("should expect four fields", func() {
		_, errs := ingest.ParseLegacy("снюс | VELO | Mint | 50 | 450")
		Expect(errs).To(ConsistOf("⚠️ Строка 1: неверное количество полей (ожидается 4, получено 5)"))
	})

	It("should reject a short title", func() {
		_, errs := ingest.ParseLegacy("снюс | V | 50 | 450")
		Expect(errs).To(ConsistOf("⚠️ Строка 1: название товара слишком короткое"))
	})
})

var _ = Describe("Parser", func() {
	It("should describe the format it expects", func() {
		Expect(ingest.NewParser(false).Help()).To(ContainSubstring("категория | бренд | вкус | количество | цена"))
		Expect(ingest.NewParser(true).Help()).To(ContainSubstring("категория | название | количество | цена"))
		Expect(ingest.NewParser(true).Fields()).To(Equal(4))
	})
})

var _ = Describe("ParsePrice", func() {
	DescribeTable("accepted",
		func(in string, want float64) {
			got, err := ingest.ParsePrice(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("dot", "99.5", 99.5),
		Entry("comma", "99,5", 99.5),
		Entry("two decimals", "890,50", 890.5),
		Entry("integer", " 450 ", 450.0),
		Entry("negative is left to the caller", "-5", -5.0),
	)

	DescribeTable("rejected",
		func(in string, want error) {
			_, err := ingest.ParsePrice(in)
			Expect(err).To(MatchError(want))
		},
		Entry("garbage", "abc", ingest.ErrNotNumber),
		Entry("infinity", "Inf", ingest.ErrNotNumber),
		Entry("exponent", "1e3", ingest.ErrNotNumber),
		Entry("hex float", "0x1p4", ingest.ErrNotNumber),
		Entry("too many integer digits", "12345678901", ingest.ErrNotNumber),
		Entry("three decimals", "0,001", ingest.ErrPriceScale),
	)

	It("should give a numbered error for a price with three decimals", func() {
		items, errs := ingest.Parse("снюс | VELO | Ice | 5 | 0,001\nснюс | VELO | Mint | 5 | 1e3")
		Expect(items).To(BeEmpty())
		Expect(errs).To(Equal([]string{
			"⚠️ Строка 1: цена '0,001': не больше двух знаков после запятой",
			"⚠️ Строка 2: '1e3' не является числом",
		}))
	})
})
