package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/florzoye/shop/migrations"
)

func TestMigrations(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Migrations Suite")
}

var _ = Describe("Embedded migrations", func() {
	var names []string

	BeforeEach(func() {
		var err error
		names, err = fs.Glob(migrations.FS, "*.sql")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should ship the schema in order", func() {
		Expect(names).To(Equal([]string{
			"00001_brands_products.sql",
			"00002_sales.sql",
			"00003_users_dialog_states.sql",
		}))
	})

	It("should annotate every file for goose", func() {
		for _, name := range names {
			body, err := fs.ReadFile(migrations.FS, name)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(ContainSubstring("-- +goose Up"), name)
			Expect(string(body)).To(ContainSubstring("-- +goose Down"), name)
		}
	})

	It("should keep stock non-negative and products unique per brand", func() {
		body, err := fs.ReadFile(migrations.FS, "00001_brands_products.sql")
		Expect(err).NotTo(HaveOccurred())
		sql := string(body)
		Expect(sql).To(ContainSubstring("CHECK (quantity >= 0)"))
		Expect(sql).To(ContainSubstring("UNIQUE (brand_id, flavor)"))
		Expect(sql).To(ContainSubstring("UNIQUE (name, category)"))
		Expect(sql).To(ContainSubstring("ON DELETE CASCADE"))
	})

	It("should not tie sales to products with a foreign key", func() {
		body, err := fs.ReadFile(migrations.FS, "00002_sales.sql")
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.ToUpper(string(body))).NotTo(ContainSubstring("REFERENCES"))
	})
})
