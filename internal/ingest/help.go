package ingest

import (
	"strings"

	"github.com/florzoye/shop/internal/domain/catalog"
)

// Help describes the expected batch format.
func (p Parser) Help() string {
	var b strings.Builder
	b.WriteString("📦 Добавление товаров\n\n")
	b.WriteString("Отправьте одним сообщением список, по одному товару в строке:\n")
	if p.legacy {
		b.WriteString("категория | название | количество | цена\n\n")
		b.WriteString("Пример:\nснюс | VELO Ice Cool | 50 | 450\n")
	} else {
		b.WriteString("категория | бренд | вкус | количество | цена\n\n")
		b.WriteString("Пример:\nснюс | VELO | Ice Cool | 50 | 450\nподы | Elf Bar | Mango | 10 | 890,50\n")
	}
	b.WriteString("\nКатегории: ")
	b.WriteString(strings.Join(catalog.Labels(), ", "))
	b.WriteString("\n\nЕсли товар уже есть, количество прибавится к остатку.\nОтменить: /cancel")
	return b.String()
}
