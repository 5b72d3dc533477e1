package dialog

type State string

const (
	StateIdle State = "idle"

	// Пакетное добавление товаров
	StateAddAwaitBatch State = "add_await_batch"

	// Продажа
	StateSellCategory State = "sell_category"
	StateSellBrand    State = "sell_brand"
	StateSellProduct  State = "sell_product"
	StateSellQty      State = "sell_qty"   // ввод количества
	StateSellPrice    State = "sell_price" // ввод итоговой цены

	// Отчёт по продажам: ожидание периода
	StateSalesAwaitRange State = "sales_await_range"
)

// InSale reports whether the state belongs to the sale flow.
func (s State) InSale() bool {
	switch s {
	case StateSellCategory, StateSellBrand, StateSellProduct, StateSellQty, StateSellPrice:
		return true
	}
	return false
}

// Payload keys.
const (
	KeyCategory  = "category"
	KeyBrandID   = "brand_id"
	KeyBrandName = "brand_name"
	KeyProductID = "product_id"
	KeyFlavor    = "flavor"
	KeyStock     = "stock"      // остаток на момент выбора товара
	KeyListPrice = "list_price" // цена за штуку
	KeySellQty   = "sell_qty"
	KeyLastMsgID = "last_mid"
)

type Payload map[string]any

// Clone returns a shallow copy; nil becomes an empty payload.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}

func idle(chatID int64) *Item {
	return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}
}
