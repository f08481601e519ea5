package domain

// QuickBuy - покупка одного товара в обход корзины.
type QuickBuy struct {
	ProductID string
	Quantity  int
	Options   map[string]string
}
