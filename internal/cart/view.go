package cart

import (
	"github.com/huydhb/greenfarm-backend/pkg/money"
)

// LineView is the API representation of a cart line.
type LineView struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Image     string       `json:"img"`
	Quantity  int          `json:"quantity"`
	Price     money.Price  `json:"price"`
	SalePrice *money.Price `json:"sale_price,omitempty"`
	UnitPrice money.Price  `json:"unit_price"`
	LineTotal money.Price  `json:"line_total"`
}

// View is the API representation of a whole cart.
type View struct {
	Items         []LineView  `json:"items"`
	TotalQuantity int         `json:"total_quantity"`
	Subtotal      money.Price `json:"subtotal"`
}

func NewLineView(line Line) LineView {
	view := LineView{
		ProductID: line.ProductID,
		Name:      line.Name,
		Image:     line.Image,
		Quantity:  line.Quantity,
		Price:     money.NewPrice(line.Price),
		UnitPrice: money.NewPrice(line.UnitPrice()),
		LineTotal: money.NewPrice(line.LineTotal()),
	}
	if line.SalePrice != nil {
		sale := money.NewPrice(*line.SalePrice)
		view.SalePrice = &sale
	}
	return view
}

func NewView(l *Ledger) View {
	lines := l.Lines()
	items := make([]LineView, 0, len(lines))
	for _, line := range lines {
		items = append(items, NewLineView(line))
	}
	return View{
		Items:         items,
		TotalQuantity: l.TotalQuantity(),
		Subtotal:      money.NewPrice(l.Subtotal()),
	}
}
