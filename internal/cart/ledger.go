package cart

import (
	"math"

	"github.com/huydhb/greenfarm-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// maxLineQuantity caps quantities so float input can never overflow an int.
const maxLineQuantity = math.MaxInt32

// Bounds limits quantities set directly on a line. Max 0 means unbounded.
type Bounds struct {
	Min int
	Max int
}

func (b Bounds) normalized() Bounds {
	if b.Min < 1 {
		b.Min = 1
	}
	if b.Max != 0 && b.Max < b.Min {
		b.Max = b.Min
	}
	return b
}

// Line is one product in the cart. Price fields are a snapshot taken when
// the line was created.
type Line struct {
	ProductID string
	Name      string
	Image     string
	Price     decimal.Decimal
	SalePrice *decimal.Decimal
	Quantity  int
}

// UnitPrice is the effective price of the snapshot.
func (l Line) UnitPrice() decimal.Decimal {
	if l.SalePrice != nil && l.SalePrice.LessThan(l.Price) {
		return *l.SalePrice
	}
	return l.Price
}

func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger maps product identity to a cart line. It is not safe for concurrent
// use; callers serialise access per session.
type Ledger struct {
	bounds Bounds
	order  []string
	lines  map[string]*Line
}

func NewLedger(bounds Bounds) *Ledger {
	return &Ledger{
		bounds: bounds.normalized(),
		lines:  make(map[string]*Line),
	}
}

// Add puts qty units of product in the cart, merging with an existing line.
// Quantities are floored; non-finite or sub-one values become 1. It returns
// the resulting line and the quantity actually added.
func (l *Ledger) Add(product catalog.Product, qty float64) (Line, int) {
	added := normalizeAddQuantity(qty)
	id := product.ID
	if id == "" {
		id = product.Name
	}

	if existing, ok := l.lines[id]; ok {
		existing.Quantity = capQuantity(int64(existing.Quantity) + int64(added))
		return *existing, added
	}

	line := &Line{
		ProductID: id,
		Name:      product.Name,
		Image:     product.Image,
		Price:     product.Price,
		Quantity:  added,
	}
	if product.SalePrice != nil {
		sale := *product.SalePrice
		line.SalePrice = &sale
	}
	l.lines[id] = line
	l.order = append(l.order, id)
	return *line, added
}

// SetQuantity replaces the quantity of an existing line, clamped to the
// ledger bounds. Non-finite input keeps the current quantity. It reports
// false when no line has the id.
func (l *Ledger) SetQuantity(id string, qty float64) (Line, bool) {
	line, ok := l.lines[id]
	if !ok {
		return Line{}, false
	}
	line.Quantity = l.clamp(qty, line.Quantity)
	return *line, true
}

// Remove deletes the line for id. Unknown ids are ignored.
func (l *Ledger) Remove(id string) bool {
	if _, ok := l.lines[id]; !ok {
		return false
	}
	delete(l.lines, id)
	for i, candidate := range l.order {
		if candidate == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

func (l *Ledger) Clear() {
	l.order = nil
	l.lines = make(map[string]*Line)
}

func (l *Ledger) Get(id string) (Line, bool) {
	line, ok := l.lines[id]
	if !ok {
		return Line{}, false
	}
	return *line, true
}

// Lines returns copies of the lines in the order they were first added.
func (l *Ledger) Lines() []Line {
	out := make([]Line, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.lines[id])
	}
	return out
}

func (l *Ledger) Len() int {
	return len(l.order)
}

func (l *Ledger) IsEmpty() bool {
	return len(l.order) == 0
}

func (l *Ledger) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range l.lines {
		total = total.Add(line.LineTotal())
	}
	return total
}

func (l *Ledger) TotalQuantity() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

func (l *Ledger) Bounds() Bounds {
	return l.bounds
}

func (l *Ledger) clamp(qty float64, current int) int {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		qty = float64(current)
		if current == 0 {
			qty = float64(l.bounds.Min)
		}
	}
	qty = math.Floor(qty)
	if qty < float64(l.bounds.Min) {
		return l.bounds.Min
	}
	if l.bounds.Max > 0 && qty > float64(l.bounds.Max) {
		return l.bounds.Max
	}
	if qty > maxLineQuantity {
		return maxLineQuantity
	}
	return int(qty)
}

func normalizeAddQuantity(qty float64) int {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 1
	}
	qty = math.Floor(qty)
	if qty < 1 {
		return 1
	}
	if qty > maxLineQuantity {
		return maxLineQuantity
	}
	return int(qty)
}

func capQuantity(n int64) int {
	if n > maxLineQuantity {
		return maxLineQuantity
	}
	return int(n)
}
