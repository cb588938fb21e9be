// Package cart implements the in-memory sale draft: an ordered list of line
// items with merge-on-add semantics and pure totals derivation. All amounts
// are integer cents; tax rates are basis points (2100 = 21%).
package cart

import (
	"errors"

	"github.com/google/uuid"
	"github.com/ventapos/ventapos-api/internal/domain/enum"
)

// ErrInvalidIndex signals a line index outside the current item list. Callers
// are expected to only pass indices obtained from Lines(); hitting this is a
// contract violation, not a user-facing condition.
var ErrInvalidIndex = errors.New("cart: line index out of range")

// DefaultTaxRateBP is the fallback tax rate when none is configured.
const DefaultTaxRateBP int64 = 2100

// ProductRef carries the product fields copied into a line at add time.
// Lines never live-link back to the catalog; later price changes do not
// retroactively alter a draft.
type ProductRef struct {
	ID      uuid.UUID
	Barcode string
	Name    string
	Price   int64 // cents
}

// Line is one product entry in a draft.
type Line struct {
	ProductID uuid.UUID
	Barcode   string
	Name      string
	Quantity  int
	UnitPrice int64 // cents
	TaxRateBP int64
	TaxAmount int64 // cents
	LineTotal int64 // cents
}

// Options configures draft behavior. The zero value uses DefaultTaxRateBP
// and leaves negative totals unclamped, matching the historical behavior.
type Options struct {
	// DefaultTaxRateBP is applied to every line added via AddProduct.
	DefaultTaxRateBP int64
	// ClampTotalAtZero floors the grand total at zero when the discount
	// exceeds subtotal plus tax.
	ClampTotalAtZero bool
}

// Totals is the pure derivation over a draft's lines and discount.
type Totals struct {
	Subtotal       int64
	TaxAmount      int64
	DiscountAmount int64
	TotalAmount    int64
}

// Draft is the mutable sale being assembled. It is owned by a single flow
// instance and is not safe for concurrent use.
type Draft struct {
	opts  Options
	lines []Line

	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerEmail string
	PaymentMethod enum.PaymentMethod
	Discount      int64 // cents
	Notes         string
}

// NewDraft creates an empty draft with the given options.
func NewDraft(opts Options) *Draft {
	if opts.DefaultTaxRateBP <= 0 {
		opts.DefaultTaxRateBP = DefaultTaxRateBP
	}
	return &Draft{
		opts:          opts,
		PaymentMethod: enum.PaymentMethodCash,
	}
}

// AddProduct adds one unit of the product. If a line for the same product ID
// already exists its quantity is incremented and its amounts recomputed;
// otherwise a new line is appended with quantity 1, price and identity copied
// from the product, and the draft's configured tax rate.
func (d *Draft) AddProduct(p ProductRef) {
	for i := range d.lines {
		if d.lines[i].ProductID == p.ID {
			d.lines[i].Quantity++
			d.recompute(i)
			return
		}
	}

	line := Line{
		ProductID: p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Quantity:  1,
		UnitPrice: p.Price,
		TaxRateBP: d.opts.DefaultTaxRateBP,
	}
	d.lines = append(d.lines, line)
	d.recompute(len(d.lines) - 1)
}

// SetQuantity sets the quantity of the line at index i. A quantity of zero or
// less removes the line. Returns ErrInvalidIndex for an out-of-range index.
func (d *Draft) SetQuantity(i, quantity int) error {
	if i < 0 || i >= len(d.lines) {
		return ErrInvalidIndex
	}
	if quantity <= 0 {
		return d.RemoveItem(i)
	}
	d.lines[i].Quantity = quantity
	d.recompute(i)
	return nil
}

// RemoveItem removes the line at index i unconditionally. Returns
// ErrInvalidIndex for an out-of-range index.
func (d *Draft) RemoveItem(i int) error {
	if i < 0 || i >= len(d.lines) {
		return ErrInvalidIndex
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	return nil
}

// Lines returns a copy of the current lines in insertion order.
func (d *Draft) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the number of lines in the draft.
func (d *Draft) Len() int {
	return len(d.lines)
}

// Totals derives subtotal, tax, and grand total from the current lines and
// discount. Tax is additive per line, so mixed rates across lines are
// supported. The derivation is a pure function of the draft's state.
func (d *Draft) Totals() Totals {
	t := Totals{DiscountAmount: d.Discount}
	for i := range d.lines {
		t.Subtotal += d.lines[i].UnitPrice * int64(d.lines[i].Quantity)
		t.TaxAmount += d.lines[i].TaxAmount
	}
	t.TotalAmount = t.Subtotal + t.TaxAmount - t.DiscountAmount
	if d.opts.ClampTotalAtZero && t.TotalAmount < 0 {
		t.TotalAmount = 0
	}
	return t
}

// recompute refreshes the derived amounts of the line at index i so that
// tax_amount == unit_price*quantity*rate/100 and
// line_total == unit_price*quantity + tax_amount always hold.
func (d *Draft) recompute(i int) {
	l := &d.lines[i]
	base := l.UnitPrice * int64(l.Quantity)
	l.TaxAmount = TaxFor(base, l.TaxRateBP)
	l.LineTotal = base + l.TaxAmount
}

// TaxFor computes the tax in cents on a base amount at a basis-point rate,
// rounding half away from zero.
func TaxFor(baseCents, rateBP int64) int64 {
	raw := baseCents * rateBP
	if raw >= 0 {
		return (raw + 5000) / 10000
	}
	return (raw - 5000) / 10000
}
