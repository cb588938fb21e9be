package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(price int64) ProductRef {
	return ProductRef{
		ID:      uuid.New(),
		Barcode: "7790001001234",
		Name:    "Yerba Mate 1kg",
		Price:   price,
	}
}

func TestAddProductMergesSameProduct(t *testing.T) {
	d := NewDraft(Options{})
	p := newProduct(1000) // $10.00

	d.AddProduct(p)
	d.AddProduct(p)

	lines := d.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(1000), lines[0].UnitPrice)
	assert.Equal(t, int64(420), lines[0].TaxAmount) // 21% of $20.00
	assert.Equal(t, int64(2420), lines[0].LineTotal)
}

func TestAddProductAppendsDistinctProducts(t *testing.T) {
	d := NewDraft(Options{})
	first := newProduct(1000)
	second := newProduct(550)

	d.AddProduct(first)
	d.AddProduct(second)

	lines := d.Lines()
	require.Len(t, lines, 2)
	// Insertion order is display order.
	assert.Equal(t, first.ID, lines[0].ProductID)
	assert.Equal(t, second.ID, lines[1].ProductID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestAddProductSingleUnitAmounts(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))

	lines := d.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(210), lines[0].TaxAmount)
	assert.Equal(t, int64(1210), lines[0].LineTotal)
	assert.Equal(t, int64(2100), lines[0].TaxRateBP)
}

func TestSetQuantityRecomputesAmounts(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))

	require.NoError(t, d.SetQuantity(0, 3))

	lines := d.Lines()
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, int64(630), lines[0].TaxAmount)
	assert.Equal(t, int64(3630), lines[0].LineTotal)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))
	d.AddProduct(newProduct(500))
	require.Equal(t, 2, d.Len())

	require.NoError(t, d.SetQuantity(0, 0))

	assert.Equal(t, 1, d.Len())
	assert.Equal(t, int64(500), d.Lines()[0].UnitPrice)
}

func TestSetQuantityNegativeRemovesLine(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))

	require.NoError(t, d.SetQuantity(0, -1))
	assert.Equal(t, 0, d.Len())
}

func TestInvalidIndex(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))

	assert.ErrorIs(t, d.SetQuantity(1, 2), ErrInvalidIndex)
	assert.ErrorIs(t, d.SetQuantity(-1, 2), ErrInvalidIndex)
	assert.ErrorIs(t, d.RemoveItem(1), ErrInvalidIndex)
	assert.ErrorIs(t, d.RemoveItem(-1), ErrInvalidIndex)
	assert.Equal(t, 1, d.Len())
}

func TestRemoveItem(t *testing.T) {
	d := NewDraft(Options{})
	a := newProduct(100)
	b := newProduct(200)
	c := newProduct(300)
	d.AddProduct(a)
	d.AddProduct(b)
	d.AddProduct(c)

	require.NoError(t, d.RemoveItem(1))

	lines := d.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, a.ID, lines[0].ProductID)
	assert.Equal(t, c.ID, lines[1].ProductID)
}

// Scenario from the sale flow: one product at $10.00 added twice, no
// discount: subtotal $20.00, tax $4.20, total $24.20.
func TestTotalsScenario(t *testing.T) {
	d := NewDraft(Options{})
	p := newProduct(1000)

	d.AddProduct(p)
	totals := d.Totals()
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, int64(210), totals.TaxAmount)
	assert.Equal(t, int64(1210), totals.TotalAmount)

	d.AddProduct(p)
	totals = d.Totals()
	assert.Equal(t, int64(2000), totals.Subtotal)
	assert.Equal(t, int64(420), totals.TaxAmount)
	assert.Equal(t, int64(2420), totals.TotalAmount)
}

func TestTotalsIdempotent(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1999))
	d.AddProduct(newProduct(333))
	d.Discount = 250

	first := d.Totals()
	second := d.Totals()
	assert.Equal(t, first, second)
}

func TestTotalsWithDiscount(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))
	d.Discount = 500

	totals := d.Totals()
	assert.Equal(t, int64(1000), totals.Subtotal)
	assert.Equal(t, int64(210), totals.TaxAmount)
	assert.Equal(t, int64(500), totals.DiscountAmount)
	assert.Equal(t, int64(710), totals.TotalAmount)
}

func TestTotalsNegativeUnclampedByDefault(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(100))
	d.Discount = 1000

	totals := d.Totals()
	assert.Equal(t, int64(-879), totals.TotalAmount)
}

func TestTotalsClampAtZero(t *testing.T) {
	d := NewDraft(Options{ClampTotalAtZero: true})
	d.AddProduct(newProduct(100))
	d.Discount = 1000

	totals := d.Totals()
	assert.Equal(t, int64(0), totals.TotalAmount)
}

func TestConfigurableTaxRate(t *testing.T) {
	d := NewDraft(Options{DefaultTaxRateBP: 1050}) // 10.5%
	d.AddProduct(newProduct(1000))

	lines := d.Lines()
	assert.Equal(t, int64(1050), lines[0].TaxRateBP)
	assert.Equal(t, int64(105), lines[0].TaxAmount)
	assert.Equal(t, int64(1105), lines[0].LineTotal)
}

// Per-line additive tax: changing one line's rate after add must not affect
// the other lines, and the totals tax is the sum of per-line taxes.
func TestMixedRatesAreAdditive(t *testing.T) {
	d := NewDraft(Options{})
	d.AddProduct(newProduct(1000))
	d.AddProduct(newProduct(2000))

	lines := d.Lines()
	wantTax := lines[0].TaxAmount + lines[1].TaxAmount
	assert.Equal(t, wantTax, d.Totals().TaxAmount)
}

func TestTaxForRounding(t *testing.T) {
	// 21% of $0.01 is 0.21 cents, rounds to 0.
	assert.Equal(t, int64(0), TaxFor(1, 2100))
	// 21% of $0.03 is 0.63 cents, rounds to 1.
	assert.Equal(t, int64(1), TaxFor(3, 2100))
	// Exact case: 21% of $10.00.
	assert.Equal(t, int64(210), TaxFor(1000, 2100))
}

func TestEmptyDraftTotals(t *testing.T) {
	d := NewDraft(Options{})
	totals := d.Totals()
	assert.Equal(t, Totals{}, totals)
}
