// =============================================================================
// Packing Slip Generator - Order Aggregator
// =============================================================================
//
// Turns one order group into the model a packing slip template is rendered
// from.
//
// ORDER-LEVEL FIELDS:
//   The model starts as a copy of the group's first row, so any column that
//   is not listed below carries the first row's value. Then:
//
//   | Field             | Value                                         |
//   |-------------------|-----------------------------------------------|
//   | Total_Case        | sum of Order_Unit                             |
//   | Vol               | sum of Vol (blank = 0), 2 decimals            |
//   | Total_WT          | sum of Total_WT (blank = 0), 2 decimals       |
//   | Item_Count        | number of rows                                |
//   | Total_qty         | sum of Order_Unit x Pack                      |
//   | Invoice_Time      | generation time, HH:MM                        |
//   | Shipping_Handling | source value, or "0.00" when blank/NaN        |
//   | line_items        | []LineItem, padded to MinLineItems            |
//
// =============================================================================

package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/packing-slips/internal/types"
)

// DefaultMinLineItems is the row count of the stock packing slip layout.
const DefaultMinLineItems = 16

// LineItemsKey is the model key holding the line item sequence.
const LineItemsKey = "line_items"

// Model is the template context for one packing slip.
type Model map[string]any

// LineItems returns the model's line item sequence.
func (m Model) LineItems() []LineItem {
	items, _ := m[LineItemsKey].([]LineItem)
	return items
}

// String returns a text field of the model, or "" if it is absent.
func (m Model) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// LineItem is one rendered row of a packing slip. The zero value is a blank
// padding row.
type LineItem struct {
	LineNumber  string
	OrderUnit   string
	Unit        string
	Pack        string
	ItemNo      string
	Description string
	ShipQty     string
	Weight      string
	Volume      string
	// Loc is reserved for a bin location; the source sheet has none yet.
	Loc string
}

// Blank reports whether the item is a padding row.
func (li LineItem) Blank() bool {
	return li == LineItem{}
}

// ParseError reports a numeric cell that could not be parsed.
type ParseError struct {
	Order  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("order %s, line %d: column %s: cannot parse %q: %v",
		e.Order, e.Row+1, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator builds packing slip models from order groups.
type Aggregator struct {
	minLineItems int
	now          func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMinLineItems sets the padded length of the line item sequence.
func WithMinLineItems(n int) Option {
	return func(a *Aggregator) {
		if n >= 0 {
			a.minLineItems = n
		}
	}
}

// WithClock replaces time.Now for the Invoice_Time field.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// NewAggregator returns an Aggregator with the stock layout defaults.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		minLineItems: DefaultMinLineItems,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build computes the model for one order group.
//
// Order_Unit and Pack must be integers on every row; a bad value fails the
// whole group with a *ParseError. Vol and Total_WT may be blank.
func (a *Aggregator) Build(g Group) (Model, error) {
	if len(g.Rows) == 0 {
		return nil, fmt.Errorf("order %s has no rows", g.Key)
	}

	var (
		totalCase   int
		totalQty    int
		totalVol    float64
		totalWeight float64
	)

	items := make([]LineItem, 0, max(len(g.Rows), a.minLineItems))

	for i, row := range g.Rows {
		orderUnit, err := a.parseInt(g.Key, i, row, "Order_Unit")
		if err != nil {
			return nil, err
		}
		pack, err := a.parseInt(g.Key, i, row, "Pack")
		if err != nil {
			return nil, err
		}
		weight, err := a.parseFloat(g.Key, i, row, "Total_WT")
		if err != nil {
			return nil, err
		}
		volume, err := a.parseFloat(g.Key, i, row, "Vol")
		if err != nil {
			return nil, err
		}

		shipQty := orderUnit * pack

		totalCase += orderUnit
		totalQty += shipQty
		totalWeight += weight
		totalVol += volume

		items = append(items, LineItem{
			LineNumber:  row["line_number"],
			OrderUnit:   FormatCount(orderUnit),
			Unit:        row["unit"],
			Pack:        FormatCount(pack),
			ItemNo:      row["Item_no"],
			Description: row["Description"],
			ShipQty:     FormatCount(shipQty),
			Weight:      FormatDecimal(weight),
			Volume:      FormatDecimal(volume),
		})
	}

	for len(items) < a.minLineItems {
		items = append(items, LineItem{})
	}

	model := make(Model, len(g.Rows[0])+8)
	for k, v := range g.Rows[0] {
		model[k] = v
	}

	model["Total_Case"] = FormatCount(totalCase)
	model["Vol"] = FormatDecimal(totalVol)
	model["Total_WT"] = FormatDecimal(totalWeight)
	model["Item_Count"] = strconv.Itoa(len(g.Rows))
	model["Invoice_Time"] = a.now().Format("15:04")
	model["Total_qty"] = FormatCount(totalQty)
	model["Shipping_Handling"] = shippingHandling(g.Rows[0])
	model[LineItemsKey] = items

	return model, nil
}

func (a *Aggregator) parseInt(key string, i int, row types.Row, column string) (int, error) {
	value := row[column]
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, &ParseError{Order: key, Row: i, Column: column, Value: value, Err: err}
	}
	return n, nil
}

func (a *Aggregator) parseFloat(key string, i int, row types.Row, column string) (float64, error) {
	value := row[column]
	f, err := parseOptionalFloat(value)
	if err != nil {
		return 0, &ParseError{Order: key, Row: i, Column: column, Value: value, Err: err}
	}
	return f, nil
}

// shippingHandling passes the representative row's charge through unchanged,
// defaulting to "0.00" when it is absent, blank or NaN.
func shippingHandling(row types.Row) string {
	value, ok := row.Get("Shipping_Handling")
	if !ok || isMissing(value) {
		return "0.00"
	}
	return value
}
