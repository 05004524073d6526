package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/datawise/backend/internal/domain/commerce"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// VariantSellThrough is the per-variant inventory turnover figure.
type VariantSellThrough struct {
	SellThroughRate float64 `json:"sell_through_rate"`
	Inventory       int64   `json:"inventory"`
	TotalInventory  int64   `json:"total_inventory"`
}

// Metrics holds every figure derived from the fetched commerce records.
// Monetary amounts stay decimal until the response document is assembled.
type Metrics struct {
	OrderCount      int
	OrdersFulfilled int

	GrossSales decimal.Decimal
	Discounts  decimal.Decimal
	Returns    decimal.Decimal
	NetSales   decimal.Decimal
	Shipping   decimal.Decimal
	Taxes      decimal.Decimal
	TotalSales decimal.Decimal

	AverageOrderValue     decimal.Decimal
	ReturningCustomerRate float64

	SalesByChannel map[string]decimal.Decimal
	SalesByProduct map[string]decimal.Decimal

	CurrentYearByMonth  [12]decimal.Decimal
	PreviousYearByMonth [12]decimal.Decimal

	ProductInventory map[string]VariantSellThrough
}

// ComputeMetrics aggregates orders, products and the precomputed refund
// total into dashboard metrics. now anchors the two-year monthly series.
func ComputeMetrics(orders []commerce.Order, products []commerce.Product, returns decimal.Decimal, now time.Time) Metrics {
	m := Metrics{
		Returns:          returns,
		SalesByChannel:   make(map[string]decimal.Decimal),
		SalesByProduct:   make(map[string]decimal.Decimal),
		ProductInventory: make(map[string]VariantSellThrough),
	}

	m.OrderCount = len(orders)
	currentYear := now.Year()
	ordersByEmail := make(map[string]int)

	for _, o := range orders {
		total := commerce.ParseDecimal(o.TotalPrice)

		m.GrossSales = m.GrossSales.Add(commerce.ParseDecimal(o.TotalLineItemsPrice))
		m.Discounts = m.Discounts.Add(commerce.ParseDecimal(o.TotalDiscounts))
		m.Shipping = m.Shipping.Add(o.ShippingAmount())
		m.Taxes = m.Taxes.Add(commerce.ParseDecimal(o.TotalTax))
		m.TotalSales = m.TotalSales.Add(total)

		if o.FulfillmentStatus == "fulfilled" {
			m.OrdersFulfilled++
		}
		if o.Email != "" {
			ordersByEmail[o.Email]++
		}

		channel := o.SourceName
		if channel == "" {
			channel = "Other"
		}
		m.SalesByChannel[channel] = m.SalesByChannel[channel].Add(total)

		for _, item := range o.LineItems {
			name := productKey(item.Title, item.VariantTitle)
			amount := commerce.ParseDecimal(item.Price).Mul(decimal.NewFromInt(item.EffectiveQuantity()))
			m.SalesByProduct[name] = m.SalesByProduct[name].Add(amount)
		}

		if t, err := time.Parse(time.RFC3339, o.CreatedAt); err == nil {
			idx := int(t.Month()) - 1
			switch t.Year() {
			case currentYear:
				m.CurrentYearByMonth[idx] = m.CurrentYearByMonth[idx].Add(total)
			case currentYear - 1:
				m.PreviousYearByMonth[idx] = m.PreviousYearByMonth[idx].Add(total)
			}
		}
	}

	m.NetSales = m.GrossSales.Sub(m.Discounts).Sub(returns)

	if m.OrderCount > 0 {
		m.AverageOrderValue = m.TotalSales.Div(decimal.NewFromInt(int64(m.OrderCount)))
	}

	returning := 0
	for _, n := range ordersByEmail {
		if n > 1 {
			returning++
		}
	}
	if len(ordersByEmail) > 0 {
		m.ReturningCustomerRate = float64(returning) / float64(len(ordersByEmail)) * 100
	}

	for _, p := range products {
		for _, v := range p.Variants {
			inventory := v.InventoryQuantity
			total := v.InventoryHistoryTotal()
			rate := 0.0
			if total > 0 {
				rate = float64(total-inventory) / float64(total) * 100
			}
			m.ProductInventory[productKey(p.Title, v.Title)] = VariantSellThrough{
				SellThroughRate: rate,
				Inventory:       inventory,
				TotalInventory:  total,
			}
		}
	}

	return m
}

// productKey builds the "title | variant" display name used across the
// dashboard. Variants without a distinct title read "Default Title".
func productKey(title, variantTitle string) string {
	if title == "" {
		title = "Unknown"
	}
	if variantTitle == "" {
		variantTitle = "Default Title"
	}
	return title + " | " + variantTitle
}

// monthMap pairs twelve monthly decimals with their month names.
func monthMap(values [12]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, 12)
	for i, name := range monthNames {
		out[name] = values[i].InexactFloat64()
	}
	return out
}

// floatMap converts a decimal-valued map for the response document.
func floatMap(in map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v.InexactFloat64()
	}
	return out
}
