package commerce

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Order Related Types
// ---------------------------------------------------------------------------

// Order is the typed view of a Shopify order record. Only the fields the
// metrics computations read are decoded; the full record travels separately
// as raw JSON so no upstream field is lost.
type Order struct {
	ID                int64  `json:"id"`
	Email             string `json:"email"`
	CreatedAt         string `json:"created_at"`
	SourceName        string `json:"source_name"`
	FulfillmentStatus string `json:"fulfillment_status"`

	// Monetary totals arrive as JSON strings
	TotalPrice          string `json:"total_price"`
	TotalLineItemsPrice string `json:"total_line_items_price"`
	TotalDiscounts      string `json:"total_discounts"`
	TotalTax            string `json:"total_tax"`

	TotalShippingPriceSet *PriceSet  `json:"total_shipping_price_set,omitempty"`
	LineItems             []LineItem `json:"line_items"`
}

// PriceSet wraps a money amount in shop currency
type PriceSet struct {
	ShopMoney Money `json:"shop_money"`
}

// Money is a currency amount as Shopify serializes it
type Money struct {
	Amount string `json:"amount"`
}

// LineItem is one ordered product variant line.
// Quantity is a pointer so an absent field can default to 1.
type LineItem struct {
	ProductID    int64  `json:"product_id"`
	VariantID    int64  `json:"variant_id"`
	Title        string `json:"title"`
	VariantTitle string `json:"variant_title"`
	Price        string `json:"price"`
	Quantity     *int64 `json:"quantity,omitempty"`
}

// EffectiveQuantity returns the ordered quantity, defaulting to 1 when the
// upstream record omits the field
func (li *LineItem) EffectiveQuantity() int64 {
	if li.Quantity == nil {
		return 1
	}
	return *li.Quantity
}

// ShippingAmount returns the shop-currency shipping total, zero when the
// price set is absent
func (o *Order) ShippingAmount() decimal.Decimal {
	if o.TotalShippingPriceSet == nil {
		return decimal.Zero
	}
	return ParseDecimal(o.TotalShippingPriceSet.ShopMoney.Amount)
}

// ---------------------------------------------------------------------------
// Refund Related Types
// ---------------------------------------------------------------------------

// Refund is a per-order refund with its settlement transactions
type Refund struct {
	ID           int64         `json:"id"`
	Transactions []Transaction `json:"transactions"`
}

// Transaction is a single refund settlement
type Transaction struct {
	Amount string `json:"amount"`
}

// Total sums the refund's transaction amounts
func (r *Refund) Total() decimal.Decimal {
	total := decimal.Zero
	for _, tx := range r.Transactions {
		total = total.Add(ParseDecimal(tx.Amount))
	}
	return total
}

// ---------------------------------------------------------------------------
// Product Related Types
// ---------------------------------------------------------------------------

// Product is the typed view of a Shopify product record
type Product struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Variants []Variant `json:"variants"`
}

// Variant is one sellable variant of a product.
// InventoryItemID is kept raw: Shopify normally sends a numeric ID, but the
// build of the platform this service targets inlines an object carrying
// inventory_history_total there. Both shapes must decode.
type Variant struct {
	Title             string          `json:"title"`
	InventoryQuantity int64           `json:"inventory_quantity"`
	InventoryItemID   json.RawMessage `json:"inventory_item_id,omitempty"`
}

type inventoryItem struct {
	InventoryHistoryTotal int64 `json:"inventory_history_total"`
}

// InventoryHistoryTotal extracts the historical inventory total from the
// inventory item payload. A plain numeric ID (or anything else that is not
// an object) yields 0, which forces the sell-through rate to 0.
func (v *Variant) InventoryHistoryTotal() int64 {
	if len(v.InventoryItemID) == 0 {
		return 0
	}
	var item inventoryItem
	if err := json.Unmarshal(v.InventoryItemID, &item); err != nil {
		return 0
	}
	return item.InventoryHistoryTotal
}

// ---------------------------------------------------------------------------
// Customer Related Types
// ---------------------------------------------------------------------------

// Customer is the typed view of a Shopify customer record
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

// ---------------------------------------------------------------------------
// Decoding Helpers
// ---------------------------------------------------------------------------

func decodeList[T any](records []json.RawMessage, kind string) ([]T, error) {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		var v T
		if err := json.Unmarshal(rec, &v); err != nil {
			return nil, fmt.Errorf("%w: failed to decode %s record: %v", ErrPlatformInvalidResponse, kind, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeOrders decodes raw order records into their typed view
func DecodeOrders(records []json.RawMessage) ([]Order, error) {
	return decodeList[Order](records, "order")
}

// DecodeProducts decodes raw product records into their typed view
func DecodeProducts(records []json.RawMessage) ([]Product, error) {
	return decodeList[Product](records, "product")
}

// DecodeCustomers decodes raw customer records into their typed view
func DecodeCustomers(records []json.RawMessage) ([]Customer, error) {
	return decodeList[Customer](records, "customer")
}

// DecodeRefunds decodes raw refund records into their typed view
func DecodeRefunds(records []json.RawMessage) ([]Refund, error) {
	return decodeList[Refund](records, "refund")
}

// ParseDecimal safely parses a decimal string, returning zero for empty or
// invalid values
func ParseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
