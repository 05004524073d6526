package dashboard

import "encoding/json"

// Document is the full payload returned by the combined data endpoint:
// computed metrics, the raw platform records they were derived from, and
// whatever analytics reports were reachable.
type Document struct {
	Data          DataSection    `json:"data"`
	RawData       RawData        `json:"raw_data"`
	AnalyticsData map[string]any `json:"analytics_data"`
}

// RawData carries the fetched records untouched so the dashboard can run
// its own drill-downs without another round trip.
type RawData struct {
	Orders    []json.RawMessage `json:"orders"`
	Products  []json.RawMessage `json:"products"`
	Customers []json.RawMessage `json:"customers"`
}

type DataSection struct {
	OrdersSummary              OrdersSummary                 `json:"orders_summary"`
	SalesSummary               SalesSummary                  `json:"sales_summary"`
	CustomerMetrics            CustomerMetrics               `json:"customer_metrics"`
	SalesOverTime              SalesOverTime                 `json:"sales_over_time"`
	AverageOrderValue          AverageOrderValue             `json:"average_order_value"`
	Sessions                   Sessions                      `json:"sessions"`
	ConversionRate             ConversionRate                `json:"conversion_rate"`
	SalesByChannel             map[string]float64            `json:"sales_by_channel"`
	SalesByProduct             map[string]float64            `json:"sales_by_product"`
	SalesBySocialReferrer      map[string]float64            `json:"sales_by_social_referrer"`
	SalesAttributedToMarketing map[string]float64            `json:"sales_attributed_to_marketing"`
	ProductSellThrough         ProductSellThrough            `json:"product_sell_through"`
	CustomerCohort             CustomerCohort                `json:"customer_cohort"`
	ProductInventory           map[string]VariantSellThrough `json:"product_inventory"`
}

type OrdersSummary struct {
	Count            int     `json:"count"`
	Fulfilled        int     `json:"fulfilled"`
	GrowthPercentage float64 `json:"growth_percentage"`
}

type SalesSummary struct {
	GrossSales       float64 `json:"gross_sales"`
	GrowthPercentage float64 `json:"growth_percentage"`
	Discounts        float64 `json:"discounts"`
	Returns          float64 `json:"returns"`
	NetSales         float64 `json:"net_sales"`
	Shipping         float64 `json:"shipping"`
	Taxes            float64 `json:"taxes"`
	TotalSales       float64 `json:"total_sales"`
}

type CustomerMetrics struct {
	ReturningCustomerRate float64 `json:"returning_customer_rate"`
	GrowthPercentage      float64 `json:"growth_percentage"`
}

type SalesOverTime struct {
	CurrentYear  map[string]float64 `json:"current_year"`
	PreviousYear map[string]float64 `json:"previous_year"`
	Total        float64            `json:"total"`
}

type AverageOrderValue struct {
	Value            float64    `json:"value"`
	GrowthPercentage float64    `json:"growth_percentage"`
	ByMonth          YearlyMaps `json:"by_month"`
}

// YearlyMaps is a two-year month-keyed breakdown.
type YearlyMaps struct {
	CurrentYear  map[string]float64 `json:"current_year"`
	PreviousYear map[string]float64 `json:"previous_year"`
}

// Sessions mixes live and static figures. ByMonth is either the sessions
// report exactly as the platform returned it or the static MonthSeries.
type Sessions struct {
	Total            int64             `json:"total"`
	GrowthPercentage float64           `json:"growth_percentage"`
	ByMonth          any               `json:"by_month"`
	ByDevice         map[string]int64  `json:"by_device"`
	ByLandingPage    map[string]int64  `json:"by_landing_page"`
	ByReferrer       ReferrerBreakdown `json:"by_referrer"`
}

type ReferrerBreakdown struct {
	TopReferrers    map[string]int64 `json:"top_referrers"`
	SocialReferrers map[string]int64 `json:"social_referrers"`
}

type ConversionRate struct {
	Rate             float64    `json:"rate"`
	GrowthPercentage float64    `json:"growth_percentage"`
	ByMonth          YearlyMaps `json:"by_month"`
}

type ProductSellThrough struct {
	AverageRate      float64            `json:"average_rate"`
	GrowthPercentage float64            `json:"growth_percentage"`
	TopProducts      map[string]float64 `json:"top_products"`
}

type CustomerCohort struct {
	AllCohorts     Cohort         `json:"all_cohorts"`
	MonthlyCohorts map[string]any `json:"monthly_cohorts"`
}

type Cohort struct {
	Customers     int       `json:"customers"`
	RetentionRate float64   `json:"retention_rate"`
	Months        []float64 `json:"months"`
}
