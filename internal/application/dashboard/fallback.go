package dashboard

// Fallbacks carries the static dashboard figures used when the analytics
// reports are unavailable. The platform's report endpoints are only exposed
// to select partners, so most shops never see live values for these.
type Fallbacks struct {
	OrdersGrowthPct     float64
	GrossSalesGrowthPct float64
	ReturningGrowthPct  float64
	AOVGrowthPct        float64
	SessionsGrowthPct   float64
	ConversionGrowthPct float64
	SellThroughGrowth   float64

	ConversionRate float64

	SessionsTotal    int64
	SessionsByMonth  MonthSeries
	SessionsByDevice map[string]int64

	LandingPageSessions map[string]int64
	TopReferrers        map[string]int64

	AOVByMonthCurrent         map[string]float64
	AOVByMonthPrevious        map[string]float64
	ConversionByMonthCurrent  map[string]float64
	ConversionByMonthPrevious map[string]float64

	SellThroughAverage     float64
	SellThroughTopProducts map[string]float64
}

// MonthSeries is a pair of twelve-month value arrays, January first.
type MonthSeries struct {
	CurrentYear  []float64 `json:"current_year"`
	PreviousYear []float64 `json:"previous_year"`
}

// DefaultFallbacks returns the figures read off the shop's admin dashboard.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		OrdersGrowthPct:     11,
		GrossSalesGrowthPct: 120,
		ReturningGrowthPct:  66.67,
		AOVGrowthPct:        145,
		SessionsGrowthPct:   310,
		ConversionGrowthPct: 2,
		SellThroughGrowth:   68,

		ConversionRate: 0.15,

		SessionsTotal: 2756,
		SessionsByMonth: MonthSeries{
			CurrentYear:  []float64{35, 552, 328, 364, 293, 475, 368, 161, 21, 26, 132, 1},
			PreviousYear: []float64{4, 13, 38, 173, 0, 352, 32, 52, 0, 0, 0, 8},
		},
		SessionsByDevice: map[string]int64{
			"Desktop": 2800,
			"Mobile":  3,
		},

		LandingPageSessions: map[string]int64{
			"Homepage · /":                      155,
			"Cart · /cart":                      29,
			"Custom Page · /pages/custom-form":  20,
			"Checkout · /checkouts/cn/Z2NwLWFzaWEtc291dGhlYXN0MTowMUhXWUc2VFhXRjBYRDM0QTEyVkFYM1AzRw/information": 8,
			"Custom Page · /pages/remote-fitting":                  7,
			"Product · /products/3-numbers-white-on-black-zz9100":  7,
			"Custom Page · /pages/order-list":                      6,
			"Custom Page · /pages/order-details":                   4,
			"Product · /products/1-slingshot-extreme-soft-shackle": 4,
			"Custom Page · /pages/aboutus2":                        3,
		},
		TopReferrers: map[string]int64{
			"admin.shopify.com": 12,
			"2w754eagovaga3yu-52847476913.shopifypreview.com": 2,
			"vtxxwxzzy852axlp-52847476913.shopifypreview.com": 1,
			"terms-albania-lexus-ps.trycloudflare.com":        1,
			"sh.customily.com":                                1,
		},

		AOVByMonthCurrent: map[string]float64{
			"Jan": 0, "Feb": 0, "Mar": 618.50, "Apr": 1600, "May": 2300,
			"Jun": 0, "Jul": 1400, "Aug": 2600, "Sep": 0, "Oct": 0, "Nov": 0, "Dec": 0,
		},
		AOVByMonthPrevious: map[string]float64{
			"Jan": 239, "Feb": 781.73,
		},
		ConversionByMonthCurrent: map[string]float64{
			"Jan": 0, "Feb": 0, "Mar": 0.3, "Apr": 0, "May": 0,
			"Jun": 0, "Jul": 0.5, "Aug": 0.6, "Sep": 0, "Oct": 0, "Nov": 0, "Dec": 0,
		},
		ConversionByMonthPrevious: map[string]float64{
			"Jan": 0, "Feb": 0, "Mar": 0, "Apr": 0.6, "May": 0,
			"Jun": 0, "Jul": 0, "Aug": 0, "Sep": 0, "Oct": 0, "Nov": 0, "Dec": 0,
		},

		SellThroughAverage: 9.4,
		SellThroughTopProducts: map[string]float64{
			"DF3 Custom | Default Title":                                                    12.40,
			`1-1/2" x 30' Kinetic Energy Rope - Recovery Kit | Default Title`:               11.00,
			`1" 220,000 lbs. Slingshot Extreme Soft Shackle | 4`:                            10.20,
			`1" x 30' 33,500 lbs. Slingshot Kinetic Energy Recovery Rope | Default Title`:   8.80,
			"3\" Numbers - White on Black - ZZ9100 | Default Title":                         7.20,
		},
	}
}
