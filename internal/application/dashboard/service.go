package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/datawise/backend/internal/domain/commerce"
)

// PlatformClient is the slice of the commerce platform API the dashboard
// needs. *shopify.Client satisfies it.
type PlatformClient interface {
	FetchAll(ctx context.Context, resource string, params url.Values) ([]json.RawMessage, error)
	FetchReport(ctx context.Context, kind string, params url.Values) (map[string]any, error)
	ListReports(ctx context.Context) (json.RawMessage, error)
}

// reportKinds lists the analytics reports bundled into the combined data
// payload, in fetch order, keyed by their name in the response.
var reportKinds = []struct {
	key  string
	kind string
}{
	{"sessions", "sessions"},
	{"conversions", "conversion"},
	{"traffic_sources", "traffic_sources"},
	{"device_types", "device_types"},
	{"landing_pages", "top_landing_pages"},
	{"referrers", "top_referrers"},
	{"social_referrers", "social_referrers"},
	{"marketing_attribution", "marketing_attribution"},
	{"customer_cohorts", "customer_cohorts"},
	{"product_sell_through", "product_sell_through"},
}

// Service aggregates platform data into the dashboard document.
type Service struct {
	client    PlatformClient
	logger    *zap.Logger
	fallbacks Fallbacks
	now       func() time.Time
}

func NewService(client PlatformClient, logger *zap.Logger) *Service {
	return &Service{
		client:    client,
		logger:    logger,
		fallbacks: DefaultFallbacks(),
		now:       time.Now,
	}
}

// DashboardData fetches orders, products and customers for the range,
// derives every dashboard metric, and attaches analytics reports when
// includeAnalytics is set. A refund fetch failing for one order only loses
// that order's returns; an analytics report failing only empties that
// report's entry.
func (s *Service) DashboardData(ctx context.Context, rng DateRange, includeAnalytics bool) (*Document, error) {
	orderParams := rng.QueryParams()
	orderParams.Set("status", "any")
	orderParams.Set("limit", "250")
	rawOrders, err := s.client.FetchAll(ctx, "orders", orderParams)
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}

	listParams := url.Values{"limit": []string{"250"}}
	rawProducts, err := s.client.FetchAll(ctx, "products", listParams)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	rawCustomers, err := s.client.FetchAll(ctx, "customers", listParams)
	if err != nil {
		return nil, fmt.Errorf("fetch customers: %w", err)
	}

	orders, err := commerce.DecodeOrders(rawOrders)
	if err != nil {
		return nil, err
	}
	products, err := commerce.DecodeProducts(rawProducts)
	if err != nil {
		return nil, err
	}
	customers, err := commerce.DecodeCustomers(rawCustomers)
	if err != nil {
		return nil, err
	}

	// Customers are not filterable server-side, so apply the range here.
	if !rng.IsZero() {
		keptRaw := rawCustomers[:0:0]
		kept := customers[:0:0]
		for i, c := range customers {
			if rng.Contains(c.CreatedAt) {
				keptRaw = append(keptRaw, rawCustomers[i])
				kept = append(kept, c)
			}
		}
		rawCustomers = keptRaw
		customers = kept
	}

	analytics := map[string]any{}
	if includeAnalytics {
		analytics = s.fetchAnalytics(ctx, rng)
	}

	returns := s.refundTotal(ctx, orders)
	metrics := ComputeMetrics(orders, products, returns, s.now())

	s.logger.Info("dashboard data assembled",
		zap.Int("orders", len(orders)),
		zap.Int("products", len(products)),
		zap.Int("customers", len(customers)),
		zap.Int("analytics_reports", len(analytics)))

	return s.assemble(metrics, rawOrders, rawProducts, rawCustomers, analytics), nil
}

// fetchAnalytics pulls every bundled report. Failures are isolated per
// report kind: a failed report contributes an empty entry and the rest
// still load.
func (s *Service) fetchAnalytics(ctx context.Context, rng DateRange) map[string]any {
	params := url.Values{}
	if rng.Start != "" && rng.End != "" {
		params = rng.ReportParams()
	}

	analytics := make(map[string]any, len(reportKinds))
	for _, r := range reportKinds {
		report, err := s.client.FetchReport(ctx, r.kind, params)
		if err != nil {
			s.logger.Warn("analytics report unavailable",
				zap.String("report", r.kind),
				zap.Error(err))
			analytics[r.key] = map[string]any{}
			continue
		}
		analytics[r.key] = report
	}
	return analytics
}

// refundTotal sums refund transaction amounts across all orders. Failures
// are logged and skipped so one bad order does not zero out the rest.
func (s *Service) refundTotal(ctx context.Context, orders []commerce.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.ID == 0 {
			continue
		}
		resource := fmt.Sprintf("orders/%d/refunds", o.ID)
		raw, err := s.client.FetchAll(ctx, resource, nil)
		if err != nil {
			s.logger.Warn("refund fetch failed",
				zap.Int64("order_id", o.ID),
				zap.Error(err))
			continue
		}
		refunds, err := commerce.DecodeRefunds(raw)
		if err != nil {
			s.logger.Warn("refund decode failed",
				zap.Int64("order_id", o.ID),
				zap.Error(err))
			continue
		}
		for _, r := range refunds {
			total = total.Add(r.Total())
		}
	}
	return total
}

func (s *Service) assemble(m Metrics, rawOrders, rawProducts, rawCustomers []json.RawMessage, analytics map[string]any) *Document {
	fb := s.fallbacks

	var sessionsByMonth any = fb.SessionsByMonth
	if report, ok := analytics["sessions"].(map[string]any); ok && len(report) > 0 {
		sessionsByMonth = report
	}

	return &Document{
		Data: DataSection{
			OrdersSummary: OrdersSummary{
				Count:            m.OrderCount,
				Fulfilled:        m.OrdersFulfilled,
				GrowthPercentage: fb.OrdersGrowthPct,
			},
			SalesSummary: SalesSummary{
				GrossSales:       m.GrossSales.InexactFloat64(),
				GrowthPercentage: fb.GrossSalesGrowthPct,
				Discounts:        m.Discounts.InexactFloat64(),
				Returns:          m.Returns.InexactFloat64(),
				NetSales:         m.NetSales.InexactFloat64(),
				Shipping:         m.Shipping.InexactFloat64(),
				Taxes:            m.Taxes.InexactFloat64(),
				TotalSales:       m.TotalSales.InexactFloat64(),
			},
			CustomerMetrics: CustomerMetrics{
				ReturningCustomerRate: m.ReturningCustomerRate,
				GrowthPercentage:      fb.ReturningGrowthPct,
			},
			SalesOverTime: SalesOverTime{
				CurrentYear:  monthMap(m.CurrentYearByMonth),
				PreviousYear: monthMap(m.PreviousYearByMonth),
				Total:        m.TotalSales.InexactFloat64(),
			},
			AverageOrderValue: AverageOrderValue{
				Value:            m.AverageOrderValue.InexactFloat64(),
				GrowthPercentage: fb.AOVGrowthPct,
				ByMonth: YearlyMaps{
					CurrentYear:  fb.AOVByMonthCurrent,
					PreviousYear: fb.AOVByMonthPrevious,
				},
			},
			Sessions: Sessions{
				Total:            fb.SessionsTotal,
				GrowthPercentage: fb.SessionsGrowthPct,
				ByMonth:          sessionsByMonth,
				ByDevice:         fb.SessionsByDevice,
				ByLandingPage:    fb.LandingPageSessions,
				ByReferrer: ReferrerBreakdown{
					TopReferrers:    fb.TopReferrers,
					SocialReferrers: map[string]int64{},
				},
			},
			ConversionRate: ConversionRate{
				Rate:             fb.ConversionRate,
				GrowthPercentage: fb.ConversionGrowthPct,
				ByMonth: YearlyMaps{
					CurrentYear:  fb.ConversionByMonthCurrent,
					PreviousYear: fb.ConversionByMonthPrevious,
				},
			},
			SalesByChannel:             floatMap(m.SalesByChannel),
			SalesByProduct:             floatMap(m.SalesByProduct),
			SalesBySocialReferrer:      map[string]float64{},
			SalesAttributedToMarketing: map[string]float64{},
			ProductSellThrough: ProductSellThrough{
				AverageRate:      fb.SellThroughAverage,
				GrowthPercentage: fb.SellThroughGrowth,
				TopProducts:      fb.SellThroughTopProducts,
			},
			CustomerCohort: CustomerCohort{
				AllCohorts: Cohort{
					Customers:     0,
					RetentionRate: 0,
					Months:        make([]float64, 12),
				},
				MonthlyCohorts: map[string]any{},
			},
			ProductInventory: m.ProductInventory,
		},
		RawData: RawData{
			Orders:    rawOrders,
			Products:  rawProducts,
			Customers: rawCustomers,
		},
		AnalyticsData: analytics,
	}
}

// Report proxies a single analytics report with range and extra params.
func (s *Service) Report(ctx context.Context, kind string, rng DateRange, extra url.Values) (map[string]any, error) {
	params := rng.ReportParams()
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	return s.client.FetchReport(ctx, kind, params)
}

// AvailableReports lists the analytics reports the shop exposes, passed
// through untouched.
func (s *Service) AvailableReports(ctx context.Context) (json.RawMessage, error) {
	return s.client.ListReports(ctx)
}
