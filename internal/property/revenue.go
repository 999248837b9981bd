package property

import (
	"fmt"
	"time"
)

// PeriodLayout is the YYYY-MM format used for revenue periods.
const PeriodLayout = "2006-01"

// RevenueSummary is the server-computed monthly revenue for one property.
type RevenueSummary struct {
	PropertyID       string  `json:"property_id"        yaml:"property_id"`
	Period           string  `json:"period"             yaml:"period"`
	Currency         string  `json:"currency"           yaml:"currency"`
	TotalRevenue     float64 `json:"total_revenue"      yaml:"total_revenue"`
	Reservations     int     `json:"reservations"       yaml:"reservations"`
	OccupancyRate    float64 `json:"occupancy_rate"     yaml:"occupancy_rate"`
	AverageDailyRate float64 `json:"average_daily_rate" yaml:"average_daily_rate"`
}

// ParsePeriod validates a YYYY-MM period. An empty period is allowed and means
// the server default.
func ParsePeriod(period string) (string, error) {
	if period == "" {
		return "", nil
	}
	t, err := time.Parse(PeriodLayout, period)
	if err != nil {
		return "", fmt.Errorf("invalid period %q: expected YYYY-MM", period)
	}
	return t.Format(PeriodLayout), nil
}
