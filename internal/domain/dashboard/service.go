package dashboard

import "context"

type DashboardService interface {
	// Summary aggregates the month's absences per Dept and the report sizes for the date
	Summary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}
