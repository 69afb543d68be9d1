package notification

import (
	"context"
)

// Service notifies the employees listed in a day's absentee reports
type Service interface {
	// Dispatch walks the 3, 6 and 10 day reports of the date and contacts every listed employee
	Dispatch(ctx context.Context, req DispatchRequest) (DispatchResult, error)
}
