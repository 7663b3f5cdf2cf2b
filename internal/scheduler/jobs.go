// internal/scheduler/jobs.go
package scheduler

import (
	"math/rand/v2"
	"time"

	"github.com/inkstone-labs/qtstore/internal/mockapi"
)

// RegisterTrendRoll schedules the nightly roll of the dashboard download
// trend so the 7-day window moves with the calendar.
func (s *Service) RegisterTrendRoll(data *mockapi.Dataset) error {
	_, err := s.AddJob("dashboard-trend-roll", "0 0 * * *", func() {
		// Demo data: a plausible daily download count.
		count := 600 + rand.Int64N(500)
		data.RollDownloadTrend(time.Now().Format("01-02"), count)
	})
	return err
}
