package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/absentee"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/attendance"
	"github.com/cmlabs-hris/absentee-monitor-go/internal/domain/dashboard"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendance.TemplateRepository
	absentee.ReportRepository
}

func NewDashboardService(templateRepository attendance.TemplateRepository, reportRepository absentee.ReportRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		TemplateRepository: templateRepository,
		ReportRepository:   reportRepository,
	}
}

// Summary implements dashboard.DashboardService.
// The template and the four reports are loaded in parallel.
func (s *DashboardServiceImpl) Summary(ctx context.Context, req dashboard.SummaryRequest) (dashboard.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.SummaryResponse{}, err
	}
	day, _ := attendance.ParseDate(req.Date)

	var (
		template *attendance.Table
		buckets  = make([]dashboard.BucketCount, len(absentee.AllBuckets()))
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		t, err := s.TemplateRepository.Load(gCtx, req.Department, day.Month(), day.Year())
		if err != nil {
			return err
		}
		template = t
		return nil
	})

	for i, b := range absentee.AllBuckets() {
		g.Go(func() error {
			count := dashboard.BucketCount{Bucket: b.String(), Label: b.Label()}
			report, err := s.ReportRepository.Load(gCtx, req.Department, req.Date, b)
			switch {
			case errors.Is(err, absentee.ErrReportNotFound):
			case err != nil:
				return fmt.Errorf("failed to load %s report: %w", b.Label(), err)
			default:
				count.Found = true
				count.Rows = len(report.Rows)
			}
			buckets[i] = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return dashboard.SummaryResponse{}, err
	}

	resp := dashboard.SummaryResponse{
		Department: req.Department,
		Date:       req.Date,
		Buckets:    buckets,
	}
	resp.Dates, resp.Depts = AbsenceByDept(template)
	for _, d := range resp.Depts {
		resp.TotalAbsence += d.Total
	}
	return resp, nil
}

// AbsenceByDept counts A cells per Dept group and date column. Groups keep
// the order in which they first appear in the table.
func AbsenceByDept(t *attendance.Table) ([]string, []dashboard.DeptAbsence) {
	cols := t.DateColumns()
	dates := make([]string, len(cols))
	for i, c := range cols {
		dates[i] = c.Name
	}

	index := make(map[string]int)
	var depts []dashboard.DeptAbsence

	for i, row := range t.Rows {
		dept := strings.TrimSpace(t.Value(i, dashboard.DeptColumn))
		if dept == "" {
			dept = dashboard.UnassignedDept
		}
		pos, ok := index[dept]
		if !ok {
			pos = len(depts)
			index[dept] = pos
			depts = append(depts, dashboard.DeptAbsence{Dept: dept, Daily: make([]int, len(cols))})
		}
		depts[pos].Employees++

		for j, c := range cols {
			if attendance.NormalizeStatus(row.Cells[c.Index]) == attendance.StatusAbsent {
				depts[pos].Daily[j]++
			}
		}
	}

	for i := range depts {
		running := 0
		depts[i].Cumulative = make([]int, len(cols))
		for j, n := range depts[i].Daily {
			running += n
			depts[i].Cumulative[j] = running
		}
		depts[i].Total = running
		depts[i].AbsenceRate = absenceRate(running, depts[i].Employees, len(cols))
	}
	return dates, depts
}

// absenceRate is absences over employee-days as a percentage with two decimals.
func absenceRate(absences, employees, days int) decimal.Decimal {
	if employees == 0 || days == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(absences * 100)).
		Div(decimal.NewFromInt(int64(employees * days))).
		Round(2)
}
