package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
)

// ReportUseCase derives period and category summaries from the ledger.
// Reports are pure reads over undeleted entries.
type ReportUseCase struct {
	entryRepo EntryRepository
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(entryRepo EntryRepository) *ReportUseCase {
	return &ReportUseCase{entryRepo: entryRepo}
}

// MonthlyReport summarizes entries of one calendar month. The window runs to
// the true last day of the month, so February of a leap year includes the
// 29th.
func (uc *ReportUseCase) MonthlyReport(ctx context.Context, ownerID string, month time.Month, year int) (*domain.PeriodReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the following month is the last day of this one.
	end := time.Date(year, month+1, 0, 23, 59, 59, 0, time.UTC)

	return uc.periodReport(ctx, ownerID, start, end)
}

// WeeklyReport summarizes the seven days starting at Jan 1 + (week-1)*7.
func (uc *ReportUseCase) WeeklyReport(ctx context.Context, ownerID string, week, year int) (*domain.PeriodReport, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7)
	end := start.AddDate(0, 0, 7).Add(-time.Second)

	report, err := uc.periodReport(ctx, ownerID, start, end)
	if err != nil {
		return nil, err
	}

	report.End = start.AddDate(0, 0, 7)

	return report, nil
}

// YearlyReport summarizes a full calendar year.
func (uc *ReportUseCase) YearlyReport(ctx context.Context, ownerID string, year int) (*domain.PeriodReport, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	return uc.periodReport(ctx, ownerID, start, end)
}

func (uc *ReportUseCase) periodReport(ctx context.Context, ownerID string, start, end time.Time) (*domain.PeriodReport, error) {
	entries, err := uc.entryRepo.FindByOwner(ctx, ownerID, EntryFilter{From: &start, To: &end})
	if err != nil {
		return nil, err
	}

	report := &domain.PeriodReport{
		Start:        start,
		End:          end,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Count:        len(entries),
		Entries:      entries,
	}

	for _, e := range entries {
		switch e.Kind {
		case domain.KindIncome:
			report.TotalIncome = report.TotalIncome.Add(e.Amount)
		case domain.KindExpense:
			report.TotalExpense = report.TotalExpense.Add(e.Amount)
		}
	}

	report.Net = report.TotalIncome.Sub(report.TotalExpense)

	return report, nil
}

// CategoryReport accumulates category totals over the full undeleted
// history in a single pass, split into expense and income maps.
func (uc *ReportUseCase) CategoryReport(ctx context.Context, ownerID string) (*domain.CategoryReport, error) {
	entries, err := uc.entryRepo.FindByOwner(ctx, ownerID, EntryFilter{})
	if err != nil {
		return nil, err
	}

	report := &domain.CategoryReport{
		Expenses:     make(map[string]decimal.Decimal),
		Incomes:      make(map[string]decimal.Decimal),
		TotalExpense: decimal.Zero,
		TotalIncome:  decimal.Zero,
	}

	for _, e := range entries {
		switch e.Kind {
		case domain.KindExpense:
			report.Expenses[e.Category] = report.Expenses[e.Category].Add(e.Amount)
			report.TotalExpense = report.TotalExpense.Add(e.Amount)
		case domain.KindIncome:
			report.Incomes[e.Category] = report.Incomes[e.Category].Add(e.Amount)
			report.TotalIncome = report.TotalIncome.Add(e.Amount)
		}
	}

	return report, nil
}
