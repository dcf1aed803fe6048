package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneymanager/internal/domain"
	"github.com/iho/moneymanager/internal/usecase"
	"github.com/iho/moneymanager/internal/usecase/mocks"
)

type reportFixture struct {
	uc     *usecase.ReportUseCase
	ledger *usecase.LedgerUseCase
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()

	repo := mocks.NewMockEntryRepository()
	clock := mocks.NewMockClock(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC))
	ledger := usecase.NewLedgerUseCase(repo, mocks.NewMockIDGenerator(), clock, usecase.DefaultEditWindow, nil)

	return &reportFixture{
		uc:     usecase.NewReportUseCase(repo),
		ledger: ledger,
	}
}

func (f *reportFixture) seed(t *testing.T, owner, kind, category string, amount int64, occurredAt time.Time) {
	t.Helper()

	if _, err := f.ledger.CreateEntry(context.Background(), owner, usecase.CreateEntryInput{
		Kind:       kind,
		Amount:     decimal.NewFromInt(amount),
		Category:   category,
		OccurredAt: occurredAt,
	}); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
}

func TestReportUseCase_MonthlyReport(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	f.seed(t, "user-1", domain.KindIncome, "Salary", 3000, time.Date(2025, time.April, 1, 9, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindExpense, "Rent", 1200, time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC))
	// Late on the last day of the month; the fixed day-28 cutoff would lose it.
	f.seed(t, "user-1", domain.KindExpense, "Dining", 80, time.Date(2025, time.April, 30, 23, 0, 0, 0, time.UTC))
	// Neighboring months stay out.
	f.seed(t, "user-1", domain.KindExpense, "Groceries", 55, time.Date(2025, time.March, 31, 12, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindExpense, "Groceries", 60, time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC))

	report, err := f.uc.MonthlyReport(ctx, "user-1", time.April, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Count != 3 {
		t.Errorf("expected 3 entries, got %d", report.Count)
	}
	if !report.TotalIncome.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected income 3000, got %s", report.TotalIncome)
	}
	if !report.TotalExpense.Equal(decimal.NewFromInt(1280)) {
		t.Errorf("expected expense 1280, got %s", report.TotalExpense)
	}
	if !report.Net.Equal(decimal.NewFromInt(1720)) {
		t.Errorf("expected net 1720, got %s", report.Net)
	}
}

func TestReportUseCase_MonthlyReport_WindowBounds(t *testing.T) {
	tests := []struct {
		name    string
		month   time.Month
		year    int
		wantEnd time.Time
	}{
		{
			name:    "leap year february",
			month:   time.February,
			year:    2024,
			wantEnd: time.Date(2024, time.February, 29, 23, 59, 59, 0, time.UTC),
		},
		{
			name:    "non-leap february",
			month:   time.February,
			year:    2025,
			wantEnd: time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC),
		},
		{
			name:    "thirty day month",
			month:   time.April,
			year:    2025,
			wantEnd: time.Date(2025, time.April, 30, 23, 59, 59, 0, time.UTC),
		},
		{
			name:    "december crosses no year",
			month:   time.December,
			year:    2025,
			wantEnd: time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReportFixture(t)

			report, err := f.uc.MonthlyReport(context.Background(), "user-1", tt.month, tt.year)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wantStart := time.Date(tt.year, tt.month, 1, 0, 0, 0, 0, time.UTC)
			if !report.Start.Equal(wantStart) {
				t.Errorf("expected start %s, got %s", wantStart, report.Start)
			}
			if !report.End.Equal(tt.wantEnd) {
				t.Errorf("expected end %s, got %s", tt.wantEnd, report.End)
			}
		})
	}
}

func TestReportUseCase_MonthlyReport_LeapDayIncluded(t *testing.T) {
	f := newReportFixture(t)

	f.seed(t, "user-1", domain.KindExpense, "Dining", 42, time.Date(2024, time.February, 29, 20, 0, 0, 0, time.UTC))

	report, err := f.uc.MonthlyReport(context.Background(), "user-1", time.February, 2024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Count != 1 {
		t.Errorf("expected the leap-day entry to be included, count = %d", report.Count)
	}
}

func TestReportUseCase_WeeklyReport(t *testing.T) {
	f := newReportFixture(t)

	// Week 1 of 2025 is Jan 1 through Jan 7 inclusive.
	f.seed(t, "user-1", domain.KindExpense, "Groceries", 30, time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindExpense, "Transport", 12, time.Date(2025, time.January, 7, 23, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindIncome, "Refund", 20, time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC))

	report, err := f.uc.WeeklyReport(context.Background(), "user-1", 1, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Count != 2 {
		t.Errorf("expected 2 entries in week 1, got %d", report.Count)
	}

	wantStart := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.January, 8, 0, 0, 0, 0, time.UTC)
	if !report.Start.Equal(wantStart) {
		t.Errorf("expected start %s, got %s", wantStart, report.Start)
	}
	if !report.End.Equal(wantEnd) {
		t.Errorf("expected end %s, got %s", wantEnd, report.End)
	}
}

func TestReportUseCase_WeeklyReport_LaterWeek(t *testing.T) {
	f := newReportFixture(t)

	// Week 3 spans Jan 15 through Jan 21.
	f.seed(t, "user-1", domain.KindExpense, "Dining", 25, time.Date(2025, time.January, 16, 19, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindExpense, "Dining", 99, time.Date(2025, time.January, 22, 0, 0, 0, 0, time.UTC))

	report, err := f.uc.WeeklyReport(context.Background(), "user-1", 3, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Count != 1 {
		t.Errorf("expected 1 entry in week 3, got %d", report.Count)
	}
	if !report.Start.Equal(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %s", report.Start)
	}
}

func TestReportUseCase_YearlyReport(t *testing.T) {
	f := newReportFixture(t)

	f.seed(t, "user-1", domain.KindIncome, "Salary", 3000, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindExpense, "Rent", 1200, time.Date(2025, time.December, 31, 23, 0, 0, 0, time.UTC))
	f.seed(t, "user-1", domain.KindExpense, "Rent", 1100, time.Date(2024, time.December, 31, 23, 0, 0, 0, time.UTC))

	report, err := f.uc.YearlyReport(context.Background(), "user-1", 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Count != 2 {
		t.Errorf("expected 2 entries in 2025, got %d", report.Count)
	}
	if !report.Net.Equal(decimal.NewFromInt(1800)) {
		t.Errorf("expected net 1800, got %s", report.Net)
	}
}

func TestReportUseCase_CategoryReport(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	f.seed(t, "user-1", domain.KindExpense, "Groceries", 40, now)
	f.seed(t, "user-1", domain.KindExpense, "Groceries", 60, now)
	f.seed(t, "user-1", domain.KindExpense, "Transport", 15, now)
	f.seed(t, "user-1", domain.KindIncome, "Salary", 3000, now)
	f.seed(t, "user-1", domain.KindIncome, "Freelance", 500, now)
	f.seed(t, "user-2", domain.KindExpense, "Groceries", 999, now)

	report, err := f.uc.CategoryReport(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Expenses["Groceries"].Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected Groceries 100, got %s", report.Expenses["Groceries"])
	}
	if !report.Expenses["Transport"].Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected Transport 15, got %s", report.Expenses["Transport"])
	}
	if !report.Incomes["Salary"].Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected Salary 3000, got %s", report.Incomes["Salary"])
	}

	// Grand totals agree with their per-category sums.
	sumExpenses := decimal.Zero
	for _, v := range report.Expenses {
		sumExpenses = sumExpenses.Add(v)
	}
	if !report.TotalExpense.Equal(sumExpenses) {
		t.Errorf("total expense %s disagrees with category sum %s", report.TotalExpense, sumExpenses)
	}

	sumIncomes := decimal.Zero
	for _, v := range report.Incomes {
		sumIncomes = sumIncomes.Add(v)
	}
	if !report.TotalIncome.Equal(sumIncomes) {
		t.Errorf("total income %s disagrees with category sum %s", report.TotalIncome, sumIncomes)
	}
}

func TestReportUseCase_CategoryReport_ExcludesDeleted(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	if _, err := f.ledger.CreateEntry(ctx, "user-1", usecase.CreateEntryInput{
		Kind: domain.KindExpense, Amount: decimal.NewFromInt(40), Category: "Groceries", OccurredAt: now,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	doomed, err := f.ledger.CreateEntry(ctx, "user-1", usecase.CreateEntryInput{
		Kind: domain.KindExpense, Amount: decimal.NewFromInt(500), Category: "Groceries", OccurredAt: now,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := f.ledger.DeleteEntry(ctx, "user-1", doomed.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	report, err := f.uc.CategoryReport(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !report.Expenses["Groceries"].Equal(decimal.NewFromInt(40)) {
		t.Errorf("deleted entry leaked into report: %s", report.Expenses["Groceries"])
	}
}

func TestReportUseCase_EmptyPeriod(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.uc.MonthlyReport(context.Background(), "user-1", time.July, 2025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Count != 0 {
		t.Errorf("expected empty report, count = %d", report.Count)
	}
	if !report.TotalIncome.IsZero() || !report.TotalExpense.IsZero() || !report.Net.IsZero() {
		t.Errorf("expected zero totals, got income=%s expense=%s net=%s",
			report.TotalIncome, report.TotalExpense, report.Net)
	}
}
