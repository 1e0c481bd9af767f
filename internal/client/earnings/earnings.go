// Package earnings aggregates paid invoices into monthly and yearly totals.
package earnings

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dmitrijs2005/jobkeeper/internal/client/models"
)

// Period is one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) String() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

func (p Period) after(o Period) bool {
	if p.Year != o.Year {
		return p.Year > o.Year
	}
	return p.Month > o.Month
}

// Summary holds paid totals per month. Build it with Summarize.
type Summary struct {
	totals map[Period]float64
}

// Summarize keeps invoices with status paid and sums total_amount per month
// of due_date. Invoices without a due date count toward now's month.
func Summarize(invoices []models.Invoice, now time.Time) Summary {
	s := Summary{totals: make(map[Period]float64)}
	for _, inv := range invoices {
		if inv.Status != models.InvoicePaid {
			continue
		}
		when := now
		if !inv.DueDate.IsZero() {
			when = inv.DueDate.Time
		}
		s.totals[Period{Year: when.Year(), Month: when.Month()}] += inv.TotalAmount
	}
	return s
}

// Month returns the paid total for one month.
func (s Summary) Month(year int, month time.Month) float64 {
	return s.totals[Period{Year: year, Month: month}]
}

// Year returns the paid total over every month of year.
func (s Summary) Year(year int) float64 {
	var sum float64
	for p, v := range s.totals {
		if p.Year == year {
			sum += v
		}
	}
	return sum
}

// Years lists the years with at least one paid invoice, newest first.
func (s Summary) Years() []int {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for p := range s.totals {
		if _, ok := seen[p.Year]; ok {
			continue
		}
		seen[p.Year] = struct{}{}
		years = append(years, p.Year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Periods lists the months with at least one paid invoice, newest first.
func (s Summary) Periods() []Period {
	periods := make([]Period, 0, len(s.totals))
	for p := range s.totals {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].after(periods[j]) })
	return periods
}

// FormatAmount renders v compactly: whole millions as "<N>M", whole
// thousands as "<N>k", anything smaller with two decimals. Millions and
// thousands are truncated, never rounded up.
func FormatAmount(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.0fM", math.Trunc(v/1_000_000))
	case v >= 1_000:
		return fmt.Sprintf("%.0fk", math.Trunc(v/1_000))
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
