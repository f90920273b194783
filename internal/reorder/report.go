package reorder

import (
	"context"
	"runtime"
	"sort"
	"time"

	"github.com/stocklane/warehouse-api/internal/domain"
	"golang.org/x/sync/errgroup"
)

// urgentDays is the days-remaining cutoff for the urgent counter in the
// report summary.
const urgentDays = 3

// GenerateReport recommends every product and returns the sorted sequence
// plus summary. The per-product computations are independent, so they run on
// a bounded worker group; the sort afterwards is sequential and stable.
func GenerateReport(ctx context.Context, products []domain.Product, asOf time.Time) (domain.ReorderReport, error) {
	recommendations := make([]domain.ReorderRecommendation, len(products))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, p := range products {
		g.Go(func() error {
			recommendations[i] = Recommend(p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.ReorderReport{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ReorderReport{}, err
	}

	SortRecommendations(recommendations)

	return domain.ReorderReport{
		Recommendations: recommendations,
		Summary:         Summarize(recommendations),
		GeneratedAt:     asOf,
	}, nil
}

// SortRecommendations orders most-urgent first: reorder-needing products
// before adequate ones, then by criticality descending, then by days of
// stock remaining ascending with unbounded runway last.
func SortRecommendations(recs []domain.ReorderRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]

		if a.NeedsReorder != b.NeedsReorder {
			return a.NeedsReorder
		}

		aRank := domain.CriticalityRank(a.CriticalityLevel)
		bRank := domain.CriticalityRank(b.CriticalityLevel)
		if aRank != bRank {
			return aRank > bRank
		}

		// +Inf compares greater than any finite value, so unbounded
		// runway naturally sorts last.
		return a.DaysOfStockRemaining < b.DaysOfStockRemaining
	})
}

// Summarize derives the dashboard counters from a recommendation sequence.
func Summarize(recs []domain.ReorderRecommendation) domain.ReportSummary {
	summary := domain.ReportSummary{TotalProducts: len(recs)}

	var totalCost float64
	for _, rec := range recs {
		if !rec.NeedsReorder {
			continue
		}
		summary.ProductsNeedingReorder++
		totalCost += rec.EstimatedCost
		if float64(rec.DaysOfStockRemaining) <= urgentDays {
			summary.UrgentProducts++
		}
	}

	summary.TotalEstimatedCost = domain.Round2(totalCost)
	return summary
}
