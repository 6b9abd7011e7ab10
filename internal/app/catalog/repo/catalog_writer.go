package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/models/m_catalog_product"
	"github.com/light-bringer/procat-browser/internal/pkg/committer"
)

// SeedBatchSize is the number of rows written per commit. Each row touches
// every column plus the category index, which keeps a batch far below
// Spanner's per-commit mutation limit.
const SeedBatchSize = 1000

// SeedPlans splits a catalog replacement into commit plans of at most
// batchSize rows. The first plan also clears the table.
func SeedPlans(products []domain.Product, batchSize int) []*committer.CommitPlan {
	if batchSize <= 0 {
		batchSize = SeedBatchSize
	}
	model := m_catalog_product.NewModel()

	muts := make([]*spanner.Mutation, len(products))
	for i := range products {
		muts[i] = model.InsertMut(model.FromDomain(&products[i]))
	}

	first := committer.NewPlan()
	first.Add(model.DeleteAllMut())
	plans := []*committer.CommitPlan{first}

	for start := 0; start < len(muts); start += batchSize {
		end := min(start+batchSize, len(muts))
		plan := first
		if start > 0 {
			plan = committer.NewPlan()
			plans = append(plans, plan)
		}
		plan.AddMultiple(muts[start:end])
	}
	return plans
}

// Seed replaces the catalog with products. Batches commit one after another,
// so a failure part way leaves the rows of the batches already applied.
func Seed(ctx context.Context, client *spanner.Client, products []domain.Product) error {
	c := committer.NewCommitter(client)
	for i, plan := range SeedPlans(products, SeedBatchSize) {
		if err := c.Apply(ctx, plan); err != nil {
			return fmt.Errorf("failed to seed catalog batch %d: %w", i+1, err)
		}
	}
	return nil
}
