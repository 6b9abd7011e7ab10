package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/procat-browser/internal/app/catalog/contracts"
	"github.com/light-bringer/procat-browser/internal/app/catalog/domain"
	"github.com/light-bringer/procat-browser/internal/models/m_catalog_product"
	"github.com/light-bringer/procat-browser/internal/pkg/query"
)

// ReadModel serves catalog pages from Spanner.
type ReadModel struct {
	client *spanner.Client
	model  *m_catalog_product.Model
}

var _ contracts.DataProvider = (*ReadModel)(nil)

// NewReadModel creates a Spanner-backed DataProvider.
func NewReadModel(client *spanner.Client) *ReadModel {
	return &ReadModel{
		client: client,
		model:  m_catalog_product.NewModel(),
	}
}

func baseQuery() *query.Builder {
	return query.From(m_catalog_product.TableName).Select(m_catalog_product.Columns...)
}

// PageStatements returns the row and count statements for one page.
// Rows are ordered by product_id so pages never overlap.
func PageStatements(pageNumber, pageSize int) (rows, count spanner.Statement) {
	b := baseQuery().OrderBy(m_catalog_product.ProductID, query.Asc).Page(pageNumber, pageSize)
	return b.Build(), b.Count().Build()
}

// ByIDStatement returns the lookup statement for one product.
func ByIDStatement(id int64) spanner.Statement {
	return baseQuery().Where(query.Eq(m_catalog_product.ProductID, id)).Limit(1).Build()
}

// FetchPage reads one page and the table size in parallel using a single
// read-only snapshot.
func (rm *ReadModel) FetchPage(ctx context.Context, pageNumber, pageSize int) (*domain.PageEnvelope, error) {
	if err := contracts.ValidatePageRequest(pageNumber, pageSize); err != nil {
		return nil, err
	}

	rowsStmt, countStmt := PageStatements(pageNumber, pageSize)

	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	var (
		items []domain.Product
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = rm.queryProducts(gctx, txn, rowsStmt, min(pageSize, maxPrealloc))
		return err
	})
	g.Go(func() error {
		iter := txn.Query(gctx, countStmt)
		defer iter.Stop()

		row, err := iter.Next()
		if err != nil {
			return fmt.Errorf("failed to count products: %w", err)
		}
		if err := row.Columns(&total); err != nil {
			return fmt.Errorf("failed to parse count: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, domain.NewFetchError("fetch page", err)
	}

	return domain.NewPageEnvelope(items, int(total)), nil
}

// maxPrealloc bounds the slice capacity reserved up front for a page.
const maxPrealloc = 1000

// FetchByID returns the product or nil when no row matches.
func (rm *ReadModel) FetchByID(ctx context.Context, id int64) (*domain.Product, error) {
	iter := rm.client.Single().Query(ctx, ByIDStatement(id))
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewFetchError("fetch product", fmt.Errorf("failed to read product: %w", err))
	}

	var data m_catalog_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, domain.NewFetchError("fetch product", fmt.Errorf("failed to parse product: %w", err))
	}
	prod := rm.model.ToDomain(&data)
	if err := prod.Validate(); err != nil {
		return nil, domain.NewFetchError("fetch product", err)
	}
	return prod, nil
}

func (rm *ReadModel) queryProducts(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement, capacity int) ([]domain.Product, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	products := make([]domain.Product, 0, capacity)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_catalog_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}
		prod := rm.model.ToDomain(&data)
		if err := prod.Validate(); err != nil {
			return nil, err
		}
		products = append(products, *prod)
	}
	return products, nil
}
