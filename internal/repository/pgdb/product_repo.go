package pgdb

import (
	"context"
	"errors"

	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/domain"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/internal/repository/pgdb/converter"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/e"
	"github.com/hhhemanthk-code/lishaa-agro-health-elevate/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

const productColumns = `
	id, name, description, long_description, price, category, tag,
	rating, reviews, benefits, image_url, created_at, updated_at`

// ProductRepo implements the product repository on top of PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// List returns every product, newest first. Ties on created_at break by id so
// the order is stable.
func (p *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id DESC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0)
	for rows.Next() {
		var m converter.ProductModel
		if err := scanProduct(rows, &m); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntities(models), nil
}

// Insert creates a new record; the database assigns the identifier and the
// creation timestamp. Runs inside the caller's transaction.
func (p *ProductRepo) Insert(ctx context.Context, draft *domain.ProductDraft) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		INSERT INTO products
			(name, description, long_description, price, category, tag, rating, reviews, benefits, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING` + productColumns

	var m converter.ProductModel
	row := tx.QueryRow(ctx, query,
		draft.Name, draft.Description, draft.LongDescription, draft.Price,
		draft.Category.String(), draft.Tag, draft.Rating.InexactFloat64(),
		draft.Reviews, draft.Benefits, draft.ImageURL,
	)
	if err := scanProduct(row, &m); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&m), nil
}

// Update replaces every field of the record with the submitted values. Runs
// inside the caller's transaction.
func (p *ProductRepo) Update(ctx context.Context, id int64, draft *domain.ProductDraft) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products SET
			name = $1,
			description = $2,
			long_description = $3,
			price = $4,
			category = $5,
			tag = $6,
			rating = $7,
			reviews = $8,
			benefits = $9,
			image_url = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING` + productColumns

	var m converter.ProductModel
	row := tx.QueryRow(ctx, query,
		draft.Name, draft.Description, draft.LongDescription, draft.Price,
		draft.Category.String(), draft.Tag, draft.Rating.InexactFloat64(),
		draft.Reviews, draft.Benefits, draft.ImageURL, id,
	)
	if err := scanProduct(row, &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&m), nil
}

// Delete removes the record. Runs inside the caller's transaction.
func (p *ProductRepo) Delete(ctx context.Context, id int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrProductNotFound)
	}

	return nil
}

func scanProduct(row pgx.Row, m *converter.ProductModel) error {
	return row.Scan(
		&m.ID, &m.Name, &m.Description, &m.LongDescription, &m.Price,
		&m.Category, &m.Tag, &m.Rating, &m.Reviews, &m.Benefits,
		&m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
}
