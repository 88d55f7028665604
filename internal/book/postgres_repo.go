package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/logger"
	"bookcatalog/internal/query"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dialectPostgres = "postgres"

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	builder goqu.DialectWrapper
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout, builder: goqu.Dialect(dialectPostgres)}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

type sqlStatement struct {
	sql  string
	args []any
}

// buildListQueries renders the count and page statements. Both share the same
// predicates so the total always matches the filtered set.
func (r *PostgresRepo) buildListQueries(q ListQuery) (count, page sqlStatement, err error) {
	base := r.builder.From(tableBooks).Prepared(true)
	if where := filterExpressions(q.Filter); len(where) > 0 {
		base = base.Where(where...)
	}

	count.sql, count.args, err = base.Select(goqu.COUNT(goqu.Star())).ToSQL()
	if err != nil {
		return count, page, fmt.Errorf("build count query: %w", err)
	}

	page.sql, page.args, err = base.
		Select(selectColumns()...).
		Order(orderExpressions(q.Order)...).
		Limit(uint(q.Page.Take())).
		Offset(uint(q.Page.Skip())).
		ToSQL()
	if err != nil {
		return count, page, fmt.Errorf("build list query: %w", err)
	}
	return count, page, nil
}

func filterExpressions(f query.Filter) []exp.Expression {
	var where []exp.Expression
	if f.HasGenre() {
		where = append(where, goqu.C(colGenre).Eq(f.Genre))
	}
	if f.HasSearch() {
		pattern := "%" + escapeLike(f.Search) + "%"
		where = append(where, goqu.Or(
			goqu.C(colTitle).Like(pattern),
			goqu.C(colAuthor).Like(pattern),
			goqu.C(colDescription).Like(pattern),
		))
	}
	return where
}

func orderExpressions(o query.Order) []exp.OrderedExpression {
	if o.IsEmpty() {
		return []exp.OrderedExpression{goqu.I(colID).Asc()}
	}
	out := make([]exp.OrderedExpression, 0, len(o))
	for _, term := range o {
		if term.Descending {
			out = append(out, goqu.I(term.Column).Desc())
		} else {
			out = append(out, goqu.I(term.Column).Asc())
		}
	}
	return out
}

func selectColumns() []any {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}
	return cols
}

// escapeLike neutralizes LIKE wildcards so search terms match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanBook(row pgx.CollectableRow) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Price, &b.PublishDate, &b.Description)
	return b, err
}

func (r *PostgresRepo) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	countStmt, pageStmt, err := r.buildListQueries(q)
	if err != nil {
		return nil, 0, err
	}
	logger.FromContext(ctx).Debug().Str("sql", pageStmt.sql).Msg("list books")

	var total int
	if err := r.db.QueryRow(ctx, countStmt.sql, countStmt.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	rows, err := r.db.Query(ctx, pageStmt.sql, pageStmt.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query books: %w", err)
	}
	books, err := pgx.CollectRows(rows, scanBook)
	if err != nil {
		return nil, 0, fmt.Errorf("scan books: %w", err)
	}
	return books, total, nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.builder.From(tableBooks).Prepared(true).
		Select(selectColumns()...).
		Where(goqu.C(colID).Eq(id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build get query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	b, err := pgx.CollectExactlyOneRow(rows, scanBook)
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.builder.Insert(tableBooks).Prepared(true).
		Rows(goqu.Record{
			colTitle:       b.Title,
			colAuthor:      b.Author,
			colGenre:       b.Genre,
			colPrice:       b.Price,
			colPublishDate: b.PublishDate,
			colDescription: b.Description,
		}).
		Returning(colID).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sql, args, err := r.builder.Delete(tableBooks).Prepared(true).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.db.Ping(ctx)
}
