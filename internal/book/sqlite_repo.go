package book

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	// pure Go driver, registered as "sqlite"
	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) the SQLite database at path and
// migrates the books table. ":memory:" gives a private in-memory database.
func OpenSQLite(path string) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: path}, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	// one connection keeps writes serialized and an in-memory database alive
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&Book{}); err != nil {
		return nil, fmt.Errorf("migrate books table: %w", err)
	}
	return db, nil
}

// SQLiteRepo stores books through gorm. SQLite's LIKE ignores ASCII case, so
// search here is case-insensitive.
type SQLiteRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *gorm.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) List(ctx context.Context, q ListQuery) ([]Book, int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx := r.db.WithContext(ctx).Model(&Book{})
	if q.Filter.HasGenre() {
		tx = tx.Where(colGenre+" = ?", q.Filter.Genre)
	}
	if q.Filter.HasSearch() {
		pattern := "%" + escapeLike(q.Filter.Search) + "%"
		tx = tx.Where(
			"("+colTitle+` LIKE ? ESCAPE '\' OR `+colAuthor+` LIKE ? ESCAPE '\' OR `+colDescription+` LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	base := tx.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	page := base
	if q.Order.IsEmpty() {
		page = page.Order(clause.OrderByColumn{Column: clause.Column{Name: colID}})
	}
	for _, term := range q.Order {
		page = page.Order(clause.OrderByColumn{Column: clause.Column{Name: term.Column}, Desc: term.Descending})
	}

	books := make([]Book, 0, q.Page.Take())
	if err := page.Offset(q.Page.Skip()).Limit(q.Page.Take()).Find(&books).Error; err != nil {
		return nil, 0, fmt.Errorf("query books: %w", err)
	}
	return books, int(total), nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id int64) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var b Book
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Book{}, ErrNotFound
	}
	if err != nil {
		return Book{}, fmt.Errorf("get book: %w", err)
	}
	return b, nil
}

func (r *SQLiteRepo) Create(ctx context.Context, b *Book) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int64) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res := r.db.WithContext(ctx).Delete(&Book{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete book: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepo) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
