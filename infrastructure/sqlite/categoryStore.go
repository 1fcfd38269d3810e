package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/histafrica/sharedkernel/domain/category"
	"github.com/histafrica/sharedkernel/domain/repository"
	"github.com/histafrica/sharedkernel/domain/seedwork"
)

// CategoryStore rejects a duplicate identity on Insert with
// seedwork.EntityConflictError, and BulkInsert writes all rows or none.
type CategoryStore struct {
	Db *sql.DB
}

var _ category.Repository = CategoryStore{}

const categoryColumns = "id, name, description, is_active, created_at"

var categorySortColumns = map[string]string{
	category.SortByName:      "name",
	category.SortByCreatedAt: "created_at",
}

func (s CategoryStore) Insert(ctx context.Context, c category.Category) error {
	return insertCategory(ctx, s.Db, c)
}

func (s CategoryStore) BulkInsert(ctx context.Context, categories []category.Category) error {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range categories {
		if err := insertCategory(ctx, tx, c); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}

func insertCategory(ctx context.Context, q querier, c category.Category) error {
	const sql = "insert into categories (" + categoryColumns + ") values (?, ?, ?, ?, ?)"
	_, err := q.ExecContext(ctx, sql, c.Id(), c.Name, c.Description, c.IsActive, c.CreatedAt.UnixNano())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return seedwork.EntityConflictError{Entity: "Category", Id: c.Id()}
		}
		return fmt.Errorf("insert category %s: %w", c.Id(), err)
	}
	return nil
}

func (s CategoryStore) FindById(ctx context.Context, id string) (category.Category, error) {
	row := s.Db.QueryRowContext(ctx, "select "+categoryColumns+" from categories where id = ?", id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return category.Category{}, seedwork.NotFoundError{Entity: "Category", Id: id}
	}
	return c, err
}

func (s CategoryStore) FindAll(ctx context.Context) ([]category.Category, error) {
	const sql = "select " + categoryColumns + " from categories order by rowid"
	return s.query(ctx, sql)
}

func (s CategoryStore) Update(ctx context.Context, c category.Category) error {
	const sql = "update categories set name = ?, description = ?, is_active = ?, created_at = ? where id = ?"
	res, err := s.Db.ExecContext(ctx, sql, c.Name, c.Description, c.IsActive, c.CreatedAt.UnixNano(), c.Id())
	if err != nil {
		return fmt.Errorf("update category %s: %w", c.Id(), err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return seedwork.NotFoundError{Entity: "Category", Id: c.Id()}
	}
	return nil
}

func (s CategoryStore) Delete(ctx context.Context, id string) error {
	const sql = "delete from categories where id = ?"
	res, err := s.Db.ExecContext(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", id, err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return seedwork.NotFoundError{Entity: "Category", Id: id}
	}
	return nil
}

func (s CategoryStore) SortableFields() []string {
	return category.SortableFields
}

// Search filters on name with LIKE, which SQLite matches case-insensitively
// for ASCII only. Ties and unsorted results fall back to insertion order.
func (s CategoryStore) Search(ctx context.Context, params repository.SearchParams) (repository.SearchResult[category.Category], error) {
	where, args := "", []any{}
	if params.HasFilter() {
		where = ` where name like ? escape '\'`
		args = append(args, "%"+escapeLike(params.FilterValue())+"%")
	}

	var total int
	if err := s.Db.QueryRowContext(ctx, "select count(*) from categories"+where, args...).Scan(&total); err != nil {
		return repository.SearchResult[category.Category]{}, fmt.Errorf("count categories: %w", err)
	}

	orderBy := " order by rowid"
	if column, ok := categorySortColumns[params.SortField()]; ok && params.HasSort() {
		dir := "asc"
		if params.IsDescending() {
			dir = "desc"
		}
		orderBy = fmt.Sprintf(" order by %s %s, rowid", column, dir)
	}

	items := []category.Category{}
	if params.PerPage >= 1 && params.Offset() >= 0 && params.Offset() < total {
		sql := "select " + categoryColumns + " from categories" + where + orderBy + " limit ? offset ?"
		var err error
		items, err = s.query(ctx, sql, append(args, params.PerPage, params.Offset())...)
		if err != nil {
			return repository.SearchResult[category.Category]{}, err
		}
	}
	return repository.NewSearchResult(items, total, params), nil
}

func (s CategoryStore) query(ctx context.Context, sql string, args ...any) ([]category.Category, error) {
	rows, err := s.Db.QueryContext(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]category.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCategory(row scanner) (category.Category, error) {
	var (
		id, name    string
		description *string
		isActive    bool
		createdAt   int64
	)
	if err := row.Scan(&id, &name, &description, &isActive, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.Category{}, err
		}
		return category.Category{}, fmt.Errorf("scan category: %w", err)
	}

	entityId, err := seedwork.UniqueEntityIdFrom(id)
	if err != nil {
		return category.Category{}, seedwork.LoadEntityError{Errors: map[string][]string{"id": {err.Error()}}}
	}
	c, err := category.NewCategory(category.Props{
		Id:          &entityId,
		Name:        name,
		Description: description,
		IsActive:    &isActive,
	}, parseCreatedAt(createdAt))
	if err != nil {
		var validationErr seedwork.EntityValidationError
		if errors.As(err, &validationErr) {
			return category.Category{}, seedwork.LoadEntityError{Errors: validationErr.Errors}
		}
		return category.Category{}, err
	}
	return c, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
