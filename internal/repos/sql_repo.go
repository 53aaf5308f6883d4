package repos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Table describes where an entity lives. Columns excludes the id column.
type Table struct {
	Name    string
	Columns []string
}

// SQLRepo is a Repository over any sqlx driver. Statements use named
// parameters so placeholders follow the driver (? for sqlite, $n for pgx).
type SQLRepo[T any, P Record[T]] struct {
	db    *sqlx.DB
	table Table

	selectSQL string
	byIDSQL   string
	insertSQL string
	updateSQL string
	deleteSQL string
}

func NewSQLRepo[T any, P Record[T]](db *sqlx.DB, t Table) *SQLRepo[T, P] {
	cols := strings.Join(t.Columns, ", ")
	sets := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		sets[i] = c + " = :" + c
	}
	sel := fmt.Sprintf(`SELECT id, %s FROM %s`, cols, t.Name)
	return &SQLRepo[T, P]{
		db:        db,
		table:     t,
		selectSQL: sel + ` ORDER BY id`,
		byIDSQL:   db.Rebind(sel + ` WHERE id = ?`),
		insertSQL: fmt.Sprintf(`INSERT INTO %s (%s) VALUES (:%s) RETURNING id`,
			t.Name, cols, strings.Join(t.Columns, ", :")),
		updateSQL: fmt.Sprintf(`UPDATE %s SET %s WHERE id = :id`, t.Name, strings.Join(sets, ", ")),
		deleteSQL: db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, t.Name)),
	}
}

func (r *SQLRepo[T, P]) GetAll(ctx context.Context) ([]T, error) {
	out := []T{}
	if err := r.db.SelectContext(ctx, &out, r.selectSQL); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.table.Name, err)
	}
	return out, nil
}

func (r *SQLRepo[T, P]) GetByID(ctx context.Context, id int64) (*T, error) {
	var v T
	err := r.db.GetContext(ctx, &v, r.byIDSQL, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s %d: %w", r.table.Name, id, err)
	}
	return &v, nil
}

func (r *SQLRepo[T, P]) Create(ctx context.Context, entity *T) error {
	query, args, err := r.db.BindNamed(r.insertSQL, entity)
	if err != nil {
		return fmt.Errorf("bind %s insert: %w", r.table.Name, err)
	}
	var id int64
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("insert %s: %w", r.table.Name, err)
	}
	P(entity).SetPrimaryKey(id)
	return nil
}

func (r *SQLRepo[T, P]) Update(ctx context.Context, entity *T) error {
	if _, err := r.db.NamedExecContext(ctx, r.updateSQL, entity); err != nil {
		return fmt.Errorf("update %s %d: %w", r.table.Name, P(entity).PrimaryKey(), err)
	}
	return nil
}

func (r *SQLRepo[T, P]) Delete(ctx context.Context, entity *T) error {
	id := P(entity).PrimaryKey()
	if _, err := r.db.ExecContext(ctx, r.deleteSQL, id); err != nil {
		return fmt.Errorf("delete %s %d: %w", r.table.Name, id, err)
	}
	return nil
}
