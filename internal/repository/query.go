package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// ============================================
// Query helpers shared by the sqlx repositories
// ============================================

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// getMany runs a select and scans every row into dest (a pointer to a slice).
func getMany(ctx context.Context, q sqlx.QueryerContext, b squirrel.SelectBuilder, dest interface{}) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return sqlx.SelectContext(ctx, q, dest, query, args...)
}

// getOne scans a single row into dest. It reports false when no row matched.
func getOne(ctx context.Context, q sqlx.QueryerContext, b squirrel.SelectBuilder, dest interface{}) (bool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}
	err = sqlx.GetContext(ctx, q, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// insert adds one row to table and returns the generated id.
func insert(ctx context.Context, q sqlx.QueryerContext, table string, columns []string, values ...interface{}) (int64, error) {
	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert: %w", err)
	}

	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// update applies fields to the row of table with the given id and bumps updated_at.
func update(ctx context.Context, e sqlx.ExecerContext, table string, id int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	b := psql.Update(table).
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	_, err := executeQuery(ctx, e, b)
	return err
}

// executeQuery runs a statement and returns the affected row count.
func executeQuery(ctx context.Context, e sqlx.ExecerContext, b squirrel.Sqlizer) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build statement: %w", err)
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func prefixed(alias string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = alias + "." + c
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s anywhere, with s taken literally.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
