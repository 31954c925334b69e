// Package repository is a generic sqlx data mapper shared by the domain
// repositories. Reads go to the read pool, writes to the write pool or to the
// transaction passed in.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"hotelbooking/infras/otel"
	"hotelbooking/infras/postgres"
	"hotelbooking/shared/constant"
	"hotelbooking/shared/dto"
	"hotelbooking/shared/logger"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

type Repository[T any] struct {
	db         *postgres.Connection
	otel       otel.Otel
	entity     string
	primaryKey string
	schema     schema
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:         dbConnection,
		otel:       otl,
		entity:     entityName,
		primaryKey: primaryColumn,
		schema:     newSchema[T](tableName),
	}
}

func (repo *Repository[T]) span(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		constant.OtelRepositoryScopeName+"."+repo.entity+"."+op)
}

func (repo *Repository[T]) reader() (*sqlx.DB, error) {
	if repo.db == nil || repo.db.Read == nil {
		return nil, postgres.ErrNoConnection
	}

	return repo.db.Read, nil
}

func (repo *Repository[T]) writer() (*sqlx.DB, error) {
	if repo.db == nil || repo.db.Write == nil {
		return nil, postgres.ErrNoConnection
	}

	return repo.db.Write, nil
}

// fail records err on the span and wraps it with the operation and entity.
func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// query runs a named read statement; one decides between Get and Select.
func (repo *Repository[T]) query(ctx context.Context, scope otel.Scope, action, query string, args map[string]any, dest any, one bool) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	db, err := repo.reader()
	if err != nil {
		return err
	}

	stmt, err := db.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if one {
		err = stmt.GetContext(ctx, dest, args)
	} else {
		err = stmt.SelectContext(ctx, dest, args)
	}

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return repo.fail(scope, action, err)
	}

	return err
}

// exec runs a named write and reports how many rows it touched.
func (repo *Repository[T]) exec(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) (int64, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := exec.NamedExecContext(ctx, query, arg)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to %s (%s): %w", action, repo.entity, classify(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, "read affected rows", err)
	}

	return affected, nil
}

func (repo *Repository[T]) write(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) error {
	_, err := repo.exec(ctx, scope, exec, action, query, arg)

	return err
}

// BuildWhereClause renders filter as " WHERE ... ", or "" when it is empty.
func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return "", map[string]any{}
	}

	return " WHERE " + where + " ", args
}

func (repo *Repository[T]) from() string {
	return strings.TrimSpace(repo.schema.table + " " + repo.schema.join)
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()

	db, err := repo.writer()
	if err != nil {
		return err
	}

	return repo.write(ctx, scope, db, "insert data", repo.schema.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.span(ctx, "InsertTx")
	defer scope.End()

	return repo.write(ctx, scope, sqltx, "insert data", repo.schema.insertQuery(), model)
}

// InsertBulk writes every model in one multi-row statement. An empty slice is a no-op.
func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulk")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	db, err := repo.writer()
	if err != nil {
		return err
	}

	return repo.write(ctx, scope, db, "bulk insert data", repo.schema.insertQuery(), models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulkTx")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	return repo.write(ctx, scope, sqltx, "bulk insert data", repo.schema.insertQuery(), models)
}

// Exist requires a non-empty filter.
func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	var exist bool

	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s%s)", repo.from(), where)
	if err := repo.query(ctx, scope, "check exist data", query, args, &exist, true); err != nil {
		return false, err
	}

	return exist, nil
}

// Get returns the zero T, not an error, when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s%s", repo.schema.selectList(columns...), repo.from(), where)

	var model T

	err := repo.query(ctx, scope, "get data", query, args, &model, true)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	return model, err
}

// GetAll pages with LIMIT/OFFSET when both page and limit are set. Sorting
// always adds the primary key so pages stay stable.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	var sb strings.Builder

	fmt.Fprintf(&sb, "SELECT %s FROM %s%s", repo.schema.selectList(columns...), repo.from(), where)

	if params.SortBy != "" && params.SortDir != "" {
		sortBy := params.SortBy
		if !strings.Contains(sortBy, ".") {
			sortBy = repo.schema.table + "." + sortBy
		}

		fmt.Fprintf(&sb, " ORDER BY %s %s, %s.%s %s", sortBy, params.SortDir, repo.schema.table, repo.primaryKey, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		sb.WriteString(" LIMIT :limit")

		if params.Page > 0 {
			args["offset"] = (params.Page - 1) * params.Limit
			sb.WriteString(" OFFSET :offset")
		}
	}

	var models []T

	if err := repo.query(ctx, scope, "get all data", sb.String(), args, &models, false); err != nil {
		return nil, err
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s%s", repo.schema.table, repo.primaryKey, repo.from(), where)

	var count int
	if err := repo.query(ctx, scope, "count data", query, args, &count, true); err != nil {
		return 0, err
	}

	return count, nil
}

func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Update")
	defer scope.End()

	db, err := repo.writer()
	if err != nil {
		return err
	}

	_, err = repo.update(ctx, scope, db, fields, filter)

	return err
}

// UpdateAffected is Update that also returns the number of rows changed, for
// updates guarded on a value another writer may already have changed.
func (repo *Repository[T]) UpdateAffected(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.span(ctx, "UpdateAffected")
	defer scope.End()

	db, err := repo.writer()
	if err != nil {
		return 0, err
	}

	return repo.update(ctx, scope, db, fields, filter)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, fields map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "UpdateTx")
	defer scope.End()

	_, err := repo.update(ctx, scope, sqltx, fields, filter)

	return err
}

// update sets fields (column name to value) on every matching row. Both the
// field set and the filter must be non-empty.
func (repo *Repository[T]) update(ctx context.Context, scope otel.Scope, exec execer, fields map[string]any, filter dto.FilterGroup) (int64, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" || len(fields) == 0 {
		return 0, errRequiredFilter
	}

	assignments := make([]string, 0, len(fields))
	for _, col := range slices.Sorted(maps.Keys(fields)) {
		assignments = append(assignments, col+" = :"+col)
	}

	maps.Copy(args, fields)

	query := fmt.Sprintf("UPDATE %s SET %s%s", repo.schema.table, strings.Join(assignments, ", "), where)

	return repo.exec(ctx, scope, exec, "update data", query, args)
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Delete")
	defer scope.End()

	db, err := repo.writer()
	if err != nil {
		return err
	}

	return repo.delete(ctx, scope, db, filter)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "DeleteTx")
	defer scope.End()

	return repo.delete(ctx, scope, sqltx, filter)
}

func (repo *Repository[T]) delete(ctx context.Context, scope otel.Scope, exec execer, filter dto.FilterGroup) error {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return errRequiredFilter
	}

	return repo.write(ctx, scope, exec, "delete data", "DELETE FROM "+repo.schema.table+where, args)
}
