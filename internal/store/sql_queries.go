package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// builder produces SQLite flavoured statements with "?" placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildSelectQuery(r Record, predicate sq.Sqlizer, orderBy []string) (string, []any, error) {
	columns := append([]string{primaryKeyColumn}, r.Columns()...)

	q := builder.Select(columns...).From(r.TableName())
	if predicate != nil {
		q = q.Where(predicate)
	}
	if len(orderBy) == 0 {
		orderBy = []string{primaryKeyColumn}
	}

	query, args, err := q.OrderBy(orderBy...).ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildCountQuery(table string, predicate sq.Sqlizer) (string, []any, error) {
	q := builder.Select("COUNT(*)").From(table)
	if predicate != nil {
		q = q.Where(predicate)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertQuery(r Record) (string, []any, error) {
	query, args, err := builder.Insert(r.TableName()).
		Columns(r.Columns()...).
		Values(r.Values()...).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateQuery(r Record) (string, []any, error) {
	columns := r.Columns()
	values := r.Values()

	setMap := make(map[string]any, len(columns))
	for i, column := range columns {
		setMap[column] = values[i]
	}

	query, args, err := builder.Update(r.TableName()).
		SetMap(setMap).
		Where(sq.Eq{primaryKeyColumn: r.PrimaryKey()}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteQuery(r Record) (string, []any, error) {
	query, args, err := builder.Delete(r.TableName()).
		Where(sq.Eq{primaryKeyColumn: r.PrimaryKey()}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
