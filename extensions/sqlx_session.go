// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package extensions

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

const upsertSearchRecordQuery = `INSERT INTO search_records
	(kind, record_key, tenant_id, state, parent_key, payload, export_position, updated_at)
	VALUES (:kind, :record_key, :tenant_id, :state, :parent_key, :payload, :export_position, :updated_at)
	ON CONFLICT (kind, record_key) DO UPDATE SET
	tenant_id = excluded.tenant_id, state = excluded.state, parent_key = excluded.parent_key,
	payload = excluded.payload, updated_at = excluded.updated_at`

const deleteSearchRecordQuery = `DELETE FROM search_records WHERE kind = ? AND record_key = ?`

const deleteSearchRecordsByParentQuery = `DELETE FROM search_records WHERE kind = ? AND parent_key = ?`

const selectSearchRecordQuery = `SELECT
	kind, record_key, tenant_id, state, parent_key, payload, export_position, updated_at
	FROM search_records WHERE kind = ? AND record_key = ?`

const selectSearchRecordsQuery = `SELECT
	kind, record_key, tenant_id, state, parent_key, payload, export_position, updated_at
	FROM search_records WHERE kind = ?`

// NewSQLXSession returns a session over a sqlx database whose schema has the search_records table.
// Queries are written with '?' and rebound for the driver, so any database supporting
// INSERT ... ON CONFLICT can use it.
func NewSQLXSession(db *sqlx.DB, checker ErrorChecker) SQLDBSession {
	return &sqlxSession{
		sqlxCRUD:     sqlxCRUD{ext: db},
		db:           db,
		ErrorChecker: checker,
	}
}

type sqlxSession struct {
	sqlxCRUD
	ErrorChecker
	db *sqlx.DB
}

type sqlxTx struct {
	sqlxCRUD
	tx *sqlx.Tx
}

var _ SQLDBSession = (*sqlxSession)(nil)
var _ SQLTransaction = (*sqlxTx)(nil)

func (s *sqlxSession) StartTransaction(ctx context.Context) (SQLTransaction, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlxTx{
		sqlxCRUD: sqlxCRUD{ext: tx},
		tx:       tx,
	}, nil
}

func (s *sqlxSession) Close() error {
	return s.db.Close()
}

func (t *sqlxTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqlxTx) Rollback() error {
	return t.tx.Rollback()
}

type sqlxCRUD struct {
	ext sqlx.ExtContext
}

func (c sqlxCRUD) UpsertSearchRecord(ctx context.Context, row SearchRecordRow) error {
	_, err := sqlx.NamedExecContext(ctx, c.ext, upsertSearchRecordQuery, row)
	return err
}

func (c sqlxCRUD) DeleteSearchRecord(ctx context.Context, kind, recordKey string) error {
	_, err := c.ext.ExecContext(ctx, c.ext.Rebind(deleteSearchRecordQuery), kind, recordKey)
	return err
}

func (c sqlxCRUD) DeleteSearchRecordsByParent(ctx context.Context, kind, parentKey string) error {
	_, err := c.ext.ExecContext(ctx, c.ext.Rebind(deleteSearchRecordsByParentQuery), kind, parentKey)
	return err
}

func (c sqlxCRUD) SelectSearchRecord(ctx context.Context, kind, recordKey string) (*SearchRecordRow, error) {
	var row SearchRecordRow
	err := sqlx.GetContext(ctx, c.ext, &row, c.ext.Rebind(selectSearchRecordQuery), kind, recordKey)
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (c sqlxCRUD) SelectSearchRecords(ctx context.Context, query SearchRecordQuery) ([]SearchRecordRow, error) {
	var sb strings.Builder
	sb.WriteString(selectSearchRecordsQuery)
	args := []interface{}{query.Kind}

	if query.RecordKeys != nil {
		if len(query.RecordKeys) == 0 {
			return nil, nil
		}
		sb.WriteString(" AND record_key IN (?)")
		args = append(args, query.RecordKeys)
	}
	if query.TenantIds != nil {
		if len(query.TenantIds) == 0 {
			return nil, nil
		}
		sb.WriteString(" AND tenant_id IN (?)")
		args = append(args, query.TenantIds)
	}
	if query.State != "" {
		sb.WriteString(" AND state = ?")
		args = append(args, query.State)
	}
	if query.ParentKey != "" {
		sb.WriteString(" AND parent_key = ?")
		args = append(args, query.ParentKey)
	}
	sb.WriteString(" ORDER BY export_position ASC")

	q, args, err := sqlx.In(sb.String(), args...)
	if err != nil {
		return nil, err
	}
	var rows []SearchRecordRow
	err = sqlx.SelectContext(ctx, c.ext, &rows, c.ext.Rebind(q), args...)
	return rows, err
}
