package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	// mysql driver
	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	checkpoint "github.com/alexgridx/kinesis-checkpoint"
)

// Option is used to override defaults when creating a new Store
type Option func(*Store)

// WithConnection overrides the default database handle
func WithConnection(conn *sql.DB) Option {
	return func(s *Store) {
		s.conn = conn
	}
}

// New returns a store that uses MySQL for underlying storage.
// The table needs a unique store_key column and a snapshot JSON column.
func New(appName, tableName, connectionStr string, opts ...Option) (*Store, error) {
	if tableName == "" {
		return nil, fmt.Errorf("must provide table name")
	}

	s := &Store{
		appName:   appName,
		tableName: tableName,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.conn == nil {
		conn, err := sql.Open("mysql", connectionStr)
		if err != nil {
			return nil, errors.Wrap(err, "open mysql connection")
		}
		s.conn = conn
	}

	return s, nil
}

// Store persists reader checkpoint snapshots in a MySQL table.
type Store struct {
	appName   string
	tableName string
	conn      *sql.DB
}

// GetReaderCheckpoint fetches the persisted snapshot for a stream. A missing
// row yields an empty snapshot, not an error.
func (s *Store) GetReaderCheckpoint(ctx context.Context, streamName string) (checkpoint.ReaderCheckpoint, error) {
	query := fmt.Sprintf("SELECT snapshot FROM %s WHERE store_key = ?", s.tableName)

	var payload []byte
	err := s.conn.QueryRowContext(ctx, query, s.key(streamName)).Scan(&payload)
	if err == sql.ErrNoRows {
		return checkpoint.ReaderCheckpoint{}, nil
	}
	if err != nil {
		return checkpoint.ReaderCheckpoint{}, errors.Wrap(err, "get reader checkpoint")
	}

	var cp checkpoint.ReaderCheckpoint
	if err := json.Unmarshal(payload, &cp); err != nil {
		return checkpoint.ReaderCheckpoint{}, errors.Wrap(err, "decode reader checkpoint")
	}
	return cp, nil
}

// SetReaderCheckpoint stores the snapshot for a stream. Upon failover,
// reading is resumed from the positions stored here.
func (s *Store) SetReaderCheckpoint(ctx context.Context, streamName string, cp checkpoint.ReaderCheckpoint) error {
	if streamName == "" {
		return fmt.Errorf("stream name should not be empty")
	}

	payload, err := json.Marshal(cp)
	if err != nil {
		return errors.Wrap(err, "encode reader checkpoint")
	}

	upsert := fmt.Sprintf("INSERT INTO %s (store_key, snapshot) VALUES (?, ?) ON DUPLICATE KEY UPDATE snapshot = VALUES(snapshot)", s.tableName)

	_, err = s.conn.ExecContext(ctx, upsert, s.key(streamName), payload)
	return errors.Wrap(err, "set reader checkpoint")
}

// Shutdown closes the underlying database handle.
func (s *Store) Shutdown() error {
	return s.conn.Close()
}

// key generates a unique key for storage of a snapshot.
func (s *Store) key(streamName string) string {
	return fmt.Sprintf("%v:checkpoint:%v", s.appName, streamName)
}
