package database

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

type DB struct{ Bolt *bbolt.DB }

func New(path string) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	b, err := bbolt.Open(filepath.Clean(path), 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &DB{Bolt: b}, nil
}

func (d *DB) Close() error {
	if d == nil || d.Bolt == nil {
		return nil
	}
	return d.Bolt.Close()
}
