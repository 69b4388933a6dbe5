package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL-backed implementation of the DependencyChecker port.
type SQLChecker struct {
	DB   *sql.DB
	name string
}

func NewSQLChecker(db *sql.DB) *SQLChecker {
	return &SQLChecker{DB: db, name: "database"}
}

func (c *SQLChecker) Name() string {
	return c.name
}

// Verify the database answers a ping.
func (c *SQLChecker) Check(ctx context.Context) error {
	if c.DB == nil {
		return errors.New("sql checker: DB is nil")
	}

	if err := c.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("check database: ping: %w", err)
	}

	return nil
}
