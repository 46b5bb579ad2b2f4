// Package database provides tenant instantiation
package database

import (
	"database/sql"
	"fmt"
)

// TableCreator handles the creation of the database schema for a new tenant.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tenant's database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS campaigns (
		id INTEGER PRIMARY KEY,
		client_id INTEGER NOT NULL,
		title TEXT NOT NULL,
		end_date TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS campaign_links (
		id TEXT PRIMARY KEY,
		campaign_id INTEGER NOT NULL REFERENCES campaigns(id),
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		room TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT 1)`,
	`CREATE TABLE IF NOT EXISTS visitors (
		id TEXT PRIMARY KEY,
		client_id INTEGER NOT NULL,
		recent_pages TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
	`CREATE TABLE IF NOT EXISTS visitor_campaigns (
		id TEXT PRIMARY KEY,
		visitor_id TEXT NOT NULL REFERENCES visitors(id),
		campaign_id TEXT NOT NULL,
		account_id TEXT NOT NULL,
		first_visit_at TIMESTAMP NOT NULL,
		last_visit_at TIMESTAMP NOT NULL,
		entry_page TEXT,
		matched_pages TEXT NOT NULL,
		total_page_views INTEGER NOT NULL DEFAULT 0,
		unique_pages_count INTEGER NOT NULL DEFAULT 0,
		is_prospect BOOLEAN NOT NULL DEFAULT 0,
		current_room TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		UNIQUE(visitor_id, campaign_id))`,
	`CREATE TABLE IF NOT EXISTS operators (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'editor',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_campaigns_client ON campaigns(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_campaign_links_campaign ON campaign_links(campaign_id)`,
	`CREATE INDEX IF NOT EXISTS idx_visitors_client ON visitors(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_visitor_campaigns_visitor ON visitor_campaigns(visitor_id)`,
}
