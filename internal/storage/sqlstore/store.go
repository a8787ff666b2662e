// Package sqlstore keeps collections in SQL tables: one row per kind for the
// sync timestamp and one row per item. Campaign markers live in their own
// columns so marking an item is a single-row update.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/samber/lo"

	"content_mirror/internal/domain"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	insertChunkSize = 100
)

var schemas = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS content_collections (
			kind TEXT PRIMARY KEY,
			last_synced_at TIMESTAMPTZ NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
		CREATE TABLE IF NOT EXISTS content_items (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			doc TEXT NOT NULL,
			campaign_created BOOLEAN NOT NULL DEFAULT FALSE,
			campaign_id TEXT NOT NULL DEFAULT '',
			campaign_created_at TIMESTAMPTZ NULL,
			PRIMARY KEY (kind, id)
		);`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS content_collections (
			kind TEXT PRIMARY KEY,
			last_synced_at TIMESTAMP NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS content_items (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			doc TEXT NOT NULL,
			campaign_created BOOLEAN NOT NULL DEFAULT FALSE,
			campaign_id TEXT NOT NULL DEFAULT '',
			campaign_created_at TIMESTAMP NULL,
			PRIMARY KEY (kind, id)
		);`,
}

type Store struct {
	db     *sqlx.DB
	driver string
	tx     txRunner
	now    func() time.Time
}

type collectionRow struct {
	Kind         string       `db:"kind"`
	LastSyncedAt sql.NullTime `db:"last_synced_at"`
	CreatedAt    time.Time    `db:"created_at"`
}

type itemRow struct {
	Kind              string       `db:"kind"`
	ID                string       `db:"id"`
	Position          int          `db:"sort_order"`
	Doc               string       `db:"doc"`
	CampaignCreated   bool         `db:"campaign_created"`
	CampaignID        string       `db:"campaign_id"`
	CampaignCreatedAt sql.NullTime `db:"campaign_created_at"`
}

// Open connects and creates the tables if needed.
func Open(driver, dsn string, now func() time.Time) (*Store, error) {
	schema, ok := schemas[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One connection keeps sqlite writers from tripping over each other.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return New(db, driver, now), nil
}

// New wraps an existing connection; the tables must already exist.
func New(db *sqlx.DB, driver string, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		db:     db,
		driver: driver,
		tx:     txRunner{db: db},
		now:    now,
	}
}

func (s *Store) Load(ctx context.Context, kind domain.Kind) (*domain.Collection, error) {
	var row collectionRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(
		`SELECT kind, last_synced_at, created_at FROM content_collections WHERE kind = ?`), string(kind))
	if errors.Is(err, sql.ErrNoRows) {
		c := domain.NewCollection(kind, s.now().UTC())
		if err := s.upsertCollection(ctx, s.db, c); err != nil {
			return nil, fmt.Errorf("create collection %s: %w", kind, err)
		}
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection %s: %w", kind, err)
	}

	var rows []itemRow
	err = s.db.SelectContext(ctx, &rows, s.db.Rebind(`
		SELECT kind, id, sort_order, doc, campaign_created, campaign_id, campaign_created_at
		FROM content_items
		WHERE kind = ?
		ORDER BY sort_order`), string(kind))
	if err != nil {
		return nil, fmt.Errorf("load items %s: %w", kind, err)
	}

	c := &domain.Collection{
		Kind:      kind,
		CreatedAt: row.CreatedAt,
		Items:     make([]domain.Item, 0, len(rows)),
	}
	if row.LastSyncedAt.Valid {
		c.LastSyncedAt = row.LastSyncedAt.Time
	}
	for _, r := range rows {
		var item domain.Item
		if err := json.Unmarshal([]byte(r.Doc), &item); err != nil {
			return nil, fmt.Errorf("decode item %s: %w", r.ID, err)
		}
		item.CampaignCreated = r.CampaignCreated
		item.CampaignID = r.CampaignID
		if r.CampaignCreatedAt.Valid {
			at := r.CampaignCreatedAt.Time
			item.CampaignCreatedAt = &at
		}
		c.Items = append(c.Items, item)
	}
	return c, nil
}

// Save upserts every item, removes items no longer present and updates the
// sync timestamp in one transaction.
func (s *Store) Save(ctx context.Context, c *domain.Collection) error {
	if c == nil {
		return nil
	}

	rows, err := toRows(c)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	err = s.tx.run(ctx, func(txCtx context.Context, exec sqlx.ExtContext) error {

		for _, chunk := range lo.Chunk(rows, insertChunkSize) {
			if _, err := sqlx.NamedExecContext(txCtx, exec, `
				INSERT INTO content_items (kind, id, sort_order, doc, campaign_created, campaign_id, campaign_created_at)
				VALUES (:kind, :id, :sort_order, :doc, :campaign_created, :campaign_id, :campaign_created_at)
				ON CONFLICT (kind, id) DO UPDATE SET
					sort_order = EXCLUDED.sort_order,
					doc = EXCLUDED.doc,
					campaign_created = content_items.campaign_created OR EXCLUDED.campaign_created,
					campaign_id = CASE WHEN content_items.campaign_created
						THEN content_items.campaign_id ELSE EXCLUDED.campaign_id END,
					campaign_created_at = CASE WHEN content_items.campaign_created
						THEN content_items.campaign_created_at ELSE EXCLUDED.campaign_created_at END`, chunk); err != nil {
				return fmt.Errorf("upsert items: %w", err)
			}
		}

		if err := s.deleteMissing(txCtx, exec, c.Kind, lo.Map(rows, func(r itemRow, _ int) string { return r.ID })); err != nil {
			return fmt.Errorf("delete dropped items: %w", err)
		}

		return s.upsertCollection(txCtx, exec, c)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}

func (s *Store) MarkCampaignCreated(ctx context.Context, kind domain.Kind, id, campaignID string, at time.Time) error {
	res, err := s.tx.executor(ctx).ExecContext(ctx, s.db.Rebind(`
		UPDATE content_items
		SET campaign_created = TRUE, campaign_id = ?, campaign_created_at = ?
		WHERE kind = ? AND id = ?`), campaignID, at.UTC(), string(kind), id)
	if err != nil {
		return fmt.Errorf("%w: mark item %s: %v", domain.ErrPersistence, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: mark item %s: %v", domain.ErrPersistence, id, err)
	}
	if n == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, kind domain.Kind) error {
	return s.tx.run(ctx, func(txCtx context.Context, exec sqlx.ExtContext) error {
		if _, err := exec.ExecContext(txCtx, s.db.Rebind(`DELETE FROM content_items WHERE kind = ?`), string(kind)); err != nil {
			return fmt.Errorf("clear items: %w", err)
		}
		return s.upsertCollection(txCtx, exec, domain.NewCollection(kind, s.now().UTC()))
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) upsertCollection(ctx context.Context, exec sqlx.ExecerContext, c *domain.Collection) error {
	var lastSynced sql.NullTime
	if !c.LastSyncedAt.IsZero() {
		lastSynced = sql.NullTime{Time: c.LastSyncedAt.UTC(), Valid: true}
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	_, err := exec.ExecContext(ctx, s.db.Rebind(`
		INSERT INTO content_collections (kind, last_synced_at, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (kind) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at,
			created_at = EXCLUDED.created_at`),
		string(c.Kind), lastSynced, createdAt.UTC())
	return err
}

func (s *Store) deleteMissing(ctx context.Context, exec sqlx.ExecerContext, kind domain.Kind, keep []string) error {
	if len(keep) == 0 {
		_, err := exec.ExecContext(ctx, s.db.Rebind(`DELETE FROM content_items WHERE kind = ?`), string(kind))
		return err
	}

	if s.driver == DriverPostgres {
		_, err := exec.ExecContext(ctx,
			`DELETE FROM content_items WHERE kind = $1 AND NOT (id = ANY($2))`,
			string(kind), pq.Array(keep))
		return err
	}

	query, args, err := sqlx.In(`DELETE FROM content_items WHERE kind = ? AND id NOT IN (?)`, string(kind), keep)
	if err != nil {
		return err
	}
	_, err = exec.ExecContext(ctx, s.db.Rebind(query), args...)
	return err
}

func toRows(c *domain.Collection) ([]itemRow, error) {
	rows := make([]itemRow, 0, len(c.Items))
	for i, item := range c.Items {
		row := itemRow{
			Kind:            string(c.Kind),
			ID:              item.ID,
			Position:        i,
			CampaignCreated: item.CampaignCreated,
			CampaignID:      item.CampaignID,
		}
		if item.CampaignCreatedAt != nil {
			row.CampaignCreatedAt = sql.NullTime{Time: item.CampaignCreatedAt.UTC(), Valid: true}
		}

		item.CampaignCreated = false
		item.CampaignID = ""
		item.CampaignCreatedAt = nil
		doc, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("encode item %s: %w", item.ID, err)
		}
		row.Doc = string(doc)
		rows = append(rows, row)
	}
	return rows, nil
}
