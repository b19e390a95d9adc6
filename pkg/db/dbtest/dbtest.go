// Package dbtest opens isolated in-memory sqlite databases carrying the portal
// schema, for repository tests.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT 'standard',
  description TEXT,
  image_url TEXT,
  base_price TEXT NOT NULL,
  min_order_quantity INTEGER NOT NULL DEFAULT 1,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS product_variants (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  size TEXT NOT NULL,
  price TEXT NOT NULL,
  min_order_quantity INTEGER NOT NULL DEFAULT 1,
  is_default INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);
CREATE TABLE IF NOT EXISTS promotions (
  id TEXT PRIMARY KEY,
  product_id TEXT,
  title TEXT NOT NULL DEFAULT '',
  discount_percent TEXT NOT NULL,
  valid_until DATETIME NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME
);
CREATE TABLE IF NOT EXISTS offers (
  id TEXT PRIMARY KEY,
  code TEXT UNIQUE,
  title TEXT NOT NULL,
  description TEXT,
  discount_percent TEXT NOT NULL DEFAULT '0',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS offer_products (
  offer_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  PRIMARY KEY (offer_id, product_id)
);
CREATE TABLE IF NOT EXISTS client_products (
  id TEXT PRIMARY KEY,
  client_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  variant_id TEXT,
  custom_name TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  total_ordered INTEGER NOT NULL DEFAULT 0,
  last_order_date DATETIME,
  client_stock INTEGER,
  client_stock_updated_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS client_products_identity_key
  ON client_products (client_id, product_id, COALESCE(variant_id, ''));
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  client_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  total_ht TEXT NOT NULL,
  total_ttc TEXT NOT NULL,
  tva_rate TEXT NOT NULL DEFAULT '20',
  discount_code TEXT,
  discount_amount TEXT NOT NULL DEFAULT '0',
  status TEXT NOT NULL DEFAULT 'confirmed',
  payment_status TEXT NOT NULL DEFAULT 'pending',
  production_progress INTEGER NOT NULL DEFAULT 0,
  estimated_completion DATETIME,
  actual_completion DATETIME,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  client_product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL,
  total_price TEXT NOT NULL,
  created_at DATETIME
);
CREATE TABLE IF NOT EXISTS inventory (
  id TEXT PRIMARY KEY,
  client_product_id TEXT NOT NULL UNIQUE,
  quantity INTEGER NOT NULL DEFAULT 0,
  alert_threshold INTEGER NOT NULL DEFAULT 0,
  critical_threshold INTEGER NOT NULL DEFAULT 0,
  notes TEXT,
  last_updated DATETIME NOT NULL
);
`

// Open returns a fresh database private to the calling test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		require.NoError(t, conn.Exec(stmt).Error)
	}
	return conn
}
