// internal/domain/cart/sync_test.go
package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMirrorDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&CartItem{}))
	return db
}

func mirrorRows(t *testing.T, db *gorm.DB, userID uint) []CartItem {
	t.Helper()
	var items []CartItem
	require.NoError(t, db.Where("user_id = ?", userID).Order("product_id ASC").Find(&items).Error)
	return items
}

func TestSyncerApplyUpsertInsertsThenUpdates(t *testing.T) {
	db := newMirrorDB(t)
	s := &Syncer{db: db}

	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 7, ProductID: 3, Quantity: 1, Price: 85000}))
	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 7, ProductID: 3, Quantity: 4, Price: 85000}))

	items := mirrorRows(t, db, 7)
	require.Len(t, items, 1)
	assert.Equal(t, uint(3), items[0].ProductID)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, int64(85000), items[0].Price)
}

func TestSyncerApplyRemoveThenReAddStaysVisible(t *testing.T) {
	db := newMirrorDB(t)
	s := &Syncer{db: db}

	add := syncTask{Op: opUpsert, UserID: 7, ProductID: 3, Quantity: 2, Price: 85000}
	require.NoError(t, s.apply(add))
	require.NoError(t, s.apply(syncTask{Op: opDelete, UserID: 7, ProductID: 3}))
	require.Len(t, mirrorRows(t, db, 7), 0)

	// Re-adding a previously removed product must land back in the mirror;
	// a leftover tombstone on the (user_id, product_id) index would make the
	// upsert silently revive nothing.
	require.NoError(t, s.apply(add))

	items := mirrorRows(t, db, 7)
	require.Len(t, items, 1)
	assert.Equal(t, uint(3), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	var raw int64
	require.NoError(t, db.Model(&CartItem{}).Where("user_id = ?", uint(7)).Count(&raw).Error)
	assert.Equal(t, int64(1), raw)
}

func TestSyncerApplyClearThenReAddStaysVisible(t *testing.T) {
	db := newMirrorDB(t)
	s := &Syncer{db: db}

	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 7, ProductID: 3, Quantity: 1, Price: 85000}))
	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 7, ProductID: 5, Quantity: 2, Price: 92000}))
	require.NoError(t, s.apply(syncTask{Op: opClear, UserID: 7}))
	require.Len(t, mirrorRows(t, db, 7), 0)

	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 7, ProductID: 5, Quantity: 1, Price: 92000}))

	items := mirrorRows(t, db, 7)
	require.Len(t, items, 1)
	assert.Equal(t, uint(5), items[0].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestSyncerApplyClearOnlyDropsOwnRows(t *testing.T) {
	db := newMirrorDB(t)
	s := &Syncer{db: db}

	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 7, ProductID: 3, Quantity: 1, Price: 85000}))
	require.NoError(t, s.apply(syncTask{Op: opUpsert, UserID: 9, ProductID: 3, Quantity: 1, Price: 85000}))
	require.NoError(t, s.apply(syncTask{Op: opClear, UserID: 7}))

	assert.Len(t, mirrorRows(t, db, 7), 0)
	assert.Len(t, mirrorRows(t, db, 9), 1)
}
