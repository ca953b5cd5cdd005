package migration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestRunAndSeed(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Run(db))
	// 두 번 실행해도 안전
	require.NoError(t, Run(db))

	n, err := Seed(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, len(domain.SeedProducts()), n)

	// 비어 있지 않으면 건너뜀
	n, err = Seed(context.Background(), db)
	require.NoError(t, err)
	assert.Zero(t, n)

	counts, err := Counts(db)
	require.NoError(t, err)
	assert.Equal(t, int64(len(domain.SeedProducts())), counts["storefront_products"])
	assert.Positive(t, counts["storefront_taxonomy"])
	assert.Zero(t, counts["storefront_kv"])
}

func TestVerify(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Run(db))
	_, err := Seed(context.Background(), db)
	require.NoError(t, err)

	issues, err := Verify(db)
	require.NoError(t, err)
	assert.Empty(t, issues)

	// 보조 단위가 기본 단위와 같은 행은 문제로 보고
	require.NoError(t, db.Model(&domain.Product{}).Where("id = ?", "1").
		Update("secondary_unit", "كيس").Error)

	issues, err = Verify(db)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0], "product 1")
}

func TestRollback(t *testing.T) {
	db := openDB(t)
	require.NoError(t, Run(db))
	require.NoError(t, Rollback(db))

	assert.False(t, db.Migrator().HasTable(&domain.Product{}))
	assert.False(t, db.Migrator().HasTable(&domain.TaxonomyEntry{}))
}
