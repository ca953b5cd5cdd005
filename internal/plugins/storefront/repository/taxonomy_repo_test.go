package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damoang/rokn-storefront/internal/plugins/storefront/domain"
)

func TestTaxonomyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTaxonomyRepository(newTestDB(t))

	for _, name := range []string{"لحوم", "بطاطس", "صوصات"} {
		added, err := repo.Add(ctx, domain.TaxonomyCategory, name)
		require.NoError(t, err)
		assert.True(t, added)
	}

	t.Run("중복/공백/전체 값은 무시", func(t *testing.T) {
		for _, name := range []string{"لحوم", "  ", domain.AllFilter} {
			added, err := repo.Add(ctx, domain.TaxonomyCategory, name)
			require.NoError(t, err)
			assert.False(t, added, name)
		}
	})

	t.Run("종류별로 분리", func(t *testing.T) {
		added, err := repo.Add(ctx, domain.TaxonomyBrand, "لحوم")
		require.NoError(t, err)
		assert.True(t, added)

		brands, err := repo.List(ctx, domain.TaxonomyBrand)
		require.NoError(t, err)
		assert.Equal(t, []string{"لحوم"}, brands)
	})

	t.Run("삭제 후 순서 유지, 재추가는 맨 뒤", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, domain.TaxonomyCategory, "لحوم"))
		require.NoError(t, repo.Remove(ctx, domain.TaxonomyCategory, "missing"))

		_, err := repo.Add(ctx, domain.TaxonomyCategory, "لحوم")
		require.NoError(t, err)

		cats, err := repo.List(ctx, domain.TaxonomyCategory)
		require.NoError(t, err)
		assert.Equal(t, []string{"بطاطس", "صوصات", "لحوم"}, cats)
	})
}
