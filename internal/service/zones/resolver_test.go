package zones

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/db"
	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestResolve_KnownZip(t *testing.T) {
	gdb := newTestDB(t)
	resolver := &Resolver{Repo: repo.New(gdb)}

	region := models.Region{Name: "SFV", DeliveryFee: 500, MinOrder: 2000, IsActive: true}
	require.NoError(t, gdb.Create(&region).Error)
	require.NoError(t, gdb.Create(&models.ZipEntry{Zip: "91364", RegionID: region.ID, IsActive: true}).Error)

	avail, err := resolver.Resolve(context.Background(), "91364")
	require.NoError(t, err)
	require.True(t, avail.Available)
	require.Equal(t, region.ID, avail.RegionID)
	require.Equal(t, "SFV", avail.RegionName)
	require.Equal(t, int64(500), avail.DeliveryFee)
	require.Equal(t, int64(2000), avail.MinOrder)
}

func TestResolve_UnknownZip(t *testing.T) {
	gdb := newTestDB(t)
	resolver := &Resolver{Repo: repo.New(gdb)}

	avail, err := resolver.Resolve(context.Background(), "00000")
	require.NoError(t, err)
	require.False(t, avail.Available)
}

func TestResolve_InactiveZipEntry(t *testing.T) {
	gdb := newTestDB(t)
	resolver := &Resolver{Repo: repo.New(gdb)}

	region := models.Region{Name: "SFV", DeliveryFee: 500, MinOrder: 2000, IsActive: true}
	require.NoError(t, gdb.Create(&region).Error)
	require.NoError(t, gdb.Create(&models.ZipEntry{Zip: "91364", RegionID: region.ID, IsActive: false}).Error)

	avail, err := resolver.Resolve(context.Background(), "91364")
	require.NoError(t, err)
	require.False(t, avail.Available)
}

func TestResolve_InactiveRegion(t *testing.T) {
	gdb := newTestDB(t)
	resolver := &Resolver{Repo: repo.New(gdb)}

	region := models.Region{Name: "SFV", DeliveryFee: 500, MinOrder: 2000, IsActive: false}
	require.NoError(t, gdb.Create(&region).Error)
	require.NoError(t, gdb.Create(&models.ZipEntry{Zip: "91364", RegionID: region.ID, IsActive: true}).Error)

	avail, err := resolver.Resolve(context.Background(), "91364")
	require.NoError(t, err)
	require.False(t, avail.Available)
}

func TestResolve_Idempotent(t *testing.T) {
	gdb := newTestDB(t)
	resolver := &Resolver{Repo: repo.New(gdb)}

	region := models.Region{Name: "SFV", DeliveryFee: 500, MinOrder: 2000, IsActive: true}
	require.NoError(t, gdb.Create(&region).Error)
	require.NoError(t, gdb.Create(&models.ZipEntry{Zip: "91364", RegionID: region.ID, IsActive: true}).Error)

	first, err := resolver.Resolve(context.Background(), "91364")
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), "91364")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
