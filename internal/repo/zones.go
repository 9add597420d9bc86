package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/models"
)

func (r *GormRepo) GetRegion(ctx context.Context, id uint) (*models.Region, error) {
	region := models.Region{}
	if err := r.DB.WithContext(ctx).First(&region, id).Error; err != nil {
		return nil, err
	}
	return &region, nil
}

func (r *GormRepo) ListRegions(ctx context.Context) ([]models.Region, error) {
	var regions []models.Region
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&regions).Error; err != nil {
		return nil, err
	}
	return regions, nil
}

func (r *GormRepo) CreateRegion(ctx context.Context, region *models.Region) (*models.Region, error) {
	if err := r.DB.WithContext(ctx).Create(region).Error; err != nil {
		return nil, err
	}
	return region, nil
}

func (r *GormRepo) SaveRegion(ctx context.Context, region *models.Region) (*models.Region, error) {
	if err := r.DB.WithContext(ctx).Save(region).Error; err != nil {
		return nil, err
	}
	return region, nil
}

// DeleteRegion removes a region and its ZIP entries so no entry is left
// pointing at a missing region.
func (r *GormRepo) DeleteRegion(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("region_id = ?", id).Delete(&models.ZipEntry{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Region{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *GormRepo) GetZipEntry(ctx context.Context, zip string) (*models.ZipEntry, error) {
	entry := models.ZipEntry{}
	if err := r.DB.WithContext(ctx).Where("zip = ?", zip).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *GormRepo) ListZipEntries(ctx context.Context, regionID uint) ([]models.ZipEntry, error) {
	q := r.DB.WithContext(ctx).Model(&models.ZipEntry{})
	if regionID != 0 {
		q = q.Where("region_id = ?", regionID)
	}

	var entries []models.ZipEntry
	if err := q.Order("zip ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormRepo) CreateZipEntry(ctx context.Context, entry *models.ZipEntry) (*models.ZipEntry, error) {
	if err := r.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *GormRepo) DeleteZipEntry(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.ZipEntry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
