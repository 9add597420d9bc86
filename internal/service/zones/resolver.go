package zones

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/models"
	"github.com/greenmile/leafdrop/internal/repo"
)

// Availability is the delivery verdict for one ZIP code.
type Availability struct {
	Available   bool   `json:"available"`
	RegionID    uint   `json:"region_id,omitempty"`
	RegionName  string `json:"region_name,omitempty"`
	DeliveryFee int64  `json:"delivery_fee,omitempty"`
	MinOrder    int64  `json:"min_order,omitempty"`
}

type Resolver struct {
	Repo *repo.GormRepo
}

// Resolve answers the advisory storefront check. It is a pure lookup;
// the order engine re-runs the same resolution inside its transaction.
func (s *Resolver) Resolve(ctx context.Context, zip string) (Availability, error) {
	return ResolveTx(s.Repo.DB.WithContext(ctx), zip)
}

// ResolveTx resolves a ZIP on the given gorm handle, so the order
// engine can call it on its own transaction.
func ResolveTx(tx *gorm.DB, zip string) (Availability, error) {
	var entry models.ZipEntry
	if err := tx.Where("zip = ?", zip).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Availability{}, nil
		}
		return Availability{}, err
	}
	if !entry.IsActive {
		return Availability{}, nil
	}

	var region models.Region
	if err := tx.First(&region, entry.RegionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Availability{}, nil
		}
		return Availability{}, err
	}
	if !region.IsActive {
		return Availability{}, nil
	}

	return Availability{
		Available:   true,
		RegionID:    region.ID,
		RegionName:  region.Name,
		DeliveryFee: region.DeliveryFee,
		MinOrder:    region.MinOrder,
	}, nil
}
