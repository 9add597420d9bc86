package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/greenmile/leafdrop/internal/models"
)

func (r *GormRepo) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	customer := models.Customer{}
	if err := r.DB.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *GormRepo) ListCustomers(ctx context.Context, offset, limit int) (int64, []models.Customer, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Customer{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var customers []models.Customer
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return 0, nil, err
	}
	return total, customers, nil
}

func (r *GormRepo) SaveCustomer(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.DB.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *GormRepo) ListDrivers(ctx context.Context) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *GormRepo) CreateDriver(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	if err := r.DB.WithContext(ctx).Create(driver).Error; err != nil {
		return nil, err
	}
	return driver, nil
}

func (r *GormRepo) SaveDriver(ctx context.Context, driver *models.Driver) (*models.Driver, error) {
	if err := r.DB.WithContext(ctx).Save(driver).Error; err != nil {
		return nil, err
	}
	return driver, nil
}

func (r *GormRepo) GetDriver(ctx context.Context, id uint) (*models.Driver, error) {
	driver := models.Driver{}
	if err := r.DB.WithContext(ctx).First(&driver, id).Error; err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *GormRepo) ListRewards(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	if err := r.DB.WithContext(ctx).Order("points_cost ASC").Find(&rewards).Error; err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *GormRepo) CreateReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if err := r.DB.WithContext(ctx).Create(reward).Error; err != nil {
		return nil, err
	}
	return reward, nil
}

func (r *GormRepo) SaveReward(ctx context.Context, reward *models.Reward) (*models.Reward, error) {
	if err := r.DB.WithContext(ctx).Save(reward).Error; err != nil {
		return nil, err
	}
	return reward, nil
}

func (r *GormRepo) DeleteReward(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Reward{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
