// Package geocache provides a Postgres-backed cache for reverse-geocode
// results. Tracking views resolve the same event coordinates over and over;
// caching the place names keeps repeated lookups off the paid geocoding API.
package geocache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courier/internal/core/domain/model/kernel"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyPrecision is the number of coordinate decimals kept in the cache key.
// Four decimals is roughly an 11 meter grid, well below the accuracy of the
// location pings feeding the timeline.
const keyPrecision = "%.4f,%.4f"

// GeocodeCacheDTO is one cached coordinate-to-place-name mapping.
type GeocodeCacheDTO struct {
	Key       string `gorm:"primaryKey;size:64"`
	PlaceName string
	UpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for cached geocode results.
func (GeocodeCacheDTO) TableName() string {
	return "geocode_cache"
}

// GormGeocodeCache stores reverse-geocode results keyed by rounded coordinates.
type GormGeocodeCache struct {
	db *gorm.DB
}

// NewGormGeocodeCache creates a geocode cache over the given connection.
func NewGormGeocodeCache(db *gorm.DB) *GormGeocodeCache {
	return &GormGeocodeCache{db: db}
}

func cacheKey(point kernel.GeoPoint) string {
	return fmt.Sprintf(keyPrecision, point.Lat(), point.Lng())
}

// Get returns the cached place name for the point, if present.
func (c *GormGeocodeCache) Get(ctx context.Context, point kernel.GeoPoint) (string, bool, error) {
	var dto GeocodeCacheDTO
	err := c.db.WithContext(ctx).First(&dto, "key = ?", cacheKey(point)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return dto.PlaceName, true, nil
}

// Put stores or refreshes the place name for the point.
func (c *GormGeocodeCache) Put(ctx context.Context, point kernel.GeoPoint, placeName string) error {
	dto := GeocodeCacheDTO{
		Key:       cacheKey(point),
		PlaceName: placeName,
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"place_name", "updated_at"}),
		}).
		Create(&dto).Error
}

// Prune deletes entries older than the given age and reports how many rows
// were removed. Called by the maintenance job.
func (c *GormGeocodeCache) Prune(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge)
	result := c.db.WithContext(ctx).
		Where("updated_at < ?", cutoff).
		Delete(&GeocodeCacheDTO{})
	return result.RowsAffected, result.Error
}
