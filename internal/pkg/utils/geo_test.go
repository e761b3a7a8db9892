package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/facility-discovery/internal/domain"
)

func TestHaversineMeters(t *testing.T) {
	t.Run("zero distance to itself", func(t *testing.T) {
		p := domain.Coordinate{Lat: 35.6909, Lon: 139.7002}

		assert.Equal(t, 0.0, HaversineMeters(p, p))
	})

	t.Run("known distance Shinjuku to Shibuya", func(t *testing.T) {
		shinjuku := domain.Coordinate{Lat: 35.690921, Lon: 139.700258}
		shibuya := domain.Coordinate{Lat: 35.658034, Lon: 139.701636}

		// ~3.65 км по прямой
		got := HaversineMeters(shinjuku, shibuya)
		assert.InDelta(t, 3650, got, 50)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := domain.Coordinate{Lat: 35.6909, Lon: 139.7002}
		b := domain.Coordinate{Lat: 35.6580, Lon: 139.7016}

		assert.InDelta(t, HaversineMeters(a, b), HaversineMeters(b, a), 0.0001)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(35.6909, 139.7002))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.False(t, ValidateCoordinates(90.1, 139.7))
	assert.False(t, ValidateCoordinates(35.7, 180.1))
	assert.False(t, ValidateCoordinates(-95, 0))
}

func TestValidateRadiusMeters(t *testing.T) {
	assert.True(t, ValidateRadiusMeters(50))
	assert.True(t, ValidateRadiusMeters(800))
	assert.True(t, ValidateRadiusMeters(5000))
	assert.False(t, ValidateRadiusMeters(49))
	assert.False(t, ValidateRadiusMeters(5001))
	assert.False(t, ValidateRadiusMeters(0))
	assert.False(t, ValidateRadiusMeters(-100))
}
