package miningpool

import (
	"github.com/robsahakyan/mining-pools/internal/models"
	"github.com/shopspring/decimal"
)

// SeedPools returns the example pools inserted into an empty store.
// A fresh slice is built on every call so callers may hand it to gorm,
// which writes primary keys back into the records.
func SeedPools() []*models.MiningPool {
	return []*models.MiningPool{
		{
			PoolID:            "pool-1",
			Name:              "US East Pool",
			HashrateTHs:       830.5,
			ActiveWorkers:     1240,
			RejectRate:        0.012,
			Status:            models.PoolStatusOnline,
			Last24hRevenueBTC: decimal.RequireFromString("0.035"),
			UptimePercent:     99.82,
			Location:          "Ashburn, VA",
			FeePercent:        1.0,
		},
		{
			PoolID:            "pool-2",
			Name:              "EU Central Pool",
			HashrateTHs:       460.3,
			ActiveWorkers:     876,
			RejectRate:        0.045,
			Status:            models.PoolStatusDegraded,
			Last24hRevenueBTC: decimal.RequireFromString("0.022"),
			UptimePercent:     97.45,
			Location:          "Frankfurt, Germany",
			FeePercent:        1.5,
		},
		{
			PoolID:            "pool-3",
			Name:              "Asia Pacific Pool",
			HashrateTHs:       1234.7,
			ActiveWorkers:     1890,
			RejectRate:        0.008,
			Status:            models.PoolStatusOnline,
			Last24hRevenueBTC: decimal.RequireFromString("0.058"),
			UptimePercent:     99.95,
			Location:          "Singapore",
			FeePercent:        0.75,
		},
		{
			PoolID:            "pool-4",
			Name:              "Canada West Pool",
			HashrateTHs:       210.8,
			ActiveWorkers:     345,
			RejectRate:        0.098,
			Status:            models.PoolStatusOffline,
			Last24hRevenueBTC: decimal.Zero,
			UptimePercent:     15.23,
			Location:          "Vancouver, BC",
			FeePercent:        2.0,
		},
		{
			PoolID:            "pool-5",
			Name:              "Nordic Pool",
			HashrateTHs:       678.9,
			ActiveWorkers:     1156,
			RejectRate:        0.023,
			Status:            models.PoolStatusOnline,
			Last24hRevenueBTC: decimal.RequireFromString("0.031"),
			UptimePercent:     98.76,
			Location:          "Stockholm, Sweden",
			FeePercent:        1.25,
		},
	}
}
