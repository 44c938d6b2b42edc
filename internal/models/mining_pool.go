package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PoolStatus represents the operational status of a mining pool
type PoolStatus string

const (
	PoolStatusOnline   PoolStatus = "online"
	PoolStatusDegraded PoolStatus = "degraded"
	PoolStatusOffline  PoolStatus = "offline"
)

// ErrInvalidPool is returned when a pool record fails its field constraints
var ErrInvalidPool = errors.New("invalid mining pool")

// MiningPool is the persisted mining pool record
type MiningPool struct {
	ID                uint            `gorm:"primaryKey"`
	PoolID            string          `gorm:"uniqueIndex;not null;size:64"` // Stable external identifier
	Name              string          `gorm:"not null;size:100"`
	HashrateTHs       float64         `gorm:"column:hashrate_ths;not null"`
	ActiveWorkers     int             `gorm:"not null"`
	RejectRate        float64         `gorm:"not null"`
	Status            PoolStatus      `gorm:"not null;size:16;index"`
	Last24hRevenueBTC decimal.Decimal `gorm:"column:last24h_revenue_btc;type:decimal(20,8);not null"`
	UptimePercent     float64         `gorm:"not null"`
	Location          string          `gorm:"not null;size:100"`
	FeePercent        float64         `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName returns the table name for MiningPool model
func (MiningPool) TableName() string {
	return "mining_pools"
}

// BeforeCreate hook rejects malformed records before they reach the table
func (p *MiningPool) BeforeCreate(tx *gorm.DB) error {
	return p.Validate()
}

type fieldConstraint struct {
	field string
	value func(p *MiningPool) interface{}
	rule  string
}

// poolConstraints lists every persisted field with the rule it must satisfy.
var poolConstraints = []fieldConstraint{
	{"id", func(p *MiningPool) interface{} { return p.PoolID }, "required,max=64"},
	{"name", func(p *MiningPool) interface{} { return p.Name }, "required,max=100"},
	{"hashrateTHs", func(p *MiningPool) interface{} { return p.HashrateTHs }, "gte=0"},
	{"activeWorkers", func(p *MiningPool) interface{} { return p.ActiveWorkers }, "gte=0"},
	{"rejectRate", func(p *MiningPool) interface{} { return p.RejectRate }, "gte=0,lte=1"},
	{"status", func(p *MiningPool) interface{} { return string(p.Status) }, "required,oneof=online degraded offline"},
	{"last24hRevenueBTC", func(p *MiningPool) interface{} { return p.Last24hRevenueBTC.InexactFloat64() }, "gte=0"},
	{"uptimePercent", func(p *MiningPool) interface{} { return p.UptimePercent }, "gte=0,lte=100"},
	{"location", func(p *MiningPool) interface{} { return p.Location }, "required,max=100"},
	{"feePercent", func(p *MiningPool) interface{} { return p.FeePercent }, "gte=0,lte=100"},
}

var validate = validator.New()

// Validate checks the record against its field constraint table
func (p *MiningPool) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidPool)
	}
	for _, c := range poolConstraints {
		if err := validate.Var(c.value(p), c.rule); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return fmt.Errorf("%w: %s failed %q", ErrInvalidPool, c.field, verrs[0].Tag())
			}
			return fmt.Errorf("%w: %s: %v", ErrInvalidPool, c.field, err)
		}
	}
	return nil
}

// PoolSummary is the subset of pool fields shown in list views
type PoolSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	HashrateTHs   float64    `json:"hashrateTHs"`
	ActiveWorkers int        `json:"activeWorkers"`
	RejectRate    float64    `json:"rejectRate"`
	Status        PoolStatus `json:"status"`
}

// PoolDetail is the full field set shown in a single-pool view
type PoolDetail struct {
	PoolSummary
	Last24hRevenueBTC float64 `json:"last24hRevenueBTC"`
	UptimePercent     float64 `json:"uptimePercent"`
	Location          string  `json:"location"`
	FeePercent        float64 `json:"feePercent"`
}

// ToSummary projects the record to its list view shape
func (p *MiningPool) ToSummary() PoolSummary {
	return PoolSummary{
		ID:            p.PoolID,
		Name:          p.Name,
		HashrateTHs:   p.HashrateTHs,
		ActiveWorkers: p.ActiveWorkers,
		RejectRate:    p.RejectRate,
		Status:        p.Status,
	}
}

// ToDetail projects the record to its full detail shape
func (p *MiningPool) ToDetail() PoolDetail {
	return PoolDetail{
		PoolSummary:       p.ToSummary(),
		Last24hRevenueBTC: p.Last24hRevenueBTC.InexactFloat64(),
		UptimePercent:     p.UptimePercent,
		Location:          p.Location,
		FeePercent:        p.FeePercent,
	}
}
