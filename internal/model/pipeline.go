package model

import (
	"time"

	"gorm.io/gorm/schema"
)

const (
	TableNameOpportunity = "opportunities"
	TableNameReferral    = "referrals"
)

// Opportunity mapped from table <opportunities>
type Opportunity struct {
	ID                string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConnectionID      string     `gorm:"column:connection_id;index:idx_opportunity_connection" json:"connectionId"`
	Title             string     `gorm:"column:title" json:"title"`
	Description       string     `gorm:"column:description;type:text" json:"description"`
	Status            string     `gorm:"column:status;size:20" json:"status"`
	Value             float64    `gorm:"column:value" json:"value"`
	Probability       int        `gorm:"column:probability" json:"probability"`
	ExpectedCloseDate *time.Time `gorm:"column:expected_close_date" json:"expectedCloseDate"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
}

// TableName Opportunity's table name
func (*Opportunity) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameOpportunity)
}

// Referral mapped from table <referrals>
type Referral struct {
	ID                   string    `gorm:"column:id;primaryKey;size:36" json:"id"`
	ConnectionID         string    `gorm:"column:connection_id;index:idx_referral_connection" json:"connectionId"`
	ReferredConnectionID string    `gorm:"column:referred_connection_id" json:"referredConnectionId"`
	ReferredName         string    `gorm:"column:referred_name" json:"referredName"`
	ReferredPosition     string    `gorm:"column:referred_position" json:"referredPosition"`
	ReferredCompany      string    `gorm:"column:referred_company" json:"referredCompany"`
	ReferredEmail        string    `gorm:"column:referred_email" json:"referredEmail"`
	ReferredLinkedIn     string    `gorm:"column:referred_linkedin" json:"referredLinkedIn"`
	RelationshipNotes    string    `gorm:"column:relationship_notes;type:text" json:"relationshipNotes"`
	Status               string    `gorm:"column:status;size:20;default:new" json:"status"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
}

// TableName Referral's table name
func (*Referral) TableName(namer schema.Namer) string {
	return prefixed(namer, TableNameReferral)
}
