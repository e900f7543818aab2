package domain

import "time"

// Opportunity 商机领域模型
type Opportunity struct {
	ID                string
	ConnectionID      string
	Title             string
	Description       string
	Status            string
	Value             float64
	Probability       int
	ExpectedCloseDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// OpportunityUpdate 商机部分更新参数
type OpportunityUpdate struct {
	Title             *string
	Description       *string
	Status            *string
	Value             *float64
	Probability       *int
	ExpectedCloseDate *time.Time
}

// Referral 推荐领域模型
type Referral struct {
	ID                   string
	ConnectionID         string
	ReferredConnectionID string
	ReferredName         string
	ReferredPosition     string
	ReferredCompany      string
	ReferredEmail        string
	ReferredLinkedIn     string
	RelationshipNotes    string
	Status               string
	CreatedAt            time.Time
}
