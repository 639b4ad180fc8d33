package models

import "time"

// IncidentPriority - приоритет инцидента, упорядочен от Critical к Low
type IncidentPriority string

const (
	PriorityCritical IncidentPriority = "Critical"
	PriorityHigh     IncidentPriority = "High"
	PriorityMedium   IncidentPriority = "Medium"
	PriorityLow      IncidentPriority = "Low"
)

// IncidentStatus - статус жизненного цикла инцидента
type IncidentStatus string

const (
	IncidentPending    IncidentStatus = "Pending"
	IncidentDispatched IncidentStatus = "Dispatched"
	IncidentOnScene    IncidentStatus = "On Scene"
	IncidentResolved   IncidentStatus = "Resolved"
	IncidentArchived   IncidentStatus = "Archived"
)

// Incident представляет зарегистрированное происшествие
type Incident struct {
	ID                  string           `json:"id"`
	Location            Location         `json:"location"`
	Priority            IncidentPriority `json:"priority"`
	Description         string           `json:"description"`
	Status              IncidentStatus   `json:"status"`
	AssignedAmbulanceID string           `json:"assigned_ambulance_id,omitempty"`
	ETAMinutes          int              `json:"eta_minutes,omitempty"`
	CreatedAt           time.Time        `json:"created_at"`
	ResolvedAt          *time.Time       `json:"resolved_at,omitempty"`
}

// Clone возвращает копию инцидента
func (i *Incident) Clone() *Incident {
	c := *i
	if i.ResolvedAt != nil {
		t := *i.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
