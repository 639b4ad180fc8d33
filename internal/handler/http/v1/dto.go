package v1

import "time"

// ReportIncidentRequest DTO для регистрации инцидента
// @Description DTO для регистрации инцидента
type ReportIncidentRequest struct {
	Description string  `json:"description" validate:"required,min=2,max=255"`
	Priority    string  `json:"priority" validate:"required,oneof=Critical High Medium Low"`
	Latitude    float64 `json:"latitude" validate:"required,latitude"`
	Longitude   float64 `json:"longitude" validate:"required,longitude"`
}

// IncidentResponse DTO для ответа с информацией об инциденте
// @Description DTO для ответа с информацией об инциденте
type IncidentResponse struct {
	ID                  string     `json:"id"`
	Description         string     `json:"description"`
	Priority            string     `json:"priority"`
	Status              string     `json:"status"`
	Latitude            float64    `json:"latitude"`
	Longitude           float64    `json:"longitude"`
	AssignedAmbulanceID string     `json:"assigned_ambulance_id,omitempty"`
	ETAMinutes          int        `json:"eta_minutes,omitempty"`
	ETADescription      string     `json:"eta_description,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
}

// ReportIncidentResponse DTO для ответа на регистрацию: инцидент плюс
// итог диспетчеризации. Если свободных машин не было, dispatch_error
// объясняет, почему инцидент остался в статусе Pending.
// @Description DTO для ответа на регистрацию инцидента
type ReportIncidentResponse struct {
	Incident          *IncidentResponse `json:"incident"`
	DispatchSource    string            `json:"dispatch_source,omitempty"`
	DispatchRationale string            `json:"dispatch_rationale,omitempty"`
	DispatchError     string            `json:"dispatch_error,omitempty"`
}

// AmbulanceResponse DTO для ответа с информацией о машине
// @Description DTO для ответа с информацией о машине
type AmbulanceResponse struct {
	ID                 string    `json:"id"`
	Status             string    `json:"status"`
	VehicleType        string    `json:"vehicle_type"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Capacity           int       `json:"capacity"`
	CurrentPatients    int       `json:"current_patients"`
	Destination        *Position `json:"destination,omitempty"`
	AssignedIncidentID string    `json:"assigned_incident_id,omitempty"`
}

// Position - пара координат в теле ответа
// @Description Пара координат
type Position struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HospitalResponse DTO для ответа с информацией о больнице
// @Description DTO для ответа с информацией о больнице
type HospitalResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	TotalBeds     int     `json:"total_beds"`
	AvailableBeds int     `json:"available_beds"`
}
