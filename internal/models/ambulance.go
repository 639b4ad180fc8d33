package models

// AmbulanceStatus - статус машины скорой помощи
type AmbulanceStatus string

const (
	StatusAvailable  AmbulanceStatus = "Available"
	StatusEnRoute    AmbulanceStatus = "En Route"
	StatusBusy       AmbulanceStatus = "Busy"
	StatusAtHospital AmbulanceStatus = "At Hospital"
)

// VehicleType - класс оснащения машины
type VehicleType string

const (
	VehicleTypeALS VehicleType = "Advanced Life Support"
	VehicleTypeBLS VehicleType = "Basic Life Support"
)

// Ambulance представляет машину скорой помощи в автопарке
type Ambulance struct {
	ID                 string          `json:"id"`
	Location           Location        `json:"location"`
	Status             AmbulanceStatus `json:"status"`
	VehicleType        VehicleType     `json:"vehicle_type"`
	Capacity           int             `json:"capacity"`
	CurrentPatients    int             `json:"current_patients"`
	Destination        *Location       `json:"destination,omitempty"`
	AssignedIncidentID string          `json:"assigned_incident_id,omitempty"`
	RoutePath          []Location      `json:"route_path,omitempty"`
}

// Clone возвращает копию машины для read-only снапшотов
func (a *Ambulance) Clone() *Ambulance {
	c := *a
	if a.Destination != nil {
		dst := *a.Destination
		c.Destination = &dst
	}
	if a.RoutePath != nil {
		c.RoutePath = make([]Location, len(a.RoutePath))
		copy(c.RoutePath, a.RoutePath)
	}
	return &c
}
