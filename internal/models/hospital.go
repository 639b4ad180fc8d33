package models

// Hospital - статичные справочные данные о больнице на время сессии
type Hospital struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      Location `json:"location"`
	TotalBeds     int      `json:"total_beds"`
	AvailableBeds int      `json:"available_beds"`
}
