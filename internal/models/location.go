package models

// Location - координаты точки в градусах
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
