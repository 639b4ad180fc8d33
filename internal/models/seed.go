package models

// Смещения стартовых позиций относительно центра сессии:
// ~2 км для машин и ~3 км для больниц на широте экватора.
const (
	fleetOffset    = 0.02
	hospitalOffset = 0.03
)

// GenerateFleet создает стартовый автопарк вокруг центра сессии.
// Одна машина намеренно начинает в статусе AtHospital, чтобы задействовать
// все ветки конечного автомата.
func GenerateFleet(center Location) []*Ambulance {
	return []*Ambulance{
		{ID: "AMB-001", Location: Location{Lat: center.Lat + fleetOffset, Lng: center.Lng}, Status: StatusAvailable, VehicleType: VehicleTypeALS, Capacity: 2},
		{ID: "AMB-002", Location: Location{Lat: center.Lat, Lng: center.Lng + fleetOffset}, Status: StatusAvailable, VehicleType: VehicleTypeBLS, Capacity: 1},
		{ID: "AMB-003", Location: Location{Lat: center.Lat - fleetOffset, Lng: center.Lng}, Status: StatusAtHospital, VehicleType: VehicleTypeALS, Capacity: 2},
		{ID: "AMB-004", Location: Location{Lat: center.Lat, Lng: center.Lng - fleetOffset}, Status: StatusAvailable, VehicleType: VehicleTypeBLS, Capacity: 1},
		{ID: "AMB-005", Location: Location{Lat: center.Lat + fleetOffset/2, Lng: center.Lng + fleetOffset/2}, Status: StatusAvailable, VehicleType: VehicleTypeALS, Capacity: 2},
		{ID: "AMB-006", Location: Location{Lat: center.Lat - fleetOffset/2, Lng: center.Lng - fleetOffset/2}, Status: StatusAvailable, VehicleType: VehicleTypeALS, Capacity: 2},
	}
}

// GenerateHospitals создает справочник больниц вокруг центра сессии
func GenerateHospitals(center Location) []*Hospital {
	return []*Hospital{
		{
			ID:            "H-001",
			Name:          "General Hospital",
			Location:      Location{Lat: center.Lat + hospitalOffset, Lng: center.Lng - hospitalOffset/2},
			TotalBeds:     50,
			AvailableBeds: 35,
		},
		{
			ID:            "H-002",
			Name:          "City Medical Center",
			Location:      Location{Lat: center.Lat - hospitalOffset, Lng: center.Lng + hospitalOffset/2},
			TotalBeds:     40,
			AvailableBeds: 28,
		},
	}
}
