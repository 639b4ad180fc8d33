package v1

import (
	"github.com/kvolkov/ambulance_dispatch/internal/geo"
	"github.com/kvolkov/ambulance_dispatch/internal/models"
	"github.com/kvolkov/ambulance_dispatch/internal/service"
)

// ModelToIncidentResponse преобразует доменную модель в DTO для ответа
func ModelToIncidentResponse(model *models.Incident) *IncidentResponse {
	resp := &IncidentResponse{
		ID:                  model.ID,
		Description:         model.Description,
		Priority:            string(model.Priority),
		Status:              string(model.Status),
		Latitude:            model.Location.Lat,
		Longitude:           model.Location.Lng,
		AssignedAmbulanceID: model.AssignedAmbulanceID,
		ETAMinutes:          model.ETAMinutes,
		CreatedAt:           model.CreatedAt,
		ResolvedAt:          model.ResolvedAt,
	}
	if model.ETAMinutes > 0 {
		resp.ETADescription = geo.ETADescription(model.ETAMinutes)
	}
	return resp
}

// ModelsToIncidentResponses преобразует слайс моделей в слайс DTO
func ModelsToIncidentResponses(models []*models.Incident) []*IncidentResponse {
	responses := make([]*IncidentResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToIncidentResponse(model)
	}
	return responses
}

// ReportResultToResponse преобразует итог регистрации в DTO для ответа
func ReportResultToResponse(result *service.ReportResult) *ReportIncidentResponse {
	resp := &ReportIncidentResponse{
		Incident: ModelToIncidentResponse(result.Incident),
	}
	if result.Selection != nil {
		resp.DispatchSource = string(result.Selection.Source)
		resp.DispatchRationale = result.Selection.Rationale
	}
	return resp
}

// ModelToAmbulanceResponse преобразует доменную модель в DTO для ответа
func ModelToAmbulanceResponse(model *models.Ambulance) *AmbulanceResponse {
	resp := &AmbulanceResponse{
		ID:                 model.ID,
		Status:             string(model.Status),
		VehicleType:        string(model.VehicleType),
		Latitude:           model.Location.Lat,
		Longitude:          model.Location.Lng,
		Capacity:           model.Capacity,
		CurrentPatients:    model.CurrentPatients,
		AssignedIncidentID: model.AssignedIncidentID,
	}
	if model.Destination != nil {
		resp.Destination = &Position{
			Latitude:  model.Destination.Lat,
			Longitude: model.Destination.Lng,
		}
	}
	return resp
}

// ModelsToAmbulanceResponses преобразует слайс моделей в слайс DTO
func ModelsToAmbulanceResponses(models []*models.Ambulance) []*AmbulanceResponse {
	responses := make([]*AmbulanceResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToAmbulanceResponse(model)
	}
	return responses
}

// ModelsToHospitalResponses преобразует слайс моделей в слайс DTO
func ModelsToHospitalResponses(models []*models.Hospital) []*HospitalResponse {
	responses := make([]*HospitalResponse, len(models))
	for i, model := range models {
		responses[i] = &HospitalResponse{
			ID:            model.ID,
			Name:          model.Name,
			Latitude:      model.Location.Lat,
			Longitude:     model.Location.Lng,
			TotalBeds:     model.TotalBeds,
			AvailableBeds: model.AvailableBeds,
		}
	}
	return responses
}
