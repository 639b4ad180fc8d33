package analytics

import (
	"math"
	"sort"

	"github.com/kvolkov/ambulance_dispatch/internal/models"
)

// Размер ячейки сетки горячих точек в градусах (~5.5 км на экваторе)
const gridSize = 0.05

// Metrics - агрегированные показатели, пересчитываемые по требованию
// из полного списка инцидентов и машин. Без инкрементального состояния.
type Metrics struct {
	TotalIncidents          int                         `json:"total_incidents"`
	ResolvedIncidents       int                         `json:"resolved_incidents"`
	AverageResponseTime     float64                     `json:"average_response_time"`
	IncidentResolutionRate  float64                     `json:"incident_resolution_rate"`
	DispatchEfficiency      float64                     `json:"dispatch_efficiency"`
	AverageIncidentDuration float64                     `json:"average_incident_duration"`
	ByAmbulance             map[string]AmbulanceMetrics `json:"by_ambulance"`
	PeakHours               []PeakHour                  `json:"peak_hours"`
	Heatmap                 []HeatmapCell               `json:"heatmap"`
}

// AmbulanceMetrics - показатели одной машины
type AmbulanceMetrics struct {
	AmbulanceID         string  `json:"ambulance_id"`
	TotalDispatches     int     `json:"total_dispatches"`
	AverageResponseTime float64 `json:"average_response_time"`
	IncidentsResolved   int     `json:"incidents_resolved"`
	UtilizationRate     float64 `json:"utilization_rate"`
}

// PeakHour - корзина инцидентов по часу суток (0-23, локальное время)
type PeakHour struct {
	Hour                int     `json:"hour"`
	IncidentCount       int     `json:"incident_count"`
	AverageResponseTime float64 `json:"average_response_time"`
}

// HeatmapCell - ячейка сетки плотности инцидентов, интенсивность
// нормирована по максимальной ячейке и лежит в [0,1]
type HeatmapCell struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
}

// RankingEntry - позиция машины в рейтинге эффективности
type RankingEntry struct {
	AmbulanceID string  `json:"ambulance_id"`
	Score       float64 `json:"score"`
}

func isClosed(i *models.Incident) bool {
	return i.Status == models.IncidentResolved || i.Status == models.IncidentArchived
}

// Calculate пересчитывает все показатели с нуля
func Calculate(ambulances []*models.Ambulance, incidents []*models.Incident) *Metrics {
	total := len(incidents)

	resolved := 0
	dispatched := 0
	etaSum := 0.0
	etaCount := 0
	durationSum := 0.0
	durationCount := 0
	for _, inc := range incidents {
		if isClosed(inc) {
			resolved++
			if inc.ResolvedAt != nil {
				durationSum += inc.ResolvedAt.Sub(inc.CreatedAt).Minutes()
				durationCount++
			}
		}
		if inc.AssignedAmbulanceID != "" {
			dispatched++
		}
		if inc.ETAMinutes > 0 {
			etaSum += float64(inc.ETAMinutes)
			etaCount++
		}
	}

	m := &Metrics{
		TotalIncidents:    total,
		ResolvedIncidents: resolved,
		ByAmbulance:       make(map[string]AmbulanceMetrics, len(ambulances)),
	}
	if etaCount > 0 {
		m.AverageResponseTime = etaSum / float64(etaCount)
	}
	if total > 0 {
		m.IncidentResolutionRate = float64(resolved) / float64(total) * 100
		m.DispatchEfficiency = float64(dispatched) / float64(total) * 100
	}
	if durationCount > 0 {
		m.AverageIncidentDuration = durationSum / float64(durationCount)
	}

	for _, amb := range ambulances {
		am := AmbulanceMetrics{AmbulanceID: amb.ID}
		ambETASum := 0.0
		ambETACount := 0
		for _, inc := range incidents {
			if inc.AssignedAmbulanceID != amb.ID {
				continue
			}
			am.TotalDispatches++
			if isClosed(inc) {
				am.IncidentsResolved++
			}
			if inc.ETAMinutes > 0 {
				ambETASum += float64(inc.ETAMinutes)
				ambETACount++
			}
		}
		if ambETACount > 0 {
			am.AverageResponseTime = ambETASum / float64(ambETACount)
		}
		if total > 0 {
			am.UtilizationRate = float64(am.TotalDispatches) / float64(total) * 100
		}
		m.ByAmbulance[amb.ID] = am
	}

	m.PeakHours = peakHours(incidents)
	m.Heatmap = heatmap(incidents)
	return m
}

// peakHours раскладывает инциденты по часу регистрации, все 24 корзины
func peakHours(incidents []*models.Incident) []PeakHour {
	type bucket struct {
		count    int
		etaSum   float64
		etaCount int
	}
	hourly := make(map[int]*bucket)
	for _, inc := range incidents {
		hour := inc.CreatedAt.Hour()
		b, ok := hourly[hour]
		if !ok {
			b = &bucket{}
			hourly[hour] = b
		}
		b.count++
		if inc.ETAMinutes > 0 {
			b.etaSum += float64(inc.ETAMinutes)
			b.etaCount++
		}
	}

	hours := make([]PeakHour, 0, 24)
	for hour := 0; hour < 24; hour++ {
		ph := PeakHour{Hour: hour}
		if b, ok := hourly[hour]; ok {
			ph.IncidentCount = b.count
			if b.etaCount > 0 {
				ph.AverageResponseTime = b.etaSum / float64(b.etaCount)
			}
		}
		hours = append(hours, ph)
	}
	return hours
}

// heatmap раскладывает инциденты по ячейкам фиксированной сетки,
// интенсивность нормируется по самой загруженной ячейке
func heatmap(incidents []*models.Incident) []HeatmapCell {
	if len(incidents) == 0 {
		return []HeatmapCell{}
	}

	type cellKey struct {
		lat, lng float64
	}
	grid := make(map[cellKey]int)
	var keys []cellKey
	for _, inc := range incidents {
		key := cellKey{
			lat: math.Floor(inc.Location.Lat/gridSize) * gridSize,
			lng: math.Floor(inc.Location.Lng/gridSize) * gridSize,
		}
		if _, seen := grid[key]; !seen {
			keys = append(keys, key)
		}
		grid[key]++
	}

	maxCount := 0
	for _, count := range grid {
		if count > maxCount {
			maxCount = count
		}
	}

	cells := make([]HeatmapCell, 0, len(keys))
	for _, key := range keys {
		cells = append(cells, HeatmapCell{
			Lat:       key.lat + gridSize/2,
			Lng:       key.lng + gridSize/2,
			Intensity: float64(grid[key]) / float64(maxCount),
		})
	}
	return cells
}

// Ranking возвращает машины по убыванию интегрального балла:
// 50% доля разрешенных, 30% скорость реакции, 20% загрузка
func Ranking(m *Metrics) []RankingEntry {
	ids := make([]string, 0, len(m.ByAmbulance))
	for id := range m.ByAmbulance {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ranking := make([]RankingEntry, 0, len(ids))
	for _, id := range ids {
		am := m.ByAmbulance[id]
		score := float64(am.IncidentsResolved)/math.Max(1, float64(am.TotalDispatches))*50 +
			math.Max(0, (10-am.AverageResponseTime)/10)*30 +
			am.UtilizationRate/100*20
		ranking = append(ranking, RankingEntry{AmbulanceID: id, Score: score})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}

// PeakIncidentHours возвращает топ-5 часов по числу инцидентов
func PeakIncidentHours(hours []PeakHour) []PeakHour {
	top := make([]PeakHour, len(hours))
	copy(top, hours)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].IncidentCount > top[j].IncidentCount
	})
	if len(top) > 5 {
		top = top[:5]
	}
	return top
}

// HighRiskZones возвращает ячейки с интенсивностью выше 0.5 по убыванию
func HighRiskZones(cells []HeatmapCell) []HeatmapCell {
	zones := make([]HeatmapCell, 0)
	for _, c := range cells {
		if c.Intensity > 0.5 {
			zones = append(zones, c)
		}
	}
	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].Intensity > zones[j].Intensity
	})
	return zones
}
