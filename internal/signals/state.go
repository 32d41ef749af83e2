// Package signals содержит правила переключения светофоров и набор
// демонстрационных перекрестков.
package signals

import "github.com/shenikar/traffic_advisory_system/internal/models"

const (
	// EmergencyDensityThreshold - светофоры с плотностью выше порога
	// переключаются в GREEN при инциденте высокой серьезности
	EmergencyDensityThreshold = 70

	redDensity    = 80
	yellowDensity = 50
)

// Classify возвращает цвет светофора по плотности трафика.
// Плотность не валидируется: отрицательные и >100 значения проходят те же сравнения.
func Classify(density int, emergencyDetected bool) models.SignalState {
	switch {
	case emergencyDetected:
		// приоритет спецтранспорта
		return models.SignalGreen
	case density > redDensity:
		return models.SignalRed
	case density > yellowDensity:
		return models.SignalYellow
	default:
		return models.SignalGreen
	}
}

// Seeds возвращает фиксированный набор светофоров для инициализации
func Seeds() []*models.TrafficSignal {
	return []*models.TrafficSignal{
		{SignalID: "MG_ROAD", Location: "MG Road Junction", Lat: 12.9716, Lng: 77.5946, CurrentState: models.SignalGreen, TrafficDensity: 45},
		{SignalID: "HOSUR_ROAD", Location: "Hosur Road Signal", Lat: 12.9352, Lng: 77.6245, CurrentState: models.SignalGreen, TrafficDensity: 55},
		{SignalID: "OUTER_RING", Location: "Outer Ring Road", Lat: 12.9899, Lng: 77.7156, CurrentState: models.SignalGreen, TrafficDensity: 30},
		{SignalID: "HEBBAL", Location: "Hebbal Flyover", Lat: 13.0359, Lng: 77.5971, CurrentState: models.SignalGreen, TrafficDensity: 68},
		{SignalID: "SILK_BOARD", Location: "Silk Board Junction", Lat: 12.9165, Lng: 77.6223, CurrentState: models.SignalRed, TrafficDensity: 85},
	}
}
