package models

import "time"

// SignalState - цвет светофора
type SignalState string

const (
	SignalGreen  SignalState = "GREEN"
	SignalYellow SignalState = "YELLOW"
	SignalRed    SignalState = "RED"
)

type TrafficSignal struct {
	SignalID       string      `json:"signal_id"`
	Location       string      `json:"location"`
	Lat            float64     `json:"lat"`
	Lng            float64     `json:"lng"`
	CurrentState   SignalState `json:"current_state"`
	TrafficDensity int         `json:"traffic_density"`
	LastUpdated    time.Time   `json:"last_updated"`
}

// SimulationResult - итог симуляции трафика на одном светофоре
type SimulationResult struct {
	SignalID string      `json:"signal_id"`
	NewState SignalState `json:"new_state"`
	Density  int         `json:"density"`
}
