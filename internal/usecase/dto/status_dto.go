package dto

import "github.com/archive-alert/internal/domain"

// HealthResponse - ответ проверки здоровья
type HealthResponse struct {
	Status       string `json:"status"`
	StoreBackend string `json:"store_backend"`
	Uptime       string `json:"uptime"`
}

// StatusResponse - состояние планировщика и последний цикл
type StatusResponse struct {
	AOIFile         string              `json:"aoi_file"`
	IntervalMinutes float64             `json:"interval_minutes"`
	LastCycle       *domain.CycleResult `json:"last_cycle,omitempty"`
}

// CountersResponse - снимок хранилища счётчиков
type CountersResponse struct {
	Counters map[string]int `json:"counters"`
	Total    int            `json:"total"`
}

// CounterResponse - счётчик одной AOI
type CounterResponse struct {
	AOI        string `json:"aoi"`
	SceneCount int    `json:"scene_count"`
}
