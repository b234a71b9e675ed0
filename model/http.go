package model

type ErrorResponse struct {
	Error string `json:"detail"`
}

// TrailOverview is the /inspect response: geometry plus the sampling the
// current configuration would produce.
type TrailOverview struct {
	Name                string  `json:"name,omitempty"`
	NumPoints           int     `json:"num_points"`
	TotalDistanceMeters float64 `json:"total_distance_m"`
	MinElevation        float64 `json:"min_elevation_m"`
	MaxElevation        float64 `json:"max_elevation_m"`
	StepMeters          float64 `json:"step_m"`
	ProjectedEvents     int     `json:"projected_events"`
}
