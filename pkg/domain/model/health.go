package model

// HealthStatus is the /health response. Project is the base name of the
// served root directory.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Project string `json:"project,omitempty"`
}

// NewHealthStatus reports a healthy dirhook instance
func NewHealthStatus(version, project string) *HealthStatus {
	return &HealthStatus{
		Status:  "healthy",
		Service: "dirhook",
		Version: version,
		Project: project,
	}
}
