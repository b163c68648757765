package health

import (
	"os"
	"path/filepath"
	"time"
)

// Status is the health probe payload.
type Status struct {
	Status    string    `json:"status"`
	Store     string    `json:"store"`
	CheckedAt time.Time `json:"checked_at"`
}

// HealthChecker verifies the record store directory is usable. There is no
// database here; the JSON record logs are the only persistence dependency.
type HealthChecker struct {
	dataDir string
}

func NewHealthChecker(dataDir string) *HealthChecker {
	return &HealthChecker{dataDir: dataDir}
}

// CheckBasic probes that the data directory exists (or can be created) and
// is writable.
func (c *HealthChecker) CheckBasic() Status {
	s := Status{Status: "healthy", Store: "ok", CheckedAt: time.Now()}

	if err := os.MkdirAll(c.dataDir, 0755); err != nil {
		s.Status = "unhealthy"
		s.Store = "data dir unavailable: " + err.Error()
		return s
	}

	probe := filepath.Join(c.dataDir, ".health")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		s.Status = "unhealthy"
		s.Store = "data dir not writable: " + err.Error()
		return s
	}
	os.Remove(probe)
	return s
}
