package models

// SystemInfo — сведения о платформе и рантайме.
type SystemInfo struct {
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	GoVersion       string `json:"go_version"`
	Architecture    string `json:"architecture"`
}

// Resources — снимок загрузки CPU и памяти.
type Resources struct {
	CPUPercent      float64 `json:"cpu_percent"`
	MemoryPercent   float64 `json:"memory_percent"`
	MemoryAvailable uint64  `json:"memory_available"`
	MemoryUsed      uint64  `json:"memory_used"`
	MemoryTotal     uint64  `json:"memory_total"`
}

// Health — ответ /health в штатном режиме.
type Health struct {
	Status      string            `json:"status"`
	Timestamp   Timestamp         `json:"timestamp"`
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Environment string            `json:"environment"`
	System      SystemInfo        `json:"system"`
	Resources   Resources         `json:"resources"`
	Endpoints   map[string]string `json:"endpoints"`
}

// Unhealthy — ответ /health, когда сбор метрик не удался.
type Unhealthy struct {
	Status    string    `json:"status"`
	Error     string    `json:"error"`
	Timestamp Timestamp `json:"timestamp"`
	Service   string    `json:"service"`
}
