package dashboard

// TimestampFormat is the ISO-8601 layout used for every timestamp the
// dashboard emits (UTC, millisecond precision).
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

type TokenUsage struct {
	Used int `json:"used"`
	Max  int `json:"max"`
}

type Session struct {
	Key    string     `json:"key"`
	Model  string     `json:"model"`
	Tokens TokenUsage `json:"tokens"`
	Cost   float64    `json:"cost"`
	Age    string     `json:"age"`
	Status string     `json:"status"`
}

// Task is one "### TASK-<id>: <title>" section of the task document.
type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
	Owner  string `json:"owner"`
	Text   string `json:"text"`
}

// SystemStatus is the decoded JSON object printed by the status command,
// keyed by subsystem name.
type SystemStatus map[string]any

// HostStats are local machine metrics. Error is set when any metric could
// not be read; the remaining fields keep whatever was collected.
type HostStats struct {
	CPUPercent     float64 `json:"cpuPercent"`
	MemUsedPercent float64 `json:"memUsedPercent"`
	Load1          float64 `json:"load1"`
	UptimeSeconds  uint64  `json:"uptimeSeconds"`
	Error          string  `json:"error,omitempty"`
}

type CostSummary struct {
	Today   float64 `json:"today"`
	Week    float64 `json:"week"`
	Month   float64 `json:"month"`
	PerTask float64 `json:"perTask"`
}

type Mode string

const (
	ModeQuiet  Mode = "quiet_hours"
	ModeFamily Mode = "family_hours"
	ModeActive Mode = "active_hours"
)

// Snapshot is one fully assembled aggregation of every source.
type Snapshot struct {
	Timestamp string       `json:"timestamp"`
	Sessions  []Session    `json:"sessions"`
	Tasks     []Task       `json:"tasks"`
	System    SystemStatus `json:"system"`
	Host      *HostStats   `json:"host,omitempty"`
	Costs     CostSummary  `json:"costs"`
	Mode      Mode         `json:"mode"`
}

// ErrorDocument is served in place of a snapshot when aggregation fails.
type ErrorDocument struct {
	Error string `json:"error"`
}
