package stats

import "time"

type SystemInfo struct {
	OS           string
	Hostname     string
	SystemUptime time.Duration

	CPUCores int
	CPUUsage float64
	Load1    float64
	Load5    float64
	Load15   float64

	MemUsed      uint64
	MemTotal     uint64
	MemPercent   float64
	MemAvailable uint64

	DiskPath    string
	DiskUsed    uint64
	DiskTotal   uint64
	DiskPercent float64
	DiskFree    uint64

	ProcessPID    int
	ProcessUptime time.Duration
	ProcessCPU    float64
	ProcessMem    uint64

	GoVersion  string
	Goroutines int
	HeapAlloc  uint64
	GCRuns     uint32
}

// Snapshot is the in-process view of the bot counters.
type Snapshot struct {
	StartTime time.Time

	Analyses       int64
	AnalysesFailed int64

	Downloads        int64
	SuccessDownloads int64
	FailedDownloads  int64
	AudioDownloads   int64
	VideoDownloads   int64
	TotalBytes       int64

	LastDownloadTime time.Time
}
