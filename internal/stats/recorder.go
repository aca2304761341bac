package stats

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK       = "ok"
	OutcomeFailed   = "failed"
	OutcomeExpired  = "expired"
	OutcomeTooLarge = "too_large"
	OutcomeMissing  = "missing"
)

// Recorder counts analyses and downloads for /stats and /metrics.
type Recorder struct {
	analyses  *prometheus.CounterVec
	downloads *prometheus.CounterVec
	bytes     prometheus.Counter

	mu   sync.Mutex
	snap Snapshot
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		analyses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidgrab",
			Name:      "analyses_total",
			Help:      "Links analyzed, by outcome.",
		}, []string{"outcome"}),
		downloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vidgrab",
			Name:      "downloads_total",
			Help:      "Download attempts, by media kind and outcome.",
		}, []string{"kind", "outcome"}),
		bytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: "vidgrab",
			Name:      "uploaded_bytes_total",
			Help:      "Bytes uploaded back to chats.",
		}),
		snap: Snapshot{StartTime: time.Now()},
	}
}

func (r *Recorder) RecordAnalysis(ok bool) {
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeFailed
	}
	r.analyses.WithLabelValues(outcome).Inc()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Analyses++
	if !ok {
		r.snap.AnalysesFailed++
	}
}

// RecordDownload tracks one download attempt. kind is "audio" or "video".
func (r *Recorder) RecordDownload(kind, outcome string, bytes int64) {
	r.downloads.WithLabelValues(kind, outcome).Inc()
	if outcome == OutcomeOK && bytes > 0 {
		r.bytes.Add(float64(bytes))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.snap.Downloads++
	r.snap.LastDownloadTime = time.Now()
	if outcome != OutcomeOK {
		r.snap.FailedDownloads++
		return
	}
	r.snap.SuccessDownloads++
	r.snap.TotalBytes += bytes
	switch kind {
	case "audio":
		r.snap.AudioDownloads++
	case "video":
		r.snap.VideoDownloads++
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}
