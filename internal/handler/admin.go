package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"github.com/pavelc4/vidgrab-bot/internal/session"
	"github.com/pavelc4/vidgrab-bot/internal/stats"
	"github.com/pavelc4/vidgrab-bot/internal/utils"
	"github.com/pavelc4/vidgrab-bot/pkg/worker"
)

type AdminHandler struct {
	msg      Messenger
	ownerID  int64
	diskPath string
	stats    *stats.Recorder
	sessions *session.MemoryStore
	pool     *worker.Pool
}

func NewAdminHandler(m Messenger, ownerID int64, diskPath string, rec *stats.Recorder, sessions *session.MemoryStore, pool *worker.Pool) *AdminHandler {
	return &AdminHandler{
		msg:      m,
		ownerID:  ownerID,
		diskPath: diskPath,
		stats:    rec,
		sessions: sessions,
		pool:     pool,
	}
}

// HandleStats replies with host and bot counters. Everyone except the
// configured owner is ignored; an unset owner disables the command.
func (h *AdminHandler) HandleStats(ctx context.Context, m Message) error {
	if h.ownerID == 0 || m.UserID != h.ownerID {
		return nil
	}

	sys := stats.GetSystemInfo(h.diskPath)
	snap := h.stats.Snapshot()

	lastDownload := "never"
	if !snap.LastDownloadTime.IsZero() {
		lastDownload = time.Since(snap.LastDownloadTime).Round(time.Second).String() + " ago"
	}

	text := fmt.Sprintf(
		"<b>System Status</b>\n\n"+
			"<b>OS Info</b>\n"+
			"├ System : <code>%s</code>\n"+
			"├ Host : <code>%s</code>\n"+
			"└ Uptime : <code>%s</code>\n\n"+
			"<b>CPU</b>\n"+
			"├ Cores : <code>%d</code>\n"+
			"├ Usage : <code>%.2f%%</code>\n"+
			"└ Load : <code>%.2f %.2f %.2f</code>\n\n"+
			"<b>Memory</b>\n"+
			"├ Used : <code>%s / %s (%.1f%%)</code>\n"+
			"└ Free : <code>%s</code>\n\n"+
			"<b>Disk</b> <code>%s</code>\n"+
			"├ Used : <code>%s / %s (%.1f%%)</code>\n"+
			"└ Free : <code>%s</code>\n\n"+
			"<b>Bot</b>\n"+
			"├ Uptime : <code>%s</code>\n"+
			"├ Workers : <code>%d</code>\n"+
			"├ Sessions : <code>%d</code>\n"+
			"├ Analyses : <code>%d (%d failed)</code>\n"+
			"├ Downloads : <code>%d ok / %d failed</code>\n"+
			"├ Video / Audio : <code>%d / %d</code>\n"+
			"├ Sent : <code>%s</code>\n"+
			"└ Last : <code>%s</code>\n\n"+
			"<b>Go Process</b>\n"+
			"├ PID : <code>%d</code>\n"+
			"├ Uptime : <code>%s</code>\n"+
			"├ CPU : <code>%.2f%%</code>\n"+
			"├ Mem : <code>%s</code>\n"+
			"├ Routines : <code>%d</code>\n"+
			"├ Heap : <code>%s</code>\n"+
			"├ GC Runs : <code>%d</code>\n"+
			"└ Go Ver : <code>%s</code>",
		sys.OS,
		sys.Hostname,
		sys.SystemUptime.Round(time.Second),
		sys.CPUCores,
		sys.CPUUsage,
		sys.Load1, sys.Load5, sys.Load15,
		utils.FormatBytes(sys.MemUsed), utils.FormatBytes(sys.MemTotal), sys.MemPercent,
		utils.FormatBytes(sys.MemAvailable),
		sys.DiskPath,
		utils.FormatBytes(sys.DiskUsed), utils.FormatBytes(sys.DiskTotal), sys.DiskPercent,
		utils.FormatBytes(sys.DiskFree),
		utils.FormatDuration(time.Since(snap.StartTime)),
		h.pool.Size(),
		h.sessions.Len(),
		snap.Analyses, snap.AnalysesFailed,
		snap.SuccessDownloads, snap.FailedDownloads,
		snap.VideoDownloads, snap.AudioDownloads,
		utils.FormatBytes(uint64(snap.TotalBytes)),
		lastDownload,
		sys.ProcessPID,
		utils.FormatDuration(sys.ProcessUptime),
		sys.ProcessCPU,
		utils.FormatBytes(sys.ProcessMem),
		sys.Goroutines,
		utils.FormatBytes(sys.HeapAlloc),
		sys.GCRuns,
		sys.GoVersion,
	)

	_, err := h.msg.SendText(ctx, m.ChatID, text, nil)
	return errors.Wrap(err, "send stats")
}
