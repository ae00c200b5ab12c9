package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"progression-service/services"
	"progression-service/utils"

	log "github.com/sirupsen/logrus"
)

// SnapshotArchiver drains the facade's dirty-user set on an interval and
// exports each changed user's full progression snapshot to the archive
// bucket. Failures are logged and retried implicitly on the next interval
// (the user is re-marked dirty on their next state change anyway).
type SnapshotArchiver struct {
	Facade  *services.ProgressionFacade
	Archive *utils.ArchiveClient
}

// NewSnapshotArchiver wires the worker.
func NewSnapshotArchiver(facade *services.ProgressionFacade, archive *utils.ArchiveClient) *SnapshotArchiver {
	return &SnapshotArchiver{Facade: facade, Archive: archive}
}

// Run loops until ctx is cancelled, exporting dirty users every interval.
func (w *SnapshotArchiver) Run(ctx context.Context, interval time.Duration) {
	log.WithField("interval", interval).Info("snapshot archiver started")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("snapshot archiver stopped")
			return
		case <-ticker.C:
			w.exportDirty(ctx)
		}
	}
}

func (w *SnapshotArchiver) exportDirty(ctx context.Context) {
	users := w.Facade.DrainDirty()
	if len(users) == 0 {
		return
	}

	exported := 0
	for _, userID := range users {
		snapshot, err := w.Facade.Snapshot(userID)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("failed to build snapshot")
			continue
		}
		if len(snapshot) == 0 {
			continue
		}
		data, err := json.Marshal(snapshot)
		if err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("failed to marshal snapshot")
			continue
		}

		key := fmt.Sprintf("progression/%s/%s.json", userID, time.Now().UTC().Format("2006-01-02T15-04-05"))
		if err := w.Archive.Upload(ctx, key, data); err != nil {
			log.WithError(err).WithField("user_id", userID).Warn("failed to upload snapshot")
			continue
		}
		exported++
	}

	if exported > 0 {
		log.WithField("count", exported).Debug("snapshots archived")
	}
}
