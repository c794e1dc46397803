// Package filesource implements the message-source interface over a local
// directory of alert text files, one file per alert, grouped per account
// scope: <root>/<scope>/*.txt. It keeps the CLI runnable without email
// provider credentials.
package filesource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"paisa/alert-ingest/internal/dateutils"
	"paisa/alert-ingest/internal/ingest"
	"paisa/alert-ingest/internal/logging"
)

// Source reads alert messages from a directory tree.
type Source struct {
	root string
	log  logging.Logger
}

// New creates a file-backed message source rooted at dir.
func New(root string, logger logging.Logger) *Source {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Source{root: root, log: logger}
}

// ListRecentAlerts returns up to maxResults alert messages for the scope, no
// older than daysBack days, oldest first. The received time of a message is
// the date prefix of its filename ("2026-01-12_...") when present, otherwise
// the file modification time.
func (s *Source) ListRecentAlerts(ctx context.Context, scope string, maxResults, daysBack int) ([]ingest.Message, error) {
	dir := filepath.Join(s.root, scope)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading alert directory %s: %w", dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -daysBack)
	var messages []ingest.Message
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		receivedAt, ok := dateutils.DateFromFilename(entry.Name())
		if !ok {
			info, err := entry.Info()
			if err != nil {
				s.log.WithError(err).WithField("file", entry.Name()).Warn("Skipping unreadable alert file")
				continue
			}
			receivedAt = info.ModTime()
		}
		if daysBack > 0 && receivedAt.Before(cutoff) {
			continue
		}

		body, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			s.log.WithError(err).WithField("file", entry.Name()).Warn("Skipping unreadable alert file")
			continue
		}

		messages = append(messages, ingest.Message{
			ID:         scope + "/" + entry.Name(),
			Body:       strings.TrimSpace(string(body)),
			ReceivedAt: receivedAt,
		})
	}

	sort.Slice(messages, func(i, j int) bool {
		if messages[i].ReceivedAt.Equal(messages[j].ReceivedAt) {
			return messages[i].ID < messages[j].ID
		}
		return messages[i].ReceivedAt.Before(messages[j].ReceivedAt)
	})
	if maxResults > 0 && len(messages) > maxResults {
		messages = messages[:maxResults]
	}
	return messages, nil
}
