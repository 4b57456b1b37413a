package sheets

import (
	"context"

	"mpf/adapters/backup"
	"mpf/domain/table"
	"mpf/internal"
	"mpf/internal/errors"
)

// Service obtains the raw table with the single fallback tier: one fetch
// attempt against the sheet service, backup cache on failure. A successful
// fetch overwrites the backup so the cache tracks the latest data.
type Service struct {
	client *Client
	backup *backup.Store
	log    *internal.Logger
}

// NewService creates the fetch service.
func NewService(client *Client, store *backup.Store, log *internal.Logger) *Service {
	if log == nil {
		log = internal.DefaultLogger
	}
	return &Service{client: client, backup: store, log: log}
}

// GetData fetches the latest raw table, falling back to the backup file when
// the fetch fails or returns nothing. The fetch is never retried. When both
// the fetch and the backup are unusable the missing-data condition propagates
// to the caller.
func (s *Service) GetData(ctx context.Context, cred Credential, spreadsheetID, readRange string) (*table.Raw, error) {
	raw, err := s.client.FetchRange(ctx, cred, spreadsheetID, readRange)
	if err == nil && !raw.IsEmpty() {
		if err := s.backup.Save(raw); err != nil {
			return nil, errors.Wrap(err, "persisting fetched data to backup")
		}
		s.log.Info("fetched %d rows from sheet, backup updated", raw.NumRows())
		return raw, nil
	}

	if err != nil {
		s.log.Warn("sheet fetch failed, falling back to backup: %v", err)
	} else {
		s.log.Warn("sheet fetch returned no data, falling back to backup")
	}

	cached, loadErr := s.backup.Load()
	if loadErr != nil {
		return nil, errors.Wrap(loadErr, "no sheet data and backup unusable")
	}
	s.log.Info("loaded %d rows from backup", cached.NumRows())
	return cached, nil
}
