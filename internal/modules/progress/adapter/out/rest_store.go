package out

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fitterm/internal/modules/progress/domain"
	progressout "fitterm/internal/modules/progress/port/out"
	"fitterm/internal/platform/httpx"
)

// RESTStore talks to the server's /progress resource.
type RESTStore struct {
	client *httpx.Client
}

func NewRESTStore(client *httpx.Client) progressout.Store {
	return &RESTStore{client: client}
}

func (s *RESTStore) Week(ctx context.Context, from, to time.Time) ([]domain.Entry, error) {
	query := url.Values{}
	query.Set("startDate", from.Format(time.RFC3339))
	query.Set("endDate", to.Format(time.RFC3339))

	var entries []domain.Entry
	if err := s.client.Get(ctx, "/progress", query, &entries); err != nil {
		return nil, fmt.Errorf("load week: %w", err)
	}
	return entries, nil
}

func (s *RESTStore) SaveDay(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	var saved domain.Entry
	if err := s.client.Post(ctx, "/progress", entry, &saved); err != nil {
		return domain.Entry{}, fmt.Errorf("save day: %w", err)
	}
	return saved, nil
}

func (s *RESTStore) ToggleCompletion(ctx context.Context, dayKey string, kind domain.ItemKind, index int) (domain.Entry, error) {
	body := struct {
		Date  string `json:"date"`
		Type  string `json:"type"`
		Index int    `json:"index"`
	}{Date: dayKey, Type: string(kind), Index: index}

	var updated domain.Entry
	if err := s.client.Post(ctx, "/progress/toggle-completion", body, &updated); err != nil {
		return domain.Entry{}, fmt.Errorf("toggle completion: %w", err)
	}
	return updated, nil
}
