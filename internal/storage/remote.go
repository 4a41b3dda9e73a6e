package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/scoutlens/scoutlens/internal/models"
)

// RemoteTable is a thin client for one Supabase table via the PostgREST API.
// All methods return a *StorageError instead of panicking or logging-and-
// swallowing; the adapter decides whether a failure falls back to the local
// store. Calls are rate limited and guarded by a circuit breaker, so a dead
// Supabase project stops costing a timeout per interaction.
type RemoteTable struct {
	baseURL string
	anonKey string
	table   string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	log     *logrus.Entry
}

func NewRemoteTable(supabaseURL, anonKey, table string, timeout time.Duration, rps int, log *logrus.Logger) *RemoteTable {
	if rps <= 0 {
		rps = 10
	}
	entry := log.WithFields(logrus.Fields{"component": "remote_table", "table": table})
	settings := gobreaker.Settings{
		Name:    "supabase-" + table,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			entry.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	}
	return &RemoteTable{
		baseURL: strings.TrimRight(supabaseURL, "/"),
		anonKey: anonKey,
		table:   table,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
		breaker: gobreaker.NewCircuitBreaker(settings),
		log:     entry,
	}
}

// Table returns the remote table name.
func (t *RemoteTable) Table() string {
	return t.table
}

// SelectAll fetches every row of the table.
func (t *RemoteTable) SelectAll(ctx context.Context) ([]models.Player, *StorageError) {
	var rows []models.Player
	if serr := t.Select(ctx, url.Values{"select": {"*"}}, &rows); serr != nil {
		return nil, serr
	}
	if rows == nil {
		rows = []models.Player{}
	}
	return rows, nil
}

// Select issues a filtered GET and decodes the result into dest.
func (t *RemoteTable) Select(ctx context.Context, query url.Values, dest any) *StorageError {
	body, serr := t.do(ctx, http.MethodGet, query, nil, "")
	if serr != nil {
		return serr
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return remoteErr("select_"+t.table, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// Upsert inserts or replaces rows keyed on the primary key. Player rows get
// their tags coerced to a proper list first; legacy callers have stored tags
// as JSON-encoded text.
func (t *RemoteTable) Upsert(ctx context.Context, rows []models.Player) *StorageError {
	payload := make([]models.Player, 0, len(rows))
	for _, row := range rows {
		row = row.Clone()
		if _, ok := row[models.FieldTags]; ok {
			row[models.FieldTags] = models.CoerceTags(row[models.FieldTags])
		}
		payload = append(payload, row)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return remoteErr("upsert_"+t.table, err)
	}
	_, serr := t.do(ctx, http.MethodPost, nil, data, "resolution=merge-duplicates")
	return serr
}

// UpsertRaw upserts arbitrary rows, used by the shortlist and note services.
func (t *RemoteTable) UpsertRaw(ctx context.Context, rows any) *StorageError {
	data, err := json.Marshal(rows)
	if err != nil {
		return remoteErr("upsert_"+t.table, err)
	}
	_, serr := t.do(ctx, http.MethodPost, nil, data, "resolution=merge-duplicates")
	return serr
}

// UpdateField patches a single column on the row matching id.
func (t *RemoteTable) UpdateField(ctx context.Context, id, column string, value any) *StorageError {
	data, err := json.Marshal(map[string]any{column: value})
	if err != nil {
		return remoteErr("update_"+t.table, err)
	}
	query := url.Values{"id": {"eq." + id}}
	_, serr := t.do(ctx, http.MethodPatch, query, data, "")
	return serr
}

// CountByIDs returns how many of the given ids exist in the table. PostgREST
// does not report affected rows on delete, so the adapter counts first to
// return an accurate deleted count.
func (t *RemoteTable) CountByIDs(ctx context.Context, ids []string) (int, *StorageError) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := url.Values{
		"id":     {inFilter(ids)},
		"select": {"id"},
	}
	var rows []struct {
		ID string `json:"id"`
	}
	if serr := t.Select(ctx, query, &rows); serr != nil {
		return 0, serr
	}
	return len(rows), nil
}

// DeleteByIDs removes the rows matching ids and returns how many existed
// beforehand.
func (t *RemoteTable) DeleteByIDs(ctx context.Context, ids []string) (int, *StorageError) {
	if len(ids) == 0 {
		return 0, nil
	}
	count, serr := t.CountByIDs(ctx, ids)
	if serr != nil {
		return 0, serr
	}
	query := url.Values{"id": {inFilter(ids)}}
	if _, serr := t.do(ctx, http.MethodDelete, query, nil, ""); serr != nil {
		return 0, serr
	}
	return count, nil
}

func inFilter(ids []string) string {
	quoted := make([]string, 0, len(ids))
	for _, id := range ids {
		quoted = append(quoted, `"`+strings.ReplaceAll(id, `"`, ``)+`"`)
	}
	return "in.(" + strings.Join(quoted, ",") + ")"
}

func (t *RemoteTable) do(ctx context.Context, method string, query url.Values, body []byte, prefer string) ([]byte, *StorageError) {
	op := strings.ToLower(method) + "_" + t.table
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, remoteErr(op, err)
	}

	result, err := t.breaker.Execute(func() (interface{}, error) {
		endpoint := fmt.Sprintf("%s/rest/v1/%s", t.baseURL, t.table)
		if len(query) > 0 {
			endpoint += "?" + query.Encode()
		}
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("apikey", t.anonKey)
		req.Header.Set("Authorization", "Bearer "+t.anonKey)
		req.Header.Set("Content-Type", "application/json")
		if prefer != "" {
			req.Header.Set("Prefer", prefer)
		}

		resp, err := t.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("supabase returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
		}
		return data, nil
	})
	if err != nil {
		return nil, remoteErr(op, err)
	}
	return result.([]byte), nil
}
