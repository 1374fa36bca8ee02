package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/tidwall/gjson"
)

var log = logger.GetOrCreate("backend")

// ArgsClient defines the backend client arguments. BearerToken is the session's
// token on the health backend; OnUnauthorized, when set, is invoked whenever the
// backend answers 401 so the owning session can be invalidated by the caller
// instead of this client performing any redirect-like side effect.
type ArgsClient struct {
	BaseURL        string
	Timeout        time.Duration
	BearerToken    string
	OnUnauthorized func()
}

type client struct {
	baseURL        string
	bearerToken    string
	onUnauthorized func()
	httpClient     *http.Client
}

// NewClient creates a new HTTP client for the remote health backend
func NewClient(args ArgsClient) (*client, error) {
	if len(args.BaseURL) == 0 {
		return nil, errors.New("empty backend base URL")
	}

	return &client{
		baseURL:        args.BaseURL,
		bearerToken:    args.BearerToken,
		onUnauthorized: args.OnUnauthorized,
		httpClient: &http.Client{
			Timeout: args.Timeout,
		},
	}, nil
}

func (c *client) do(ctx context.Context, method string, path string, query url.Values, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request payload: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL = fullURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if len(c.bearerToken) > 0 {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error calling backend: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Debug("backend rejected bearer token", "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// The backend wraps errors as {"message": "..."}
		return nil, errStatusNotOK{
			code:    resp.StatusCode,
			message: gjson.GetBytes(body, "message").String(),
		}
	}

	return body, nil
}

// Login authenticates the admin against the health backend and returns the bearer token
func (c *client) Login(ctx context.Context, username string, password string) (string, error) {
	payload := map[string]string{
		"username": username,
		"password": password,
	}

	body, err := c.do(ctx, http.MethodPost, "/auth/admin/login", nil, payload)
	if err != nil {
		return "", err
	}

	token := gjson.GetBytes(body, "token")
	if !token.Exists() {
		return "", errFieldNotFound("token")
	}

	return token.String(), nil
}

// VerifyToken asks the backend whether the provided bearer token is still valid
func (c *client) VerifyToken(ctx context.Context, token string) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/admin/verify-token", nil, map[string]string{"token": token})
	return err
}

// GetClients fetches the full personnel list, optionally sorted by the backend
func (c *client) GetClients(ctx context.Context, sortBy string, sortOrder string) ([]common.Row, error) {
	query := url.Values{}
	if len(sortBy) > 0 {
		query.Set("sortBy", sortBy)
		query.Set("sortOrder", sortOrder)
	}

	body, err := c.do(ctx, http.MethodGet, "/admin/clients", query, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Clients []common.Row `json:"clients"`
	}
	err = json.Unmarshal(body, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to decode clients response: %w", err)
	}

	return resp.Clients, nil
}

// SearchClients performs a backend-side personnel search
func (c *client) SearchClients(ctx context.Context, term string) ([]common.Row, error) {
	query := url.Values{}
	query.Set("search", term)

	body, err := c.do(ctx, http.MethodGet, "/admin/clients/search", query, nil)
	if err != nil {
		return nil, err
	}

	var rows []common.Row
	err = json.Unmarshal(body, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	return rows, nil
}

// GetClientByID fetches the details of one client
func (c *client) GetClientByID(ctx context.Context, clientID string) (common.Row, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/clients/"+clientID, nil, nil)
	if err != nil {
		return nil, err
	}

	var row common.Row
	err = json.Unmarshal(body, &row)
	if err != nil {
		return nil, fmt.Errorf("failed to decode client details: %w", err)
	}

	return row, nil
}

// CreateClient registers a new client
func (c *client) CreateClient(ctx context.Context, payload common.Row) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/clients", nil, payload)
	return err
}

// UpdateClient updates the details of one client
func (c *client) UpdateClient(ctx context.Context, clientID string, payload common.Row) error {
	_, err := c.do(ctx, http.MethodPut, "/admin/clients/"+clientID, nil, payload)
	return err
}

// DeleteClient removes a client
func (c *client) DeleteClient(ctx context.Context, clientID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/auth/admin/client/"+clientID, nil, nil)
	return err
}

// ChangeClientPassword sets a new password for a client's own account
func (c *client) ChangeClientPassword(ctx context.Context, clientID string, password string) error {
	payload := map[string]string{"password": password}
	_, err := c.do(ctx, http.MethodPost, "/auth/admin/change-password/"+clientID, nil, payload)
	return err
}

// GetDataTypes fetches all trackable data type definitions
func (c *client) GetDataTypes(ctx context.Context) ([]common.DataType, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/data-types", nil, nil)
	if err != nil {
		return nil, err
	}

	var dataTypes []common.DataType
	err = json.Unmarshal(body, &dataTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data types: %w", err)
	}

	return dataTypes, nil
}

// AddDataType registers a new data type definition
func (c *client) AddDataType(ctx context.Context, dataType common.DataType) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/data-types", nil, dataType)
	return err
}

// GetClientDataByDate fetches the recorded entries for one client at one date,
// keyed by data type id
func (c *client) GetClientDataByDate(ctx context.Context, clientID string, date string) (map[string]common.DataEntry, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/clients/"+clientID+"/data/"+date, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeDataEntries(body)
}

// GetClientLastData fetches the most recently recorded entries for one client
func (c *client) GetClientLastData(ctx context.Context, clientID string) (map[string]common.DataEntry, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/clients/"+clientID+"/last-data", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeDataEntries(body)
}

func decodeDataEntries(body []byte) (map[string]common.DataEntry, error) {
	var entries map[string]common.DataEntry
	err := json.Unmarshal(body, &entries)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data entries: %w", err)
	}

	return entries, nil
}

// RecordClientData submits a batch of measurements for one client
func (c *client) RecordClientData(ctx context.Context, clientID string, entries []common.DataEntry) error {
	payload := map[string][]common.DataEntry{"dataEntries": entries}
	_, err := c.do(ctx, http.MethodPost, "/admin/clients/"+clientID+"/data", nil, payload)
	return err
}

// GetAnalysisDates fetches all dates for which the backend holds a computed analysis
func (c *client) GetAnalysisDates(ctx context.Context, clientID string) ([]common.AnalysisDate, error) {
	body, err := c.do(ctx, http.MethodGet, "/analysis/clients/"+clientID+"/dates", nil, nil)
	if err != nil {
		return nil, err
	}

	var dates []common.AnalysisDate
	err = json.Unmarshal(body, &dates)
	if err != nil {
		return nil, fmt.Errorf("failed to decode analysis dates: %w", err)
	}

	return dates, nil
}

// GetClientAnalysis fetches the computed risk analysis for one client at one
// date. Numeric fields land in Metrics, string fields (risk categories,
// recommendation texts) in Labels; anything else is ignored.
func (c *client) GetClientAnalysis(ctx context.Context, clientID string, selectedDate string) (common.Analysis, error) {
	query := url.Values{}
	if len(selectedDate) > 0 {
		query.Set("selectedDate", selectedDate)
	}

	body, err := c.do(ctx, http.MethodGet, "/analysis/clients/"+clientID+"/analysis", query, nil)
	if err != nil {
		return common.Analysis{}, err
	}

	analysis := common.Analysis{
		Metrics: make(map[string]float64),
		Labels:  make(map[string]string),
	}

	gjson.ParseBytes(body).ForEach(func(key gjson.Result, value gjson.Result) bool {
		switch value.Type {
		case gjson.Number:
			analysis.Metrics[key.String()] = value.Float()
		case gjson.String:
			analysis.Labels[key.String()] = value.String()
		}
		return true
	})

	return analysis, nil
}

// GetClientHistory fetches the per-metric sample streams for one client up to
// the selected date
func (c *client) GetClientHistory(ctx context.Context, clientID string, selectedDate string) (map[string][]common.MetricSample, error) {
	query := url.Values{}
	if len(selectedDate) > 0 {
		query.Set("selectedDate", selectedDate)
	}

	body, err := c.do(ctx, http.MethodGet, "/analysis/clients/"+clientID+"/history", query, nil)
	if err != nil {
		return nil, err
	}

	history := make(map[string][]common.MetricSample)
	gjson.ParseBytes(body).ForEach(func(metric gjson.Result, samples gjson.Result) bool {
		if !samples.IsArray() {
			return true
		}

		var parsed []common.MetricSample
		samples.ForEach(func(_ gjson.Result, sample gjson.Result) bool {
			parsed = append(parsed, common.MetricSample{
				Value:      sample.Get("value").String(),
				RecordedAt: sample.Get("recorded_at").String(),
			})
			return true
		})

		history[metric.String()] = parsed
		return true
	})

	return history, nil
}

// GetAlertTypes fetches the alert display configurations for one client at one date
func (c *client) GetAlertTypes(ctx context.Context, clientID string, date string) ([]common.Row, error) {
	query := url.Values{}
	if len(date) > 0 {
		query.Set("date", date)
	}

	body, err := c.do(ctx, http.MethodGet, "/analysis/clients/"+clientID+"/alerts", query, nil)
	if err != nil {
		return nil, err
	}

	var rows []common.Row
	err = json.Unmarshal(body, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to decode alert types: %w", err)
	}

	return rows, nil
}

// GetClientsWithAlerts fetches, per breached metric, the clients currently out of range
func (c *client) GetClientsWithAlerts(ctx context.Context) (map[string][]common.Row, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/clients-with-alerts", nil, nil)
	if err != nil {
		return nil, err
	}

	var alerts map[string][]common.Row
	err = json.Unmarshal(body, &alerts)
	if err != nil {
		return nil, fmt.Errorf("failed to decode clients with alerts: %w", err)
	}

	return alerts, nil
}

// GetDashboardStats fetches the dashboard counters
func (c *client) GetDashboardStats(ctx context.Context) (common.DashboardStats, error) {
	body, err := c.do(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil)
	if err != nil {
		return common.DashboardStats{}, err
	}

	var stats common.DashboardStats
	err = json.Unmarshal(body, &stats)
	if err != nil {
		return common.DashboardStats{}, fmt.Errorf("failed to decode dashboard stats: %w", err)
	}

	return stats, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (c *client) IsInterfaceNil() bool {
	return c == nil
}
