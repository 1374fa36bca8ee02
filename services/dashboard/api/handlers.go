package api

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/backend"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/loader"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/viewmodel"
	"github.com/gin-gonic/gin"
)

func generateSessionToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	return hex.EncodeToString(raw), nil
}

func (s *server) respondBackendError(c *gin.Context, err error) {
	if errors.Is(err, backend.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if len(raw) == 0 {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}

// --- Auth handlers ---

func (s *server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	fieldErrors := validateCredentials(req.Username, req.Password)
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	// anonymous client: login is the one call made without a bearer token
	anonymous, err := s.backendFactory("", nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	backendToken, err := anonymous.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, backend.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		s.respondBackendError(c, err)
		return
	}

	sessionToken, err := generateSessionToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	session := common.Session{
		Token:        sessionToken,
		Username:     req.Username,
		BackendToken: backendToken,
		CreatedAt:    time.Now().Unix(),
	}
	err = s.storage.SaveSession(c.Request.Context(), session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Debug("admin logged in", "username", req.Username)

	c.JSON(http.StatusOK, gin.H{"token": sessionToken})
}

// handleVerify only checks the dashboard session. The backend token it wraps
// is enforced lazily: the first proxied call hitting a backend 401 invalidates
// the session.
func (s *server) handleVerify(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		token = authHeader[7:]
	}

	_, err := s.storage.GetSession(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *server) handleLogout(c *gin.Context) {
	session := s.sessionOf(c)
	err := s.storage.DeleteSession(c.Request.Context(), session.Token)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Client handlers ---

func (s *server) handleGetClients(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sortBy := c.DefaultQuery("sortBy", "army_id")
	sortOrder := c.DefaultQuery("sortOrder", viewmodel.SortAsc)
	search := c.Query("search")

	var rows []common.Row
	if len(search) > 0 {
		rows, err = b.SearchClients(c.Request.Context(), search)
	} else {
		rows, err = b.GetClients(c.Request.Context(), sortBy, sortOrder)
	}
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	// sort server-side as well: the search endpoint returns unsorted rows and
	// the backend's ordering for date columns is not trusted
	rows = viewmodel.SortBy(rows, sortBy, sortOrder)

	page := intQuery(c, "page", 0)
	pageSize := intQuery(c, "pageSize", s.defaultPageSize)

	c.JSON(http.StatusOK, gin.H{
		"clients": viewmodel.Paginate(rows, page, pageSize),
		"total":   len(rows),
	})
}

func (s *server) handleCreateClient(c *gin.Context) {
	var payload common.Row
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	fieldErrors := validateNewClient(payload)
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = b.CreateClient(c.Request.Context(), payload)
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *server) handleGetClient(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	row, err := b.GetClientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}

func (s *server) handleUpdateClient(c *gin.Context) {
	var payload common.Row
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = b.UpdateClient(c.Request.Context(), c.Param("id"), payload)
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *server) handleDeleteClient(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = b.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *server) handleChangePassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	message := validatePassword(req.Password)
	if len(message) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"password": message}})
		return
	}

	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = b.ChangeClientPassword(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Data handlers ---

func (s *server) handleGetDataTypes(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	dataTypes, err := b.GetDataTypes(c.Request.Context())
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataTypes)
}

func (s *server) handleAddDataType(c *gin.Context) {
	var dataType common.DataType
	if err := c.ShouldBindJSON(&dataType); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if len(dataType.Name) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"name": "Name is required"}})
		return
	}

	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = b.AddDataType(c.Request.Context(), dataType)
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *server) handleGetDataByDate(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries, err := b.GetClientDataByDate(c.Request.Context(), c.Param("id"), c.Param("date"))
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *server) handleGetLastData(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries, err := b.GetClientLastData(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *server) handleRecordData(c *gin.Context) {
	var req struct {
		DataEntries []common.DataEntry `json:"dataEntries"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	entries, message := validateDataEntries(req.DataEntries)
	if len(message) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
		return
	}

	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = b.RecordClientData(c.Request.Context(), c.Param("id"), entries)
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// --- Analysis handlers ---

func (s *server) handleAnalysis(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	analysisLoader, err := loader.NewAnalysisLoader(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	clientID := c.Param("id")
	selectedDate := c.Query("date")

	var view *loader.AnalysisView
	if len(selectedDate) == 0 {
		view, err = analysisLoader.Load(c.Request.Context(), clientID)
	} else {
		view, err = analysisLoader.LoadForDate(c.Request.Context(), clientID, selectedDate)
	}
	if errors.Is(err, loader.ErrNoAnalysisDates) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		// all-or-nothing load: one error state, never a partial view
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

type alertGroup struct {
	Metric      string       `json:"metric"`
	DisplayName string       `json:"displayName,omitempty"`
	Operator    string       `json:"operator,omitempty"`
	Limit       float64      `json:"limit,omitempty"`
	Unit        string       `json:"unit,omitempty"`
	Clients     []common.Row `json:"clients"`
}

func (s *server) handleAlerts(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	alerts, err := b.GetClientsWithAlerts(c.Request.Context())
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	metrics := make([]string, 0, len(alerts))
	for metric := range alerts {
		metrics = append(metrics, metric)
	}
	sort.Strings(metrics)

	groups := make([]alertGroup, 0, len(metrics))
	for _, metric := range metrics {
		group := alertGroup{
			Metric:  metric,
			Clients: alerts[metric],
		}

		rule, found := viewmodel.ThresholdFor(metric)
		if found {
			group.DisplayName = rule.DisplayName
			group.Operator = rule.Operator
			group.Limit = rule.Limit
			group.Unit = rule.Unit
		}

		groups = append(groups, group)
	}

	c.JSON(http.StatusOK, gin.H{"alerts": groups})
}

func (s *server) handleStats(c *gin.Context) {
	b, err := s.backendFor(s.sessionOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	stats, err := b.GetDashboardStats(c.Request.Context())
	if err != nil {
		s.respondBackendError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
