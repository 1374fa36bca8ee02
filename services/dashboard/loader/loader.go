package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/viewmodel"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("loader")

// ErrNoAnalysisDates signals that the backend holds no computed analysis for the client
var ErrNoAnalysisDates = errors.New("client has no analysis dates")

// AnalysisView is the fully derived view model for the client analysis page:
// raw details and analysis plus chart records, gauge scalings and threshold
// breaches
type AnalysisView struct {
	Details      common.Row            `json:"details"`
	Dates        []common.AnalysisDate `json:"dates"`
	SelectedDate string                `json:"selectedDate"`
	Analysis     common.Analysis       `json:"analysis"`
	Gauges       []viewmodel.Gauge     `json:"gauges"`
	History      []viewmodel.Record    `json:"history"`
	Breaches     []viewmodel.Breach    `json:"breaches"`
	AlertTypes   []common.Row          `json:"alertTypes"`
}

type analysisLoader struct {
	backend Backend
}

// NewAnalysisLoader creates a new loader for the client analysis view
func NewAnalysisLoader(backend Backend) (*analysisLoader, error) {
	if check.IfNil(backend) {
		return nil, errors.New("nil backend")
	}

	return &analysisLoader{
		backend: backend,
	}, nil
}

// Load fetches and derives the analysis view for the client's latest analysis
// date. The dates fetch is sequential (the latest date drives everything
// else), after which the four remaining fetches run concurrently.
func (l *analysisLoader) Load(ctx context.Context, clientID string) (*AnalysisView, error) {
	dates, err := l.backend.GetAnalysisDates(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNoAnalysisDates
	}

	return l.loadForDate(ctx, clientID, dates[len(dates)-1].AnalyzedAt, dates)
}

// LoadForDate fetches and derives the analysis view for an explicitly selected
// date (the date-picker path)
func (l *analysisLoader) LoadForDate(ctx context.Context, clientID string, selectedDate string) (*AnalysisView, error) {
	dates, err := l.backend.GetAnalysisDates(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, ErrNoAnalysisDates
	}

	return l.loadForDate(ctx, clientID, selectedDate, dates)
}

func (l *analysisLoader) loadForDate(
	ctx context.Context,
	clientID string,
	selectedDate string,
	dates []common.AnalysisDate,
) (*AnalysisView, error) {
	var (
		mut      sync.Mutex
		firstErr error
		details  common.Row
		analysis common.Analysis
		history  map[string][]common.MetricSample
		alerts   []common.Row
	)

	setErr := func(err error) {
		mut.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mut.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()

		result, err := l.backend.GetClientByID(ctx, clientID)
		if err != nil {
			setErr(err)
			return
		}
		mut.Lock()
		details = result
		mut.Unlock()
	}()
	go func() {
		defer wg.Done()

		result, err := l.backend.GetClientAnalysis(ctx, clientID, selectedDate)
		if err != nil {
			setErr(err)
			return
		}
		mut.Lock()
		analysis = result
		mut.Unlock()
	}()
	go func() {
		defer wg.Done()

		result, err := l.backend.GetClientHistory(ctx, clientID, selectedDate)
		if err != nil {
			setErr(err)
			return
		}
		mut.Lock()
		history = result
		mut.Unlock()
	}()
	go func() {
		defer wg.Done()

		result, err := l.backend.GetAlertTypes(ctx, clientID, selectedDate)
		if err != nil {
			setErr(err)
			return
		}
		mut.Lock()
		alerts = result
		mut.Unlock()
	}()

	wg.Wait()

	// a canceled context means the caller navigated away: discard all results
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// all-or-nothing: a partial failure fails the whole view load, no
	// partially populated view can escape
	if firstErr != nil {
		log.Warn("analysis view load failed", "client", clientID, "date", selectedDate, "error", firstErr)
		return nil, firstErr
	}

	return &AnalysisView{
		Details:      details,
		Dates:        dates,
		SelectedDate: selectedDate,
		Analysis:     analysis,
		Gauges:       viewmodel.BuildGauges(analysis.Metrics),
		History:      viewmodel.Normalize(history),
		Breaches:     viewmodel.Classify(analysis.Metrics, viewmodel.Thresholds()),
		AlertTypes:   alerts,
	}, nil
}

// IsInterfaceNil returns true if the value under the interface is nil
func (l *analysisLoader) IsInterfaceNil() bool {
	return l == nil
}
