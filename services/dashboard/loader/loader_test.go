package loader

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/testsCommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedErr = errors.New("expected error")

func createWorkingBackendStub() *testsCommon.BackendStub {
	return &testsCommon.BackendStub{
		GetAnalysisDatesHandler: func(_ context.Context, _ string) ([]common.AnalysisDate, error) {
			return []common.AnalysisDate{
				{AnalyzedAt: "2024-01-10"},
				{AnalyzedAt: "2024-02-20"},
			}, nil
		},
		GetClientByIDHandler: func(_ context.Context, clientID string) (common.Row, error) {
			return common.Row{"army_id": "A-1", "name": "Test Client"}, nil
		},
		GetClientAnalysisHandler: func(_ context.Context, _ string, _ string) (common.Analysis, error) {
			return common.Analysis{
				Metrics: map[string]float64{
					"heart_rate":     120,
					"ckd_risk_score": 2, "ckd_risk_min": 0, "ckd_risk_max": 8,
				},
				Labels: map[string]string{"overall_risk_category": "moderate"},
			}, nil
		},
		GetClientHistoryHandler: func(_ context.Context, _ string, _ string) (map[string][]common.MetricSample, error) {
			return map[string][]common.MetricSample{
				"sbp": {
					{Value: "120", RecordedAt: "2024-02-01"},
					{Value: "110", RecordedAt: "2024-01-15"},
				},
			}, nil
		},
		GetAlertTypesHandler: func(_ context.Context, _ string, _ string) ([]common.Row, error) {
			return []common.Row{{"category": "heart_rate"}}, nil
		},
	}
}

func TestNewAnalysisLoader(t *testing.T) {
	t.Parallel()

	t.Run("nil backend should error", func(t *testing.T) {
		t.Parallel()

		l, err := NewAnalysisLoader(nil)

		assert.Nil(t, l)
		assert.True(t, l.IsInterfaceNil())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "nil backend")
	})
	t.Run("should work", func(t *testing.T) {
		t.Parallel()

		l, err := NewAnalysisLoader(&testsCommon.BackendStub{})

		assert.NotNil(t, l)
		assert.False(t, l.IsInterfaceNil())
		assert.Nil(t, err)
	})
}

func TestAnalysisLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("dates fetch error propagates", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		stub.GetAnalysisDatesHandler = func(_ context.Context, _ string) ([]common.AnalysisDate, error) {
			return nil, expectedErr
		}
		l, _ := NewAnalysisLoader(stub)

		view, err := l.Load(context.Background(), "client-1")
		assert.Nil(t, view)
		assert.Equal(t, expectedErr, err)
	})
	t.Run("no analysis dates yields a dedicated error", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		stub.GetAnalysisDatesHandler = func(_ context.Context, _ string) ([]common.AnalysisDate, error) {
			return []common.AnalysisDate{}, nil
		}
		l, _ := NewAnalysisLoader(stub)

		view, err := l.Load(context.Background(), "client-1")
		assert.Nil(t, view)
		assert.Equal(t, ErrNoAnalysisDates, err)
	})
	t.Run("should load and derive for the latest date", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		var analysisDate string
		stub.GetClientAnalysisHandler = func(_ context.Context, _ string, selectedDate string) (common.Analysis, error) {
			analysisDate = selectedDate
			return createWorkingBackendStub().GetClientAnalysisHandler(context.Background(), "", selectedDate)
		}
		l, _ := NewAnalysisLoader(stub)

		view, err := l.Load(context.Background(), "client-1")
		require.Nil(t, err)
		require.NotNil(t, view)

		assert.Equal(t, "2024-02-20", view.SelectedDate)
		assert.Equal(t, "2024-02-20", analysisDate)
		assert.Equal(t, "Test Client", view.Details["name"])
		assert.Len(t, view.Dates, 2)

		// derivations
		require.Len(t, view.History, 2)
		assert.Equal(t, "Jan 15", view.History[0].Date)
		assert.Equal(t, "Feb 01", view.History[1].Date)

		require.Len(t, view.Gauges, 1)
		assert.Equal(t, "ckd_risk", view.Gauges[0].Name)
		assert.Equal(t, float64(25), view.Gauges[0].Percent)

		require.Len(t, view.Breaches, 1)
		assert.Equal(t, "heart_rate", view.Breaches[0].Metric)
		assert.Equal(t, float64(120), view.Breaches[0].Value)
	})
	t.Run("any one failing fetch fails the whole load", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		stub.GetClientHistoryHandler = func(_ context.Context, _ string, _ string) (map[string][]common.MetricSample, error) {
			return nil, expectedErr
		}
		l, _ := NewAnalysisLoader(stub)

		view, err := l.Load(context.Background(), "client-1")
		assert.Nil(t, view) // never partially loaded
		assert.Equal(t, expectedErr, err)
	})
	t.Run("canceled context discards all results", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		stub.GetClientByIDHandler = func(ctx context.Context, _ string) (common.Row, error) {
			<-ctx.Done()
			return common.Row{"name": "stale"}, nil
		}
		l, _ := NewAnalysisLoader(stub)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(50 * time.Millisecond)
			cancel()
		}()

		view, err := l.Load(ctx, "client-1")
		assert.Nil(t, view)
		assert.Equal(t, context.Canceled, err)
	})
}

func TestAnalysisLoader_LoadForDate(t *testing.T) {
	t.Parallel()

	t.Run("passes the explicit date to all date-scoped fetches", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		var historyDate string
		stub.GetClientHistoryHandler = func(_ context.Context, _ string, selectedDate string) (map[string][]common.MetricSample, error) {
			historyDate = selectedDate
			return map[string][]common.MetricSample{}, nil
		}
		l, _ := NewAnalysisLoader(stub)

		view, err := l.LoadForDate(context.Background(), "client-1", "2024-01-10")
		require.Nil(t, err)
		assert.Equal(t, "2024-01-10", view.SelectedDate)
		assert.Equal(t, "2024-01-10", historyDate)
	})
	t.Run("no analysis dates yields a dedicated error", func(t *testing.T) {
		t.Parallel()

		stub := createWorkingBackendStub()
		stub.GetAnalysisDatesHandler = func(_ context.Context, _ string) ([]common.AnalysisDate, error) {
			return nil, nil
		}
		l, _ := NewAnalysisLoader(stub)

		view, err := l.LoadForDate(context.Background(), "client-1", "2024-01-10")
		assert.Nil(t, view)
		assert.Equal(t, ErrNoAnalysisDates, err)
	})
}
