package loader

import (
	"context"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
)

// Backend defines the health backend operations the analysis view needs
type Backend interface {
	// GetClientByID fetches the details of one client
	GetClientByID(ctx context.Context, clientID string) (common.Row, error)

	// GetAnalysisDates fetches all dates for which the backend holds a computed analysis
	GetAnalysisDates(ctx context.Context, clientID string) ([]common.AnalysisDate, error)

	// GetClientAnalysis fetches the computed risk analysis for one client at one date
	GetClientAnalysis(ctx context.Context, clientID string, selectedDate string) (common.Analysis, error)

	// GetClientHistory fetches the per-metric sample streams for one client up to the selected date
	GetClientHistory(ctx context.Context, clientID string, selectedDate string) (map[string][]common.MetricSample, error)

	// GetAlertTypes fetches the alert display configurations for one client at one date
	GetAlertTypes(ctx context.Context, clientID string, date string) ([]common.Row, error)

	IsInterfaceNil() bool
}
