package api

import (
	"context"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
)

// Backend aggregates the remote health backend operations the dashboard proxies
type Backend interface {
	Login(ctx context.Context, username string, password string) (string, error)
	VerifyToken(ctx context.Context, token string) error
	GetClients(ctx context.Context, sortBy string, sortOrder string) ([]common.Row, error)
	SearchClients(ctx context.Context, term string) ([]common.Row, error)
	GetClientByID(ctx context.Context, clientID string) (common.Row, error)
	CreateClient(ctx context.Context, payload common.Row) error
	UpdateClient(ctx context.Context, clientID string, payload common.Row) error
	DeleteClient(ctx context.Context, clientID string) error
	ChangeClientPassword(ctx context.Context, clientID string, password string) error
	GetDataTypes(ctx context.Context) ([]common.DataType, error)
	AddDataType(ctx context.Context, dataType common.DataType) error
	GetClientDataByDate(ctx context.Context, clientID string, date string) (map[string]common.DataEntry, error)
	GetClientLastData(ctx context.Context, clientID string) (map[string]common.DataEntry, error)
	RecordClientData(ctx context.Context, clientID string, entries []common.DataEntry) error
	GetAnalysisDates(ctx context.Context, clientID string) ([]common.AnalysisDate, error)
	GetClientAnalysis(ctx context.Context, clientID string, selectedDate string) (common.Analysis, error)
	GetClientHistory(ctx context.Context, clientID string, selectedDate string) (map[string][]common.MetricSample, error)
	GetAlertTypes(ctx context.Context, clientID string, date string) ([]common.Row, error)
	GetClientsWithAlerts(ctx context.Context) (map[string][]common.Row, error)
	GetDashboardStats(ctx context.Context) (common.DashboardStats, error)

	IsInterfaceNil() bool
}

// BackendFactory creates a backend client bound to one session's bearer token.
// onUnauthorized is invoked when the backend rejects that token, so the owning
// session can be invalidated.
type BackendFactory func(bearerToken string, onUnauthorized func()) (Backend, error)

// Storage defines the interface for persisting dashboard sessions
type Storage interface {
	// SaveSession persists a new dashboard session
	SaveSession(ctx context.Context, session common.Session) error

	// GetSession fetches the session for the presented token; expired or
	// unknown tokens yield a dedicated not-found error
	GetSession(ctx context.Context, token string) (common.Session, error)

	// DeleteSession removes the session for the presented token
	DeleteSession(ctx context.Context, token string) error

	// Close shuts down the database connection
	Close() error

	IsInterfaceNil() bool
}
