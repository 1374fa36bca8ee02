package testsCommon

import (
	"context"

	"github.com/Aryan-Lohia/fitness-admin/services/dashboard/common"
)

// BackendStub -
type BackendStub struct {
	LoginHandler                func(ctx context.Context, username string, password string) (string, error)
	VerifyTokenHandler          func(ctx context.Context, token string) error
	GetClientsHandler           func(ctx context.Context, sortBy string, sortOrder string) ([]common.Row, error)
	SearchClientsHandler        func(ctx context.Context, term string) ([]common.Row, error)
	GetClientByIDHandler        func(ctx context.Context, clientID string) (common.Row, error)
	CreateClientHandler         func(ctx context.Context, payload common.Row) error
	UpdateClientHandler         func(ctx context.Context, clientID string, payload common.Row) error
	DeleteClientHandler         func(ctx context.Context, clientID string) error
	ChangeClientPasswordHandler func(ctx context.Context, clientID string, password string) error
	GetDataTypesHandler         func(ctx context.Context) ([]common.DataType, error)
	AddDataTypeHandler          func(ctx context.Context, dataType common.DataType) error
	GetClientDataByDateHandler  func(ctx context.Context, clientID string, date string) (map[string]common.DataEntry, error)
	GetClientLastDataHandler    func(ctx context.Context, clientID string) (map[string]common.DataEntry, error)
	RecordClientDataHandler     func(ctx context.Context, clientID string, entries []common.DataEntry) error
	GetAnalysisDatesHandler     func(ctx context.Context, clientID string) ([]common.AnalysisDate, error)
	GetClientAnalysisHandler    func(ctx context.Context, clientID string, selectedDate string) (common.Analysis, error)
	GetClientHistoryHandler     func(ctx context.Context, clientID string, selectedDate string) (map[string][]common.MetricSample, error)
	GetAlertTypesHandler        func(ctx context.Context, clientID string, date string) ([]common.Row, error)
	GetClientsWithAlertsHandler func(ctx context.Context) (map[string][]common.Row, error)
	GetDashboardStatsHandler    func(ctx context.Context) (common.DashboardStats, error)
}

// Login -
func (stub *BackendStub) Login(ctx context.Context, username string, password string) (string, error) {
	if stub.LoginHandler != nil {
		return stub.LoginHandler(ctx, username, password)
	}

	return "", nil
}

// VerifyToken -
func (stub *BackendStub) VerifyToken(ctx context.Context, token string) error {
	if stub.VerifyTokenHandler != nil {
		return stub.VerifyTokenHandler(ctx, token)
	}

	return nil
}

// GetClients -
func (stub *BackendStub) GetClients(ctx context.Context, sortBy string, sortOrder string) ([]common.Row, error) {
	if stub.GetClientsHandler != nil {
		return stub.GetClientsHandler(ctx, sortBy, sortOrder)
	}

	return make([]common.Row, 0), nil
}

// SearchClients -
func (stub *BackendStub) SearchClients(ctx context.Context, term string) ([]common.Row, error) {
	if stub.SearchClientsHandler != nil {
		return stub.SearchClientsHandler(ctx, term)
	}

	return make([]common.Row, 0), nil
}

// GetClientByID -
func (stub *BackendStub) GetClientByID(ctx context.Context, clientID string) (common.Row, error) {
	if stub.GetClientByIDHandler != nil {
		return stub.GetClientByIDHandler(ctx, clientID)
	}

	return common.Row{}, nil
}

// CreateClient -
func (stub *BackendStub) CreateClient(ctx context.Context, payload common.Row) error {
	if stub.CreateClientHandler != nil {
		return stub.CreateClientHandler(ctx, payload)
	}

	return nil
}

// UpdateClient -
func (stub *BackendStub) UpdateClient(ctx context.Context, clientID string, payload common.Row) error {
	if stub.UpdateClientHandler != nil {
		return stub.UpdateClientHandler(ctx, clientID, payload)
	}

	return nil
}

// DeleteClient -
func (stub *BackendStub) DeleteClient(ctx context.Context, clientID string) error {
	if stub.DeleteClientHandler != nil {
		return stub.DeleteClientHandler(ctx, clientID)
	}

	return nil
}

// ChangeClientPassword -
func (stub *BackendStub) ChangeClientPassword(ctx context.Context, clientID string, password string) error {
	if stub.ChangeClientPasswordHandler != nil {
		return stub.ChangeClientPasswordHandler(ctx, clientID, password)
	}

	return nil
}

// GetDataTypes -
func (stub *BackendStub) GetDataTypes(ctx context.Context) ([]common.DataType, error) {
	if stub.GetDataTypesHandler != nil {
		return stub.GetDataTypesHandler(ctx)
	}

	return make([]common.DataType, 0), nil
}

// AddDataType -
func (stub *BackendStub) AddDataType(ctx context.Context, dataType common.DataType) error {
	if stub.AddDataTypeHandler != nil {
		return stub.AddDataTypeHandler(ctx, dataType)
	}

	return nil
}

// GetClientDataByDate -
func (stub *BackendStub) GetClientDataByDate(ctx context.Context, clientID string, date string) (map[string]common.DataEntry, error) {
	if stub.GetClientDataByDateHandler != nil {
		return stub.GetClientDataByDateHandler(ctx, clientID, date)
	}

	return make(map[string]common.DataEntry), nil
}

// GetClientLastData -
func (stub *BackendStub) GetClientLastData(ctx context.Context, clientID string) (map[string]common.DataEntry, error) {
	if stub.GetClientLastDataHandler != nil {
		return stub.GetClientLastDataHandler(ctx, clientID)
	}

	return make(map[string]common.DataEntry), nil
}

// RecordClientData -
func (stub *BackendStub) RecordClientData(ctx context.Context, clientID string, entries []common.DataEntry) error {
	if stub.RecordClientDataHandler != nil {
		return stub.RecordClientDataHandler(ctx, clientID, entries)
	}

	return nil
}

// GetAnalysisDates -
func (stub *BackendStub) GetAnalysisDates(ctx context.Context, clientID string) ([]common.AnalysisDate, error) {
	if stub.GetAnalysisDatesHandler != nil {
		return stub.GetAnalysisDatesHandler(ctx, clientID)
	}

	return make([]common.AnalysisDate, 0), nil
}

// GetClientAnalysis -
func (stub *BackendStub) GetClientAnalysis(ctx context.Context, clientID string, selectedDate string) (common.Analysis, error) {
	if stub.GetClientAnalysisHandler != nil {
		return stub.GetClientAnalysisHandler(ctx, clientID, selectedDate)
	}

	return common.Analysis{}, nil
}

// GetClientHistory -
func (stub *BackendStub) GetClientHistory(ctx context.Context, clientID string, selectedDate string) (map[string][]common.MetricSample, error) {
	if stub.GetClientHistoryHandler != nil {
		return stub.GetClientHistoryHandler(ctx, clientID, selectedDate)
	}

	return make(map[string][]common.MetricSample), nil
}

// GetAlertTypes -
func (stub *BackendStub) GetAlertTypes(ctx context.Context, clientID string, date string) ([]common.Row, error) {
	if stub.GetAlertTypesHandler != nil {
		return stub.GetAlertTypesHandler(ctx, clientID, date)
	}

	return make([]common.Row, 0), nil
}

// GetClientsWithAlerts -
func (stub *BackendStub) GetClientsWithAlerts(ctx context.Context) (map[string][]common.Row, error) {
	if stub.GetClientsWithAlertsHandler != nil {
		return stub.GetClientsWithAlertsHandler(ctx)
	}

	return make(map[string][]common.Row), nil
}

// GetDashboardStats -
func (stub *BackendStub) GetDashboardStats(ctx context.Context) (common.DashboardStats, error) {
	if stub.GetDashboardStatsHandler != nil {
		return stub.GetDashboardStatsHandler(ctx)
	}

	return common.DashboardStats{}, nil
}

// IsInterfaceNil -
func (stub *BackendStub) IsInterfaceNil() bool {
	return stub == nil
}
