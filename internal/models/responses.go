package models

// ServiceInfo describes the API surface, returned by the root endpoint.
type ServiceInfo struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
	Version   string            `json:"version"`
}

// AnalyzeTableRequest selects a connected-database table for analysis.
type AnalyzeTableRequest struct {
	TableName string `json:"table_name"`
}

// TablesResponse lists tables available from the connected database.
type TablesResponse struct {
	Tables []string `json:"tables"`
}

// ConnectResponse acknowledges a database connection.
type ConnectResponse struct {
	Status string `json:"status"`
}
