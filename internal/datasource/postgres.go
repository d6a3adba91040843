package datasource

import (
	"database/sql"
	"fmt"
	"time"

	"dq-backend/internal/dataset"

	"github.com/lib/pq"
)

// Config holds connection details for a database source.
type Config struct {
	Type     string `json:"type"` // only "postgres" for now
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"` // "disable", "require"
}

// DataSource loads tables into datasets for analysis.
type DataSource interface {
	Connect(config Config) error
	Close() error
	ListTables() ([]string, error)
	LoadTable(tableName string, limit int) (*dataset.Dataset, error)
}

// Postgres implements DataSource for PostgreSQL via lib/pq.
type Postgres struct {
	db *sql.DB
}

func (p *Postgres) Connect(config Config) error {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		return err
	}

	p.db = db
	return nil
}

func (p *Postgres) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *Postgres) ListTables() ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;
	`
	rows, err := p.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// LoadTable reads up to limit rows of a table into a dataset. The table
// name is quoted as an identifier; callers should still check it against
// ListTables.
func (p *Postgres) LoadTable(tableName string, limit int) (*dataset.Dataset, error) {
	query := fmt.Sprintf("SELECT * FROM %s LIMIT $1", pq.QuoteIdentifier(tableName))

	rows, err := p.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	ds := dataset.New(columns)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		cells := make([]dataset.Cell, len(columns))
		for i, v := range values {
			cells[i] = driverCell(v)
		}
		ds.AppendRow(cells)
	}
	return ds, rows.Err()
}

// driverCell maps a database/sql driver value onto a cell kind.
func driverCell(v interface{}) dataset.Cell {
	switch val := v.(type) {
	case nil:
		return dataset.Null()
	case int64:
		return dataset.IntCell(val)
	case float64:
		return dataset.FloatCell(val)
	case bool:
		return dataset.BoolCell(val)
	case string:
		return dataset.StringCell(val)
	case []byte:
		return dataset.StringCell(string(val))
	case time.Time:
		return dataset.OtherCell(val.Format(time.RFC3339))
	default:
		return dataset.OtherCell(fmt.Sprintf("%v", val))
	}
}
