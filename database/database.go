package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/xy-planning-network/burrow"
	"github.com/xy-planning-network/burrow/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// PG Docs: https://www.postgresql.org/docs/current/libpq-connect.html#LIBPQ-PARAMKEYWORDS
const cxnStr = "host=%s port=%s dbname=%s user=%s password=%s sslmode=%s"

// CxnConfig holds connection information used to connect to a database.
type CxnConfig struct {
	// Driver is either DriverPostgres or DriverSQLite; DriverPostgres is the default.
	Driver string

	// URL is the fully-qualified connection string and replaces all other fields below.
	// For DriverSQLite, it is the database file; ":memory:" is the default.
	URL string

	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string

	// MaxOpenCxns caps the connections held open.
	// A zero value leaves DriverPostgres unlimited and sets DriverSQLite to 1.
	MaxOpenCxns int
}

// Connect opens a connection according to config.
//
// Statements gorm logs are written to l.
func Connect(config CxnConfig, env burrow.Environment, l logger.Logger) (*DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(config.Driver) {
	case DriverSQLite:
		dsn := config.URL
		if dsn == "" {
			dsn = ":memory:"
		}
		dialector = sqlite.Open(dsn)

		if config.MaxOpenCxns == 0 {
			config.MaxOpenCxns = 1
		}

	case "", DriverPostgres:
		dialector = postgres.Open(buildCxnStr(config))

	default:
		return nil, fmt.Errorf("%w: unknown driver %q", burrow.ErrBadConfig, config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewGormLogger(l, env),
		NowFunc: func() time.Time {
			return time.Now().Truncate(time.Microsecond)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: cannot connect: %s", burrow.ErrBadConfig, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", burrow.ErrUnexpected, err)
	}

	if config.MaxOpenCxns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenCxns)
		sqlDB.SetMaxIdleConns(config.MaxOpenCxns)
		// NOTE: an in-memory sqlite database lives only as long as its connection.
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
	}

	return NewDB(db), nil
}

func buildCxnStr(config CxnConfig) string {
	if config.URL != "" {
		return config.URL
	}

	if config.SSLMode == "" {
		config.SSLMode = "prefer"
	}

	return fmt.Sprintf(
		cxnStr,
		config.Host,
		config.Port,
		config.Name,
		config.User,
		config.Password,
		config.SSLMode,
	)
}
