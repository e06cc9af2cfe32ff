package postgres

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

type Db struct {
	PostgresClient *sql.DB
}

// ConnectDB establishes a connection to the PostgreSQL journal database,
// retrying while the database comes up.
func ConnectDB() (*Db, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
	)

	maxRetries, _ := strconv.Atoi(os.Getenv("MAX_DB_ATTEMPTS"))
	if maxRetries == 0 {
		maxRetries = 10
	}

	var err error
	for i := 0; i < maxRetries; i++ {
		var db *sql.DB
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			if err = db.Ping(); err == nil {
				log.Info("connected to PostgreSQL journal database")
				return &Db{PostgresClient: db}, nil
			}
		}
		log.WithError(err).Warnf("attempt %d: PostgreSQL not reachable", i+1)
		time.Sleep(2 * time.Second)
	}

	return nil, errors.Wrap(err, "failed to connect to PostgreSQL after multiple retries")
}

// Stop closes the PostgreSQL connection.
func (db *Db) Stop() {
	if db.PostgresClient != nil {
		if err := db.PostgresClient.Close(); err != nil {
			log.WithError(err).Error("error closing PostgreSQL connection")
		}
	}
}

// InitSchema creates the journal tables from the schema file.
func (db *Db) InitSchema() error {
	schemaPath := filepath.Join("db", "postgres", "schema.sql")
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return errors.Wrap(err, "failed to read schema file")
	}

	if _, err := db.PostgresClient.Exec(string(content)); err != nil {
		return errors.Wrap(err, "failed to execute schema")
	}

	log.Info("journal schema initialized")
	return nil
}
