package service

import (
	"io"
	"regexp"
	"strings"

	"github.com/allisson/canarydrop/internal/canary/domain"
)

const (
	sqlEngine          = "mysql"
	sqlPort            = 3306
	sqlPasswordBytes   = 16
	sqlFallbackDBName  = "canary"
	sqlMaxDBNameLength = 64
)

var invalidDBNameChars = regexp.MustCompile(`[^a-z0-9_]+`)

type sqlGenerator struct{}

// NewSQLGenerator creates a generator for fake MySQL connection credentials.
func NewSQLGenerator() Generator {
	return &sqlGenerator{}
}

func (g *sqlGenerator) Generate(random io.Reader, req GenerateRequest) (domain.Metadata, error) {
	userSuffix, err := randomHex(random, 4)
	if err != nil {
		return nil, err
	}
	password, err := randomURLSafe(random, sqlPasswordBytes)
	if err != nil {
		return nil, err
	}
	hostSuffix, err := randomHex(random, 4)
	if err != nil {
		return nil, err
	}

	conn := domain.SQLConnection{
		Host:     "db-" + hostSuffix + "." + CanaryDomain,
		Username: "canary_" + userSuffix,
		Password: password,
		Database: DatabaseName(req.Name),
		Port:     sqlPort,
		Engine:   sqlEngine,
	}
	return conn.Metadata(), nil
}

// DatabaseName derives a database identifier from a canary name: lower-cased, runs of
// characters outside [a-z0-9_] collapsed to "_", trimmed of "_" and capped at 64
// characters. Names with nothing usable map to "canary".
func DatabaseName(name string) string {
	db := invalidDBNameChars.ReplaceAllString(strings.ToLower(name), "_")
	db = strings.Trim(db, "_")
	if len(db) > sqlMaxDBNameLength {
		db = strings.TrimRight(db[:sqlMaxDBNameLength], "_")
	}
	if db == "" {
		return sqlFallbackDBName
	}
	return db
}
