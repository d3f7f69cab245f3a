package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/sma-results-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "school", SSLMode: "require"})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=school sslmode=require", dsn)
}
