package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestOptions_DSN(t *testing.T) {
	dsn := Options{User: "vms", Pass: "pw", Host: "db", Port: "3306", Name: "vms"}.DSN()
	assert.Contains(t, dsn, "vms:pw@tcp(db:3306)/vms")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	cfg, err := mysql.ParseDSN(dsn)
	assert.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Loc.String())
	assert.True(t, cfg.ClientFoundRows)
}

func TestIsDuplicateKey(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	assert.True(t, IsDuplicateKey(dup))
	assert.True(t, IsDuplicateKey(fmt.Errorf("insert user: %w", dup)))
	assert.False(t, IsDuplicateKey(&mysql.MySQLError{Number: 1452}))
	assert.False(t, IsDuplicateKey(errors.New("1062")))
}
