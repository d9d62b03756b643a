package database

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ManuelReschke/Newsroom/app/models"
	"github.com/ManuelReschke/Newsroom/internal/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DBConfig{User: "news", Password: "pw", Host: "db", Port: "3307", Name: "newsroom"})
	assert.Equal(t, "news:pw@tcp(db:3307)/newsroom?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestMigrateCreatesTables(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.Article{}))
	assert.True(t, db.Migrator().HasTable(&models.Advertisement{}))
	assert.True(t, db.Migrator().HasColumn(&models.Article{}, "source_reference"))
}
