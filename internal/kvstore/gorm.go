package kvstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// kvEntry is the single table behind the gorm backend.
type kvEntry struct {
	Key   string `gorm:"primaryKey;size:255;column:k"`
	Value string `gorm:"type:text;column:v"`
}

func (kvEntry) TableName() string { return "kv_entries" }

// Gorm stores the collections in a relational database, sqlite file or
// postgres depending on the DSN.
type Gorm struct {
	db *gorm.DB
}

func OpenGorm(dsn string) (*Gorm, error) {
	var dialector gorm.Dialector
	if isPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "kvstore: open database")
	}
	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, errors.Wrap(err, "kvstore: migrate kv_entries")
	}
	return &Gorm{db: db}, nil
}

func (g *Gorm) Get(ctx context.Context, key string) (string, bool, error) {
	var e kvEntry
	err := g.db.WithContext(ctx).First(&e, "k = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "kvstore: get %s", key)
	}
	return e.Value, true, nil
}

func (g *Gorm) Set(ctx context.Context, key, value string) error {
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "k"}},
			DoUpdates: clause.AssignmentColumns([]string{"v"}),
		}).
		Create(&kvEntry{Key: key, Value: value}).Error
	return errors.Wrapf(err, "kvstore: set %s", key)
}

func (g *Gorm) Remove(ctx context.Context, key string) error {
	err := g.db.WithContext(ctx).Delete(&kvEntry{}, "k = ?", key).Error
	return errors.Wrapf(err, "kvstore: remove %s", key)
}

func (g *Gorm) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
