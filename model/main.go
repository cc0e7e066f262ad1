package model

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ezlinkai/console/common"
	"github.com/ezlinkai/console/common/config"
	"github.com/ezlinkai/console/common/env"
	"github.com/ezlinkai/console/common/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB
var LOG_DB *gorm.DB

func newDBLogger() gormlogger.Interface {
	if config.DebugSQLEnabled {
		return gormlogger.Default.LogMode(gormlogger.Info)
	}
	return gormlogger.Default.LogMode(gormlogger.Silent)
}

func chooseDB(envName string) (*gorm.DB, error) {
	dsn := os.Getenv(envName)

	switch {
	case strings.HasPrefix(dsn, "postgres://"):
		// Use PostgreSQL
		logger.SysLog("using PostgreSQL as database")
		common.UsingPostgreSQL = true
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), &gorm.Config{
			PrepareStmt: true, // precompile SQL
			Logger:      newDBLogger(),
		})
	case dsn != "":
		// Use MySQL
		logger.SysLog("using MySQL as database")
		common.UsingMySQL = true
		return gorm.Open(mysql.Open(dsn), &gorm.Config{
			PrepareStmt: true,
			Logger:      newDBLogger(),
		})
	default:
		// Use SQLite
		logger.SysLog("SQL_DSN not set, using SQLite as database")
		common.UsingSQLite = true
		sqlitePath := fmt.Sprintf("%s?_busy_timeout=%d", common.SQLitePath, common.SQLiteBusyTimeout)
		return gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{
			PrepareStmt: true,
			Logger:      newDBLogger(),
		})
	}
}

func InitDB(envName string) (db *gorm.DB, err error) {
	db, err = chooseDB(envName)
	if err != nil {
		logger.FatalLog("failed to initialize database: " + err.Error())
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(env.Int("SQL_MAX_IDLE_CONNS", 100))
	sqlDB.SetMaxOpenConns(env.Int("SQL_MAX_OPEN_CONNS", 1000))
	sqlDB.SetConnMaxLifetime(time.Second * time.Duration(env.Int("SQL_MAX_LIFETIME", 60)))

	if !config.IsMasterNode {
		return db, err
	}
	logger.SysLog("database migration started")
	err = migrateDB(db)
	return db, err
}

func migrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Option{},
		&ResourcePackage{},
		&PackageDeduction{},
		&ChargeConfig{},
		&ChargeOrder{},
		&Log{},
	)
	if err != nil {
		return err
	}
	logger.SysLog("database migrated")
	return nil
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	err = sqlDB.Close()
	return err
}

func CloseDB() error {
	if LOG_DB != DB {
		err := closeDB(LOG_DB)
		if err != nil {
			return err
		}
	}
	return closeDB(DB)
}
