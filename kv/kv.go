package kv

import (
	"errors"
	"gallery/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
)

var ErrKeyNotFound = errors.New("key not found")

// Store is a flat key/value document store. Get and Put of a single key are
// atomic; there are no cross-key transactions.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

var Instance Store

func Init() {
	var err error
	if config.MYSQL_DSN != "" {
		Instance, err = NewGormStore(mysql.Open(config.MYSQL_DSN))
	} else if config.SQLITE_FILE != "" {
		Instance, err = NewGormStore(sqlite.Open(config.SQLITE_FILE))
	} else {
		Instance, err = NewBadgerStore(config.KV_DIR, false)
	}
	if err != nil || Instance == nil {
		panic(err)
	}
}
