package main

import (
	"log"
	"os"

	"github.com/edunova/colegio/core"
	logsvc "github.com/edunova/colegio/services/logger"
	"github.com/edunova/colegio/storage/kv"
	"github.com/edunova/colegio/storage/kvstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up storage
	store, closeStore, err := setUpKV(conf)
	errAndDie(err)
	defer closeStore()

	db, err := kvstore.Open(store, logsvc.NewStdLogger(logger))
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:      db,
		usrRepo: kvstore.NewUserRepo(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func setUpKV(conf *core.Config) (core.KVStore, func() error, error) {
	noop := func() error { return nil }

	switch conf.Storage.Driver {
	case "memory":
		return kv.NewMemory(), noop, nil
	case "sqlite":
		store, err := kv.NewSQLite(conf.Storage.DSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := kv.NewFile(conf.Storage.Dir)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
