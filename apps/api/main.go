package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	echoapi "github.com/edunova/colegio/apps/api/echo"
	"github.com/edunova/colegio/core"
	"github.com/edunova/colegio/core/course"
	"github.com/edunova/colegio/core/messaging"
	"github.com/edunova/colegio/core/publication"
	"github.com/edunova/colegio/core/user"
	emailsvc "github.com/edunova/colegio/services/email"
	logsvc "github.com/edunova/colegio/services/logger"
	"github.com/edunova/colegio/storage/kv"
	"github.com/edunova/colegio/storage/kvstore"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage
	store, closeStore, err := setUpKV(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	defer func() {
		if err = closeStore(); err != nil {
			logger.Error(fmt.Sprintf("closing storage: %v", err), err)
		}
	}()

	db, err := kvstore.Open(store, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(kvstore.NewUserRepo(db), mailSvc)
	courseSvc := course.NewService(kvstore.NewCourseRepo(db))
	pubSvc := publication.NewService(kvstore.NewPublicationRepo(db), courseSvc, mailSvc)
	msgSvc := messaging.NewService(kvstore.NewMessageRepo(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			UserSvc:        usrSvc,
			CourseSvc:      courseSvc,
			PublicationSvc: pubSvc,
			MessagingSvc:   msgSvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
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
