package main

import (
	"log"
	"os"

	"github.com/iwneis/neishelper/core"
	"github.com/iwneis/neishelper/core/catalog"
	"github.com/iwneis/neishelper/core/checklist"
	logsvc "github.com/iwneis/neishelper/services/logger"
	"github.com/iwneis/neishelper/storage/database"
	sqlxrepos "github.com/iwneis/neishelper/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	appLogger := logsvc.NewRollbarLogger(logger, conf)
	appLogger.Enable(false)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)

	cat, err := catalog.Load()
	errAndDie(err)

	// start CLI
	cli := commandLine{
		db:          db,
		svc:         checklist.NewService(sqlxrepos.NewChecklistRepository(db), conf),
		catalog:     cat,
		logger:      appLogger,
		saveTimeout: conf.Checklist.SaveTimeout,
		out:         os.Stdout,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
