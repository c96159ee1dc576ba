package main

import (
	"context"
	"errors"

	"github.com/gnur/booklend"
	"github.com/gnur/booklend/gormdb"
	"github.com/jaffee/commandeer"
	log "github.com/sirupsen/logrus"
)

// Configuration holds the importer flags
type Configuration struct {
	Database  string `help:"Database to import into, file://<path> or postgres://..."`
	ImportDir string `help:"Directory to load book json and epub files from"`
	Normalize bool   `help:"Tidy up titles and authors before storing them?"`
	DryRun    bool   `help:"Only read the files, do not store anything"`
	Debug     bool   `help:"Enable debug mode?"`
}

func newConfig() *Configuration {
	return &Configuration{
		Database:  "file://booklend.db",
		ImportDir: ".",
	}
}

func main() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "15:04:05.999"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	err := commandeer.Run(newConfig())
	if err != nil {
		log.WithField("err", err).Fatal("failed")
	}
}

// Run does the actual import
func (cfg *Configuration) Run() error {
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.ImportDir == "" {
		return errors.New("please provide the directory to import from")
	}
	logger := log.WithField("app", "importbooks")

	var lib *booklend.Library
	if !cfg.DryRun {
		db, err := gormdb.Open(cfg.Database, logger)
		if err != nil {
			return err
		}
		defer db.Close()
		lib = booklend.New(db, logger)
	}

	log.Info("Starting import")
	result, err := cfg.Import(context.Background(), lib)
	if err != nil {
		return err
	}

	logger.WithFields(log.Fields{
		"added":   result.Added,
		"invalid": result.Invalid,
		"errors":  result.Errors,
		"dryRun":  cfg.DryRun,
	}).Info("done")
	return nil
}
