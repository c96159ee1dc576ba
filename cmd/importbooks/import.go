package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnur/booklend"
	"github.com/gnur/booklend/epub"
	jsoniter "github.com/json-iterator/go"
	"github.com/mattn/go-zglob"
	log "github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Import reads every json and epub file below ImportDir and adds the books in them.
// A nil library only counts what would have been added.
func (cfg *Configuration) Import(ctx context.Context, lib *booklend.Library) (booklend.ImportResult, error) {
	var result booklend.ImportResult

	var matches []string
	for _, ext := range []string{"*.json", "*.epub"} {
		found, err := zglob.Glob(filepath.Join(cfg.ImportDir, "**", ext))
		if err != nil {
			return result, fmt.Errorf("glob of all book files failed: %w", err)
		}
		matches = append(matches, found...)
	}
	if len(matches) == 0 {
		log.Info("finished import, no book files found")
		return result, nil
	}

	var bar *pb.ProgressBar
	if !cfg.Debug {
		bar = pb.Full.New(len(matches))
		bar.Start()
		defer bar.Finish()
	}

	for _, path := range matches {
		if bar != nil {
			bar.Increment()
		}

		books, err := readBooks(path)
		if err != nil {
			log.WithFields(log.Fields{
				"file": path,
				"err":  err,
			}).Debug("could not read book file")
			result.Invalid++
			continue
		}

		for _, in := range books {
			if in.Title == "" {
				result.Invalid++
				continue
			}
			if cfg.Normalize {
				in = normalize(in)
			}
			if lib == nil {
				result.Added++
				continue
			}
			if _, err := lib.CreateBook(ctx, in); err != nil {
				log.WithFields(log.Fields{
					"file":  path,
					"title": in.Title,
					"err":   err,
				}).Error("could not store book")
				result.Errors++
				continue
			}
			result.Added++
		}
	}

	return result, nil
}

// readBooks accepts an epub, a single book object or an array of them
func readBooks(path string) ([]booklend.BookInput, error) {
	if strings.EqualFold(filepath.Ext(path), ".epub") {
		bk, err := epub.ParseFile(path)
		if err != nil {
			return nil, err
		}
		return []booklend.BookInput{*bk}, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	if b[0] == '[' {
		var books []booklend.BookInput
		if err := json.Unmarshal(b, &books); err != nil {
			return nil, err
		}
		return books, nil
	}

	var book booklend.BookInput
	if err := json.Unmarshal(b, &book); err != nil {
		return nil, err
	}
	return []booklend.BookInput{book}, nil
}

func normalize(in booklend.BookInput) booklend.BookInput {
	in.Title = booklend.Fix(in.Title, true, false)
	in.Author = booklend.Fix(in.Author, true, true)
	return in
}
