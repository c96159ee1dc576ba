// Package epub reads the metadata of an epub file
package epub

import (
	"archive/zip"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/gnur/booklend"
)

var ErrNoRootfile = errors.New("Cannot parse container")

// ParseFile takes a filepath and returns the book it describes.
// The file name is used as title when the package has none.
func ParseFile(bookpath string) (bk *booklend.BookInput, err error) {
	defer func() {
		if r := recover(); r != nil {
			bk = nil
			err = fmt.Errorf("Unknown error parsing book. Skipping. Error: %s", r)
		}
	}()

	zr, err := zip.OpenReader(bookpath)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	container, err := readXML(zr, "META-INF/container.xml")
	if err != nil {
		return nil, err
	}
	rootfile := ""
	for _, e := range container.FindElements("//rootfiles/rootfile[@full-path]") {
		rootfile = e.SelectAttrValue("full-path", "")
	}
	if rootfile == "" {
		return nil, ErrNoRootfile
	}

	opf, err := readXML(zr, path.Clean(strings.TrimPrefix(rootfile, "/")))
	if err != nil {
		return nil, err
	}

	book := &booklend.BookInput{
		Title: strings.TrimSuffix(filepath.Base(bookpath), filepath.Ext(bookpath)),
	}
	if e := opf.FindElement("//title"); e != nil && e.Text() != "" {
		book.Title = e.Text()
	}
	if e := opf.FindElement("//creator"); e != nil {
		book.Author = e.Text()
	}
	if e := opf.FindElement("//description"); e != nil {
		book.Description = e.Text()
	}
	if e := opf.FindElement("//language"); e != nil {
		book.Language = e.Text()
	}
	return book, nil
}

func readXML(zr *zip.ReadCloser, name string) (*etree.Document, error) {
	f, err := zr.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(f); err != nil {
		return nil, err
	}
	return doc, nil
}
