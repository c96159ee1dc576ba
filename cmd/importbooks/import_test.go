package main

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnur/booklend"
	"github.com/gnur/booklend/gormdb"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeEpub(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	files := map[string]string{
		"META-INF/container.xml": `<container><rootfiles><rootfile full-path="content.opf"/></rootfiles></container>`,
		"content.opf":            `<package><metadata><dc:title>anna karenina</dc:title><dc:creator>tolstoy, leo</dc:creator></metadata></package>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestReadBooks(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    []booklend.BookInput
		wantErr bool
	}{
		{
			name:    "single",
			content: `{"title":"B1","author":"Ada"}`,
			want:    []booklend.BookInput{{Title: "B1", Author: "Ada"}},
		},
		{
			name:    "array",
			content: ` [{"title":"B1"},{"title":"B2","language":"en"}]`,
			want:    []booklend.BookInput{{Title: "B1"}, {Title: "B2", Language: "en"}},
		},
		{
			name:    "empty",
			content: "  ",
			wantErr: true,
		},
		{
			name:    "garbage",
			content: "{title",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".json", tt.content)
			got, err := readBooks(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a/one.json", `{"title":"war and peace (1869)","author":"tolstoy, leo"}`)
	writeFile(t, dir, "a/b/more.json", `[{"title":"B2"},{"author":"nameless"}]`)
	writeFile(t, dir, "a/broken.json", `[{"title"`)
	writeFile(t, dir, "a/notes.txt", `{"title":"not json"}`)
	writeEpub(t, filepath.Join(dir, "a/c/anna.epub"))

	log := logrus.New()
	log.SetOutput(io.Discard)
	db, err := gormdb.Open("file://"+filepath.Join(t.TempDir(), "booklend.db"), logrus.NewEntry(log))
	require.NoError(t, err)
	defer db.Close()
	lib := booklend.New(db, logrus.NewEntry(log))

	cfg := &Configuration{ImportDir: dir, Normalize: true, Debug: true}
	result, err := cfg.Import(context.Background(), lib)
	require.NoError(t, err)
	assert.Equal(t, booklend.ImportResult{Added: 3, Invalid: 2}, result)

	books, err := lib.Books(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 3)

	titles := map[string]string{}
	for _, b := range books {
		titles[b.Title] = b.Author
	}
	assert.Equal(t, "Leo Tolstoy", titles["War And Peace"])
	assert.Contains(t, titles, "B2")
	assert.Equal(t, "Leo Tolstoy", titles["Anna Karenina"])
}

func TestImportDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "x/books.json", `[{"title":"B1"},{"title":"B2"}]`)

	cfg := &Configuration{ImportDir: dir, DryRun: true, Debug: true}
	result, err := cfg.Import(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
}
