package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Render writes header and rows as CSV. Every row must have as many
// fields as the header.
func Render(w io.Writer, header []string, rows [][]string) error {
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d has %d fields, header has %d", i, len(row), len(header))
		}
	}

	writer := csv.NewWriter(w)
	err := writer.Write(header)
	if err != nil {
		return err
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return err
	}
	return writer.Error()
}

// WriteFile renders into a temporary file next to path and renames it over
// path, an existing artifact is replaced whole or not at all.
func WriteFile(path string, header []string, rows [][]string) error {
	buff := bytes.NewBuffer(nil)
	err := Render(buff, header, rows)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	_, err = tmp.Write(buff.Bytes())
	if err != nil {
		tmp.Close()
		return err
	}
	err = tmp.Close()
	if err != nil {
		return err
	}
	err = os.Chmod(tmpPath, 0644)
	if err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
