package sqliteutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	schema := `CREATE TABLE IF NOT EXISTS kv (k TEXT PRIMARY KEY, v TEXT);`

	db, err := OpenDB(Config{File: path}, schema)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec("INSERT INTO kv (k, v) VALUES ('a', 'b')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = OpenDB(Config{File: path}, schema)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var v string
	err = db.QueryRow("SELECT v FROM kv WHERE k = 'a'").Scan(&v)
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestOpenDBWithoutPath(t *testing.T) {
	_, err := OpenDB(Config{})
	require.Error(t, err)
}
