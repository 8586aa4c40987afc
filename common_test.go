package tabstats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validTabCSV = `song,artist,year,type,gender,duration,language,tabber,source,date,difficulty,special books
Hallelujah,Leonard Cohen,1984,ballad,male,4.5,english,alice,book1,2024-01-02,3,
Wonderwall,Oasis,1995,rock,male,3.9,english,bob,web,2024-01-09,2,yes
Valerie,Amy Winehouse,2006,soul,female,3.5,english,alice,book2,2024-01-16,4,
`

const validPlayCSV = `song,artist,2024-01-02,2024-01-09
Hallelujah,Leonard Cohen,1,1
Wonderwall,Oasis,1,
Valerie,Amy Winehouse,1,1
`

const validRequestCSV = `song,artist,requested
Hallelujah,Leonard Cohen,2024-01-02
Creep,Radiohead,2024-01-09
`

// writeSource writes one source fixture and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// newTestStore returns a store with all three valid fixtures loaded.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dir := t.TempDir()
	store := NewStore()
	report := store.Load(Paths{
		Tab:     writeSource(t, dir, "tabdb.csv", validTabCSV),
		Play:    writeSource(t, dir, "playdb.csv", validPlayCSV),
		Request: writeSource(t, dir, "requestdb.csv", validRequestCSV),
	})
	require.NoError(t, report.Err())
	return store
}
