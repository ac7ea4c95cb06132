package printer

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/bethropolis/dir-lens/internal/lister"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []lister.Item {
	mod := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	return []lister.Item{
		{EntryName: "docs", RelPath: "docs", Mime: "inode/directory", Dir: true, Modified: mod},
		{EntryName: "notes.txt", RelPath: "notes.txt", Mime: "text/plain", SizeBytes: 42, Modified: mod},
		{EntryName: ".env", RelPath: ".env", Mime: "text/plain", Hidden: true, SizeBytes: 7, Modified: mod},
	}
}

func TestPrintPlain(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false)

	require.NoError(t, p.PrintItems(sampleItems()))

	assert.Equal(t, "docs/\nnotes.txt\n.env\n", buf.String())
	assert.Equal(t, int64(3), p.GetCount())
}

func TestPrintLong(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false).WithLongFormat(true)

	require.NoError(t, p.PrintItems(sampleItems()))

	out := buf.String()
	assert.Contains(t, out, "inode/directory")
	assert.Contains(t, out, "text/plain")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "2024-05-17 10:30")
	assert.Contains(t, out, "docs/")
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithColors(false).WithJSON(true)

	require.NoError(t, p.PrintItems(sampleItems()))

	var decoded []lister.Item
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "notes.txt", decoded[1].EntryName)
	assert.Equal(t, "text/plain", decoded[1].Mime)
	assert.Equal(t, int64(3), p.GetCount())
}

func TestPrintJSONEmptyListing(t *testing.T) {
	var buf bytes.Buffer
	p := New().WithOutput(&buf).WithJSON(true)

	require.NoError(t, p.PrintItems(nil))

	assert.Equal(t, "[]\n", buf.String())
}
