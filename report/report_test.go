package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"memmap/process"
	"memmap/process/memory_map"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

const smaps = `00400000-0040b000 r-xp 00000000 08:01 1234 /usr/bin/sleep
Rss:                  12 kB
0060a000-0060b000 rw-p 0000a000 08:01 1234 /usr/bin/sleep
Rss:                   4 kB
01b2c000-01b4d000 rw-p 00000000 00:00 0 [heap]
Rss:                  20 kB
7f0000000000-7f0000100000 rw-p 00000000 00:00 0
Rss:                   8 kB
7ffd3c1e0000-7ffd3c201000 rw-p 00000000 00:00 0 [stack]
Rss:                   4 kB
`

func snapshot(t *testing.T) *process.Process {
	t.Helper()
	regions, err := memory_map.Parse(strings.NewReader(smaps))
	require.NoError(t, err)
	return &process.Process{PID: 42, Cmdline: "sleep 100", Regions: regions}
}

func TestNewDocument(t *testing.T) {
	addr := uint64(0x01b2c010)
	doc := NewDocument(snapshot(t), nil, Options{Top: 2, Regions: true, Addr: &addr})

	assert.Equal(t, process.ProcessID(42), doc.PID)
	assert.Equal(t, 5, doc.RegionCount)
	assert.Equal(t, uint64(48), doc.Totals[memory_map.CounterRss])
	assert.Equal(t, uint64(48), doc.Summary.Total)
	require.Len(t, doc.Summary.Groups, 2)
	assert.Equal(t, "[heap]", doc.Summary.Groups[0].Label)
	assert.Equal(t, "/usr/bin/sleep", doc.Summary.Groups[1].Label)
	assert.Equal(t, uint64(12), doc.Summary.Remainder)

	require.Len(t, doc.Regions, 5)
	assert.Equal(t, "000000400000", doc.Regions[0].Start)
	assert.Equal(t, "r-xp", doc.Regions[0].Perms)
	assert.Equal(t, "08:01", doc.Regions[0].Device)
	assert.Equal(t, "", doc.Regions[3].Path)
	assert.Equal(t, memory_map.KindAnonymous, doc.Regions[3].Kind)

	require.NotNil(t, doc.Lookup)
	assert.Equal(t, "0x1b2c010", doc.Lookup.Addr)
	require.NotNil(t, doc.Lookup.Region)
	assert.Equal(t, "[heap]", doc.Lookup.Region.Path)
}

func TestNewDocument_UnmappedLookup(t *testing.T) {
	addr := uint64(0x10)
	doc := NewDocument(snapshot(t), nil, Options{Addr: &addr})
	require.NotNil(t, doc.Lookup)
	assert.Nil(t, doc.Lookup.Region)
	assert.Nil(t, doc.Regions)
}

func TestRenderTable(t *testing.T) {
	info := &process.ProcessInfo{PID: 42, Name: "sleep", PPID: 1, State: process.ProcessSleeping, Threads: 1}
	addr := uint64(0x7ffd3c1e0000)
	doc := NewDocument(snapshot(t), info, Options{Top: 3, Regions: true, Addr: &addr})

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, doc, false))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, " Process: 42: sleep 100\n"))
	assert.Contains(t, out, "sleep, ppid 1, state S (sleep), 1 threads")
	assert.Contains(t, out, "5 regions")
	assert.Contains(t, out, "[heap]")
	assert.Contains(t, out, "/usr/bin/sleep")
	assert.Contains(t, out, "(1 more)")
	assert.Contains(t, out, "48.0 KiB")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "is in 7ffd3c1e0000-7ffd3c201000 rw-p [stack]")
	assert.NotContains(t, out, "\033[")

	lines := strings.Split(out, "\n")
	var heapLine string
	for _, l := range lines {
		if strings.Contains(l, "[heap]") && strings.Contains(l, "heap ") {
			heapLine = l
			break
		}
	}
	require.NotEmpty(t, heapLine)
	assert.Contains(t, heapLine, "20.0 KiB")
	assert.Contains(t, heapLine, "41.7%")
}

func TestRenderTable_Color(t *testing.T) {
	doc := NewDocument(snapshot(t), nil, Options{})

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, doc, true))
	assert.Contains(t, buf.String(), "\033[")
}

func TestRenderTable_ZeroTotal(t *testing.T) {
	doc := NewDocument(snapshot(t), nil, Options{Counter: memory_map.CounterSwap})

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, doc, false))
	assert.Contains(t, buf.String(), "0.0%")
	assert.NotContains(t, buf.String(), "NaN")
}

func TestWrite_JSON(t *testing.T) {
	doc := NewDocument(snapshot(t), nil, Options{Top: 1})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, doc, false))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, float64(42), decoded["pid"])

	summary := decoded["summary"].(map[string]interface{})
	assert.Equal(t, "Rss", summary["counter"])
	groups := summary["groups"].([]interface{})
	require.Len(t, groups, 1)
	assert.Equal(t, "heap", groups[0].(map[string]interface{})["kind"])
}

func TestWrite_YAML(t *testing.T) {
	doc := NewDocument(snapshot(t), nil, Options{Top: 1})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, doc, false))

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 42, decoded["pid"])
	assert.Contains(t, buf.String(), "kind: heap")
	assert.Contains(t, buf.String(), "label: '[heap]'")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", NewDocument(snapshot(t), nil, Options{}), false)
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	table := NewTable(
		ColumnSpec{Header: "NAME"},
		ColumnSpec{Header: "N", AlignRight: true},
	)
	table.AddRow("alpha", "1")
	table.AddRow("b", "")
	table.AddSeparator()
	table.AddRow("total", "100")

	var buf bytes.Buffer
	require.NoError(t, table.Render(&buf))
	assert.Equal(t, "NAME    N\n----- ---\nalpha   1\nb       -\n----- ---\ntotal 100\n", buf.String())
}

func TestBarAndShorten(t *testing.T) {
	assert.Equal(t, "░░░░", bar(0, 4))
	assert.Equal(t, "██░░", bar(0.5, 4))
	assert.Equal(t, "████", bar(1, 4))
	assert.Equal(t, "/usr/lib/x", shorten("/usr/lib/x", 20))
	assert.Equal(t, "...89", shorten("0123456789", 5))
}
