package logrecords

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildLog concatenates lines (each followed by '\n') and returns the
// starting Offset of each line alongside the resulting bytes.
func buildLog(lines []string) ([]byte, []Offset) {
	var buf bytes.Buffer
	offsets := make([]Offset, 0, len(lines))
	var byteOffset int64
	for _, line := range lines {
		offsets = append(offsets, Offset{ByteOffset: byteOffset, LineLength: int64(len(line))})
		buf.WriteString(line)
		buf.WriteByte('\n')
		byteOffset += int64(len(line)) + 1
	}
	return buf.Bytes(), offsets
}

func mustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}

type offsetCase struct {
	target string
	want   *int // index into offsets, nil for "not found"
}

func runSinceCases(t *testing.T, lines []string, cases []offsetCase) {
	t.Helper()
	data, offsets := buildLog(lines)

	for _, tc := range cases {
		src := bytes.NewReader(data)
		got, ok, err := FindNearestOffsetSince(src, FormatCRI, mustParse(t, tc.target), 0, int64(len(data)))
		require.NoError(t, err)
		if tc.want == nil {
			assert.False(t, ok, "target %s", tc.target)
			continue
		}
		require.True(t, ok, "target %s", tc.target)
		assert.Equal(t, offsets[*tc.want], got, "target %s", tc.target)
	}
}

func runUntilCases(t *testing.T, lines []string, cases []offsetCase) {
	t.Helper()
	data, offsets := buildLog(lines)

	for _, tc := range cases {
		src := bytes.NewReader(data)
		got, ok, err := FindNearestOffsetUntil(src, FormatCRI, mustParse(t, tc.target), 0, int64(len(data)))
		require.NoError(t, err)
		if tc.want == nil {
			assert.False(t, ok, "target %s", tc.target)
			continue
		}
		require.True(t, ok, "target %s", tc.target)
		assert.Equal(t, offsets[*tc.want], got, "target %s", tc.target)
	}
}

func idx(i int) *int { return &i }

var normalLines = []string{
	"2024-10-01T05:40:46.960135302Z stdout F linenum 1",
	"2024-10-01T05:40:48.840712595Z stdout F linenum 2",
	"2024-10-01T05:40:50.075182095Z stdout F linenum 3",
	"2024-10-01T05:40:52.222363431Z stdout F linenum 4",
	"2024-10-01T05:40:54.911909292Z stdout F linenum 5",
	"2024-10-01T05:40:57.041413876Z stdout F linenum 6",
	"2024-10-01T05:40:58.197779961Z stdout F linenum 7",
	"2024-10-01T05:40:58.564018502Z stdout F linenum 8",
	"2024-10-01T05:40:58.612948127Z stdout F linenum 9",
	"2024-10-01T05:40:59.103901461Z stdout F linenum 10",
}

func TestFindNearestOffsetSinceNormal(t *testing.T) {
	runSinceCases(t, normalLines, []offsetCase{
		{"2024-10-01T05:40:46.960135302Z", idx(0)},
		{"2024-10-01T05:40:59.103901461Z", idx(9)},
		{"2024-10-01T05:40:46.960135301Z", idx(0)},
		{"2024-10-01T05:40:59.103901462Z", nil},
		{"2024-10-01T05:40:52.222363431Z", idx(3)},
		{"2024-10-01T05:40:52.222363430Z", idx(3)},
	})
}

func TestFindNearestOffsetSinceOneLine(t *testing.T) {
	lines := []string{"2024-10-01T05:40:23.308676722Z stdout F linenum 1"}
	runSinceCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:23.308676722Z", idx(0)},
		{"2024-10-01T05:40:23.308676721Z", idx(0)},
		{"2024-10-01T05:40:23.308676723Z", nil},
	})
}

func TestFindNearestOffsetSinceEmpty(t *testing.T) {
	src := bytes.NewReader(nil)
	_, ok, err := FindNearestOffsetSince(src, FormatCRI, mustParse(t, "2024-10-01T05:40:23.308676722Z"), 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindNearestOffsetSinceMalformedSingle(t *testing.T) {
	lines := []string{"failed"}
	runSinceCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:23.308676722Z", nil},
	})
}

func TestFindNearestOffsetSinceMalformedMixed(t *testing.T) {
	lines := []string{
		"failed",
		"2024-10-01T05:40:25.221410625Z stdout F linenum 2",
		"2024-10-01T05:40:25.869390042Z stdout F linenum 3",
		"2024-10-01T05:40:27.180909751Z stdout F linenum 4",
		"failed",
		"failed",
		"2024-10-01T05:40:28.706906543Z stdout F linenum 7",
		"failed",
		"2024-10-01T05:40:28.706906543Z stdout F linenum 8",
		"failed",
	}
	runSinceCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:25.869390042Z", idx(2)},
		{"2024-10-01T05:40:25.221410625Z", idx(1)},
		{"2024-10-01T05:40:28.706906542Z", idx(6)},
		{"2024-10-01T05:40:25.221410621Z", idx(1)},
		{"2024-10-01T05:40:28.706906544Z", nil},
	})
}

func TestFindNearestOffsetSinceMultipleMatches(t *testing.T) {
	lines := []string{
		"2024-10-01T05:40:46.960135302Z stdout F linenum 1",
		"2024-10-01T05:40:48.840712595Z stdout F linenum 2",
		"2024-10-01T05:40:50.075182095Z stdout F linenum 3",
		"2024-10-01T05:40:52.222363431Z stdout F linenum 4",
		"2024-10-01T05:40:54.911909292Z stdout F linenum 5",
		"2024-10-01T05:40:57.041413876Z stdout F linenum 6",
		"2024-10-01T05:40:58.197779961Z stdout F linenum 7",
		"2024-10-01T05:40:58.197779961Z stdout F linenum 8",
		"2024-10-01T05:40:58.197779961Z stdout F linenum 9",
		"2024-10-01T05:40:59.103901461Z stdout F linenum 10",
	}
	runSinceCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:58.197779961Z", idx(6)},
		{"2024-10-01T05:40:58.197779960Z", idx(6)},
	})
}

func TestFindNearestOffsetUntilNormal(t *testing.T) {
	runUntilCases(t, normalLines, []offsetCase{
		{"2024-10-01T05:40:46.960135302Z", idx(0)},
		{"2024-10-01T05:40:59.103901461Z", idx(9)},
		{"2024-10-01T05:40:46.960135301Z", nil},
		{"2024-10-01T05:40:59.103901462Z", idx(9)},
		{"2024-10-01T05:40:52.222363431Z", idx(3)},
		{"2024-10-01T05:40:52.222363432Z", idx(3)},
	})
}

func TestFindNearestOffsetUntilOneLine(t *testing.T) {
	lines := []string{"2024-10-01T05:40:23.308676722Z stdout F linenum 1"}
	runUntilCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:23.308676722Z", idx(0)},
		{"2024-10-01T05:40:23.308676721Z", nil},
		{"2024-10-01T05:40:23.308676723Z", idx(0)},
	})
}

func TestFindNearestOffsetUntilEmpty(t *testing.T) {
	src := bytes.NewReader(nil)
	_, ok, err := FindNearestOffsetUntil(src, FormatCRI, mustParse(t, "2024-10-01T05:40:23.308676722Z"), 0, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindNearestOffsetUntilMalformedSingle(t *testing.T) {
	lines := []string{"failed"}
	runUntilCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:23.308676722Z", nil},
	})
}

func TestFindNearestOffsetUntilMalformedMixed(t *testing.T) {
	lines := []string{
		"failed",
		"2024-10-01T05:40:25.221410625Z stdout F linenum 2",
		"2024-10-01T05:40:25.869390042Z stdout F linenum 3",
		"2024-10-01T05:40:27.180909751Z stdout F linenum 4",
		"failed",
		"failed",
		"2024-10-01T05:40:28.706906543Z stdout F linenum 7",
		"failed",
		"2024-10-01T05:40:29.706906543Z stdout F linenum 8",
		"failed",
	}
	runUntilCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:25.869390042Z", idx(2)},
		{"2024-10-01T05:40:25.221410625Z", idx(1)},
		{"2024-10-01T05:40:28.706906543Z", idx(6)},
		{"2024-10-01T05:40:25.221410621Z", nil},
		{"2024-10-01T05:40:29.706906544Z", idx(8)},
	})
}

func TestFindNearestOffsetUntilMultipleMatches(t *testing.T) {
	lines := []string{
		"2024-10-01T05:40:46.960135302Z stdout F linenum 1",
		"2024-10-01T05:40:48.840712595Z stdout F linenum 2",
		"2024-10-01T05:40:50.075182095Z stdout F linenum 3",
		"2024-10-01T05:40:52.222363431Z stdout F linenum 4",
		"2024-10-01T05:40:54.911909292Z stdout F linenum 5",
		"2024-10-01T05:40:57.041413876Z stdout F linenum 6",
		"2024-10-01T05:40:58.197779961Z stdout F linenum 7",
		"2024-10-01T05:40:58.197779961Z stdout F linenum 8",
		"2024-10-01T05:40:58.197779961Z stdout F linenum 9",
		"2024-10-01T05:40:59.103901461Z stdout F linenum 10",
	}
	runUntilCases(t, lines, []offsetCase{
		{"2024-10-01T05:40:58.197779961Z", idx(8)},
		{"2024-10-01T05:40:58.197779962Z", idx(8)},
	})
}
