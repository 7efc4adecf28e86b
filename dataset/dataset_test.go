package dataset

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueText(t *testing.T) {
	assert.Equal(t, "", Null().Text())
	assert.Equal(t, "abc", String("abc").Text())
	assert.Equal(t, "42", Int(42).Text())
	assert.Equal(t, "-12.5", Float(-12.5).Text())

	ts := time.Date(2024, 3, 16, 14, 30, 5, 0, time.UTC)
	assert.Equal(t, "2024-03-16", Date(ts).Text())
	assert.Equal(t, "14:30:05", TimeOfDay(ts).Text())
	assert.Equal(t, "2024-03-16 14:30:05", DateTime(ts).Text())
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Null().Equal(Null()))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(String("b")))
	// Null and empty string render identically but are distinct values.
	assert.False(t, Null().Equal(String("")))
	assert.False(t, Int(1).Equal(String("1")))
}

func TestFromRecords(t *testing.T) {
	ds := FromRecords([]string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Columns())
	// Short records are padded with null.
	assert.True(t, ds.Column("b")[1].IsNull())
}

func TestDropAndRename(t *testing.T) {
	ds := FromRecords([]string{"a", "b", "c"}, [][]string{{"1", "2", "3"}})

	assert.Equal(t, 1, ds.Drop("b", "missing"))
	assert.Equal(t, []string{"a", "c"}, ds.Columns())

	renamed := ds.Rename(map[string]string{"a": "x", "missing": "y"})
	assert.Equal(t, 1, renamed)
	assert.Equal(t, []string{"x", "c"}, ds.Columns())
	assert.Equal(t, "1", ds.Column("x")[0].Text())
}

func TestSelect(t *testing.T) {
	ds := FromRecords([]string{"a", "b"}, [][]string{{"1", "2"}})

	out := ds.Select([]string{"b", "a", "new"})
	assert.Equal(t, []string{"b", "a", "new"}, out.Columns())
	assert.Equal(t, "2", out.Column("b")[0].Text())
	assert.True(t, out.Column("new")[0].IsNull())

	// Selecting the same list twice yields an identical table.
	again := out.Select([]string{"b", "a", "new"})
	assert.Equal(t, out.Columns(), again.Columns())
	assert.Equal(t, out.Len(), again.Len())
}

func TestAppendUnionOfColumns(t *testing.T) {
	left := FromRecords([]string{"a", "b"}, [][]string{{"1", "2"}})
	right := FromRecords([]string{"b", "c"}, [][]string{{"20", "30"}})

	left.Append(right)
	assert.Equal(t, 2, left.Len())
	assert.Equal(t, []string{"a", "b", "c"}, left.Columns())
	assert.True(t, left.Column("a")[1].IsNull())
	assert.Equal(t, "20", left.Column("b")[1].Text())
	assert.True(t, left.Column("c")[0].IsNull())
	assert.Equal(t, "30", left.Column("c")[1].Text())
}

func TestDeduplicate(t *testing.T) {
	ds := FromRecords([]string{"a", "b"}, [][]string{
		{"1", "2"},
		{"1", "2"},
		{"1", "3"},
	})
	assert.Equal(t, 1, ds.Deduplicate())
	assert.Equal(t, 2, ds.Len())

	// Rows differing in one field both survive; rerunning is a no-op.
	assert.Equal(t, 0, ds.Deduplicate())
}

func TestDeduplicateDistinguishesNullFromEmpty(t *testing.T) {
	ds := New()
	require.NoError(t, ds.SetColumn("a", []Value{Null(), String("")}))
	assert.Equal(t, 0, ds.Deduplicate())
	assert.Equal(t, 2, ds.Len())
}

func TestApplyMissingColumnIsNoop(t *testing.T) {
	ds := FromRecords([]string{"a"}, [][]string{{"1"}})
	ds.Apply("missing", func(Value) Value { return String("x") })
	assert.Equal(t, "1", ds.Column("a")[0].Text())
}

func TestCSVRoundTrip(t *testing.T) {
	ds := FromRecords([]string{"name", "count"}, [][]string{
		{"Colisão, frontal", "3"},
		{"", "0"},
	})

	var buf bytes.Buffer
	require.NoError(t, ds.WriteCSV(&buf))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "count"}, back.Columns())
	assert.Equal(t, 2, back.Len())
	assert.Equal(t, "Colisão, frontal", back.Column("name")[0].Text())
	assert.Equal(t, "", back.Column("name")[1].Text())
}

func TestReadCSVEmptyInput(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
}
