package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadAll_ParsesWellFormedLines(t *testing.T) {
	input := "0;alpha;100\n1;beta;200\n2;alpha;100\n"

	records, err := ReadAll(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Equal(t, []Record{
		{Clock: 0, Key: "alpha", Size: 100},
		{Clock: 1, Key: "beta", Size: 200},
		{Clock: 2, Key: "alpha", Size: 100},
	}, records)
}

func TestReadAll_PreservesBlankLinesAsIdleCycles(t *testing.T) {
	input := "0;alpha;100\n\n   \n1;beta;200\n"

	records, err := ReadAll(strings.NewReader(input))

	assert.NoError(t, err)
	assert.Equal(t, []Record{
		{Clock: 0, Key: "alpha", Size: 100},
		{Idle: true},
		{Idle: true},
		{Clock: 1, Key: "beta", Size: 200},
	}, records)
}

func TestReadAll_SkipsMalformedLinesButKeepsGoing(t *testing.T) {
	// GIVEN a trace with a line missing its size field
	input := "0;alpha;100\n1;beta\n2;gamma;50\n"

	// WHEN it is read
	records, err := ReadAll(strings.NewReader(input))

	// THEN the malformed line is dropped but parsing continues
	assert.NoError(t, err)
	assert.Equal(t, []Record{
		{Clock: 0, Key: "alpha", Size: 100},
		{Clock: 2, Key: "gamma", Size: 50},
	}, records)
}

func TestKeys(t *testing.T) {
	records := []Record{{Key: "a"}, {Key: "b"}, {Key: "a"}}

	assert.Equal(t, []string{"a", "b", "a"}, Keys(records))
}
