package utils

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/signalfx/golib/v3/datapoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeStringMaps(t *testing.T) {
	merged := MergeStringMaps(map[string]string{"a": "1", "b": "2"}, nil, map[string]string{"b": "3"})
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, merged)
	assert.NotNil(t, MergeStringMaps())
}

func TestCloneStringMap(t *testing.T) {
	orig := map[string]string{"a": "1"}
	clone := CloneStringMap(orig)
	clone["a"] = "2"
	assert.Equal(t, "1", orig["a"])
}

func TestFirstNonEmptyAndZero(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
	assert.Equal(t, 120, FirstNonZero(0, 120, 300))
	assert.Equal(t, 0, FirstNonZero(0))
}

type Inner struct {
	Output string
}

type outer struct {
	Inner
	Other int
}

func TestFindFieldWithEmbeddedStructs(t *testing.T) {
	o := &outer{}
	v := FindFieldWithEmbeddedStructs(o, "Output", reflect.TypeOf(""))
	require.True(t, v.IsValid())
	v.Set(reflect.ValueOf("set"))
	assert.Equal(t, "set", o.Output)

	assert.False(t, FindFieldWithEmbeddedStructs(o, "Missing", reflect.TypeOf("")).IsValid())
	assert.False(t, FindFieldWithEmbeddedStructs(o, "Other", reflect.TypeOf("")).IsValid())
}

func TestCloneInterface(t *testing.T) {
	o := &outer{Other: 5}
	c := CloneInterface(o).(*outer)
	c.Other = 6
	assert.Equal(t, 5, o.Other)
}

func TestDatapointToString(t *testing.T) {
	ts := time.Unix(0, 0).UTC()
	dp := datapoint.New("memory.used", map[string]string{"b": "2", "a": "1"}, datapoint.NewIntValue(50), datapoint.Counter, ts)
	s := DatapointToString(dp)
	assert.Contains(t, s, "memory.used: 50 (cumulative counter)")
	assert.Contains(t, s, "[a=1; b=2]")
}

func TestYAMLErrorWithContext(t *testing.T) {
	content := []byte("a: 1\nb: [\n")
	err := YAMLErrorWithContext(content, errors.New("yaml: line 2: did not find expected node content"))
	assert.Contains(t, err.Error(), "2: b: [")

	plain := errors.New("no line info")
	assert.Equal(t, plain, YAMLErrorWithContext(content, plain))
}
