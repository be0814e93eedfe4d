package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeMaps(t *testing.T) {
	map1 := map[string]string{"a": "1", "b": "2"}
	map2 := map[string]string{"b": "3", "c": "4"}

	merged := MergeMaps(map1, map2)

	assert.Equal(t, map[string]string{"a": "1", "b": "3", "c": "4"}, merged)
}

func TestMergeMaps_NilDestination(t *testing.T) {
	merged := MergeMaps(nil, map[string]string{"a": "1"})
	assert.Equal(t, map[string]string{"a": "1"}, merged)
}

func TestSubtractMaps(t *testing.T) {
	map1 := map[string]string{"a": "1", "b": "2", "c": "3"}
	map2 := map[string]string{"b": ""}

	result := SubtractMaps(map1, map2)

	assert.Equal(t, map[string]string{"a": "1", "c": "3"}, result)
}

func TestSubtractMaps_NilSource(t *testing.T) {
	assert.Nil(t, SubtractMaps(nil, map[string]string{"a": "1"}))
}

func TestCompareStringMaps(t *testing.T) {
	assert.True(t, CompareStringMaps(map[string]string{"a": "1"}, map[string]string{"a": "1"}))
	assert.False(t, CompareStringMaps(map[string]string{"a": "1"}, map[string]string{"a": "2"}))
	assert.False(t, CompareStringMaps(map[string]string{"a": "1"}, map[string]string{"a": "1", "b": "2"}))
}
