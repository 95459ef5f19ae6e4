package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomInt_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := GetRandomInt(6)
		assert.GreaterOrEqual(t, n, 100000)
		assert.Less(t, n, 1000000)
	}
}

func TestGetRandomCode_Length(t *testing.T) {
	assert.Len(t, GetRandomCode(4), 4)
	assert.Len(t, GetRandomCode(6), 6)
	assert.Len(t, GetRandomCode(0), 6)
}
