package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintJSON(&buf, map[string]int{"id": 1}))
	assert.Equal(t, "{\n\t\"id\": 1\n}\n", buf.String())
}

func TestPrintJSONUnsupportedValue(t *testing.T) {
	var buf bytes.Buffer

	assert.Error(t, PrintJSON(&buf, make(chan int)))
	assert.Empty(t, buf.String())
}
