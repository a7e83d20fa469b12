package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask_Option(t *testing.T) {
	task := &Task{Options: map[string]any{"prefix": "APP_", "empty": nil}}

	assert.Equal(t, "APP_", task.Option("prefix", ""))
	assert.Equal(t, "x", task.Option("empty", "x"))
	assert.Equal(t, 3, task.Option("missing", 3))
	assert.Equal(t, 1, (&Task{}).Option("missing", 1))
}
