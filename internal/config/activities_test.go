package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActivity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Activity
		wantErr  bool
	}{
		{
			name:     "query",
			input:    "query",
			expected: ActivityQuery,
		},
		{
			name:     "index",
			input:    "index",
			expected: ActivityIndex,
		},
		{
			name:     "dataflow",
			input:    "dataflow",
			expected: ActivityDataflow,
		},
		{
			name:    "unknown activity",
			input:   "transform",
			wantErr: true,
		},
		{
			name:    "case sensitive",
			input:   "Query",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activity, err := ParseActivity(tt.input)
			if tt.wantErr {
				require.Error(t, err)

				var cfgErr *ConfigError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, activity)
		})
	}
}

func TestValidateActivities(t *testing.T) {
	assert.NoError(t, ValidateActivities([]string{"query"}))
	assert.NoError(t, ValidateActivities([]string{"query", "index", "dataflow"}))

	err := ValidateActivities([]string{"query", "transform"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform")

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))

	assert.Error(t, ValidateActivities(nil))
	assert.Error(t, ValidateActivities([]string{}))
}
