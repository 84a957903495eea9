package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "no auth configured",
			config:  Config{SpreadsheetName: "Expenses"},
			wantErr: "no authentication method",
		},
		{
			name: "oauth only",
			config: Config{
				ClientID:        "id",
				ClientSecret:    "secret",
				SpreadsheetName: "Expenses",
			},
		},
		{
			name: "service account only",
			config: Config{
				ServiceAccountPath: "/tmp/sa.json",
				SpreadsheetName:    "Expenses",
			},
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID:           "id",
				ClientSecret:       "secret",
				ServiceAccountPath: "/tmp/sa.json",
				SpreadsheetName:    "Expenses",
			},
			wantErr: "multiple authentication methods",
		},
		{
			name: "missing spreadsheet name",
			config: Config{
				ServiceAccountPath: "/tmp/sa.json",
			},
			wantErr: "spreadsheet name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Expense Summary", cfg.SpreadsheetName)
	assert.True(t, cfg.EnableFormatting)
}
