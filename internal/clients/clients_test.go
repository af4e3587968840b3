package clients

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitlabAuth(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		pat      string
		wantErr  string
	}{
		{name: "missing endpoint", endpoint: "", pat: "token", wantErr: "endpoint is required"},
		{name: "missing token", endpoint: "https://gitlab.example.com", pat: "", wantErr: "PAT is required"},
		{name: "valid", endpoint: "https://gitlab.example.com", pat: "token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewGitLabClient(tt.endpoint, tt.pat).GitlabAuth()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}
