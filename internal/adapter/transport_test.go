package adapter

import (
	"testing"
	"time"

	"github.com/MKhiriev/go-history-sync/internal/config"
	"github.com/MKhiriev/go-history-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransport_ByScheme(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    any
		wantErr error
	}{
		{name: "http", address: "http://localhost:8080", want: &httpTransport{}},
		{name: "https", address: "https://history.example.com", want: &httpTransport{}},
		{name: "bare host", address: "localhost:8080", want: &httpTransport{}},
		{name: "file", address: "file:///mnt/share", want: &fileTransport{}},
		{name: "ftp", address: "ftp://host", wantErr: ErrUnsupportedScheme},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTransport(config.ClientAdapter{Address: tt.address, RequestTimeout: time.Second}, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, tr)
		})
	}
}

func TestNewTransport_EmptyAddress(t *testing.T) {
	_, err := NewTransport(config.ClientAdapter{}, logger.Nop())
	require.Error(t, err)
}

func TestResolveHistoryURL(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
		wantErr bool
	}{
		{name: "http", address: "http://localhost:8080/", want: "http://localhost:8080/api/projects/r1/history"},
		{name: "bare host", address: "127.0.0.1:8080", want: "http://127.0.0.1:8080/api/projects/r1/history"},
		{name: "file dir", address: "file:///mnt/share", want: "file:///mnt/share/r1.vcs"},
		{name: "file trailing slash", address: "file:///mnt/share/", want: "file:///mnt/share/r1.vcs"},
		{name: "unsupported", address: "ftp://host", wantErr: true},
		{name: "empty", address: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveHistoryURL(tt.address, "r1")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ResolveHistoryURL("http://localhost", "")
	require.Error(t, err)
}
