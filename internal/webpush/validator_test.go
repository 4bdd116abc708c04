package webpush

import (
	"errors"
	"testing"
)

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  error
	}{
		{
			name:     "valid FCM endpoint",
			endpoint: "https://fcm.googleapis.com/fcm/send/abc123",
			wantErr:  nil,
		},
		{
			name:     "valid Mozilla endpoint",
			endpoint: "https://updates.push.services.mozilla.com/wpush/v2/token",
			wantErr:  nil,
		},
		{
			name:     "valid WNS subdomain",
			endpoint: "https://db5p.notify.windows.com/w/?token=abc",
			wantErr:  nil,
		},
		{
			name:     "not a URL",
			endpoint: "not a url at all",
			wantErr:  ErrMalformedURL,
		},
		{
			name:     "relative URL",
			endpoint: "/fcm/send/abc123",
			wantErr:  ErrMalformedURL,
		},
		{
			name:     "missing host",
			endpoint: "https:///fcm/send/abc123",
			wantErr:  ErrMalformedURL,
		},
		{
			name:     "plain http",
			endpoint: "http://fcm.googleapis.com/x",
			wantErr:  ErrInsecureScheme,
		},
		{
			name:     "lookalike suffix domain",
			endpoint: "https://evilfcm.googleapis.com/fcm/send/abc123",
			wantErr:  ErrUntrustedDomain,
		},
		{
			name:     "unrelated domain",
			endpoint: "https://example.com/fcm/send/abc123",
			wantErr:  ErrUntrustedDomain,
		},
		{
			name:     "private IP literal",
			endpoint: "https://192.168.1.1/x",
			wantErr:  ErrUntrustedDomain,
		},
		{
			name:     "bare domain without path",
			endpoint: "https://fcm.googleapis.com",
			wantErr:  ErrMissingPath,
		},
		{
			name:     "root path only",
			endpoint: "https://fcm.googleapis.com/",
			wantErr:  ErrMissingPath,
		},
		{
			name:     "slashes only path",
			endpoint: "https://fcm.googleapis.com///",
			wantErr:  ErrMissingPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoint(tt.endpoint)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateEndpoint(%q) = %v, want nil", tt.endpoint, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateEndpoint(%q) = %v, want %v", tt.endpoint, err, tt.wantErr)
			}
		})
	}
}

func TestIsTrustedHostSubdomains(t *testing.T) {
	if !isTrustedHost("android.fcm.googleapis.com") {
		t.Error("dot-subdomain of a trusted domain should be trusted")
	}
	if isTrustedHost("evilfcm.googleapis.com") {
		t.Error("suffix without a dot separator must not be trusted")
	}
	if isTrustedHost("fcm.googleapis.com.attacker.net") {
		t.Error("trusted domain as a prefix must not be trusted")
	}
}

func TestIsInternalHost(t *testing.T) {
	internal := []string{
		"127.0.0.1", "10.0.0.5", "192.168.1.1", "172.16.3.4",
		"169.254.1.1", "0.0.0.0", "::1",
		"localhost", "push.internal", "printer.local", "nas.lan",
	}
	for _, host := range internal {
		if !isInternalHost(host) {
			t.Errorf("isInternalHost(%q) = false, want true", host)
		}
	}

	external := []string{"fcm.googleapis.com", "8.8.8.8", "notify.windows.com"}
	for _, host := range external {
		if isInternalHost(host) {
			t.Errorf("isInternalHost(%q) = true, want false", host)
		}
	}
}
