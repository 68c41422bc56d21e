package auth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	analyticsdata "google.golang.org/api/analyticsdata/v1beta"
	sheets "google.golang.org/api/sheets/v4"
)

// Scopes are the only permissions the credential is granted.
var Scopes = []string{
	analyticsdata.AnalyticsReadonlyScope,
	sheets.SpreadsheetsScope,
}

func FromFile(ctx context.Context, path string) (*google.Credentials, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	return FromJSON(ctx, b)
}

func FromJSON(ctx context.Context, b []byte) (*google.Credentials, error) {
	creds, err := google.CredentialsFromJSON(ctx, b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account json: %w", err)
	}
	return creds, nil
}
