package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
)

var scopes = []string{
	drive.DriveScope,
	forms.FormsBodyReadonlyScope,
	forms.FormsResponsesReadonlyScope,
}

// Clients bundles the Google APIs a run talks to.
type Clients struct {
	Drive *Drive
	Forms *Forms
}

// NewClients authenticates with a service account or authorized user JSON
// file. subject, when set, is the user a service account acts as.
func NewClients(ctx context.Context, credentialsFile, subject, fullNameTitle string) (*Clients, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read Google credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSONWithParams(ctx, data, google.CredentialsParams{
		Scopes:  scopes,
		Subject: subject,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse Google credentials: %w", err)
	}

	opt := option.WithTokenSource(creds.TokenSource)

	driveSvc, err := drive.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive client: %w", err)
	}

	formsSvc, err := forms.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create Forms client: %w", err)
	}

	return &Clients{
		Drive: NewDrive(driveSvc),
		Forms: NewForms(formsSvc, fullNameTitle),
	}, nil
}
