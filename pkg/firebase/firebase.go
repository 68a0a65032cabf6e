package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// GoogleIdentity is the subset of a verified Firebase ID token used for Google sign-in.
type GoogleIdentity struct {
	UID    string
	Email  string
	Name   string
	Avatar string
}

// App holds the initialized Firebase auth client
type App struct {
	AuthClient *auth.Client
}

// InitFirebase initializes the Firebase application and authentication client
func InitFirebase(ctx context.Context, credentialsPath string) (*App, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	firebaseApp, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}
	return &App{AuthClient: authClient}, nil
}

// VerifyGoogleToken verifies idToken and extracts the profile claims.
func (a *App) VerifyGoogleToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	token, err := a.AuthClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	identity := &GoogleIdentity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	if picture, ok := token.Claims["picture"].(string); ok {
		identity.Avatar = picture
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("firebase token has no email claim")
	}
	return identity, nil
}
