package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
)

// GetGmailClient builds the authenticated HTTP client the digest mailer
// sends through. Returns nil when no credential file is present so the
// server can run without email.
func GetGmailClient() *http.Client {
	credPath := os.Getenv("GMAIL_CREDENTIALS_FILE")
	if credPath == "" {
		credPath = "credentials.json"
	}

	b, err := os.ReadFile(credPath)
	if err != nil {
		log.Printf("Gmail disabled: cannot read %s: %v", credPath, err)
		return nil
	}

	// Send scope only; this service never reads the mailbox.
	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		log.Printf("Gmail disabled: cannot parse client secret: %v", err)
		return nil
	}

	return getClient(config)
}

// getClient retrieves a token from a local file or prompts the user to login.
func getClient(config *oauth2.Config) *http.Client {
	tokFile := os.Getenv("GMAIL_TOKEN_FILE")
	if tokFile == "" {
		tokFile = "token.json"
	}
	tok, err := tokenFromFile(tokFile)
	if err != nil {
		tok = getTokenFromWeb(config)
		saveToken(tokFile, tok)
	}
	return config.Client(context.Background(), tok)
}

// Request a token from the web, then return the retrieved token.
func getTokenFromWeb(config *oauth2.Config) *oauth2.Token {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("\nOpen this link to authorize Gmail sending:\n%v\n", authURL)
	fmt.Printf("Paste the code here: ")

	var authCode string
	if _, err := fmt.Scan(&authCode); err != nil {
		log.Fatalf("Unable to read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), authCode)
	if err != nil {
		log.Fatalf("Unable to retrieve token from web: %v", err)
	}
	return tok
}

// Retrieves a token from a local file.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// Saves a token to a file path.
func saveToken(path string, token *oauth2.Token) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		log.Fatalf("Unable to cache oauth token: %v", err)
	}
	defer f.Close()
	json.NewEncoder(f).Encode(token)
}
