// Package google provides OAuth2 authentication and token storage for the
// Google Calendar API.
//
// Tokens are stored per account as JSON files under the user cache directory,
// so one operator can keep several Google accounts authorized side by side.
package google
