// Package models holds the data exchanged with the DBMelt API: the user
// profile, the register/login payloads and the authentication result.
package models
