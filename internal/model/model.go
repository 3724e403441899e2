// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

// User is one row of the user_data table, in column order.
// Ownership transfers to the caller once a row is yielded; nothing in
// this service mutates a User after producing it.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Age   int    `json:"age"`
}
