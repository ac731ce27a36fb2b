package domain

import "time"

// Lead is a submitted contact request. Leads are append-only.
type Lead struct {
	ID        string    `json:"id" dynamodbav:"id"`
	ClientID  string    `json:"client_id" dynamodbav:"clientId"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Message   string    `json:"message" dynamodbav:"message"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"createdAt"`
}
