package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SubscriberList names a marketing list
type SubscriberList string

const (
	ListNewsletter  SubscriberList = "newsletter"
	ListWaitingList SubscriberList = "waiting_list"
)

func (l SubscriberList) IsValid() bool {
	return l == ListNewsletter || l == ListWaitingList
}

// Subscriber is one email on one list. (email, list) is unique.
type Subscriber struct {
	ID        uuid.UUID      `json:"id"`
	Email     string         `json:"email"`
	Name      null.String    `json:"name,omitempty"`
	List      SubscriberList `json:"list"`
	Role      null.String    `json:"role,omitempty"`
	Source    null.String    `json:"source,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewsletterInput subscribes an email to the newsletter
type NewsletterInput struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"max=100"`
	Source string `json:"source" binding:"max=50"`
}

// WaitingListInput adds an email to the launch waiting list
type WaitingListInput struct {
	Email  string `json:"email" binding:"required,email"`
	Name   string `json:"name" binding:"max=100"`
	Role   string `json:"role" binding:"omitempty,oneof=mentee mentor company recruiter"`
	Source string `json:"source" binding:"max=50"`
}

// SubscribeResult reports whether the email was already on the list
type SubscribeResult struct {
	Subscriber        *Subscriber `json:"subscriber"`
	AlreadySubscribed bool        `json:"alreadySubscribed"`
}
