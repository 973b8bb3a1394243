package domain

import "github.com/google/uuid"

// Identity is the authenticated caller resolved from a bearer token.
type Identity struct {
	ID    uuid.UUID
	Email string
}

// LocalUserID identifies the single profile served by the local backend.
var LocalUserID = uuid.MustParse("00000000-0000-0000-0000-00000000a11c")
