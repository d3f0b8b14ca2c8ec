package ecode

import (
	"fmt"
)

const (
	requiredMsg = "required"
	invalidMsg  = "invalid"
	expiredMsg  = "expired"
	pendingMsg  = "is already in progress"
)

func withKey(msg string, k []string) string {
	if len(k) > 0 && k[0] != "" {
		return fmt.Sprintf("%s %s", k[0], msg)
	}
	return msg
}

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string { return withKey(requiredMsg, k) }

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string { return withKey(invalidMsg, k) }

// Expired returns expired message
func Expired(k ...string) string { return withKey(expiredMsg, k) }

// InProgress returns in progress message
func InProgress(k ...string) string { return withKey(pendingMsg, k) }
