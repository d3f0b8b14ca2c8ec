// Package types provides value types shared across the client. Date models
// a Task's scheduled date: a calendar day that travels as "2006-01-02".
package types
