// Package version provides build-time version information for taskdesk.
//
// The variables are set with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/taskdesk/version.Version=1.2.3 \
//	  -X github.com/ncobase/taskdesk/version.Branch=main \
//	  -X github.com/ncobase/taskdesk/version.Revision=abc123 \
//	  -X github.com/ncobase/taskdesk/version.BuiltAt=2024-01-01T00:00:00Z" \
//	  ./cmd/taskdesk
//
// Anything left at its default is filled from the VCS stamp in the binary's
// build info when available.
package version
