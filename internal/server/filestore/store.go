// Package filestore provides read-only access to uploaded keystore
// container files. Containers live under <root>/<userID>/<fileName>,
// either on local disk or in an S3-compatible bucket.
package filestore

import "context"

// Store fetches keystore container bytes by owner and file name.
type Store interface {
	Fetch(ctx context.Context, userID int64, fileName string) ([]byte, error)
}
