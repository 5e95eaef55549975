// Package s3 provides an S3 implementation of the archive.Store interface.
//
// # Usage
//
//	store, err := s3.OpenDefault(ctx, "my-bucket", "playlists/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	arc := archive.New(store)
//
// Or with an existing client:
//
//	store := s3.NewStore(client, "my-bucket", "playlists/")
//
// # Features
//
//   - Multipart uploads via the s3 transfer manager
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
