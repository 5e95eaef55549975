// Package archive persists generated playlists.
//
// An Archive encodes model.Playlist values with a codec, optionally
// compresses them (zstd or lz4), and writes them through a Store. Payloads
// are self-describing: reads detect the compression from the frame magic, so
// the compression setting can change without migrating old objects.
//
// # Built-in Stores
//
//   - Memory: in-memory, for tests and embedded use
//   - Local: local filesystem with atomic temp-and-rename writes
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible systems
//
// # Basic Usage
//
//	store, err := archive.NewLocal("./data/playlists")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	arc := archive.New(store, func(o *archive.Options) {
//	    o.Compression = archive.CompressionZstd
//	})
//
//	saved, err := arc.SavePlaylist(ctx, playlist) // blank ids get a UUID
//	loaded, err := arc.LoadPlaylist(ctx, saved.ID)
package archive
