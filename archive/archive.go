package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/songchain/codec"
	"github.com/hupe1980/songchain/model"
)

// playlistExt is the object name suffix for archived playlists.
const playlistExt = ".playlist"

// Options configures an Archive.
type Options struct {
	// Codec encodes playlists. Defaults to codec.Default.
	Codec codec.Codec

	// Compression compresses encoded payloads at rest. Reads detect the
	// compression from the payload itself, so it can be changed at any time.
	Compression Compression

	// Prefix is prepended to all object names (e.g. "playlists/").
	Prefix string
}

// Archive persists playlists through a Store.
type Archive struct {
	store       Store
	codec       codec.Codec
	compression Compression
	prefix      string
}

// New creates an Archive over the given store.
func New(store Store, optFns ...func(*Options)) *Archive {
	opts := Options{
		Codec: codec.Default,
	}

	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	if opts.Codec == nil {
		opts.Codec = codec.Default
	}

	return &Archive{
		store:       store,
		codec:       opts.Codec,
		compression: opts.Compression,
		prefix:      opts.Prefix,
	}
}

func (a *Archive) key(id string) string {
	return path.Join(a.prefix, id+playlistExt)
}

// SavePlaylist stores the playlist and returns it as stored. A blank id gets
// a fresh UUID; a zero CreatedAt gets the current time.
func (a *Archive) SavePlaylist(ctx context.Context, playlist model.Playlist) (model.Playlist, error) {
	if playlist.ID == "" {
		playlist.ID = uuid.NewString()
	}
	if playlist.CreatedAt.IsZero() {
		playlist.CreatedAt = time.Now().UTC()
	}

	data, err := a.codec.Marshal(playlist)
	if err != nil {
		return model.Playlist{}, fmt.Errorf("encode playlist %s: %w", playlist.ID, err)
	}

	data, err = a.compression.compress(data)
	if err != nil {
		return model.Playlist{}, fmt.Errorf("compress playlist %s: %w", playlist.ID, err)
	}

	if err := a.store.Put(ctx, a.key(playlist.ID), data); err != nil {
		return model.Playlist{}, fmt.Errorf("store playlist %s: %w", playlist.ID, err)
	}

	return playlist, nil
}

// LoadPlaylist returns the playlist with the given id, or ErrNotFound.
func (a *Archive) LoadPlaylist(ctx context.Context, id string) (model.Playlist, error) {
	data, err := a.store.Get(ctx, a.key(id))
	if err != nil {
		return model.Playlist{}, err
	}

	data, err = decompress(data)
	if err != nil {
		return model.Playlist{}, fmt.Errorf("decompress playlist %s: %w", id, err)
	}

	var playlist model.Playlist
	if err := a.codec.Unmarshal(data, &playlist); err != nil {
		return model.Playlist{}, fmt.Errorf("decode playlist %s: %w", id, err)
	}

	return playlist, nil
}

// DeletePlaylist removes the playlist. Deleting a missing playlist is not an
// error.
func (a *Archive) DeletePlaylist(ctx context.Context, id string) error {
	return a.store.Delete(ctx, a.key(id))
}

// ListPlaylists returns the ids of all archived playlists in lexical order.
func (a *Archive) ListPlaylists(ctx context.Context) ([]string, error) {
	names, err := a.store.List(ctx, a.prefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		if !strings.HasSuffix(name, playlistExt) {
			continue
		}

		id := strings.TrimSuffix(name, playlistExt)
		if a.prefix != "" {
			id = strings.TrimPrefix(id, a.prefix)
			id = strings.TrimPrefix(id, "/")
		}

		ids = append(ids, id)
	}

	return ids, nil
}
