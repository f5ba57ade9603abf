// SPDX-License-Identifier: MIT

package blob_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/proteonet/blob"
	"github.com/katalvlaran/proteonet/config"
)

// StoreSuite runs the Store contract against one driver.
type StoreSuite struct {
	suite.Suite
	open  func(t *testing.T) blob.Store
	store blob.Store
}

func (s *StoreSuite) SetupTest() { s.store = s.open(s.T()) }

func (s *StoreSuite) put(key, content string) {
	require.NoError(s.T(), s.store.Put(context.Background(), key, strings.NewReader(content)))
}

func (s *StoreSuite) get(key string) string {
	rc, err := s.store.Get(context.Background(), key)
	require.NoError(s.T(), err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(s.T(), err)

	return string(b)
}

func (s *StoreSuite) TestPutGetOverwrite() {
	s.put("ds/dataset_info.json", "v1")
	require.Equal(s.T(), "v1", s.get("ds/dataset_info.json"))
	s.put("ds/dataset_info.json", "v2")
	require.Equal(s.T(), "v2", s.get("ds/dataset_info.json"))
}

func (s *StoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "nope")
	require.ErrorIs(s.T(), err, blob.ErrNotFound)
}

func (s *StoreSuite) TestListSorted() {
	s.put("ds/samples/b.db", "b")
	s.put("ds/samples/a.db", "a")
	s.put("ds/molecule_set.db", "m")
	s.put("other/x", "x")

	keys, err := s.store.List(context.Background(), "ds/samples/")
	require.NoError(s.T(), err)
	require.Equal(s.T(), []string{"ds/samples/a.db", "ds/samples/b.db"}, keys)

	keys, err = s.store.List(context.Background(), "ds/")
	require.NoError(s.T(), err)
	require.Len(s.T(), keys, 3)
}

func (s *StoreSuite) TestDelete() {
	s.put("k", "v")
	ok, err := s.store.Delete(context.Background(), "k")
	require.NoError(s.T(), err)
	require.True(s.T(), ok)
	ok, err = s.store.Delete(context.Background(), "k")
	require.NoError(s.T(), err)
	require.False(s.T(), ok)
}

func (s *StoreSuite) TestInvalidKeys() {
	for _, k := range []string{"", "/abs", "a/../../b", `a\b`} {
		err := s.store.Put(context.Background(), k, strings.NewReader("x"))
		require.ErrorIs(s.T(), err, blob.ErrInvalidKey, k)
	}
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(*testing.T) blob.Store { return blob.NewMemory() }})
}

func TestFilesystemStore(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) blob.Store {
		fs, err := blob.NewFilesystem(t.TempDir())
		require.NoError(t, err)
		return fs
	}})
}

func TestS3Store(t *testing.T) {
	suite.Run(t, &StoreSuite{open: func(t *testing.T) blob.Store { return newFakeS3Store(t) }})
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := blob.Open(ctx, config.Blob{Driver: "memory"})
	require.NoError(t, err)
	require.Equal(t, blob.DriverMemory, s.Driver())

	s, err = blob.Open(ctx, config.Blob{Driver: "fs", Root: t.TempDir()})
	require.NoError(t, err)
	require.Equal(t, blob.DriverFilesystem, s.Driver())

	_, err = blob.Open(ctx, config.Blob{Driver: "s3"})
	require.ErrorIs(t, err, blob.ErrNoBucket)

	_, err = blob.Open(ctx, config.Blob{Driver: "ftp"})
	require.ErrorIs(t, err, blob.ErrUnknownDriver)
}

func TestJoin(t *testing.T) {
	require.Equal(t, "a/b/c.db", blob.Join("a/", "", "/b", "c.db"))
	require.Equal(t, "x", blob.Join("", "x"))
}
