package filesys_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lc/folio/internal/filesys"
	"github.com/lc/folio/internal/mocks"
)

var errDisk = errors.New("disk failure")

type AtomicWriteTestSuite struct {
	suite.Suite
	dir string
	dst string
	m   *mocks.MockOsFS
}

func (s *AtomicWriteTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.dst = filepath.Join(s.dir, "folio.yaml")
	s.m = new(mocks.MockOsFS)
}

// tempFile returns a real file for CreateTemp expectations to hand out.
func (s *AtomicWriteTestSuite) tempFile() *os.File {
	f, err := os.CreateTemp(s.dir, ".folio-*")
	s.Require().NoError(err)
	return f
}

func (s *AtomicWriteTestSuite) TestWritesToDisk() {
	dst := filepath.Join(s.dir, "nested", "folio.yaml")

	err := filesys.AtomicWrite(filesys.OS(), dst, []byte("author: Jane\n"), 0o640)
	s.Require().NoError(err)

	data, err := os.ReadFile(dst)
	s.Require().NoError(err)
	s.Equal("author: Jane\n", string(data))

	info, err := os.Stat(dst)
	s.Require().NoError(err)
	s.Equal(fs.FileMode(0o640), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(s.dir, "nested", ".folio-*"))
	s.Require().NoError(err)
	s.Empty(leftovers)
}

func (s *AtomicWriteTestSuite) TestOverwritesExisting() {
	s.Require().NoError(os.WriteFile(s.dst, []byte("old"), 0o644))

	s.Require().NoError(filesys.AtomicWrite(filesys.OS(), s.dst, []byte("new"), 0o644))

	data, err := os.ReadFile(s.dst)
	s.Require().NoError(err)
	s.Equal("new", string(data))
}

func (s *AtomicWriteTestSuite) TestMkdirAllFailure() {
	s.m.On("MkdirAll", s.dir, os.FileMode(0o755)).Return(errDisk).Once()

	err := filesys.AtomicWrite(s.m, s.dst, []byte("x"), 0o644)

	s.ErrorIs(err, errDisk)
	s.Contains(err.Error(), "creating "+s.dir)
	s.m.AssertExpectations(s.T())
}

func (s *AtomicWriteTestSuite) TestCreateTempFailure() {
	s.m.On("MkdirAll", s.dir, os.FileMode(0o755)).Return(nil).Once()
	s.m.On("CreateTemp", s.dir, ".folio-*").Return(nil, errDisk).Once()

	err := filesys.AtomicWrite(s.m, s.dst, []byte("x"), 0o644)

	s.ErrorIs(err, errDisk)
	s.m.AssertExpectations(s.T())
	s.m.AssertNotCalled(s.T(), "Remove", mock.Anything)
}

func (s *AtomicWriteTestSuite) TestFailuresRemoveTempFile() {
	testCases := []struct {
		name      string
		chmodErr  error
		renameErr error
		removeErr error
	}{
		{name: "chmod fails", chmodErr: errDisk},
		{name: "rename fails", renameErr: errDisk},
		{name: "rename fails and temp already gone", renameErr: errDisk, removeErr: fs.ErrNotExist},
		{name: "rename fails and remove fails", renameErr: errDisk, removeErr: errors.New("busy")},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			m := new(mocks.MockOsFS)
			tmp := s.tempFile()

			m.On("MkdirAll", s.dir, os.FileMode(0o755)).Return(nil).Once()
			m.On("CreateTemp", s.dir, ".folio-*").Return(tmp, nil).Once()
			m.On("Chmod", tmp.Name(), os.FileMode(0o644)).Return(tc.chmodErr).Once()
			if tc.chmodErr == nil {
				m.On("Rename", tmp.Name(), s.dst).Return(tc.renameErr).Once()
			}
			m.On("Remove", tmp.Name()).Return(tc.removeErr).Once()

			err := filesys.AtomicWrite(m, s.dst, []byte("data"), 0o644)

			s.ErrorIs(err, errDisk)
			m.AssertExpectations(s.T())
			m.AssertNotCalled(s.T(), "Open", mock.Anything)

			data, readErr := os.ReadFile(tmp.Name())
			s.Require().NoError(readErr)
			s.Equal("data", string(data), "data reached the temp file before the failure")
		})
	}
}

func (s *AtomicWriteTestSuite) TestDirectorySyncIsBestEffort() {
	tmp := s.tempFile()

	s.m.On("MkdirAll", s.dir, os.FileMode(0o755)).Return(nil).Once()
	s.m.On("CreateTemp", s.dir, ".folio-*").Return(tmp, nil).Once()
	s.m.On("Chmod", tmp.Name(), os.FileMode(0o600)).Return(nil).Once()
	s.m.On("Rename", tmp.Name(), s.dst).Return(nil).Once()
	s.m.On("Open", s.dir).Return(nil, errDisk).Once()

	err := filesys.AtomicWrite(s.m, s.dst, []byte("data"), 0o600)

	s.NoError(err)
	s.m.AssertExpectations(s.T())
	s.m.AssertNotCalled(s.T(), "Remove", mock.Anything)
}

func TestAtomicWriteSuite(t *testing.T) {
	suite.Run(t, new(AtomicWriteTestSuite))
}
