package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/lc/folio/internal/buildinfo"
	"github.com/lc/folio/internal/cache"
	"github.com/lc/folio/internal/config"
)

type CLITestSuite struct {
	suite.Suite
	dir  string
	path string
}

func (s *CLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.path = filepath.Join(s.dir, "folio.yaml")
	s.Require().NoError(os.WriteFile(s.path, []byte(config.Starter), 0o644))
}

// run executes the CLI against a private cache and returns its stdout.
func (s *CLITestSuite) run(args ...string) (string, error) {
	root := newRootCmd(cache.New(time.Minute, true))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", s.path}, args...))
	err := root.Execute()
	return out.String(), err
}

func (s *CLITestSuite) TestVersion() {
	out, err := s.run("version")
	s.Require().NoError(err)
	s.Contains(out, "version: "+buildinfo.Version)
}

func (s *CLITestSuite) TestConfigCheck() {
	out, err := s.run("config", "check")
	s.Require().NoError(err)
	s.Contains(out, "is valid")
	s.Contains(out, "topics: 2  sizes: 2  formats: 2")
}

func (s *CLITestSuite) TestConfigCheckStrict() {
	out, err := s.run("config", "check", "--strict")
	s.Require().NoError(err)
	s.Contains(out, "no lint findings")

	bad := strings.Replace(config.Starter, "blog: [go, tooling]", "blog: [go, tooling]\n    drafts: [wip]", 1)
	s.Require().NoError(os.WriteFile(s.path, []byte(bad), 0o644))

	out, err = s.run("config", "check", "--strict")
	s.Require().Error(err)
	s.Contains(err.Error(), "1 lint finding")
	s.Contains(out, `no topic "drafts" is declared`)
}

func (s *CLITestSuite) TestConfigCheckInvalid() {
	s.Require().NoError(os.WriteFile(s.path, []byte("publication: [\n"), 0o644))

	_, err := s.run("config", "check")
	s.ErrorIs(err, config.ErrParse)
}

func (s *CLITestSuite) TestConfigInit() {
	s.path = filepath.Join(s.dir, "new", "folio.yaml")

	out, err := s.run("config", "init")
	s.Require().NoError(err)
	s.Contains(out, "wrote")

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	s.Equal(config.Starter, string(data))

	_, err = s.run("config", "init")
	s.ErrorContains(err, "already exists")

	_, err = s.run("config", "init", "--force")
	s.NoError(err)
}

func (s *CLITestSuite) TestConfigPath() {
	out, err := s.run("config", "path")
	s.Require().NoError(err)
	s.Equal(cache.CanonicalPath(s.path)+"\n", out)

	s.path = filepath.Join(s.dir, "absent.yaml")
	out, err = s.run("config", "path")
	s.Require().NoError(err)
	s.Equal(cache.CanonicalPath(s.path)+"\n", out)
}

func (s *CLITestSuite) TestTopics() {
	out, err := s.run("topics", "list")
	s.Require().NoError(err)
	s.Contains(out, "blog")
	s.Contains(out, "Short notes and links")

	out, err = s.run("topics", "path", "blog")
	s.Require().NoError(err)
	root := filepath.Dir(cache.CanonicalPath(s.path))
	s.Equal(filepath.Join(root, "content", "blog")+"\n", out)

	_, err = s.run("topics", "path", "missing")
	s.ErrorIs(err, config.ErrNotFound)
}

func (s *CLITestSuite) TestTopicsAudit() {
	_, err := s.run("topics", "audit")
	s.Require().Error(err)
	s.Contains(err.Error(), `topic "blog"`)

	s.Require().NoError(os.MkdirAll(filepath.Join(s.dir, "content", "blog"), 0o755))
	s.Require().NoError(os.MkdirAll(filepath.Join(s.dir, "content", "notes"), 0o755))

	out, err := s.run("topics", "audit")
	s.Require().NoError(err)
	s.Contains(out, "ok")
}

func (s *CLITestSuite) TestImages() {
	out, err := s.run("images", "list")
	s.Require().NoError(err)
	s.Contains(out, "thumbnail")
	s.Contains(out, "1600")
	s.Contains(out, "WebP for modern browsers")
	s.Contains(out, "naming: {name}-{size}.{format}")

	out, err = s.run("images", "name", "cover", "thumbnail", "webp")
	s.Require().NoError(err)
	s.Equal("cover-thumbnail.webp (quality 75)\n", out)

	_, err = s.run("images", "name", "cover", "huge", "webp")
	s.ErrorIs(err, config.ErrNotFound)
}

func (s *CLITestSuite) TestInfo() {
	out, err := s.run("info")
	s.Require().NoError(err)
	s.Contains(out, "author:    Your Name")
	s.Contains(out, "site:      https://example.com")
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}
