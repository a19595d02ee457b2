// Copyright © Microsoft <wastore@microsoft.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package smoketest

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/vijayraavi/azure-storage-azcopy/common"
	"github.com/vijayraavi/azure-storage-azcopy/config"
)

// Initializer prepares the local workspace and the remote resources before any group runs.
type Initializer interface {
	InitializeTestSuite(ctx context.Context, cfg config.Config) (*Workspace, error)
}

// SuiteInitializer is the default Initializer.
type SuiteInitializer struct {
	Logger common.ILogger
}

func NewSuiteInitializer(logger common.ILogger) *SuiteInitializer {
	return &SuiteInitializer{Logger: logger}
}

func (i *SuiteInitializer) logger() common.ILogger {
	if i.Logger == nil {
		return common.NullLogger()
	}
	return i.Logger
}

// InitializeTestSuite recreates <TEST_DIRECTORY_PATH>/test_data, copies both executables into it and
// empties the remote containers, share and filesystem. Failing to empty a remote resource is only a warning.
func (i *SuiteInitializer) InitializeTestSuite(ctx context.Context, cfg config.Config) (*Workspace, error) {
	if cfg.TestDirectoryPath == "" {
		return nil, errors.New("the test directory path is empty")
	}

	dir := filepath.Join(cfg.TestDirectoryPath, TestDataDirName)
	if err := os.RemoveAll(dir); err != nil {
		return nil, errors.Wrapf(err, "failed to remove %s", dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create %s", dir)
	}
	common.Logf(i.logger(), common.LogInfo, "created test data directory %s", dir)

	azcopyPath, err := copyExecutable(cfg.AzCopyExecutablePath, dir)
	if err != nil {
		return nil, errors.Wrap(err, "please verify the azcopy executable location")
	}
	testSuitePath, err := copyExecutable(cfg.TestSuiteExecutablePath, dir)
	if err != nil {
		return nil, errors.Wrap(err, "please verify the test suite executable location")
	}

	ws := &Workspace{Dir: dir, AzCopyPath: azcopyPath, TestSuitePath: testSuitePath, Config: cfg}
	i.purgeRemoteResources(ctx, ws)
	return ws, nil
}

func (i *SuiteInitializer) purgeRemoteResources(ctx context.Context, ws *Workspace) {
	validator := ws.NewTestSuiteRunner(i.logger())

	targets := []struct {
		name string
		url  string
		st   ServiceType
	}{
		{"container", ws.Config.ContainerSASURL, ServiceBlob},
		{"oauth container", ws.Config.ContainerOAuthValidateSASURL, ServiceBlob},
		{"premium container", ws.Config.PremiumContainerSASURL, ServiceBlob},
		{"share", ws.Config.ShareSASURL, ServiceFile},
		{"filesystem", ws.Config.FilesystemURL, ServiceBlobFS},
	}

	for _, t := range targets {
		if err := validator.Clean(ctx, t.url, t.st); err != nil {
			common.Logf(i.logger(), common.LogWarning, "failed to clean the %s %s: %v", t.name, t.url, err)
			continue
		}
		common.Logf(i.logger(), common.LogInfo, "cleaned the %s", t.name)
	}
}

// copyExecutable copies src into dir keeping its permission bits and modification time.
func copyExecutable(src, dir string) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.Errorf("%s is not a regular file", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	dst := filepath.Join(dir, filepath.Base(src))
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	// umask may have dropped bits at creation
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", err
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", err
	}
	return dst, nil
}
