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

// Package scenarios holds the smoke test groups run against a real storage account.
package scenarios

import (
	"os"
	"path/filepath"

	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

const (
	KiB = 1024
	MiB = 1024 * KiB
)

// Register adds every group, in the order they run.
func Register(r *smoketest.Registry) {
	r.Register("BlockBlobUpload", blockBlobUploadScenarios()...)
	r.Register("BlobDownload", blobDownloadScenarios()...)
	r.Register("PageBlobUpload", pageBlobUploadScenarios()...)
	r.Register("BlobFSUploadOAuth", blobFSUploadOAuthScenarios()...)
	r.Register("BlobFSDownloadOAuth", blobFSDownloadOAuthScenarios()...)
	r.Register("AzCopyOperations", azCopyOperationScenarios()...)
	r.Register("FileShareDownload", fileShareDownloadScenarios()...)
	r.Register("FileShareUpload", fileShareUploadScenarios()...)
	r.Register("BlobFSUploadSharedKey", blobFSUploadSharedKeyScenarios()...)
	r.Register("BlobFSDownloadSharedKey", blobFSDownloadSharedKeyScenarios()...)
}

// uploadFile creates a local file of size bytes and copies it to <base>/<name>.
// It returns the local path and the remote URL.
func uploadFile(sc *smoketest.ScenarioContext, base, prefix string, size int64, flags map[string]interface{}) (string, string, error) {
	name := sc.UniqueName(prefix)
	local, err := sc.CreateFile(name, size)
	if err != nil {
		return "", "", err
	}
	remote, err := smoketest.ResourceURL(base, name)
	if err != nil {
		return "", "", err
	}

	cmd := smoketest.NewAzCopyCommand("copy", local, remote)
	for k, v := range flags {
		cmd.SetFlag(k, v)
	}
	if err := runJob(sc, cmd, 1); err != nil {
		return "", "", err
	}
	return local, remote, nil
}

// uploadDirectory creates a local directory of files files and copies it recursively under base.
// It returns the local directory and the URL of the uploaded directory.
func uploadDirectory(sc *smoketest.ScenarioContext, base, prefix string, files int, size int64) (string, string, error) {
	name := sc.UniqueName(prefix)
	local, err := sc.CreateDirectory(name, files, size)
	if err != nil {
		return "", "", err
	}

	if err := runJob(sc, smoketest.NewAzCopyCommand("copy", local, base).Recursive(), files); err != nil {
		return "", "", err
	}

	remote, err := smoketest.ResourceURL(base, name)
	if err != nil {
		return "", "", err
	}
	return local, remote, nil
}

// downloadFile copies remote to a fresh local path and compares it with expected.
func downloadFile(sc *smoketest.ScenarioContext, remote, expected string, flags map[string]interface{}) error {
	dst, err := sc.DownloadPath(sc.UniqueName("download"))
	if err != nil {
		return err
	}

	cmd := smoketest.NewAzCopyCommand("copy", remote, dst)
	for k, v := range flags {
		cmd.SetFlag(k, v)
	}
	if err := runJob(sc, cmd, 1); err != nil {
		return err
	}
	return smoketest.CompareFiles(expected, dst)
}

// downloadDirectory copies the remote directory recursively and compares it with the local original.
func downloadDirectory(sc *smoketest.ScenarioContext, remote, expected string, files int) error {
	dst, err := sc.DownloadPath(sc.UniqueName("download_dir"))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	if err := runJob(sc, smoketest.NewAzCopyCommand("copy", remote, dst).Recursive(), files); err != nil {
		return err
	}
	return smoketest.CompareDirectories(expected, filepath.Join(dst, filepath.Base(expected)))
}

func runJob(sc *smoketest.ScenarioContext, cmd *smoketest.AzCopyCommand, expectedTransfers int) error {
	result, err := sc.RunAzCopy(cmd)
	if err != nil {
		return err
	}
	return result.ExpectJobCompleted(expectedTransfers)
}

func requireOAuth(sc *smoketest.ScenarioContext) error {
	if sc.Workspace.Config.OAuthTokenInfo == "" {
		return smoketest.Skip("AZCOPY_OAUTH_TOKEN_INFO is empty")
	}
	return nil
}
