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

package scenarios

import (
	"os"

	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

// azcopy authorizes dfs endpoints with ACCOUNT_NAME and ACCOUNT_KEY from its environment.
func blobFSUploadSharedKeyScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFile", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.FilesystemURL, "blobfs_file", 1*MiB, nil)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlobFS(sc.Ctx, local, remote)
		}},
		{Name: "Directory", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.FilesystemURL, "blobfs_dir", 8, 4*KiB)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlobFS(sc.Ctx, local, remote, smoketest.Flag("is-object-dir", true))
		}},
	}
}

func blobFSDownloadSharedKeyScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFile", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.FilesystemURL, "blobfs_download", 1*MiB, nil)
			if err != nil {
				return err
			}
			return downloadFile(sc, remote, local, nil)
		}},
		{Name: "Directory", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.FilesystemURL, "blobfs_download_dir", 5, 1*KiB)
			if err != nil {
				return err
			}
			return downloadDirectory(sc, remote, local, 5)
		}},
		{Name: "CreatedFile", Run: func(sc *smoketest.ScenarioContext) error {
			name := sc.UniqueName("created_path")
			remote, err := smoketest.ResourceURL(sc.Workspace.Config.FilesystemURL, name)
			if err != nil {
				return err
			}
			if err := sc.TestSuite.Create(sc.Ctx, remote, smoketest.ServiceBlobFS, smoketest.ResourceSingleFile, 512*KiB); err != nil {
				return err
			}
			dst, err := sc.DownloadPath(name)
			if err != nil {
				return err
			}
			if err := runJob(sc, smoketest.NewAzCopyCommand("copy", remote, dst), 1); err != nil {
				return err
			}
			info, err := os.Stat(dst)
			if err != nil {
				return err
			}
			return smoketest.Expect(info.Size() == 512*KiB, "expected %d bytes, downloaded %d", 512*KiB, info.Size())
		}},
	}
}
