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
	"path/filepath"

	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

func blockBlobUploadScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFileWithMD5", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "block_md5", 1*KiB,
				map[string]interface{}{"put-md5": true})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote, smoketest.Flag("check-content-md5", true))
		}},
		{Name: "ZeroByteFile", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "block_empty", 0, nil)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote)
		}},
		{Name: "LargeFileWithBlockSize", Run: func(sc *smoketest.ScenarioContext) error {
			// 10 MiB in 4 MiB blocks commits three blocks
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "block_large", 10*MiB,
				map[string]interface{}{"block-size-mb": 4})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote,
				smoketest.Flag("verify-block-size", true),
				smoketest.Flag("number-blocks-or-pages", 3))
		}},
		{Name: "RecursiveDirectory", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.ContainerSASURL, "block_dir", 10, 1*KiB)
			if err != nil {
				return err
			}
			if err := sc.TestSuite.ExpectBlobCount(sc.Ctx, remote, 10); err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote, smoketest.Flag("is-object-dir", true))
		}},
		{Name: "MetadataAndContentType", Run: func(sc *smoketest.ScenarioContext) error {
			const metadata = "author=smoketest;project=azcopy"
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "block_metadata", 2*KiB,
				map[string]interface{}{"metadata": metadata, "content-type": "application/octet-stream"})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote,
				smoketest.Flag("metadata", metadata),
				smoketest.Flag("content-type", "application/octet-stream"))
		}},
	}
}

func blobDownloadScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleBlobWithMD5", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "download_md5", 1*MiB,
				map[string]interface{}{"put-md5": true})
			if err != nil {
				return err
			}
			return downloadFile(sc, remote, local, map[string]interface{}{"check-md5": "FailIfDifferent"})
		}},
		{Name: "RecursiveDirectory", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.ContainerSASURL, "download_dir", 6, 4*KiB)
			if err != nil {
				return err
			}
			return downloadDirectory(sc, remote, local, 6)
		}},
		{Name: "IncludePattern", Run: func(sc *smoketest.ScenarioContext) error {
			name := sc.UniqueName("download_include")
			dir, err := sc.CreateDirectory(name, 4, 1*KiB)
			if err != nil {
				return err
			}
			if _, err := sc.CreateFile(filepath.Join(name, "picked.bin"), 1*KiB); err != nil {
				return err
			}
			if err := runJob(sc, smoketest.NewAzCopyCommand("copy", dir, sc.Workspace.Config.ContainerSASURL).Recursive(), 5); err != nil {
				return err
			}

			remote, err := smoketest.ResourceURL(sc.Workspace.Config.ContainerSASURL, name)
			if err != nil {
				return err
			}
			dst, err := sc.DownloadPath(name)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(dst, 0755); err != nil {
				return err
			}
			cmd := smoketest.NewAzCopyCommand("copy", remote, dst).Recursive().SetFlag("include-pattern", "*.bin")
			if err := runJob(sc, cmd, 1); err != nil {
				return err
			}

			n, err := smoketest.CountFiles(dst)
			if err != nil {
				return err
			}
			if err := smoketest.Expect(n == 1, "expected only picked.bin to be downloaded, found %d files", n); err != nil {
				return err
			}
			return smoketest.CompareFiles(filepath.Join(dir, "picked.bin"), filepath.Join(dst, name, "picked.bin"))
		}},
		{Name: "CreatedBlob", Run: func(sc *smoketest.ScenarioContext) error {
			name := sc.UniqueName("created_blob")
			remote, err := smoketest.ResourceURL(sc.Workspace.Config.ContainerSASURL, name)
			if err != nil {
				return err
			}
			if err := sc.TestSuite.Create(sc.Ctx, remote, smoketest.ServiceBlob, smoketest.ResourceSingleFile, 2*MiB); err != nil {
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
			return smoketest.Expect(info.Size() == 2*MiB, "expected %d bytes, downloaded %d", 2*MiB, info.Size())
		}},
	}
}

func pageBlobUploadScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "AlignedFile", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "page_aligned", 512*1024,
				map[string]interface{}{"blob-type": "PageBlob"})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote, smoketest.Flag("blob-type", "PageBlob"))
		}},
		{Name: "PremiumTierP10", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.PremiumContainerSASURL, "page_premium", 4*MiB,
				map[string]interface{}{"blob-type": "PageBlob", "page-blob-tier": "P10"})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, remote,
				smoketest.Flag("blob-type", "PageBlob"),
				smoketest.Flag("blob-tier", "P10"))
		}},
		{Name: "UnalignedFileFails", Run: func(sc *smoketest.ScenarioContext) error {
			name := sc.UniqueName("page_unaligned")
			local, err := sc.CreateFile(name, 1000)
			if err != nil {
				return err
			}
			remote, err := smoketest.ResourceURL(sc.Workspace.Config.ContainerSASURL, name)
			if err != nil {
				return err
			}

			result, err := sc.RunAzCopy(smoketest.NewAzCopyCommand("copy", local, remote).SetFlag("blob-type", "PageBlob"))
			if err != nil {
				return err
			}
			return result.ExpectFailure()
		}},
	}
}
