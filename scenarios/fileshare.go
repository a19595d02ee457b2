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
	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

func fileShareDownloadScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFile", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ShareSASURL, "share_download", 1*MiB, nil)
			if err != nil {
				return err
			}
			return downloadFile(sc, remote, local, nil)
		}},
		{Name: "Directory", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.ShareSASURL, "share_download_dir", 6, 2*KiB)
			if err != nil {
				return err
			}
			return downloadDirectory(sc, remote, local, 6)
		}},
		{Name: "CreatedFile", Run: func(sc *smoketest.ScenarioContext) error {
			name := sc.UniqueName("created_file")
			remote, err := smoketest.ResourceURL(sc.Workspace.Config.ShareSASURL, name)
			if err != nil {
				return err
			}
			if err := sc.TestSuite.Create(sc.Ctx, remote, smoketest.ServiceFile, smoketest.ResourceSingleFile, 1*MiB); err != nil {
				return err
			}
			dst, err := sc.DownloadPath(name)
			if err != nil {
				return err
			}
			if err := runJob(sc, smoketest.NewAzCopyCommand("copy", remote, dst), 1); err != nil {
				return err
			}
			return sc.TestSuite.VerifyFile(sc.Ctx, dst, remote)
		}},
	}
}

func fileShareUploadScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFile", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ShareSASURL, "share_file", 1*KiB, nil)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyFile(sc.Ctx, local, remote)
		}},
		{Name: "LargeFileWithMD5", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ShareSASURL, "share_large", 16*MiB,
				map[string]interface{}{"put-md5": true})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyFile(sc.Ctx, local, remote, smoketest.Flag("check-content-md5", true))
		}},
		{Name: "RecursiveDirectory", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.ShareSASURL, "share_dir", 10, 1*KiB)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyFile(sc.Ctx, local, remote, smoketest.Flag("is-object-dir", true))
		}},
		{Name: "Metadata", Run: func(sc *smoketest.ScenarioContext) error {
			const metadata = "owner=smoketest;kind=share"
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ShareSASURL, "share_metadata", 1*KiB,
				map[string]interface{}{"metadata": metadata})
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyFile(sc.Ctx, local, remote, smoketest.Flag("metadata", metadata))
		}},
	}
}
