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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

func azCopyOperationScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "RemoveBlob", Run: func(sc *smoketest.ScenarioContext) error {
			_, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerSASURL, "remove_blob", 1*KiB, nil)
			if err != nil {
				return err
			}
			if err := runJob(sc, smoketest.NewAzCopyCommand("remove", remote), 1); err != nil {
				return err
			}
			return sc.TestSuite.ExpectBlobCount(sc.Ctx, remote, 0)
		}},
		{Name: "RemoveVirtualDirectory", Run: func(sc *smoketest.ScenarioContext) error {
			_, remote, err := uploadDirectory(sc, sc.Workspace.Config.ContainerSASURL, "remove_dir", 6, 1*KiB)
			if err != nil {
				return err
			}
			if err := runJob(sc, smoketest.NewAzCopyCommand("remove", remote).Recursive(), 6); err != nil {
				return err
			}
			return sc.TestSuite.ExpectBlobCount(sc.Ctx, remote, 0)
		}},
		{Name: "ListContainer", Run: func(sc *smoketest.ScenarioContext) error {
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.ContainerSASURL, "list_dir", 3, 1*KiB)
			if err != nil {
				return err
			}
			result, err := sc.RunAzCopy(smoketest.NewAzCopyCommand("list", remote))
			if err != nil {
				return err
			}
			if err := result.ExpectSuccess(); err != nil {
				return err
			}

			listing := result.Output.InfoText()
			for i := 0; i < 3; i++ {
				name := "test_file_" + strconv.Itoa(i) + ".txt"
				if !strings.Contains(listing, name) {
					return smoketest.Failf("listing of %s does not mention %s:\n%s", filepath.Base(local), name, listing)
				}
			}
			return nil
		}},
		{Name: "SyncLocalToContainer", Run: func(sc *smoketest.ScenarioContext) error {
			name := sc.UniqueName("sync_dir")
			local, err := sc.CreateDirectory(name, 4, 1*KiB)
			if err != nil {
				return err
			}
			remote, err := smoketest.ResourceURL(sc.Workspace.Config.ContainerSASURL, name)
			if err != nil {
				return err
			}

			if err := runJob(sc, smoketest.NewAzCopyCommand("sync", local, remote), 4); err != nil {
				return err
			}
			if err := sc.TestSuite.VerifyBlob(sc.Ctx, local, remote, smoketest.Flag("is-object-dir", true)); err != nil {
				return err
			}

			// only the new file is transferred by the second sync
			if _, err := sc.CreateFile(filepath.Join(name, "added_later.txt"), 1*KiB); err != nil {
				return err
			}
			if err := runJob(sc, smoketest.NewAzCopyCommand("sync", local, remote), 1); err != nil {
				return err
			}
			return sc.TestSuite.ExpectBlobCount(sc.Ctx, remote, 5)
		}},
	}
}
