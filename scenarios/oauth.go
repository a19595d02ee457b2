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

// Uploads go through the OAuth URL, which azcopy authorizes with AZCOPY_OAUTH_TOKEN_INFO.
// The validator reads the same container through its SAS URL.
func blobFSUploadOAuthScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFile", Run: func(sc *smoketest.ScenarioContext) error {
			if err := requireOAuth(sc); err != nil {
				return err
			}
			local, remote, err := uploadFile(sc, sc.Workspace.Config.ContainerOAuthURL, "oauth_file", 1*MiB, nil)
			if err != nil {
				return err
			}
			validate, err := oauthValidationURL(sc, remote)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, validate)
		}},
		{Name: "Directory", Run: func(sc *smoketest.ScenarioContext) error {
			if err := requireOAuth(sc); err != nil {
				return err
			}
			local, remote, err := uploadDirectory(sc, sc.Workspace.Config.ContainerOAuthURL, "oauth_dir", 8, 1*KiB)
			if err != nil {
				return err
			}
			validate, err := oauthValidationURL(sc, remote)
			if err != nil {
				return err
			}
			return sc.TestSuite.VerifyBlob(sc.Ctx, local, validate, smoketest.Flag("is-object-dir", true))
		}},
	}
}

func blobFSDownloadOAuthScenarios() []smoketest.Scenario {
	return []smoketest.Scenario{
		{Name: "SingleFile", Run: func(sc *smoketest.ScenarioContext) error {
			if err := requireOAuth(sc); err != nil {
				return err
			}
			// seeded through SAS so the download is the only OAuth operation
			local, seeded, err := uploadFile(sc, sc.Workspace.Config.ContainerOAuthValidateSASURL, "oauth_download", 1*MiB, nil)
			if err != nil {
				return err
			}
			remote, err := oauthURLFor(sc, seeded)
			if err != nil {
				return err
			}
			return downloadFile(sc, remote, local, nil)
		}},
		{Name: "Directory", Run: func(sc *smoketest.ScenarioContext) error {
			if err := requireOAuth(sc); err != nil {
				return err
			}
			local, seeded, err := uploadDirectory(sc, sc.Workspace.Config.ContainerOAuthValidateSASURL, "oauth_download_dir", 4, 2*KiB)
			if err != nil {
				return err
			}
			remote, err := oauthURLFor(sc, seeded)
			if err != nil {
				return err
			}
			return downloadDirectory(sc, remote, local, 4)
		}},
	}
}

// oauthValidationURL maps a path under the OAuth container onto the SAS validation URL.
func oauthValidationURL(sc *smoketest.ScenarioContext, oauthResource string) (string, error) {
	rel, err := smoketest.RelativeResourcePath(sc.Workspace.Config.ContainerOAuthURL, oauthResource)
	if err != nil {
		return "", err
	}
	return smoketest.ResourceURL(sc.Workspace.Config.ContainerOAuthValidateSASURL, rel)
}

// oauthURLFor maps a path under the SAS validation URL onto the OAuth container.
func oauthURLFor(sc *smoketest.ScenarioContext, sasResource string) (string, error) {
	rel, err := smoketest.RelativeResourcePath(sc.Workspace.Config.ContainerOAuthValidateSASURL, sasResource)
	if err != nil {
		return "", err
	}
	return smoketest.ResourceURL(sc.Workspace.Config.ContainerOAuthURL, rel)
}
