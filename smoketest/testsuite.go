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
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// ServiceType selects the storage service the test suite executable talks to.
type ServiceType string

const (
	ServiceBlob   ServiceType = "Blob"
	ServiceFile   ServiceType = "File"
	ServiceBlobFS ServiceType = "BlobFS"
)

// ResourceType is what the create verb makes.
type ResourceType string

const (
	ResourceSingleFile ResourceType = "SingleFile"
	ResourceBucket     ResourceType = "Bucket"
)

// Flag renders a --name=value argument for the test suite executable.
func Flag(name string, value interface{}) string {
	return fmt.Sprintf("--%s=%v", name, value)
}

// TestSuiteRunner executes the validator binary that inspects the storage side of a transfer.
type TestSuiteRunner struct {
	Path   string
	Dir    string
	Env    []string
	Logger common.ILogger
}

// Run executes one verb. A non-zero exit code is returned as an error carrying the validator's output.
func (r *TestSuiteRunner) Run(ctx context.Context, verb string, args ...string) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = common.NullLogger()
	}

	c := exec.CommandContext(ctx, r.Path, append([]string{verb}, args...)...)
	c.Dir = r.Dir
	c.Env = append(os.Environ(), r.Env...)

	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out

	common.Logf(logger, common.LogDebug, "running testSuite %s %s", verb, strings.Join(args, " "))
	err := c.Run()
	output := strings.TrimSpace(out.String())
	if err != nil {
		return output, errors.Wrapf(err, "testSuite %s failed: %s", verb, output)
	}
	return output, nil
}

// Clean deletes everything inside the container, share or filesystem.
func (r *TestSuiteRunner) Clean(ctx context.Context, resourceURL string, st ServiceType) error {
	_, err := r.Run(ctx, "clean", resourceURL, Flag("serviceType", st))
	return err
}

// Create makes a remote resource of the given size, for download scenarios.
func (r *TestSuiteRunner) Create(ctx context.Context, resourceURL string, st ServiceType, rt ResourceType, size int64, extra ...string) error {
	args := append([]string{resourceURL, Flag("serviceType", st), Flag("resourceType", rt), Flag("blob-size", size)}, extra...)
	_, err := r.Run(ctx, "create", args...)
	return err
}

// ExpectBlobCount checks the number of blobs under a container or virtual directory URL.
func (r *TestSuiteRunner) ExpectBlobCount(ctx context.Context, resourceURL string, expected int) error {
	_, err := r.Run(ctx, "list", resourceURL, Flag("resource-num", expected))
	return err
}

// VerifyBlob compares a local file or directory with the blob(s) at resourceURL.
func (r *TestSuiteRunner) VerifyBlob(ctx context.Context, localPath, resourceURL string, flags ...string) error {
	_, err := r.Run(ctx, "testBlob", append([]string{localPath, resourceURL}, flags...)...)
	return err
}

// VerifyFile compares a local file or directory with the Azure file(s) at resourceURL.
func (r *TestSuiteRunner) VerifyFile(ctx context.Context, localPath, resourceURL string, flags ...string) error {
	_, err := r.Run(ctx, "testFile", append([]string{localPath, resourceURL}, flags...)...)
	return err
}

// VerifyBlobFS compares a local file or directory with the ADLS Gen2 path at resourceURL.
func (r *TestSuiteRunner) VerifyBlobFS(ctx context.Context, localPath, resourceURL string, flags ...string) error {
	_, err := r.Run(ctx, "testBlobFS", append([]string{localPath, resourceURL}, flags...)...)
	return err
}
