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
	"crypto/md5"
	"crypto/rand"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// ScenarioContext is everything a scenario body gets to work with.
type ScenarioContext struct {
	Ctx       context.Context
	Group     string
	Name      string
	Workspace *Workspace
	AzCopy    *AzCopyRunner
	TestSuite *TestSuiteRunner
	Logger    common.ILogger
}

func (sc *ScenarioContext) Logf(format string, a ...interface{}) {
	common.Logf(sc.Logger, common.LogInfo, format, a...)
}

// UniqueName returns prefix followed by a random suffix, so reruns against the same
// container never collide with leftovers.
func (sc *ScenarioContext) UniqueName(prefix string) string {
	return prefix + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// RunAzCopy is a shorthand for sc.AzCopy.Run with the scenario context.
func (sc *ScenarioContext) RunAzCopy(cmd *AzCopyCommand) (*AzCopyResult, error) {
	return sc.AzCopy.Run(sc.Ctx, cmd)
}

// CreateFile writes size random bytes to name under the workspace and returns its path.
func (sc *ScenarioContext) CreateFile(name string, size int64) (string, error) {
	return createRandomFile(sc.Workspace.Path(name), size)
}

// CreateFileWithContent writes content to name under the workspace and returns its path.
func (sc *ScenarioContext) CreateFileWithContent(name string, content []byte) (string, error) {
	p := sc.Workspace.Path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", errors.Wrap(err, "failed to create the parent directory")
	}
	if err := os.WriteFile(p, content, 0644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", p)
	}
	return p, nil
}

// CreateDirectory creates name under the workspace holding files random files of size bytes each.
// The first half sits at the top level and the rest in a sub directory, so recursive transfers are exercised.
func (sc *ScenarioContext) CreateDirectory(name string, files int, size int64) (string, error) {
	dir := sc.Workspace.Path(name)
	if err := os.MkdirAll(filepath.Join(dir, "sub_dir"), 0755); err != nil {
		return "", errors.Wrapf(err, "failed to create %s", dir)
	}

	for i := 0; i < files; i++ {
		parent := dir
		if i >= files/2 {
			parent = filepath.Join(dir, "sub_dir")
		}
		if _, err := createRandomFile(filepath.Join(parent, "test_file_"+strconv.Itoa(i)+".txt"), size); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// DownloadPath returns a fresh location under the workspace for a download destination.
func (sc *ScenarioContext) DownloadPath(name string) (string, error) {
	p := sc.Workspace.Path("downloads", name)
	if err := os.RemoveAll(p); err != nil {
		return "", errors.Wrapf(err, "failed to clear %s", p)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", errors.Wrap(err, "failed to create the downloads directory")
	}
	return p, nil
}

func createRandomFile(p string, size int64) (string, error) {
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", errors.Wrap(err, "failed to create the parent directory")
	}
	f, err := os.Create(p)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create %s", p)
	}
	defer f.Close()

	if _, err := io.CopyN(f, rand.Reader, size); err != nil {
		return "", errors.Wrapf(err, "failed to fill %s", p)
	}
	return p, nil
}

// ResourceURL appends path elements to a container, share or filesystem URL, keeping its SAS query.
func ResourceURL(base string, elem ...string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse resource url %s", common.RedactSecretQueryParam(base))
	}
	parts := append([]string{u.Path}, elem...)
	u.Path = path.Join(parts...)
	u.RawPath = ""
	return u.String(), nil
}

// RelativeResourcePath returns the path of resource below base, e.g. "dir/file" for
// base https://acct/container?sig=a and resource https://acct/container/dir/file?sig=a.
func RelativeResourcePath(base, resource string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse resource url %s", common.RedactSecretQueryParam(base))
	}
	r, err := url.Parse(resource)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse resource url %s", common.RedactSecretQueryParam(resource))
	}

	prefix := strings.TrimSuffix(b.Path, "/") + "/"
	if !strings.HasPrefix(r.Path, prefix) {
		return "", errors.Errorf("%s is not below %s", r.Path, b.Path)
	}
	return strings.TrimPrefix(r.Path, prefix), nil
}

// FileMD5 returns the MD5 of a local file.
func FileMD5(p string) ([]byte, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", p)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", p)
	}
	return h.Sum(nil), nil
}

// CompareFiles fails when the two files differ in content.
func CompareFiles(expected, actual string) error {
	e, err := FileMD5(expected)
	if err != nil {
		return err
	}
	a, err := FileMD5(actual)
	if err != nil {
		return err
	}
	if string(e) != string(a) {
		return errors.Errorf("%s does not match %s", actual, expected)
	}
	return nil
}

// CompareDirectories fails when actual does not hold exactly the files of expected with the same content.
func CompareDirectories(expected, actual string) error {
	expectedFiles, err := listFiles(expected)
	if err != nil {
		return err
	}
	actualFiles, err := listFiles(actual)
	if err != nil {
		return err
	}
	if len(expectedFiles) != len(actualFiles) {
		return errors.Errorf("expected %d files under %s, found %d", len(expectedFiles), actual, len(actualFiles))
	}

	for rel := range expectedFiles {
		if _, ok := actualFiles[rel]; !ok {
			return errors.Errorf("%s is missing under %s", rel, actual)
		}
		if err := CompareFiles(filepath.Join(expected, rel), filepath.Join(actual, rel)); err != nil {
			return err
		}
	}
	return nil
}

func listFiles(root string) (map[string]struct{}, error) {
	files := make(map[string]struct{})
	err := filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			files[rel] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", root)
	}
	return files, nil
}

// CountFiles returns the number of regular files under root.
func CountFiles(root string) (int, error) {
	files, err := listFiles(root)
	return len(files), err
}
