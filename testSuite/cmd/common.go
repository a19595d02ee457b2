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

package cmd

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/JeffreyRichter/enum/enum"
	"github.com/pkg/errors"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

var EServiceType = ServiceType(0)

type ServiceType uint8

func (ServiceType) Blob() ServiceType   { return ServiceType(0) }
func (ServiceType) File() ServiceType   { return ServiceType(1) }
func (ServiceType) BlobFS() ServiceType { return ServiceType(2) }

func (s ServiceType) String() string {
	return enum.StringInt(s, reflect.TypeOf(s))
}

func (s *ServiceType) Parse(str string) error {
	val, err := enum.ParseInt(reflect.TypeOf(s), str, true, true)
	if err == nil {
		*s = val.(ServiceType)
	}
	return err
}

var EResourceType = ResourceType(0)

type ResourceType uint8

func (ResourceType) SingleFile() ResourceType { return ResourceType(0) }
func (ResourceType) Bucket() ResourceType     { return ResourceType(1) }

func (r ResourceType) String() string {
	return enum.StringInt(r, reflect.TypeOf(r))
}

func (r *ResourceType) Parse(str string) error {
	val, err := enum.ParseInt(reflect.TypeOf(r), str, true, true)
	if err == nil {
		*r = val.(ResourceType)
	}
	return err
}

// validationInput carries the flags shared by testBlob, testFile and testBlobFS.
type validationInput struct {
	// Object is the local file or directory azcopy read from or wrote to.
	Object string
	// Subject is the remote resource Object is validated against.
	Subject string
	// IsObjectDirectory switches validation to the directory walk.
	IsObjectDirectory bool
	// MetaData is the expected metadata, in azcopy's "k1=v1;k2=v2" form.
	MetaData    string
	ContentType string
	// CheckContentMD5 requires the service to hold a Content-MD5 equal to the local file's hash.
	CheckContentMD5 bool

	VerifyBlockOrPageSize bool
	NumberOfBlocksOrPages uint64
	BlobType              string
	BlobTier              string
}

// parseMetadata turns azcopy's metadata syntax into the map the SDKs take.
func parseMetadata(raw string) (map[string]*string, error) {
	if raw == "" {
		return nil, nil
	}

	md := make(map[string]*string)
	for _, kv := range strings.Split(raw, ";") {
		if kv == "" {
			continue
		}
		k, v, found := strings.Cut(kv, "=")
		if !found || k == "" {
			return nil, errors.Errorf("invalid metadata pair %q, expected key=value", kv)
		}
		value := v
		md[k] = &value
	}
	return md, nil
}

// validateMetadata checks that every expected pair is present in actual.
// Keys are compared case-insensitively since the service canonicalizes header names.
func validateMetadata(expected string, actual map[string]*string) error {
	want, err := parseMetadata(expected)
	if err != nil {
		return err
	}

	got := make(map[string]string, len(actual))
	for k, v := range actual {
		if v != nil {
			got[strings.ToLower(k)] = *v
		}
	}

	keys := make([]string, 0, len(want))
	for k := range want {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := got[strings.ToLower(k)]
		if !ok {
			return errors.Errorf("metadata key %q is missing on the remote resource", k)
		}
		if v != *want[k] {
			return errors.Errorf("metadata key %q has value %q, expected %q", k, v, *want[k])
		}
	}
	return nil
}

func validateString(expected string, actual *string) bool {
	if expected == "" {
		return true
	}
	return actual != nil && strings.EqualFold(expected, *actual)
}

// readerMD5 hashes everything r yields and reports how many bytes were read.
func readerMD5(r io.Reader) ([]byte, int64, error) {
	h := md5.New()
	n, err := io.Copy(h, r)
	if err != nil {
		return nil, n, err
	}
	return h.Sum(nil), n, nil
}

func localFileMD5(path string) ([]byte, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return readerMD5(f)
}

// compareContent checks that the remote body matches the local file byte for byte, via MD5.
func compareContent(localPath string, remoteName string, remote io.ReadCloser) error {
	defer remote.Close()

	localHash, localSize, err := localFileMD5(localPath)
	if err != nil {
		return errors.Wrapf(err, "cannot read local file %s", localPath)
	}
	remoteHash, remoteSize, err := readerMD5(remote)
	if err != nil {
		return errors.Wrapf(err, "cannot read remote resource %s", remoteName)
	}

	if localSize != remoteSize {
		return errors.Errorf("size of %s is %d but %s has %d bytes", localPath, localSize, remoteName, remoteSize)
	}
	if string(localHash) != string(remoteHash) {
		return errors.Errorf("content of %s does not match %s", localPath, remoteName)
	}
	return nil
}

// checkContentMD5 requires the stored Content-MD5 to be present and to match the local file.
func checkContentMD5(localPath string, stored []byte) error {
	if len(stored) == 0 {
		return errors.New("content MD5 is not set on the remote resource")
	}
	localHash, _, err := localFileMD5(localPath)
	if err != nil {
		return errors.Wrapf(err, "cannot read local file %s", localPath)
	}
	if string(localHash) != string(stored) {
		return errors.Errorf("stored content MD5 does not match the MD5 of %s", localPath)
	}
	return nil
}

// localFiles maps slash-separated relative paths to the regular files under root.
func localFiles(root string) (map[string]string, error) {
	files := make(map[string]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = path
		return nil
	})
	return files, err
}

// relativeRemotePath strips the directory prefix of a listed path name.
func relativeRemotePath(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	name = strings.TrimPrefix(name, "/")
	if prefix == "" {
		return name
	}
	return strings.TrimPrefix(strings.TrimPrefix(name, prefix), "/")
}

// validationParallelism bounds the concurrent downloads of a directory validation.
const validationParallelism = 8

// validatedSet records the relative paths whose content has been checked.
type validatedSet struct {
	mu    sync.Mutex
	paths map[string]bool
}

func newValidatedSet() *validatedSet {
	return &validatedSet{paths: make(map[string]bool)}
}

func (v *validatedSet) add(rel string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.paths[rel] = true
}

func (v *validatedSet) snapshot() map[string]bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]bool, len(v.paths))
	for k := range v.paths {
		out[k] = true
	}
	return out
}

// verifyRemoteSet checks that every local file was validated and no remote file is unaccounted for.
func verifyRemoteSet(local map[string]string, validated map[string]bool) error {
	var missing []string
	for rel := range local {
		if !validated[rel] {
			missing = append(missing, rel)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.Errorf("%d local file(s) have no remote counterpart: %s", len(missing), strings.Join(missing, ", "))
	}
	return nil
}

func clientOptions() azcore.ClientOptions {
	return common.NewClientOptions()
}

// sharedKeyFromEnv reads the account credentials the datalake commands authenticate with.
func sharedKeyFromEnv() (name, key string, err error) {
	name, key = os.Getenv("ACCOUNT_NAME"), os.Getenv("ACCOUNT_KEY")
	if name == "" || key == "" {
		return "", "", fmt.Errorf("ACCOUNT_NAME and ACCOUNT_KEY should be set before running BlobFS commands")
	}
	return name, key, nil
}

func randomContent(size int64) []byte {
	return common.NewRandomDataGenerator(size).Bytes()
}
