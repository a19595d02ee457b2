package cmd

import (
	"crypto/md5"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chk "gopkg.in/check.v1"
)

func Test(t *testing.T) { chk.TestingT(t) }

type validatorTestSuite struct{}

var _ = chk.Suite(&validatorTestSuite{})

func strPtr(s string) *string { return &s }

func (s *validatorTestSuite) TestParseServiceAndResourceType(c *chk.C) {
	st := EServiceType.Blob()
	c.Assert((&st).Parse("blobfs"), chk.IsNil)
	c.Assert(st, chk.Equals, EServiceType.BlobFS())
	c.Assert(st.String(), chk.Equals, "BlobFS")

	c.Assert((&st).Parse("File"), chk.IsNil)
	c.Assert(st, chk.Equals, EServiceType.File())
	c.Assert((&st).Parse("Queue"), chk.NotNil)

	rt := EResourceType.SingleFile()
	c.Assert((&rt).Parse("Bucket"), chk.IsNil)
	c.Assert(rt, chk.Equals, EResourceType.Bucket())
}

func (s *validatorTestSuite) TestParseMetadata(c *chk.C) {
	md, err := parseMetadata("author=smoketest;project=azcopy")
	c.Assert(err, chk.IsNil)
	c.Assert(md, chk.HasLen, 2)
	c.Assert(*md["author"], chk.Equals, "smoketest")
	c.Assert(*md["project"], chk.Equals, "azcopy")

	// values may contain '='
	md, err = parseMetadata("k=a=b;")
	c.Assert(err, chk.IsNil)
	c.Assert(*md["k"], chk.Equals, "a=b")

	md, err = parseMetadata("")
	c.Assert(err, chk.IsNil)
	c.Assert(md, chk.IsNil)

	_, err = parseMetadata("novalue")
	c.Assert(err, chk.NotNil)
	_, err = parseMetadata("=value")
	c.Assert(err, chk.NotNil)
}

func (s *validatorTestSuite) TestValidateMetadata(c *chk.C) {
	actual := map[string]*string{"Author": strPtr("smoketest"), "Extra": strPtr("x")}

	c.Assert(validateMetadata("author=smoketest", actual), chk.IsNil)
	c.Assert(validateMetadata("", actual), chk.IsNil)
	c.Assert(validateMetadata("", nil), chk.IsNil)

	err := validateMetadata("author=someone", actual)
	c.Assert(err, chk.NotNil)
	c.Assert(strings.Contains(err.Error(), `"author"`), chk.Equals, true)

	err = validateMetadata("project=azcopy", actual)
	c.Assert(err, chk.ErrorMatches, `metadata key "project" is missing.*`)
}

func (s *validatorTestSuite) TestValidateString(c *chk.C) {
	c.Assert(validateString("", nil), chk.Equals, true)
	c.Assert(validateString("P10", strPtr("p10")), chk.Equals, true)
	c.Assert(validateString("P10", strPtr("P20")), chk.Equals, false)
	c.Assert(validateString("P10", nil), chk.Equals, false)
}

func (s *validatorTestSuite) TestSplitContainerURL(c *chk.C) {
	containerURL, blobName, err := splitContainerURL("https://account.blob.core.windows.net/container/dir/sub/?sv=2020&sig=abc")
	c.Assert(err, chk.IsNil)
	c.Assert(blobName, chk.Equals, "dir/sub")
	c.Assert(virtualDirectoryPrefix(blobName), chk.Equals, "dir/sub/")
	c.Assert(strings.HasPrefix(containerURL, "https://account.blob.core.windows.net/container?"), chk.Equals, true)
	c.Assert(strings.Contains(containerURL, "sig=abc"), chk.Equals, true)

	_, blobName, err = splitContainerURL("https://account.blob.core.windows.net/container")
	c.Assert(err, chk.IsNil)
	c.Assert(blobName, chk.Equals, "")
	c.Assert(virtualDirectoryPrefix(blobName), chk.Equals, "")
}

func (s *validatorTestSuite) TestListCountsSingleBlobResource(c *chk.C) {
	_, blobName, err := splitContainerURL("https://acct.blob.core.windows.net/c/remove_blob_abc?sig=x")
	c.Assert(err, chk.IsNil)
	c.Assert(blobName, chk.Equals, "remove_blob_abc")

	// a blob that was not removed must still be counted
	c.Assert(isUnderResource(blobName, "remove_blob_abc"), chk.Equals, true)
	c.Assert(isUnderResource(blobName, "remove_blob_abc/child.txt"), chk.Equals, true)
	c.Assert(isUnderResource(blobName, "remove_blob_abcd"), chk.Equals, false)
	c.Assert(isUnderResource(blobName, "other"), chk.Equals, false)
}

func (s *validatorTestSuite) TestListCountsVirtualDirectory(c *chk.C) {
	_, blobName, err := splitContainerURL("https://acct.blob.core.windows.net/c/dir?sig=x")
	c.Assert(err, chk.IsNil)

	c.Assert(isUnderResource(blobName, "dir/a.txt"), chk.Equals, true)
	c.Assert(isUnderResource(blobName, "dir/sub_dir/b.txt"), chk.Equals, true)
	c.Assert(isUnderResource(blobName, "dir2/a.txt"), chk.Equals, false)
	c.Assert(isUnderResource("", "anything"), chk.Equals, true)
}

func (s *validatorTestSuite) TestRelativeRemotePath(c *chk.C) {
	c.Assert(relativeRemotePath("dir/sub/", "dir/sub/a.txt"), chk.Equals, "a.txt")
	c.Assert(relativeRemotePath("dir", "dir/sub_dir/b.txt"), chk.Equals, "sub_dir/b.txt")
	c.Assert(relativeRemotePath("", "/top.txt"), chk.Equals, "top.txt")
}

func (s *validatorTestSuite) TestLocalFilesAndRemoteSet(c *chk.C) {
	root := c.MkDir()
	c.Assert(os.MkdirAll(filepath.Join(root, "sub_dir"), 0755), chk.IsNil)
	c.Assert(os.WriteFile(filepath.Join(root, "a.txt"), []byte("a"), 0644), chk.IsNil)
	c.Assert(os.WriteFile(filepath.Join(root, "sub_dir", "b.txt"), []byte("b"), 0644), chk.IsNil)

	files, err := localFiles(root)
	c.Assert(err, chk.IsNil)
	c.Assert(files, chk.HasLen, 2)
	c.Assert(files["sub_dir/b.txt"], chk.Equals, filepath.Join(root, "sub_dir", "b.txt"))

	c.Assert(verifyRemoteSet(files, map[string]bool{"a.txt": true, "sub_dir/b.txt": true}), chk.IsNil)
	err = verifyRemoteSet(files, map[string]bool{"a.txt": true})
	c.Assert(err, chk.ErrorMatches, `1 local file\(s\) have no remote counterpart: sub_dir/b.txt`)
}

func (s *validatorTestSuite) TestCompareContent(c *chk.C) {
	root := c.MkDir()
	local := filepath.Join(root, "data.bin")
	content := randomContent(4096)
	c.Assert(content, chk.HasLen, 4096)
	c.Assert(os.WriteFile(local, content, 0644), chk.IsNil)

	same := io.NopCloser(strings.NewReader(string(content)))
	c.Assert(compareContent(local, "remote", same), chk.IsNil)

	shorter := io.NopCloser(strings.NewReader(string(content[:100])))
	c.Assert(compareContent(local, "remote", shorter), chk.ErrorMatches, `size of .* is 4096 but remote has 100 bytes`)

	altered := append([]byte{}, content...)
	altered[0] ^= 0xff
	c.Assert(compareContent(local, "remote", io.NopCloser(strings.NewReader(string(altered)))), chk.ErrorMatches, `content of .* does not match remote`)
}

func (s *validatorTestSuite) TestCheckContentMD5(c *chk.C) {
	local := filepath.Join(c.MkDir(), "data.txt")
	c.Assert(os.WriteFile(local, []byte("smoke"), 0644), chk.IsNil)
	sum := md5.Sum([]byte("smoke"))

	c.Assert(checkContentMD5(local, sum[:]), chk.IsNil)
	c.Assert(checkContentMD5(local, nil), chk.ErrorMatches, "content MD5 is not set.*")
	c.Assert(checkContentMD5(local, []byte("0123456789abcdef")), chk.NotNil)
}

func (s *validatorTestSuite) TestSharedKeyFromEnv(c *chk.C) {
	for _, k := range []string{"ACCOUNT_NAME", "ACCOUNT_KEY"} {
		if old, ok := os.LookupEnv(k); ok {
			defer os.Setenv(k, old)
		} else {
			defer os.Unsetenv(k)
		}
	}

	os.Setenv("ACCOUNT_NAME", "account")
	os.Unsetenv("ACCOUNT_KEY")
	_, _, err := sharedKeyFromEnv()
	c.Assert(err, chk.NotNil)

	os.Setenv("ACCOUNT_KEY", "a2V5")
	name, key, err := sharedKeyFromEnv()
	c.Assert(err, chk.IsNil)
	c.Assert(name, chk.Equals, "account")
	c.Assert(key, chk.Equals, "a2V5")
}

func (s *validatorTestSuite) TestValidatedSetIsSafeForConcurrentUse(c *chk.C) {
	set := newValidatedSet()
	done := make(chan struct{})
	for i := 0; i < validationParallelism; i++ {
		go func(i int) {
			set.add(filepath.ToSlash(filepath.Join("dir", string(rune('a'+i)))))
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < validationParallelism; i++ {
		<-done
	}

	snapshot := set.snapshot()
	c.Assert(snapshot, chk.HasLen, validationParallelism)
	c.Assert(snapshot["dir/a"], chk.Equals, true)
}
