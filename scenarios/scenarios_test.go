package scenarios

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijayraavi/azure-storage-azcopy/config"
	"github.com/vijayraavi/azure-storage-azcopy/smoketest"
)

func TestRegisterOrder(t *testing.T) {
	r := smoketest.NewRegistry()
	Register(r)

	var names []string
	for _, g := range r.Groups() {
		names = append(names, g.Name)
		assert.NotEmpty(t, g.Scenarios, g.Name)
	}
	assert.Equal(t, []string{
		"BlockBlobUpload",
		"BlobDownload",
		"PageBlobUpload",
		"BlobFSUploadOAuth",
		"BlobFSDownloadOAuth",
		"AzCopyOperations",
		"FileShareDownload",
		"FileShareUpload",
		"BlobFSUploadSharedKey",
		"BlobFSDownloadSharedKey",
	}, names)
}

func TestOAuthGroupsSkipWithoutToken(t *testing.T) {
	r := smoketest.NewRegistry()
	Register(r)
	ws := &smoketest.Workspace{Dir: t.TempDir(), Config: config.Config{}}

	for _, g := range r.Groups() {
		if g.Name != "BlobFSUploadOAuth" && g.Name != "BlobFSDownloadOAuth" {
			continue
		}
		result := smoketest.NewRunner(nil, nil).RunGroup(context.Background(), g, ws)
		require.NotEmpty(t, result.Results)
		for _, res := range result.Results {
			assert.Equal(t, smoketest.EOutcome.Skipped(), res.Outcome, res.ID())
			assert.Equal(t, "AZCOPY_OAUTH_TOKEN_INFO is empty", res.SkipReason)
		}
	}
}
