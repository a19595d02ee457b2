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
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// initializes the list command, its aliases and description.
func init() {
	resourceURL := ""
	numberOfResource := int64(0)

	listCmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"list"},
		Short:   "list counts everything inside the container / virtual directory",

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("invalid arguments for list command")
			}
			resourceURL = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return listContainer(cmd.Context(), resourceURL, numberOfResource)
		},
	}
	rootCmd.AddCommand(listCmd)

	listCmd.PersistentFlags().Int64Var(&numberOfResource, "resource-num", 0, "number of resource inside the container")
}

// splitContainerURL separates a container, blob or virtual directory URL into the container URL
// and the blob name, without any trailing "/".
func splitContainerURL(resourceURL string) (containerURL string, blobName string, err error) {
	parts, err := blob.ParseURL(resourceURL)
	if err != nil {
		return "", "", errors.Wrap(err, "cannot parse source URL")
	}

	blobName = strings.TrimSuffix(parts.BlobName, "/")
	parts.BlobName = ""
	return parts.String(), blobName, nil
}

// virtualDirectoryPrefix is the listing prefix of the blobs under blobName.
func virtualDirectoryPrefix(blobName string) string {
	if blobName == "" {
		return ""
	}
	return blobName + "/"
}

// isUnderResource reports whether a listed blob is the resource itself or lies in its virtual directory.
func isUnderResource(blobName, name string) bool {
	if blobName == "" {
		return true
	}
	return name == blobName || strings.HasPrefix(name, virtualDirectoryPrefix(blobName))
}

func listContainer(ctx context.Context, resourceURL string, numberOfResources int64) error {
	containerURL, blobName, err := splitContainerURL(resourceURL)
	if err != nil {
		return err
	}

	cc, err := container.NewClientWithNoCredential(containerURL, &container.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create container client")
	}

	numberOfBlobs := int64(0)
	// the prefix also matches siblings such as "name2", which isUnderResource filters out
	pager := cc.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{Prefix: &blobName})
	for pager.More() {
		listBlob, err := pager.NextPage(ctx)
		if err != nil {
			return errors.Wrap(err, "cannot list blobs")
		}
		for _, blobInfo := range listBlob.Segment.BlobItems {
			if isUnderResource(blobName, *blobInfo.Name) {
				numberOfBlobs++
			}
		}
	}

	if numberOfBlobs != numberOfResources {
		return fmt.Errorf("expected number of blobs / file %d inside the resource does not match the actual %d", numberOfResources, numberOfBlobs)
	}
	return nil
}
