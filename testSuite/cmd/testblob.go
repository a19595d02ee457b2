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

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/pageblob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// initializes the testBlob command, its aliases and description.
// also adds the possible flags that can be supplied with testBlob command.
func init() {
	cmdInput := validationInput{}
	testBlobCmd := &cobra.Command{
		Use:     "testBlob",
		Aliases: []string{"tBlob"},
		Short:   "tests the blob uploaded or downloaded by azcopy",

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("invalid arguments for test blob command")
			}
			// first argument is the local resource, second the blob or virtual directory url.
			cmdInput.Object = args[0]
			cmdInput.Subject = args[1]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdInput.IsObjectDirectory {
				return verifyBlobDirectory(cmd.Context(), cmdInput)
			}
			return verifySingleBlob(cmd.Context(), cmdInput)
		},
	}
	rootCmd.AddCommand(testBlobCmd)

	testBlobCmd.PersistentFlags().StringVar(&cmdInput.MetaData, "metadata", "", "metadata expected from the blob in the container")
	testBlobCmd.PersistentFlags().StringVar(&cmdInput.ContentType, "content-type", "", "content type expected from the blob in the container")
	testBlobCmd.PersistentFlags().BoolVar(&cmdInput.IsObjectDirectory, "is-object-dir", false, "set the type of object to verify against the subject")
	testBlobCmd.PersistentFlags().StringVar(&cmdInput.BlobType, "blob-type", "", "type of the blob, BlockBlob or PageBlob")
	testBlobCmd.PersistentFlags().StringVar(&cmdInput.BlobTier, "blob-tier", "", "access tier expected on the blob")
	testBlobCmd.PersistentFlags().BoolVar(&cmdInput.VerifyBlockOrPageSize, "verify-block-size", false, "this flag verify the block size by determining the number of blocks")
	testBlobCmd.PersistentFlags().Uint64Var(&cmdInput.NumberOfBlocksOrPages, "number-blocks-or-pages", 0, "number of committed blocks or page ranges expected")
	testBlobCmd.PersistentFlags().BoolVar(&cmdInput.CheckContentMD5, "check-content-md5", false, "Validate content MD5 is set and matches the local file.")
}

// verifySingleBlob validates one blob against the local file.
func verifySingleBlob(ctx context.Context, input validationInput) error {
	bc, err := blob.NewClientWithNoCredential(input.Subject, &blob.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create blob client")
	}
	if err = validateBlob(ctx, bc, input.Object); err != nil {
		return err
	}

	props, err := bc.GetProperties(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "unable to get blob properties")
	}

	if input.CheckContentMD5 {
		if err := checkContentMD5(input.Object, props.ContentMD5); err != nil {
			return err
		}
	}
	if err := validateMetadata(input.MetaData, props.Metadata); err != nil {
		return err
	}
	if !validateString(input.ContentType, props.ContentType) {
		return fmt.Errorf("mismatch content type between actual and user given blob content type, expected %q", input.ContentType)
	}
	if input.BlobType != "" && (props.BlobType == nil || string(*props.BlobType) != input.BlobType) {
		return fmt.Errorf("blob type of %s does not match the expected %q", common.RedactSecretQueryParam(input.Subject), input.BlobType)
	}
	if !validateString(input.BlobTier, props.AccessTier) {
		return fmt.Errorf("access tier of the blob does not match the expected %q", input.BlobTier)
	}

	if input.VerifyBlockOrPageSize {
		return verifyBlocksOrPages(ctx, input, props.BlobType)
	}
	return nil
}

// verifyBlocksOrPages counts committed blocks for block blobs and page ranges for page blobs.
// Consecutive pages get squashed into one range by the service.
func verifyBlocksOrPages(ctx context.Context, input validationInput, blobType *blob.BlobType) error {
	actual := uint64(0)

	if blobType != nil && *blobType == blob.BlobTypePageBlob {
		pbc, err := pageblob.NewClientWithNoCredential(input.Subject, &pageblob.ClientOptions{ClientOptions: clientOptions()})
		if err != nil {
			return errors.Wrap(err, "cannot create page blob client")
		}
		pager := pbc.NewGetPageRangesPager(nil)
		for pager.More() {
			resp, err := pager.NextPage(ctx)
			if err != nil {
				return errors.Wrap(err, "error getting the page ranges")
			}
			actual += uint64(len(resp.PageRange))
		}
	} else {
		bbc, err := blockblob.NewClientWithNoCredential(input.Subject, &blockblob.ClientOptions{ClientOptions: clientOptions()})
		if err != nil {
			return errors.Wrap(err, "cannot create block blob client")
		}
		resp, err := bbc.GetBlockList(ctx, blockblob.BlockListTypeCommitted, nil)
		if err != nil {
			return errors.Wrap(err, "error getting the block list")
		}
		actual = uint64(len(resp.BlockList.CommittedBlocks))
	}

	if actual != input.NumberOfBlocksOrPages {
		return fmt.Errorf("number of blocks or pages %d does not match the expected %d", actual, input.NumberOfBlocksOrPages)
	}
	return nil
}

// verifyBlobDirectory validates every blob under the virtual directory against the local tree.
func verifyBlobDirectory(ctx context.Context, input validationInput) error {
	containerURL, blobName, err := splitContainerURL(input.Subject)
	if err != nil {
		return err
	}
	searchPrefix := virtualDirectoryPrefix(blobName)
	cc, err := container.NewClientWithNoCredential(containerURL, &container.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create container client")
	}

	local, err := localFiles(input.Object)
	if err != nil {
		return errors.Wrapf(err, "cannot walk local directory %s", input.Object)
	}
	validated := newValidatedSet()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(validationParallelism)

	pager := cc.NewListBlobsFlatPager(&container.ListBlobsFlatOptions{
		Prefix:  &searchPrefix,
		Include: container.ListBlobsInclude{Metadata: true},
	})
	for pager.More() {
		listBlob, err := pager.NextPage(gctx)
		if err != nil {
			_ = g.Wait()
			return errors.Wrap(err, "cannot list blobs inside the virtual directory")
		}

		for _, blobInfo := range listBlob.Segment.BlobItems {
			name := *blobInfo.Name
			rel := relativeRemotePath(searchPrefix, name)
			localPath, ok := local[rel]
			if !ok {
				_ = g.Wait()
				return fmt.Errorf("blob %s has no counterpart in %s", name, input.Object)
			}
			if err := validateMetadata(input.MetaData, blobInfo.Metadata); err != nil {
				_ = g.Wait()
				return errors.Wrapf(err, "blob %s", name)
			}

			g.Go(func() error {
				if err := validateBlob(gctx, cc.NewBlobClient(name), localPath); err != nil {
					return err
				}
				validated.add(rel)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return verifyRemoteSet(local, validated.snapshot())
}

// validateBlob downloads the blob and compares it with localPath.
func validateBlob(ctx context.Context, bc *blob.Client, localPath string) error {
	blobURL := common.RedactSecretQueryParam(bc.URL())
	get, err := bc.DownloadStream(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "unable to download blob %s", blobURL)
	}
	retryReader := get.NewRetryReader(ctx, &blob.RetryReaderOptions{MaxRetries: 3})
	return compareContent(localPath, blobURL, retryReader)
}
