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

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/filesystem"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/directory"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// initializes the clean command, its aliases and description.
func init() {
	resourceURL := ""
	serviceType := EServiceType.Blob()
	serviceTypeStr := ""

	cleanCmd := &cobra.Command{
		Use:     "clean",
		Aliases: []string{"clean"},
		Short:   "clean deletes everything inside the container, share or filesystem.",

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("invalid arguments for clean command")
			}
			resourceURL = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (&serviceType).Parse(serviceTypeStr); err != nil {
				return errors.Wrapf(err, "fail to parse service type %q", serviceTypeStr)
			}

			switch serviceType {
			case EServiceType.Blob():
				return cleanContainer(cmd.Context(), resourceURL)
			case EServiceType.File():
				return cleanShare(cmd.Context(), resourceURL)
			case EServiceType.BlobFS():
				return cleanFileSystem(cmd.Context(), resourceURL)
			default:
				return fmt.Errorf("illegal serviceType %q", serviceType)
			}
		},
	}
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.PersistentFlags().StringVar(&serviceTypeStr, "serviceType", "Blob", "Service type, could be Blob, File or BlobFS.")
}

// cleanContainer deletes every blob, snapshots included. A blob URL deletes just that blob.
func cleanContainer(ctx context.Context, resourceURL string) error {
	parts, err := blob.ParseURL(resourceURL)
	if err != nil {
		return errors.Wrap(err, "error parsing the container sas")
	}
	deleteOptions := &blob.DeleteOptions{DeleteSnapshots: to.Ptr(blob.DeleteSnapshotsOptionTypeInclude)}

	if parts.BlobName != "" {
		bc, err := blob.NewClientWithNoCredential(resourceURL, &blob.ClientOptions{ClientOptions: clientOptions()})
		if err != nil {
			return errors.Wrap(err, "cannot create blob client")
		}
		if _, err = bc.Delete(ctx, deleteOptions); err != nil {
			return errors.Wrap(err, "error deleting the blob")
		}
		return nil
	}

	cc, err := container.NewClientWithNoCredential(resourceURL, &container.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create container client")
	}

	pager := cc.NewListBlobsFlatPager(nil)
	for pager.More() {
		listBlob, err := pager.NextPage(ctx)
		if err != nil {
			return errors.Wrap(err, "error listing blobs inside the container. Please check the container sas")
		}

		for _, blobInfo := range listBlob.Segment.BlobItems {
			if _, err := cc.NewBlobClient(*blobInfo.Name).Delete(ctx, deleteOptions); err != nil {
				return errors.Wrapf(err, "error deleting the blob %s from container", *blobInfo.Name)
			}
		}
	}
	return nil
}

// cleanShare empties a share or directory, leaving the root itself in place.
func cleanShare(ctx context.Context, resourceURL string) error {
	dc, err := directory.NewClientWithNoCredential(resourceURL, &directory.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create directory client")
	}
	return deleteDirectoryContents(ctx, dc)
}

func deleteDirectoryContents(ctx context.Context, dc *directory.Client) error {
	pager := dc.NewListFilesAndDirectoriesPager(nil)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return errors.Wrap(err, "error listing files inside the share. Please check the share sas")
		}

		for _, fileInfo := range resp.Segment.Files {
			if _, err := dc.NewFileClient(*fileInfo.Name).Delete(ctx, nil); err != nil {
				return errors.Wrapf(err, "error deleting the file %s", *fileInfo.Name)
			}
		}
		for _, dirInfo := range resp.Segment.Directories {
			sub := dc.NewSubdirectoryClient(*dirInfo.Name)
			if err := deleteDirectoryContents(ctx, sub); err != nil {
				return err
			}
			if _, err := sub.Delete(ctx, nil); err != nil {
				return errors.Wrapf(err, "error deleting the directory %s", *dirInfo.Name)
			}
		}
	}
	return nil
}

// cleanFileSystem deletes the top-level paths; directories go recursively.
func cleanFileSystem(ctx context.Context, resourceURL string) error {
	cred, err := newDataLakeCredential()
	if err != nil {
		return err
	}
	parts, err := azdatalake.ParseURL(resourceURL)
	if err != nil {
		return errors.Wrap(err, "cannot parse filesystem URL")
	}
	prefix := parts.PathName
	parts.PathName = ""

	fsc, err := filesystem.NewClientWithSharedKeyCredential(parts.String(), cred, &filesystem.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create filesystem client")
	}

	options := &filesystem.ListPathsOptions{}
	if prefix != "" {
		options.Prefix = &prefix
	}
	pager := fsc.NewListPathsPager(false, options)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return errors.Wrap(err, "error listing paths inside the filesystem")
		}

		for _, p := range resp.Paths {
			if p.IsDirectory != nil && *p.IsDirectory {
				_, err = fsc.NewDirectoryClient(*p.Name).Delete(ctx, nil)
			} else {
				_, err = fsc.NewFileClient(*p.Name).Delete(ctx, nil)
			}
			if err != nil {
				return errors.Wrapf(err, "error deleting the path %s", *p.Name)
			}
		}
	}
	return nil
}
