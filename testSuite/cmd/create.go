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
	"bytes"
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake"
	datalakedirectory "github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/directory"
	datalakefile "github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/file"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/filesystem"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/directory"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/file"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/share"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type createInput struct {
	ResourceURL  string
	ServiceType  ServiceType
	ResourceType ResourceType
	Size         int64
	MetaData     string
	ContentType  string
}

// initializes the create command, its aliases and description.
func init() {
	input := createInput{}
	serviceTypeStr := ""
	resourceTypeStr := ""

	createCmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"create"},
		Short:   "create creates a container, share, filesystem, directory or a single file of random content.",

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("invalid arguments for create command")
			}
			input.ResourceURL = args[0]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (&input.ServiceType).Parse(serviceTypeStr); err != nil {
				return errors.Wrapf(err, "fail to parse service type %q", serviceTypeStr)
			}
			if err := (&input.ResourceType).Parse(resourceTypeStr); err != nil {
				return errors.Wrapf(err, "fail to parse resource type %q", resourceTypeStr)
			}
			if input.Size < 0 {
				return fmt.Errorf("blob-size cannot be negative")
			}
			return create(cmd.Context(), input)
		},
	}
	rootCmd.AddCommand(createCmd)

	createCmd.PersistentFlags().StringVar(&serviceTypeStr, "serviceType", "Blob", "Service type, could be Blob, File or BlobFS.")
	createCmd.PersistentFlags().StringVar(&resourceTypeStr, "resourceType", "SingleFile", "Resource type, could be SingleFile or Bucket.")
	createCmd.PersistentFlags().Int64Var(&input.Size, "blob-size", 0, "size in bytes of the random content of a SingleFile.")
	createCmd.PersistentFlags().StringVar(&input.MetaData, "metadata", "", "metadata for the file, as key1=value1;key2=value2.")
	createCmd.PersistentFlags().StringVar(&input.ContentType, "content-type", "", "content type for the file.")
}

func create(ctx context.Context, input createInput) error {
	metadata, err := parseMetadata(input.MetaData)
	if err != nil {
		return err
	}

	switch input.ServiceType {
	case EServiceType.Blob():
		if input.ResourceType == EResourceType.Bucket() {
			return createContainer(ctx, input.ResourceURL)
		}
		return createBlob(ctx, input, metadata)
	case EServiceType.File():
		if input.ResourceType == EResourceType.Bucket() {
			return createShareOrDirectory(ctx, input.ResourceURL)
		}
		return createFile(ctx, input, metadata)
	case EServiceType.BlobFS():
		if input.ResourceType == EResourceType.Bucket() {
			return createFileSystemOrDirectory(ctx, input.ResourceURL)
		}
		return createBlobFSFile(ctx, input, metadata)
	default:
		return fmt.Errorf("illegal serviceType %q", input.ServiceType)
	}
}

func createContainer(ctx context.Context, containerURL string) error {
	cc, err := container.NewClientWithNoCredential(containerURL, &container.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create container client")
	}
	if _, err = cc.Create(ctx, nil); err != nil {
		return errors.Wrap(err, "fail to create container")
	}
	return nil
}

func createBlob(ctx context.Context, input createInput, metadata map[string]*string) error {
	bbc, err := blockblob.NewClientWithNoCredential(input.ResourceURL, &blockblob.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create block blob client")
	}

	options := &blockblob.UploadBufferOptions{Metadata: metadata}
	if input.ContentType != "" {
		options.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &input.ContentType}
	}
	if _, err = bbc.UploadBuffer(ctx, randomContent(input.Size), options); err != nil {
		return errors.Wrap(err, "fail to upload blob")
	}
	return nil
}

func createShareOrDirectory(ctx context.Context, resourceURL string) error {
	parts, err := file.ParseURL(resourceURL)
	if err != nil {
		return errors.Wrap(err, "cannot parse share URL")
	}

	if parts.DirectoryOrFilePath == "" {
		sc, err := share.NewClientWithNoCredential(resourceURL, &share.ClientOptions{ClientOptions: clientOptions()})
		if err != nil {
			return errors.Wrap(err, "cannot create share client")
		}
		if _, err = sc.Create(ctx, nil); err != nil {
			return errors.Wrap(err, "fail to create share")
		}
		return nil
	}

	dc, err := directory.NewClientWithNoCredential(resourceURL, &directory.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create directory client")
	}
	if _, err = dc.Create(ctx, nil); err != nil {
		return errors.Wrap(err, "fail to create directory")
	}
	return nil
}

func createFile(ctx context.Context, input createInput, metadata map[string]*string) error {
	fc, err := file.NewClientWithNoCredential(input.ResourceURL, &file.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create file client")
	}

	options := &file.CreateOptions{Metadata: metadata}
	if input.ContentType != "" {
		options.HTTPHeaders = &file.HTTPHeaders{ContentType: &input.ContentType}
	}
	if _, err = fc.Create(ctx, input.Size, options); err != nil {
		return errors.Wrap(err, "fail to create file")
	}
	if input.Size == 0 {
		return nil
	}
	if err = fc.UploadBuffer(ctx, randomContent(input.Size), nil); err != nil {
		return errors.Wrap(err, "fail to upload file content")
	}
	return nil
}

func createFileSystemOrDirectory(ctx context.Context, resourceURL string) error {
	cred, err := newDataLakeCredential()
	if err != nil {
		return err
	}
	parts, err := azdatalake.ParseURL(resourceURL)
	if err != nil {
		return errors.Wrap(err, "cannot parse filesystem URL")
	}

	if parts.PathName == "" {
		fsc, err := filesystem.NewClientWithSharedKeyCredential(resourceURL, cred, &filesystem.ClientOptions{ClientOptions: clientOptions()})
		if err != nil {
			return errors.Wrap(err, "cannot create filesystem client")
		}
		if _, err = fsc.Create(ctx, nil); err != nil {
			return errors.Wrap(err, "fail to create filesystem")
		}
		return nil
	}

	dc, err := datalakedirectory.NewClientWithSharedKeyCredential(resourceURL, cred, &datalakedirectory.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create directory client")
	}
	if _, err = dc.Create(ctx, nil); err != nil {
		return errors.Wrap(err, "fail to create directory")
	}
	return nil
}

func createBlobFSFile(ctx context.Context, input createInput, metadata map[string]*string) error {
	cred, err := newDataLakeCredential()
	if err != nil {
		return err
	}
	fc, err := datalakefile.NewClientWithSharedKeyCredential(input.ResourceURL, cred, &datalakefile.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create datalake file client")
	}

	options := &datalakefile.CreateOptions{}
	if input.ContentType != "" {
		options.HTTPHeaders = &datalakefile.HTTPHeaders{ContentType: &input.ContentType}
	}
	if _, err = fc.Create(ctx, options); err != nil {
		return errors.Wrap(err, "fail to create datalake file")
	}
	if input.Size > 0 {
		if err = fc.UploadStream(ctx, bytes.NewReader(randomContent(input.Size)), nil); err != nil {
			return errors.Wrap(err, "fail to upload datalake file content")
		}
	}
	if len(metadata) > 0 {
		if _, err = fc.SetMetadata(ctx, metadata, nil); err != nil {
			return errors.Wrap(err, "fail to set datalake file metadata")
		}
	}
	return nil
}

func newDataLakeCredential() (*azdatalake.SharedKeyCredential, error) {
	name, key, err := sharedKeyFromEnv()
	if err != nil {
		return nil, err
	}
	cred, err := azdatalake.NewSharedKeyCredential(name, key)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create shared key credential")
	}
	return cred, nil
}
