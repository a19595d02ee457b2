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
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake"
	datalakefile "github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/file"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azdatalake/filesystem"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// initializes the testBlobFS command, its aliases and description.
func init() {
	cmdInput := validationInput{}
	testBlobFSCmd := &cobra.Command{
		Use:     "testBlobFS",
		Aliases: []string{"tBlobFS"},
		Short:   "tests the ADLS Gen2 file or directory uploaded or downloaded by azcopy",

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("invalid arguments for test blobFS command")
			}
			// first argument is the local resource, second the dfs url.
			cmdInput.Object = args[0]
			cmdInput.Subject = args[1]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cred, err := newDataLakeCredential()
			if err != nil {
				return err
			}
			if cmdInput.IsObjectDirectory {
				return verifyRemoteDir(cmd.Context(), cmdInput, cred)
			}
			return verifyRemoteFile(cmd.Context(), cmdInput, cred)
		},
	}
	rootCmd.AddCommand(testBlobFSCmd)

	testBlobFSCmd.PersistentFlags().BoolVar(&cmdInput.IsObjectDirectory, "is-object-dir", false, "set the type of object to verify against the subject")
	testBlobFSCmd.PersistentFlags().StringVar(&cmdInput.MetaData, "metadata", "", "metadata expected from the file")
}

func verifyRemoteFile(ctx context.Context, input validationInput, cred *azdatalake.SharedKeyCredential) error {
	fc, err := datalakefile.NewClientWithSharedKeyCredential(input.Subject, cred, &datalakefile.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create datalake file client")
	}
	return validateDataLakeFile(ctx, fc, input.Object, input.Subject, input.MetaData)
}

// verifyRemoteDir lists the directory recursively and validates every file against the local tree.
func verifyRemoteDir(ctx context.Context, input validationInput, cred *azdatalake.SharedKeyCredential) error {
	parts, err := azdatalake.ParseURL(input.Subject)
	if err != nil {
		return errors.Wrap(err, "cannot parse the directory url")
	}
	currentDirectoryPath := parts.PathName
	parts.PathName = ""

	fsc, err := filesystem.NewClientWithSharedKeyCredential(parts.String(), cred, &filesystem.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create filesystem client")
	}

	local, err := localFiles(input.Object)
	if err != nil {
		return errors.Wrapf(err, "cannot walk local directory %s", input.Object)
	}
	validated := newValidatedSet()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(validationParallelism)

	pager := fsc.NewListPathsPager(true, &filesystem.ListPathsOptions{Prefix: &currentDirectoryPath})
	for pager.More() {
		resp, err := pager.NextPage(gctx)
		if err != nil {
			_ = g.Wait()
			return errors.Wrapf(err, "error listing the directory path %s", currentDirectoryPath)
		}

		for _, p := range resp.Paths {
			if p.IsDirectory != nil && *p.IsDirectory {
				continue
			}
			name := *p.Name
			rel := relativeRemotePath(currentDirectoryPath, name)
			localPath, ok := local[rel]
			if !ok {
				_ = g.Wait()
				return fmt.Errorf("file %s has no counterpart in %s", name, input.Object)
			}

			g.Go(func() error {
				if err := validateDataLakeFile(gctx, fsc.NewFileClient(name), localPath, name, input.MetaData); err != nil {
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

func validateDataLakeFile(ctx context.Context, fc *datalakefile.Client, localPath, remoteName, metadata string) error {
	get, err := fc.DownloadStream(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "error downloading the subject %s", remoteName)
	}
	body := get.Body
	if body == nil {
		body = io.NopCloser(bytes.NewReader(nil))
	}
	if err := compareContent(localPath, remoteName, body); err != nil {
		return err
	}
	if err := validateMetadata(metadata, get.Metadata); err != nil {
		return errors.Wrapf(err, "file %s", remoteName)
	}
	return nil
}
