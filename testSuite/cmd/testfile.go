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
	"path"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/directory"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azfile/file"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/vijayraavi/azure-storage-azcopy/common"
)

// initializes the testfile command, its aliases and description.
// also adds the possible flags that can be supplied with testFile command.
func init() {
	cmdInput := validationInput{}
	testFileCmd := &cobra.Command{
		Use:     "testFile",
		Aliases: []string{"tFile"},
		Short:   "tests the file uploaded or downloaded by azcopy",

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("invalid arguments for test file command")
			}
			// first argument is the local resource, second the file or directory url.
			cmdInput.Object = args[0]
			cmdInput.Subject = args[1]
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmdInput.IsObjectDirectory {
				return verifyFileDirectory(cmd.Context(), cmdInput)
			}
			return verifySingleFile(cmd.Context(), cmdInput)
		},
	}
	rootCmd.AddCommand(testFileCmd)

	testFileCmd.PersistentFlags().StringVar(&cmdInput.MetaData, "metadata", "", "metadata expected from the file in the share")
	testFileCmd.PersistentFlags().StringVar(&cmdInput.ContentType, "content-type", "", "content type expected from the file in the share")
	testFileCmd.PersistentFlags().BoolVar(&cmdInput.CheckContentMD5, "check-content-md5", false, "Validate content MD5 is set and matches the local file.")
	testFileCmd.PersistentFlags().BoolVar(&cmdInput.IsObjectDirectory, "is-object-dir", false, "set the type of object to verify against the subject")
}

// verifySingleFile validates one Azure file against the local file.
func verifySingleFile(ctx context.Context, input validationInput) error {
	fc, err := file.NewClientWithNoCredential(input.Subject, &file.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create file client")
	}

	get, err := fc.DownloadStream(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "unable to download the file")
	}
	retryReader := get.NewRetryReader(ctx, &file.RetryReaderOptions{MaxRetries: 3})
	if err := compareContent(input.Object, common.RedactSecretQueryParam(input.Subject), retryReader); err != nil {
		return err
	}

	if input.CheckContentMD5 {
		if err := checkContentMD5(input.Object, get.ContentMD5); err != nil {
			return err
		}
	}
	// verify the user given metadata supplied while uploading against the metadata actually present on the file
	if err := validateMetadata(input.MetaData, get.Metadata); err != nil {
		return err
	}
	if !validateString(input.ContentType, get.ContentType) {
		return fmt.Errorf("mismatch content type between actual and user given file content type, expected %q", input.ContentType)
	}
	return nil
}

// verifyFileDirectory walks the share directory recursively and validates every file against the local tree.
func verifyFileDirectory(ctx context.Context, input validationInput) error {
	dc, err := directory.NewClientWithNoCredential(input.Subject, &directory.ClientOptions{ClientOptions: clientOptions()})
	if err != nil {
		return errors.Wrap(err, "cannot create directory client")
	}

	local, err := localFiles(input.Object)
	if err != nil {
		return errors.Wrapf(err, "cannot walk local directory %s", input.Object)
	}
	validated := make(map[string]bool)

	if err := validateAzureDirWithLocalFiles(ctx, dc, "", local, validated, input.MetaData); err != nil {
		return err
	}
	return verifyRemoteSet(local, validated)
}

func validateAzureDirWithLocalFiles(ctx context.Context, dc *directory.Client, relDir string, local map[string]string, validated map[string]bool, metadata string) error {
	pager := dc.NewListFilesAndDirectoriesPager(nil)
	for pager.More() {
		listFile, err := pager.NextPage(ctx)
		if err != nil {
			return errors.Wrap(err, "fail to list files and directories inside the directory. Please check the directory sas")
		}

		for _, dirInfo := range listFile.Segment.Directories {
			sub := dc.NewSubdirectoryClient(*dirInfo.Name)
			if err := validateAzureDirWithLocalFiles(ctx, sub, path.Join(relDir, *dirInfo.Name), local, validated, metadata); err != nil {
				return err
			}
		}

		for _, fileInfo := range listFile.Segment.Files {
			rel := path.Join(relDir, *fileInfo.Name)
			localPath, ok := local[rel]
			if !ok {
				return fmt.Errorf("file %s has no counterpart in the local directory", rel)
			}

			fc := dc.NewFileClient(*fileInfo.Name)
			get, err := fc.DownloadStream(ctx, nil)
			if err != nil {
				return errors.Wrapf(err, "fail to download the file %s", rel)
			}
			retryReader := get.NewRetryReader(ctx, &file.RetryReaderOptions{MaxRetries: 3})
			if err := compareContent(localPath, rel, retryReader); err != nil {
				return err
			}
			if err := validateMetadata(metadata, get.Metadata); err != nil {
				return errors.Wrapf(err, "file %s", rel)
			}
			validated[rel] = true
		}
	}
	return nil
}
