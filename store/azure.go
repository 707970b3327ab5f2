package store

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// Azure implements Store over Azure Blob Storage, adapted from the
// teacher's file/azure.go AzureBlobConfig/AzureBlob (UploadStream over an
// io.Pipe via azidentity.NewDefaultAzureCredential / azblob.NewClient or
// NewClientWithNoCredential for a SAS token), generalized to also support
// reads (DownloadStream) and listing (ListBlobsFlat), since the teacher's
// version was write-only.
type Azure struct{}

func NewAzure() *Azure { return &Azure{} }

type azureBlobRef struct {
	base      string
	container string
	blobName  string
	sasToken  string
}

func parseAzureURI(raw string) (*azureBlobRef, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("store: parsing azure uri %q: %w", raw, err)
	}
	sasToken, hasSAS := u.User.Password()
	if hasSAS {
		u.User = nil
	}

	if u.Scheme == "az" || u.Scheme == "azure" {
		azureURL := fmt.Sprintf("https://%s.blob.core.windows.net%s", u.Hostname(), u.Path)
		var err error
		u, err = url.Parse(azureURL)
		if err != nil {
			return nil, fmt.Errorf("store: azure: invalid uri")
		}
	}

	if u.Scheme != "https" {
		return nil, fmt.Errorf("store: azure: only https, az:// or azure:// uris are supported")
	}
	if !strings.Contains(strings.ToLower(u.Hostname()), "blob.core.windows.net") {
		return nil, fmt.Errorf("store: azure: only blob.core.windows.net hosts are supported")
	}

	return &azureBlobRef{
		base:      fmt.Sprintf("%s://%s", u.Scheme, u.Host),
		container: path.Dir(u.Path),
		blobName:  path.Base(u.Path),
		sasToken:  sasToken,
	}, nil
}

func (a *azureBlobRef) client() (*azblob.Client, error) {
	if a.sasToken != "" {
		withSAS := fmt.Sprintf("%s?%s", a.base, a.sasToken)
		return azblob.NewClientWithNoCredential(withSAS, nil)
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("store: azure: %w", err)
	}
	return azblob.NewClient(a.base, cred, nil)
}

type azureWriteCloser struct {
	pw   *io.PipeWriter
	done chan error
}

func (w *azureWriteCloser) Write(p []byte) (int, error) { return w.pw.Write(p) }

func (w *azureWriteCloser) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	if err := <-w.done; err != nil {
		return fmt.Errorf("store: azure upload failed: %w", err)
	}
	return nil
}

func (Azure) Create(ctx context.Context, uri string) (io.WriteCloser, error) {
	ref, err := parseAzureURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := ref.client()
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		defer pr.Close()
		_, err := client.UploadStream(ctx, strings.TrimPrefix(ref.container, "/"), ref.blobName, pr, nil)
		done <- err
	}()
	return &azureWriteCloser{pw: pw, done: done}, nil
}

type azureRangeReader struct {
	client    *azblob.Client
	container string
	blobName  string
	size      int64
}

func (r *azureRangeReader) Size() int64 { return r.size }

func (r *azureRangeReader) ReadAt(p []byte, off int64) (int, error) {
	count := int64(len(p))
	resp, err := r.client.DownloadStream(context.Background(), r.container, r.blobName, &azblob.DownloadStreamOptions{
		Range: azblob.HTTPRange{Offset: off, Count: count},
	})
	if err != nil {
		return 0, fmt.Errorf("store: azure DownloadStream range read: %w", err)
	}
	defer resp.Body.Close()
	return io.ReadFull(resp.Body, p)
}

func (r *azureRangeReader) Close() error { return nil }

func (Azure) OpenRange(ctx context.Context, uri string) (RangeReader, error) {
	ref, err := parseAzureURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := ref.client()
	if err != nil {
		return nil, err
	}
	container := strings.TrimPrefix(ref.container, "/")

	props, err := client.ServiceClient().NewContainerClient(container).NewBlobClient(ref.blobName).GetProperties(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store: azure GetProperties: %w", err)
	}
	size := int64(0)
	if props.ContentLength != nil {
		size = *props.ContentLength
	}
	return &azureRangeReader{client: client, container: container, blobName: ref.blobName, size: size}, nil
}

func (Azure) List(ctx context.Context, uri string) ([]string, error) {
	ref, err := parseAzureURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := ref.client()
	if err != nil {
		return nil, err
	}
	container := strings.TrimPrefix(ref.container, "/")
	prefix := nonWildcardPrefix(ref.blobName)

	var keys []string
	pager := client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{Prefix: &prefix})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("store: azure ListBlobsFlat: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if ok, _ := path.Match(ref.blobName, *item.Name); !ok {
				continue
			}
			keys = append(keys, fmt.Sprintf("%s/%s/%s", ref.base, container, *item.Name))
		}
	}
	return keys, nil
}
