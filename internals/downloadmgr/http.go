package downloadmgr

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shardmc/shard/internals/merrors"
	"github.com/shardmc/shard/internals/ownhttp"
)

var defaultClient = ownhttp.New()

// ErrChecksumMismatch is wrapped by every failed checksum verification
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ErrNoURL is returned when a file is missing locally and there is no url to fetch it from
var ErrNoURL = errors.New("no download url")

// HTTPItem is a URL, target pair with optional properties that will be downloaded
// using http(s)
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
	// Size is only used for progress reporting if the server does not send a length
	Size int64
	// Sha1 is the expected hex checksum. Without one, any non empty local file is trusted
	Sha1 string
	// OnProgress is called with the bytes written so far and the total (-1 if unknown)
	OnProgress func(written int64, total int64)
}

// ErrInvalidSha is returned when the downloaded file's sha1 sum does not match the expected one
type ErrInvalidSha struct {
	FileName    string
	ExpectedSha string
	ActualSha   string
}

func (e *ErrInvalidSha) Error() string {
	return fmt.Sprintf(
		"file corrupted: %s sha1 is invalid. expected to be %q but actually is %q",
		e.FileName,
		e.ExpectedSha,
		e.ActualSha,
	)
}

func (e *ErrInvalidSha) Unwrap() error { return ErrChecksumMismatch }

// NewHTTPItem creates a Item to be queued that will download the file using HTTP(S)
func NewHTTPItem(URL string, Target string, sha1 string) *HTTPItem {
	return &HTTPItem{Client: defaultClient, URL: URL, Target: Target, Sha1: sha1}
}

// Valid returns true if the target already exists with the expected content
func (i *HTTPItem) Valid() bool {
	return IsValid(i.Target, i.Sha1)
}

// Download downloads the item to the defined target using http.
// Nothing is fetched if the target is already valid. The file is written to
// a temporary path first and only moved to the target after verification.
func (i *HTTPItem) Download(ctx context.Context) error {
	if i.Valid() {
		return nil
	}
	if i.URL == "" {
		return errors.Wrapf(ErrNoURL, "%s is missing", i.Target)
	}

	if err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return err
	}

	client := i.Client
	if client == nil {
		client = defaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "error while fetching %s", i.URL)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode != http.StatusOK {
		return fmt.Errorf("invalid status code: %s from %s", fileRes.Status, i.URL)
	}

	tmp := i.Target + ".tmp"
	if err := i.writeTo(tmp, fileRes); err != nil {
		os.Remove(tmp)
		return err
	}

	// check sha if there is one set
	if i.Sha1 != "" {
		if err := checkSha1(i.Sha1, tmp); err != nil {
			os.Remove(tmp)
			var shaErr *ErrInvalidSha
			if errors.As(err, &shaErr) {
				shaErr.FileName = i.Target
				return &merrors.IntegrityError{Subject: i.URL, Err: shaErr}
			}
			return err
		}
	}

	if err := os.Rename(tmp, i.Target); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "could not move download to %s", i.Target)
	}
	return nil
}

func (i *HTTPItem) writeTo(path string, res *http.Response) error {
	dest, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dest.Close()

	var src io.Reader = res.Body
	if i.OnProgress != nil {
		total := res.ContentLength
		if total < 0 && i.Size > 0 {
			total = i.Size
		}
		src = &progressReader{r: res.Body, total: total, fn: i.OnProgress}
	}

	if _, err := io.Copy(dest, src); err != nil {
		return errors.Wrapf(err, "error while downloading %s", i.URL)
	}
	return dest.Sync()
}

type progressReader struct {
	r       io.Reader
	written int64
	total   int64
	fn      func(written int64, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.written, p.total)
	}
	return n, err
}

// IsValid returns true if path exists and matches sha (compared case insensitive).
// An empty sha accepts any non empty file.
func IsValid(path string, sha string) bool {
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return false
	}
	if sha == "" {
		return stat.Size() > 0
	}
	actual, err := FileSha1(path)
	if err != nil {
		return false
	}
	return strings.EqualFold(actual, sha)
}

// FileSha1 returns the hex sha1 sum of the file at path
func FileSha1(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()
	hasher := sha1.New()
	// probably io error during hashing
	if _, err := io.Copy(hasher, src); err != nil {
		return "", err
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}

func checkSha1(sha string, srcPath string) error {
	actualSha, err := FileSha1(srcPath)
	if err != nil {
		return err
	}
	if !strings.EqualFold(actualSha, sha) {
		return &ErrInvalidSha{srcPath, sha, actualSha}
	}
	return nil
}
