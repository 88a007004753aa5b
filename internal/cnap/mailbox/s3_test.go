package mailbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"testing"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves HeadBucket, ListObjectsV2 (two pages) and GetObject from memory.
type fakeS3 struct {
	bucket  string
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	if parts[0] != f.bucket {
		return respond(http.StatusNotFound, nil, nil), nil
	}
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch {
	case req.Method == http.MethodHead && key == "":
		return respond(http.StatusOK, nil, nil), nil
	case req.Method == http.MethodGet && strings.Contains(req.URL.RawQuery, "list-type=2"):
		return f.list(req), nil
	case req.Method == http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return respond(http.StatusNotFound, nil, nil), nil
		}
		return respond(http.StatusOK, body, http.Header{
			"Content-Length": {fmt.Sprintf("%d", len(body))},
			"Content-Type":   {"message/rfc822"},
		}), nil
	}
	return respond(http.StatusNotImplemented, nil, nil), nil
}

func (f *fakeS3) list(req *http.Request) *http.Response {
	prefix := req.URL.Query().Get("prefix")
	cont := req.URL.Query().Get("continuation-token")

	var keys []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	page, truncated := keys, false
	if cont == "" && len(keys) > 1 {
		page, truncated = keys[:1], true
	} else if cont != "" {
		page = keys[1:]
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><ListBucketResult>`)
	if truncated {
		b.WriteString("<IsTruncated>true</IsTruncated><NextContinuationToken>page2</NextContinuationToken>")
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	for _, k := range page {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>",
			k, len(f.objects[k]))
	}
	b.WriteString("</ListBucketResult>")
	return respond(http.StatusOK, []byte(b.String()), http.Header{"Content-Type": {"application/xml"}})
}

func respond(code int, body []byte, h http.Header) *http.Response {
	if h == nil {
		h = http.Header{}
	}
	return &http.Response{StatusCode: code, Body: io.NopCloser(bytes.NewReader(body)), Header: h}
}

func newFakeS3Client(t *testing.T, rt http.RoundTripper) *s3.Client {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
}

func TestS3Mailbox(t *testing.T) {
	ctx := context.Background()
	account := func(email string) []byte {
		return crlf("From: survey@forms.example\nTo: requests@cnap.example\nSubject: CNAP Account Request\nContent-Type: text/html\n\n<p>EMAIL: " + email + "</p>\n")
	}
	fake := &fakeS3{bucket: "mail", objects: map[string][]byte{
		"inbound/INBOX/a1.eml":       account("a@lab.org"),
		"inbound/INBOX/a2.eml":       account("b@lab.org"),
		"inbound/INBOX/readme.txt":   []byte("skip"),
		"inbound/INBOX/nested/x.eml": account("nested@lab.org"),
		"inbound/Archive/old.eml":    account("old@lab.org"),
	}}

	mb, err := openS3(ctx, newFakeS3Client(t, fake), S3Config{Bucket: "mail", Prefix: "/inbound/", Folder: "INBOX"})
	require.NoError(t, err)
	require.Equal(t, "s3://mail", mb.Server())
	require.Equal(t, "INBOX", mb.Folder())

	uids, err := mb.Search(ctx, Query{To: "requests@cnap.example", Subject: "CNAP Account Request"})
	require.NoError(t, err)
	require.Equal(t, []string{"a1", "a2"}, uids)

	msgs, err := mb.Fetch(ctx, uids)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Contains(t, msgs[1].Body, "b@lab.org")

	_, err = mb.Fetch(ctx, []string{"gone"})
	require.ErrorIs(t, err, ErrMailQuery)
}

func TestS3MailboxMissingBucket(t *testing.T) {
	_, err := openS3(context.Background(), newFakeS3Client(t, &fakeS3{bucket: "mail"}), S3Config{Bucket: "other"})
	require.ErrorIs(t, err, ErrMailQuery)
}
