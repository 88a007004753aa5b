package mailbox

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

var wordDecoder = mime.WordDecoder{}

// ParseMessage decodes an RFC 5322 message. The body is the first text/html
// part, falling back to the first text/plain part.
func ParseMessage(uid string, raw []byte) (Message, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return Message{}, fmt.Errorf("read message %s: %w", uid, err)
	}

	m := Message{UID: uid}
	m.Subject = decodeHeader(msg.Header.Get("Subject"))
	if from, err := mail.ParseAddress(msg.Header.Get("From")); err == nil {
		m.From = strings.ToLower(from.Address)
	}
	if list, err := msg.Header.AddressList("To"); err == nil {
		for _, a := range list {
			m.To = append(m.To, strings.ToLower(a.Address))
		}
	}

	html, plain, err := readPart(
		msg.Header.Get("Content-Type"),
		msg.Header.Get("Content-Transfer-Encoding"),
		msg.Body,
	)
	if err != nil {
		return Message{}, fmt.Errorf("decode body of %s: %w", uid, err)
	}
	m.Body = html
	if m.Body == "" {
		m.Body = plain
	}
	return m, nil
}

// readPart walks a MIME entity and returns the first html and plain bodies.
func readPart(contentType, encoding string, r io.Reader) (html, plain string, err error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		mr := multipart.NewReader(r, params["boundary"])
		for {
			p, err := mr.NextRawPart()
			if err == io.EOF {
				return html, plain, nil
			}
			if err != nil {
				return "", "", err
			}
			h, t, err := readPart(p.Header.Get("Content-Type"), p.Header.Get("Content-Transfer-Encoding"), p)
			if err != nil {
				return "", "", err
			}
			if html == "" {
				html = h
			}
			if plain == "" {
				plain = t
			}
		}
	}

	b, err := io.ReadAll(decodeTransfer(encoding, r))
	if err != nil {
		return "", "", err
	}
	switch mediaType {
	case "text/html":
		return string(b), "", nil
	case "text/plain":
		return "", string(b), nil
	}
	return "", "", nil
}

func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, &newlineStripper{r: r})
	}
	return r
}

func decodeHeader(v string) string {
	out, err := wordDecoder.DecodeHeader(v)
	if err != nil {
		return v
	}
	return out
}

// newlineStripper drops CR and LF so base64 bodies wrapped at 76 columns decode.
type newlineStripper struct {
	r io.Reader
}

func (n *newlineStripper) Read(p []byte) (int, error) {
	for {
		c, err := n.r.Read(p)
		j := 0
		for _, b := range p[:c] {
			if b != '\r' && b != '\n' {
				p[j] = b
				j++
			}
		}
		if j > 0 || err != nil {
			return j, err
		}
	}
}
