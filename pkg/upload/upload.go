// Package upload reads multipart files and enforces size and content-type allow-lists.
package upload

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge       = errors.New("file too large")
	ErrUnsupportedType    = errors.New("unsupported file type")
	ErrMissingFile        = errors.New("file is required")
	ErrMalformedMultipart = errors.New("malformed multipart form")
)

// multipartOverhead leaves room for boundaries and plain form fields next to the file.
const multipartOverhead = 1 << 20

var (
	ImageTypes    = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	DocumentTypes = []string{"application/pdf"}
)

type Policy struct {
	MaxBytes     int64
	AllowedTypes []string
}

func AvatarPolicy(maxBytes int64) Policy {
	return Policy{MaxBytes: maxBytes, AllowedTypes: ImageTypes}
}

func PrescriptionPolicy(maxBytes int64) Policy {
	return Policy{MaxBytes: maxBytes, AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}}
}

func ChatAttachmentPolicy(maxBytes int64) Policy {
	return Policy{MaxBytes: maxBytes, AllowedTypes: []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}}
}

func (p Policy) allows(mime string) bool {
	for _, t := range p.AllowedTypes {
		if t == mime {
			return true
		}
	}
	return false
}

// File is an upload that passed the policy. Content is held in memory; policies cap it at a few MB.
type File struct {
	Name      string
	Size      int64
	MIMEType  string
	Extension string
	Content   []byte
}

func (f *File) Reader() io.Reader {
	return bytes.NewReader(f.Content)
}

func (f *File) IsImage() bool {
	return strings.HasPrefix(f.MIMEType, "image/")
}

// ParseForm caps the body and parses the multipart form. Call before reading plain fields.
func ParseForm(w http.ResponseWriter, r *http.Request, policy Policy) error {
	r.Body = http.MaxBytesReader(w, r.Body, policy.MaxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(policy.MaxBytes + multipartOverhead); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return ErrFileTooLarge
		}
		return ErrMalformedMultipart
	}
	return nil
}

// ReadFile extracts the named form file and checks its size and sniffed content type.
func ReadFile(r *http.Request, field string, policy Policy) (*File, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, ErrMissingFile
		}
		return nil, ErrMalformedMultipart
	}
	defer file.Close()

	if header.Size > policy.MaxBytes {
		return nil, ErrFileTooLarge
	}

	return readChecked(file, header, policy)
}

func readChecked(file multipart.File, header *multipart.FileHeader, policy Policy) (*File, error) {
	content, err := io.ReadAll(io.LimitReader(file, policy.MaxBytes+1))
	if err != nil {
		return nil, ErrMalformedMultipart
	}
	if int64(len(content)) > policy.MaxBytes {
		return nil, ErrFileTooLarge
	}
	if len(content) == 0 {
		return nil, ErrMissingFile
	}

	// The client-supplied Content-Type is ignored
	detected := mimetype.Detect(content)
	mime := detected.String()
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = mime[:idx]
	}
	if !policy.allows(mime) {
		return nil, ErrUnsupportedType
	}

	return &File{
		Name:      header.Filename,
		Size:      int64(len(content)),
		MIMEType:  mime,
		Extension: detected.Extension(),
		Content:   content,
	}, nil
}
