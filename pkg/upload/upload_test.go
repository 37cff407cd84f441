package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.WriteField("notes", "take after meals"))
	require.NoError(t, writer.Close())

	r := httptest.NewRequest(http.MethodPost, "/upload", body)
	r.Header.Set("Content-Type", writer.FormDataContentType())
	return r
}

func pngOf(size int) []byte {
	content := make([]byte, size)
	copy(content, pngHeader)
	return content
}

func TestReadFile_AcceptsSniffedImage(t *testing.T) {
	policy := AvatarPolicy(4096)
	r := multipartRequest(t, "avatar", "me.bin", pngOf(512))
	w := httptest.NewRecorder()

	require.NoError(t, ParseForm(w, r, policy))
	file, err := ReadFile(r, "avatar", policy)
	require.NoError(t, err)

	assert.Equal(t, "image/png", file.MIMEType)
	assert.Equal(t, ".png", file.Extension)
	assert.Equal(t, int64(512), file.Size)
	assert.True(t, file.IsImage())
	assert.Equal(t, "take after meals", r.FormValue("notes"))
}

func TestReadFile_AcceptsPDFForPrescriptions(t *testing.T) {
	policy := PrescriptionPolicy(4096)
	r := multipartRequest(t, "image", "rx.pdf", []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n"))
	require.NoError(t, ParseForm(httptest.NewRecorder(), r, policy))

	file, err := ReadFile(r, "image", policy)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.MIMEType)
	assert.False(t, file.IsImage())
}

func TestReadFile_RejectsDisallowedType(t *testing.T) {
	policy := AvatarPolicy(4096)
	// A text file renamed to .png must still be rejected
	r := multipartRequest(t, "avatar", "fake.png", []byte("just some plain text, not an image"))
	require.NoError(t, ParseForm(httptest.NewRecorder(), r, policy))

	_, err := ReadFile(r, "avatar", policy)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReadFile_RejectsPDFAvatar(t *testing.T) {
	policy := AvatarPolicy(4096)
	r := multipartRequest(t, "avatar", "doc.pdf", []byte("%PDF-1.4\n%%EOF\n"))
	require.NoError(t, ParseForm(httptest.NewRecorder(), r, policy))

	_, err := ReadFile(r, "avatar", policy)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestReadFile_TooLarge(t *testing.T) {
	policy := AvatarPolicy(1024)
	r := multipartRequest(t, "avatar", "big.png", pngOf(2048))
	require.NoError(t, ParseForm(httptest.NewRecorder(), r, policy))

	_, err := ReadFile(r, "avatar", policy)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestParseForm_BodyOverLimit(t *testing.T) {
	policy := AvatarPolicy(1024)
	r := multipartRequest(t, "avatar", "huge.png", pngOf(multipartOverhead+4096))

	err := ParseForm(httptest.NewRecorder(), r, policy)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestReadFile_Missing(t *testing.T) {
	policy := AvatarPolicy(1024)
	r := multipartRequest(t, "", "", nil)
	require.NoError(t, ParseForm(httptest.NewRecorder(), r, policy))

	_, err := ReadFile(r, "avatar", policy)
	assert.ErrorIs(t, err, ErrMissingFile)
}

func TestParseForm_NotMultipart(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewBufferString(`{"a":1}`))
	r.Header.Set("Content-Type", "application/json")

	err := ParseForm(httptest.NewRecorder(), r, AvatarPolicy(1024))
	assert.ErrorIs(t, err, ErrMalformedMultipart)
}
