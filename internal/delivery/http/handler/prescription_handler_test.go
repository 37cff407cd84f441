package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"
	"time"

	"dawaksahl-api/config"
	"dawaksahl-api/internal/delivery/dto"
	"dawaksahl-api/internal/domain/entity"
	"dawaksahl-api/internal/infrastructure/storage"
	"dawaksahl-api/internal/usecase"
	"dawaksahl-api/pkg/upload"
	"dawaksahl-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrescriptionUsecase struct {
	usecase.PrescriptionUsecase
	uploaded *dto.UploadPrescriptionRequest
	file     *upload.File
	verified *dto.PrescriptionVerificationRequest
	rejected bool
	image    string
}

type nopSeekCloser struct{ *strings.Reader }

func (nopSeekCloser) Close() error { return nil }

func (f *fakePrescriptionUsecase) Image(_ context.Context, _ uuid.UUID) (*storage.StoredFile, error) {
	if f.image == "" {
		return nil, usecase.ErrPrescriptionNoImage
	}
	return &storage.StoredFile{
		ReadSeekCloser: nopSeekCloser{strings.NewReader(f.image)},
		Name:           "scan.png",
		ModTime:        time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakePrescriptionUsecase) Upload(_ context.Context, req *dto.UploadPrescriptionRequest, file *upload.File) (*dto.PrescriptionResponse, error) {
	f.uploaded = req
	f.file = file
	return &dto.PrescriptionResponse{ID: uuid.New(), Status: string(entity.PrescriptionStatusPending)}, nil
}

func (f *fakePrescriptionUsecase) Verify(_ context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error) {
	f.verified = req
	return &dto.PrescriptionResponse{ID: id}, nil
}

func (f *fakePrescriptionUsecase) Reject(_ context.Context, id uuid.UUID, req *dto.PrescriptionVerificationRequest) (*dto.PrescriptionResponse, error) {
	f.rejected = true
	return nil, usecase.ErrInvalidTransition
}

func prescriptionForm(t *testing.T, fields map[string]string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	if content != nil {
		part, err := writer.CreateFormFile("image", "rx.pdf")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func newPrescriptionHandler(fake *fakePrescriptionUsecase) *PrescriptionHandler {
	return NewPrescriptionHandler(fake, validator.NewValidator(), config.UploadConfig{MaxPrescriptionSize: 64 * 1024})
}

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")

func TestPrescriptionHandler_Upload(t *testing.T) {
	fake := &fakePrescriptionUsecase{}
	pharmacyID := uuid.New()
	body, contentType := prescriptionForm(t, map[string]string{
		"pharmacy_id":       pharmacyID.String(),
		"prescription_type": "chronic",
		"notes":             "monthly refill",
	}, samplePDF)

	r := newRequest(http.MethodPost, "/api/v1/prescriptions", body, nil)
	r.Header.Set("Content-Type", contentType)
	rec := serve(newPrescriptionHandler(fake).Upload, r)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, fake.uploaded)
	assert.Equal(t, pharmacyID, *fake.uploaded.PharmacyID)
	assert.Nil(t, fake.uploaded.DoctorID)
	assert.Equal(t, "chronic", fake.uploaded.PrescriptionType)
	assert.Equal(t, "application/pdf", fake.file.MIMEType)
}

func TestPrescriptionHandler_UploadMissingImage(t *testing.T) {
	fake := &fakePrescriptionUsecase{}
	body, contentType := prescriptionForm(t, map[string]string{"notes": "no scan"}, nil)

	r := newRequest(http.MethodPost, "/api/v1/prescriptions", body, nil)
	r.Header.Set("Content-Type", contentType)
	rec := serve(newPrescriptionHandler(fake).Upload, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, fake.uploaded)
}

func TestPrescriptionHandler_UploadRejectsBadType(t *testing.T) {
	fake := &fakePrescriptionUsecase{}
	body, contentType := prescriptionForm(t, nil, []byte("plain text pretending to be a scan"))

	r := newRequest(http.MethodPost, "/api/v1/prescriptions", body, nil)
	r.Header.Set("Content-Type", contentType)
	rec := serve(newPrescriptionHandler(fake).Upload, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPrescriptionHandler_UploadInvalidField(t *testing.T) {
	fake := &fakePrescriptionUsecase{}
	body, contentType := prescriptionForm(t, map[string]string{"prescription_type": "weekly"}, samplePDF)

	r := newRequest(http.MethodPost, "/api/v1/prescriptions", body, nil)
	r.Header.Set("Content-Type", contentType)
	rec := serve(newPrescriptionHandler(fake).Upload, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Errors, "prescription_type")
}

func TestPrescriptionHandler_VerifyAndReject(t *testing.T) {
	fake := &fakePrescriptionUsecase{}
	h := newPrescriptionHandler(fake)
	id := uuid.New().String()

	rec := serve(h.Verify, newRequest(http.MethodPost, "/", jsonBody(t, dto.PrescriptionVerificationRequest{Notes: "ok"}), map[string]string{"id": id}))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, fake.verified)
	assert.Equal(t, "ok", fake.verified.Notes)

	rec = serve(h.Reject, newRequest(http.MethodPost, "/", http.NoBody, map[string]string{"id": id}))
	assert.True(t, fake.rejected)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPrescriptionHandler_Image(t *testing.T) {
	fake := &fakePrescriptionUsecase{image: "png-bytes"}
	h := newPrescriptionHandler(fake)
	vars := map[string]string{"id": uuid.New().String()}

	rec := serve(h.Image, newRequest(http.MethodGet, "/", http.NoBody, vars))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	fake.image = ""
	rec = serve(h.Image, newRequest(http.MethodGet, "/", http.NoBody, vars))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
