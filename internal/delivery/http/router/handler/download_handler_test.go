package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vitrine/internal/delivery/http/response"
	domainerrors "vitrine/internal/domain/errors"
	"vitrine/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDownloadUsecase lets each test pin the pipeline outcome.
type fakeDownloadUsecase struct {
	issued   *usecase.IssuedToken
	delivery *usecase.Delivery
	png      []byte
	err      error

	gotOrderID     uuid.UUID
	gotFileID      string
	gotToken       string
	gotDisplayName string
}

func (f *fakeDownloadUsecase) IssueToken(_ context.Context, orderID uuid.UUID, fileID string) (*usecase.IssuedToken, error) {
	f.gotOrderID = orderID
	f.gotFileID = fileID

	return f.issued, f.err
}

func (f *fakeDownloadUsecase) Download(_ context.Context, token, displayName string) (*usecase.Delivery, error) {
	f.gotToken = token
	f.gotDisplayName = displayName

	return f.delivery, f.err
}

func (f *fakeDownloadUsecase) View(_ context.Context, token string) (*usecase.Delivery, error) {
	f.gotToken = token

	return f.delivery, f.err
}

func (f *fakeDownloadUsecase) GenerateQR(_ context.Context, token string) ([]byte, error) {
	f.gotToken = token

	return f.png, f.err
}

func newEchoContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestDownloadHandler_IssueToken(t *testing.T) {
	uc := &fakeDownloadUsecase{
		issued: &usecase.IssuedToken{
			Token:     "opaque-token",
			ExpiresAt: time.UnixMilli(1700000000000),
		},
	}
	h := &DownloadHandler{downloadUC: uc}

	orderID := uuid.New()
	c, rec := newEchoContext(t, http.MethodPost, "/")
	c.SetParamNames("orderID", "fileID")
	c.SetParamValues(orderID.String(), "brochure.pdf")

	require.NoError(t, h.IssueToken(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, orderID, uc.gotOrderID)
	assert.Equal(t, "brochure.pdf", uc.gotFileID)

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "opaque-token", data["token"])
	assert.Equal(t, float64(1700000000000), data["expires_at"])
}

func TestDownloadHandler_IssueToken_InvalidOrderID(t *testing.T) {
	h := &DownloadHandler{downloadUC: &fakeDownloadUsecase{}}

	c, rec := newEchoContext(t, http.MethodPost, "/")
	c.SetParamNames("orderID", "fileID")
	c.SetParamValues("not-a-uuid", "brochure.pdf")

	require.NoError(t, h.IssueToken(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_ID", resp.Error.Code)
}

func TestDownloadHandler_Download(t *testing.T) {
	handleID := uuid.New()
	uc := &fakeDownloadUsecase{
		delivery: &usecase.Delivery{
			HandleID:    handleID,
			DisplayName: "Brochure.pdf",
			ContentType: "application/pdf",
			SizeBytes:   13,
			ReleaseAt:   time.UnixMilli(1700000001000),
		},
	}
	h := &DownloadHandler{downloadUC: uc}

	c, rec := newEchoContext(t, http.MethodGet, "/downloads/file?token=abc&name=renamed.pdf")

	require.NoError(t, h.Download(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", uc.gotToken)
	assert.Equal(t, "renamed.pdf", uc.gotDisplayName)

	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "/handles/"+handleID.String(), data["url"])
	assert.Equal(t, "Brochure.pdf", data["display_name"])
}

func TestDownloadHandler_Download_MissingToken(t *testing.T) {
	h := &DownloadHandler{downloadUC: &fakeDownloadUsecase{}}

	c, rec := newEchoContext(t, http.MethodGet, "/downloads/file")

	require.NoError(t, h.Download(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "MISSING_TOKEN", resp.Error.Code)
}

func TestDownloadHandler_Download_ExpiredToken(t *testing.T) {
	uc := &fakeDownloadUsecase{err: domainerrors.ErrTokenExpired}
	h := &DownloadHandler{downloadUC: uc}

	c, rec := newEchoContext(t, http.MethodGet, "/downloads/file?token=stale")

	require.NoError(t, h.Download(c))
	assert.Equal(t, http.StatusGone, rec.Code)

	resp := decodeResponse(t, rec)
	assert.Equal(t, "TOKEN_EXPIRED", resp.Error.Code)
	assert.Equal(t, domainerrors.ErrTokenExpired.Message(), resp.Message,
		"user-legible message rendered verbatim")
}

func TestDownloadHandler_View(t *testing.T) {
	uc := &fakeDownloadUsecase{
		delivery: &usecase.Delivery{
			HandleID:    uuid.New(),
			DisplayName: "Brochure.pdf",
			ContentType: "application/pdf",
			ReleaseAt:   time.Now().Add(120 * time.Second),
		},
	}
	h := &DownloadHandler{downloadUC: uc}

	c, rec := newEchoContext(t, http.MethodGet, "/downloads/view?token=abc")

	require.NoError(t, h.View(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", uc.gotToken)
}

func TestDownloadHandler_GenerateQR(t *testing.T) {
	uc := &fakeDownloadUsecase{png: []byte{0x89, 0x50, 0x4E, 0x47}}
	h := &DownloadHandler{downloadUC: uc}

	c, rec := newEchoContext(t, http.MethodGet, "/downloads/qr?token=abc")

	require.NoError(t, h.GenerateQR(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, rec.Body.Bytes())
}
