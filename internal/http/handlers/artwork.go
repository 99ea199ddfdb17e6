package handlers

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const maxArtworkBytes = 10 << 20

type artworkUploadRequest struct {
	DataURL string `json:"data_url"`
}

// ArtworkUpload binds user-supplied artwork to the decal. It accepts either
// a multipart form with a "file" field or a JSON body carrying a data URL.
func (a *App) ArtworkUpload(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxArtworkBytes)

	data, err := readArtworkPayload(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		a.error(w, http.StatusUnsupportedMediaType, "unsupported_image", "only image uploads are accepted")
		return
	}

	key := "artwork/" + sess.ID + "/" + uuid.NewString() + extensionForMIME(mimeType)
	if storedKey, werr := a.Files.Write(r.Context(), key, data); werr != nil {
		a.Logger.Error().Err(werr).Msg("artwork cache write failed")
	} else {
		key = storedKey
	}

	if err := sess.SetArtwork(data, mimeType, a.assetURL(key), true); err != nil {
		sess.SetError("Your artwork could not be decoded.")
		a.error(w, http.StatusUnprocessableEntity, "decode_failed", "artwork could not be decoded")
		return
	}
	a.json(w, http.StatusOK, generateResponse{State: sess.State(), ArtworkURL: a.assetURL(key)})
}

// ArtworkDelete clears the decal; the garment falls back to the plain body.
func (a *App) ArtworkDelete(w http.ResponseWriter, r *http.Request) {
	sess, ok := a.currentSession(w, r)
	if !ok {
		return
	}
	sess.ClearArtwork()
	a.json(w, http.StatusOK, sess.State())
}

func readArtworkPayload(r *http.Request) ([]byte, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, errMissingFile
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, errMissingFile
		}
		return data, nil
	}

	var req artworkUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errInvalidPayload
	}
	return decodeDataURL(req.DataURL)
}

// decodeDataURL extracts the base64 payload from a "data:<mime>;base64,"
// URL, the format the browser canvas and file reader emit.
func decodeDataURL(dataURL string) ([]byte, error) {
	dataURL = strings.TrimSpace(dataURL)
	if !strings.HasPrefix(dataURL, "data:") {
		return nil, errInvalidPayload
	}
	idx := strings.Index(dataURL, ",")
	if idx < 0 || !strings.HasSuffix(dataURL[:idx], ";base64") {
		return nil, errInvalidPayload
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, errInvalidPayload
	}
	if len(data) == 0 {
		return nil, errInvalidPayload
	}
	return data, nil
}

var (
	errMissingFile    = payloadError("multipart upload requires a file field")
	errInvalidPayload = payloadError("expected a file upload or a base64 data URL")
)

type payloadError string

func (e payloadError) Error() string { return string(e) }
