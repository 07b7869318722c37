package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/blogicum/backend/errs"
)

const maxImageBytes = 10 << 20

// pubDateLayouts accepts both machine clients (RFC 3339) and the
// datetime-local format browsers submit.
var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// imageUpload is an optional file attached to a post form.
type imageUpload struct {
	data        []byte
	contentType string
}

// readForm collects the submitted fields of a mutating request. It accepts
// urlencoded and multipart bodies (the latter may carry an image file) as
// well as JSON, so the same handlers serve browsers and API clients.
func readForm(r *http.Request) (url.Values, *imageUpload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			return nil, nil, errs.NewBadRequestError("malformed multipart body")
		}
		values := url.Values(r.MultipartForm.Value)
		file, header, err := r.FormFile("image")
		if err != nil {
			// Image is optional.
			return values, nil, nil
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, nil, errs.NewBadRequestError("failed to read image upload")
		}
		return values, &imageUpload{
			data:        data,
			contentType: header.Header.Get("Content-Type"),
		}, nil

	case "application/json":
		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			return nil, nil, errs.NewBadRequestError("malformed request body")
		}
		values := make(url.Values, len(fields))
		for key, value := range fields {
			if value == nil {
				continue
			}
			values.Set(key, fmt.Sprintf("%v", value))
		}
		return values, nil, nil

	default:
		if err := r.ParseForm(); err != nil {
			return nil, nil, errs.NewBadRequestError("malformed form body")
		}
		return r.PostForm, nil, nil
	}
}

// pageParam reads the requested page number; anything unparseable means the
// first page. Range clamping happens at the query layer.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func parsePubDate(value string) (time.Time, error) {
	for _, layout := range pubDateLayouts {
		if dt, err := time.Parse(layout, value); err == nil {
			return dt, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", value)
}

// optionalUUID parses a nullable reference field; the empty string means
// "none selected".
func optionalUUID(field, value string) (*uuid.UUID, error) {
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, errs.NewValidationError(field, "invalid identifier")
	}
	return &id, nil
}
