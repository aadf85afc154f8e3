// response/success.go
/* Responsible for handling successful API responses. It reads the response body, logs the raw response details,
and unmarshals the response based on the content type. */
package response

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"go.uber.org/zap"
)

// ErrUnexpectedContentType is returned when a body cannot be decoded into the requested output.
var ErrUnexpectedContentType = errors.New("unexpected content type")

// contentHandler defines the signature for unmarshaling content from an io.Reader.
type contentHandler func(io.Reader, any, logger.Logger, string) error

// responseUnmarshallers maps MIME types to the corresponding contentHandler functions.
var responseUnmarshallers = map[string]contentHandler{
	"application/json": handlerUnmarshalJSON,
	"application/xml":  handlerUnmarshalXML,
	"text/xml":         handlerUnmarshalXML,
}

// HandleAPISuccessResponse reads the response body and unmarshals it into out based on the content type.
// A nil out, or a response without a body, only drains the body. The body is not closed.
func HandleAPISuccessResponse(resp *http.Response, out any, log logger.Logger) error {
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return log.Error("Failed to read response body", zap.Error(err))
	}

	log.Debug("Raw HTTP Response", zap.Int("status_code", resp.StatusCode), zap.String("body", string(bodyBytes)))

	if out == nil || resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(bodyBytes)) == 0 {
		return nil
	}

	bodyReader := bytes.NewReader(bodyBytes)
	contentType := resp.Header.Get("Content-Type")
	contentDisposition := resp.Header.Get("Content-Disposition")

	// services that omit the header still answer in JSON
	mimeType, _ := parseHeader(contentType)
	if mimeType == "" {
		mimeType = "application/json"
	}

	if handler, ok := responseUnmarshallers[mimeType]; ok {
		return handler(bodyReader, out, log, mimeType)
	}

	if isBinaryData(contentType, contentDisposition) {
		return handleBinaryData(bodyReader, log, out, contentDisposition)
	}

	log.Warn("Unmarshal error", zap.String("content_type", contentType))
	return fmt.Errorf("%w: %s", ErrUnexpectedContentType, contentType)
}

// handlerUnmarshalJSON unmarshals JSON content from an io.Reader into the provided output structure.
func handlerUnmarshalJSON(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := json.NewDecoder(reader).Decode(out); err != nil {
		log.Warn("JSON Unmarshal error", zap.Error(err))
		return fmt.Errorf("failed to decode JSON response: %w", err)
	}
	log.Debug("Successfully unmarshalled JSON response", zap.String("content_type", mimeType))
	return nil
}

// handlerUnmarshalXML unmarshals XML content from an io.Reader into the provided output structure.
func handlerUnmarshalXML(reader io.Reader, out any, log logger.Logger, mimeType string) error {
	if err := xml.NewDecoder(reader).Decode(out); err != nil {
		log.Warn("XML Unmarshal error", zap.Error(err))
		return fmt.Errorf("failed to decode XML response: %w", err)
	}
	log.Debug("Successfully unmarshalled XML response", zap.String("content_type", mimeType))
	return nil
}

// isBinaryData checks if the MIME type or Content-Disposition indicates binary data.
func isBinaryData(contentType, contentDisposition string) bool {
	return strings.Contains(contentType, "application/octet-stream") || strings.HasPrefix(contentDisposition, "attachment")
}

// handleBinaryData stores binary data in *[]byte or streams it to an io.Writer.
func handleBinaryData(reader io.Reader, log logger.Logger, out any, contentDisposition string) error {
	switch out := out.(type) {
	case *[]byte:
		data, err := io.ReadAll(reader)
		if err != nil {
			return log.Error("Failed to read binary data", zap.Error(err))
		}
		*out = data

	case io.Writer:
		if _, err := io.Copy(out, reader); err != nil {
			return log.Error("Failed to stream binary data to io.Writer", zap.Error(err))
		}

	default:
		return errors.New("output parameter is not suitable for binary data (*[]byte or io.Writer)")
	}

	if contentDisposition != "" {
		_, params := parseHeader(contentDisposition)
		if filename, ok := params["filename"]; ok {
			log.Debug("Extracted filename from Content-Disposition", zap.String("filename", filename))
		}
	}

	return nil
}
