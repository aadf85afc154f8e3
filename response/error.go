// response/error.go
// This package provides utility functions and structures for handling and categorizing HTTP error responses.
package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/deploymenttheory/go-api-offers-client/status"
	"golang.org/x/net/html"
)

// APIError is returned when a resource call ends with a status of 400 or above.
type APIError struct {
	Method      string   `json:"method"`            // HTTP method used for the request
	URL         string   `json:"url"`               // The URL of the HTTP request
	StatusCode  int      `json:"status_code"`       // HTTP status code
	Message     string   `json:"message"`           // Summary of the error
	Details     []string `json:"details,omitempty"` // Detailed error messages, if any
	RawResponse string   `json:"raw_response"`      // Raw response body for debugging
}

// Error renders the request line, the status and the raw body.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed: %d - %s", e.Method, e.URL, e.StatusCode, e.RawResponse)
}

// jsonErrorBody lists the fields services commonly use to describe a failure.
type jsonErrorBody struct {
	Message string          `json:"message"`
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
}

// HandleAPIErrorResponse reads the body of a failed response and builds an APIError from it.
// The body is consumed but not closed.
func HandleAPIErrorResponse(resp *http.Response, method, url string, log logger.Logger) *APIError {
	apiError := &APIError{
		Method:     method,
		URL:        url,
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		apiError.RawResponse = "failed to read response body"
		log.LogError("api_error_response", method, url, resp.StatusCode, status.TranslateStatusCode(resp), err, "")
		return apiError
	}
	apiError.RawResponse = string(bodyBytes)

	mimeType, _ := parseHeader(resp.Header.Get("Content-Type"))
	switch mimeType {
	case "application/json", "application/problem+json":
		parseJSONResponse(bodyBytes, apiError)
	case "application/xml", "text/xml":
		parseXMLResponse(bodyBytes, apiError)
	case "text/html":
		parseHTMLResponse(bodyBytes, apiError)
	case "text/plain":
		parseTextResponse(bodyBytes, apiError)
	}

	log.LogError("api_error_response", method, url, resp.StatusCode, apiError.Message, fmt.Errorf("status %d", resp.StatusCode), apiError.RawResponse)

	return apiError
}

// parseJSONResponse picks the message and detail fields out of a JSON error body.
func parseJSONResponse(bodyBytes []byte, apiError *APIError) {
	var body jsonErrorBody
	if err := json.Unmarshal(bodyBytes, &body); err != nil {
		return
	}

	hasMessage := true
	switch {
	case body.Message != "":
		apiError.Message = body.Message
	case body.Error != "":
		apiError.Message = body.Error
	default:
		hasMessage = false
	}

	if len(body.Detail) == 0 {
		return
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		if !hasMessage {
			apiError.Message = detail
		} else {
			apiError.Details = append(apiError.Details, detail)
		}
		return
	}

	// validation style bodies carry a list of objects with a "msg" field
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		for _, item := range items {
			if item.Msg != "" {
				apiError.Details = append(apiError.Details, item.Msg)
			}
		}
	}
}

// parseXMLResponse collects the text nodes of an XML error body.
func parseXMLResponse(bodyBytes []byte, apiError *APIError) {
	doc, err := xmlquery.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var traverse func(*xmlquery.Node)
	traverse = func(n *xmlquery.Node) {
		if n.Type == xmlquery.TextNode && strings.TrimSpace(n.Data) != "" {
			messages = append(messages, strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}

// parseTextResponse uses a plain text body as the message.
func parseTextResponse(bodyBytes []byte, apiError *APIError) {
	if text := strings.TrimSpace(string(bodyBytes)); text != "" {
		apiError.Message = text
	}
}

// parseHTMLResponse concatenates the text of every <p> element, including link targets.
func parseHTMLResponse(bodyBytes []byte, apiError *APIError) {
	doc, err := html.Parse(bytes.NewReader(bodyBytes))
	if err != nil {
		return
	}

	var messages []string
	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			var pContent strings.Builder
			var traverseChildren func(*html.Node)
			traverseChildren = func(c *html.Node) {
				if c.Type == html.TextNode {
					if text := strings.TrimSpace(c.Data); text != "" {
						pContent.WriteString(text + " ")
					}
				} else if c.Type == html.ElementNode && c.Data == "a" {
					for _, attr := range c.Attr {
						if attr.Key == "href" {
							pContent.WriteString("[Link: " + attr.Val + "] ")
							break
						}
					}
				}
				for child := c.FirstChild; child != nil; child = child.NextSibling {
					traverseChildren(child)
				}
			}
			for child := n.FirstChild; child != nil; child = child.NextSibling {
				traverseChildren(child)
			}
			if content := strings.TrimSpace(pContent.String()); content != "" {
				messages = append(messages, content)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}
	parse(doc)

	if len(messages) > 0 {
		apiError.Message = strings.Join(messages, "; ")
	}
}
