// response/success_test.go
package response

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offer struct {
	ID           string `json:"id" xml:"id"`
	Price        int    `json:"price" xml:"price"`
	ItemsInStock int    `json:"items_in_stock" xml:"items_in_stock"`
}

func TestHandleAPISuccessResponse_JSON(t *testing.T) {
	resp := newResponse(http.StatusOK, "application/json", `[{"id":"a","price":100,"items_in_stock":3}]`)

	var out []offer
	err := HandleAPISuccessResponse(resp, &out, logger.NewNopLogger())

	require.NoError(t, err)
	assert.Equal(t, []offer{{ID: "a", Price: 100, ItemsInStock: 3}}, out)
}

func TestHandleAPISuccessResponse_MissingContentTypeIsJSON(t *testing.T) {
	resp := newResponse(http.StatusCreated, "", `{"id":"b"}`)

	var out offer
	require.NoError(t, HandleAPISuccessResponse(resp, &out, logger.NewNopLogger()))
	assert.Equal(t, "b", out.ID)
}

func TestHandleAPISuccessResponse_XML(t *testing.T) {
	resp := newResponse(http.StatusOK, "application/xml", `<offer><id>c</id><price>7</price><items_in_stock>1</items_in_stock></offer>`)

	var out offer
	require.NoError(t, HandleAPISuccessResponse(resp, &out, logger.NewNopLogger()))
	assert.Equal(t, offer{ID: "c", Price: 7, ItemsInStock: 1}, out)
}

func TestHandleAPISuccessResponse_InvalidJSON(t *testing.T) {
	resp := newResponse(http.StatusOK, "application/json", `{"id":`)

	var out offer
	assert.Error(t, HandleAPISuccessResponse(resp, &out, logger.NewNopLogger()))
}

func TestHandleAPISuccessResponse_NoBody(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
		out  any
	}{
		{name: "no content", resp: newResponse(http.StatusNoContent, "", ""), out: &offer{}},
		{name: "empty body", resp: newResponse(http.StatusOK, "application/json", "  "), out: &offer{}},
		{name: "nil output", resp: newResponse(http.StatusOK, "application/json", `{"id":"x"}`), out: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, HandleAPISuccessResponse(tt.resp, tt.out, logger.NewNopLogger()))
		})
	}
}

func TestHandleAPISuccessResponse_Binary(t *testing.T) {
	resp := newResponse(http.StatusOK, "application/octet-stream", "\x01\x02\x03")
	resp.Header.Set("Content-Disposition", `attachment; filename="catalog.bin"`)

	var data []byte
	require.NoError(t, HandleAPISuccessResponse(resp, &data, logger.NewNopLogger()))
	assert.Equal(t, []byte{1, 2, 3}, data)

	var buf bytes.Buffer
	resp.Body = io.NopCloser(strings.NewReader("stream"))
	require.NoError(t, HandleAPISuccessResponse(resp, &buf, logger.NewNopLogger()))
	assert.Equal(t, "stream", buf.String())

	resp.Body = io.NopCloser(strings.NewReader("x"))
	var wrong int
	assert.Error(t, HandleAPISuccessResponse(resp, &wrong, logger.NewNopLogger()))
}

func TestHandleAPISuccessResponse_UnexpectedContentType(t *testing.T) {
	resp := newResponse(http.StatusOK, "text/csv", "a,b")

	var out offer
	err := HandleAPISuccessResponse(resp, &out, logger.NewNopLogger())

	assert.ErrorIs(t, err, ErrUnexpectedContentType)
}
