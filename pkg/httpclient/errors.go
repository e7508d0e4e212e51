package httpclient

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// GatewayErrorResponse covers the error body shapes the commerce gateway emits:
//
//	{"statusMsg":"fail","message":"Invalid Token. please login again"}
//	{"message":"fail","errors":{"value":"","msg":"Invalid email","param":"email"}}
//	{"error":{"code":"NOT_FOUND","message":"..."}}
type GatewayErrorResponse struct {
	StatusMsg string `json:"statusMsg"`
	Message   string `json:"message"`
	Errors    *struct {
		Msg   string `json:"msg"`
		Param string `json:"param"`
	} `json:"errors"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into a gateway AppError. The gateway's message is preserved verbatim for
// display; if the body is not JSON the trimmed raw body (or the status text) is
// used instead.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed but not closed.
func ParseResponseError(resp *http.Response) error {
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil || len(bodyBytes) == 0 {
		return apperrors.Gateway(resp.StatusCode, "", http.StatusText(resp.StatusCode))
	}

	var body GatewayErrorResponse
	if json.Unmarshal(bodyBytes, &body) != nil {
		msg := strings.TrimSpace(string(bodyBytes))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return apperrors.Gateway(resp.StatusCode, "", msg)
	}

	code, message := "", ""
	switch {
	case body.Errors != nil && body.Errors.Msg != "":
		message = body.Errors.Msg
	case body.Error != nil && body.Error.Message != "":
		code = body.Error.Code
		message = body.Error.Message
	case body.Message != "":
		message = body.Message
	case body.StatusMsg != "":
		message = body.StatusMsg
	default:
		message = http.StatusText(resp.StatusCode)
	}

	return apperrors.Gateway(resp.StatusCode, code, message)
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
