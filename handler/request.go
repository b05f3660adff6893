package handler

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"cdk-samples/internal/usecase"
)

const usernameClaim = "cognito:username"

// requestBody returns the raw body, decoding it when the gateway marked it
// as base64.
func requestBody(req events.APIGatewayProxyRequest) (string, error) {
	if !req.IsBase64Encoded {
		return req.Body, nil
	}
	raw, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return "", usecase.InvalidInput("malformed_base64_body")
	}
	return string(raw), nil
}

// formBody parses an application/x-www-form-urlencoded body. Parsing never
// fails: pairs without "=" are skipped, ";" is ordinary value text, and
// malformed percent escapes are kept literally. Missing fields are reported
// by the use cases.
func formBody(req events.APIGatewayProxyRequest) (url.Values, error) {
	body, err := requestBody(req)
	if err != nil {
		return nil, err
	}
	values := url.Values{}
	for _, pair := range strings.Split(body, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		values.Add(unescapeForm(key), unescapeForm(value))
	}
	return values, nil
}

// unescapeForm decodes "+" and valid %XX escapes, leaving any other "%"
// untouched. Invalid UTF-8 sequences become U+FFFD.
func unescapeForm(s string) string {
	s = strings.ReplaceAll(s, "+", " ")
	if !strings.Contains(s, "%") {
		return strings.ToValidUTF8(s, "\uFFFD")
	}
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			out = append(out, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		out = append(out, s[i])
	}
	return strings.ToValidUTF8(string(out), "\uFFFD")
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// formValue returns the first non-blank value of key. Blank values are
// treated as absent.
func formValue(values url.Values, key string) string {
	for _, v := range values[key] {
		if v != "" {
			return v
		}
	}
	return ""
}

// callerIdentity reads the Cognito username the gateway authorizer placed in
// the request context. It is the only trusted source of identity.
func callerIdentity(req events.APIGatewayProxyRequest) string {
	claims, ok := req.RequestContext.Authorizer["claims"].(map[string]interface{})
	if !ok {
		return ""
	}
	username, _ := claims[usernameClaim].(string)
	return username
}

// correlationID prefers a caller supplied header, then the gateway request
// id, then a fresh UUID.
func correlationID(req events.APIGatewayProxyRequest) string {
	for k, v := range req.Headers {
		if strings.EqualFold(k, headerCorrelationID) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if req.RequestContext.RequestID != "" {
		return req.RequestContext.RequestID
	}
	return uuid.NewString()
}
