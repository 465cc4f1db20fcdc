package kraken

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"unicode/utf8"
)

// Sign derives the API-Sign header value for a private request:
//
//	base64(HMAC-SHA512(base64decode(secret), path + SHA256(nonce + encodedParams)))
//
// path must be the exact request path that goes on the wire, e.g.
// "/0/private/Balance".
func Sign(path, encodedParams, nonce, secret string) (string, error) {
	if !utf8.ValidString(nonce) || !utf8.ValidString(encodedParams) {
		return "", &EncodingError{Reason: "nonce or payload is not valid UTF-8"}
	}
	if !utf8.ValidString(path) {
		return "", &EncodingError{Reason: "path is not valid UTF-8"}
	}

	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return "", &EncodingError{Reason: "secret is not valid base64", Err: err}
	}

	sum := sha256.Sum256([]byte(nonce + encodedParams))

	message := make([]byte, 0, len(path)+len(sum))
	message = append(message, path...)
	message = append(message, sum[:]...)

	mac := hmac.New(sha512.New, key)
	mac.Write(message)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
