package volcengine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// signature returns the base64 HMAC-SHA256 over the request line, date and
// nonce.
func signature(secret, path, date, nonce string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("POST\n" + path + "\n" + date + "\n" + nonce + "\n"))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// contentSHA256 returns the base64 SHA-256 digest of text.
func contentSHA256(text string) string {
	sum := sha256.Sum256([]byte(text))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func authorization(key, sig string) string {
	return "HMAC-SHA256 Credential=" + key + ", SignedHeaders=" + signedHeaders + ", Signature=" + sig
}
