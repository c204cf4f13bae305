package middleware

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// HeaderUpstashSignature carries the QStash request signature, a JWT signed
// with one of the account's signing keys.
const HeaderUpstashSignature = "Upstash-Signature"

const signatureIssuer = "Upstash"

// Signature verification errors.
var (
	ErrMissingSignature = errors.New("missing signature header")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrBodyMismatch     = errors.New("signature body hash mismatch")
)

// signatureClaims is the claim set QStash signs requests with.
type signatureClaims struct {
	jwt.RegisteredClaims

	// Body is the base64url-encoded SHA-256 of the request body.
	Body string `json:"body"`
}

// VerifySignature returns middleware that verifies the Upstash-Signature
// header on webhook requests. The signature is a JWT whose body claim must
// match the SHA-256 of the request body. Verification is attempted with the
// current signing key first, then the next key so key rotation does not drop
// deliveries.
func VerifySignature(currentKey, nextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(HeaderUpstashSignature)
		if signature == "" {
			abortWithUnauthorized(c, ErrMissingSignature.Error())
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abortWithUnauthorized(c, "reading request body: "+err.Error())
			return
		}

		// Handlers still need the body after verification
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if err := verifySignature(signature, body, currentKey); err != nil {
			if nextKey == "" {
				abortWithUnauthorized(c, ErrInvalidSignature.Error())
				return
			}

			if err := verifySignature(signature, body, nextKey); err != nil {
				abortWithUnauthorized(c, ErrInvalidSignature.Error())
				return
			}
		}

		c.Next()
	}
}

// verifySignature parses the signature JWT with the given key and checks the
// issuer and body hash claims.
func verifySignature(signature string, body []byte, key string) error {
	claims := &signatureClaims{}

	_, err := jwt.ParseWithClaims(signature, claims,
		func(*jwt.Token) (any, error) { return []byte(key), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signatureIssuer),
	)
	if err != nil {
		return fmt.Errorf("parsing signature: %w", err)
	}

	sum := sha256.Sum256(body)
	expected := base64.URLEncoding.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(expected), []byte(claims.Body)) != 1 {
		return ErrBodyMismatch
	}

	return nil
}
