package auth

import (
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("TokenFromHeader", func() {
	newRequest := func(header string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/drinks-detail", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		return r
	}

	It("returns the token part of a well formed header", func() {
		token, err := TokenFromHeader(newRequest("Bearer sometoken"))
		Expect(err).To(BeNil())
		Expect(token).To(Equal("sometoken"))
	})

	It("accepts a lower case scheme", func() {
		token, err := TokenFromHeader(newRequest("bearer sometoken"))
		Expect(err).To(BeNil())
		Expect(token).To(Equal("sometoken"))
	})

	It("rejects a missing header", func() {
		_, err := TokenFromHeader(newRequest(""))
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal("authorization_header_missing"))
		Expect(err.Status).To(Equal(http.StatusUnauthorized))
	})

	It("rejects a non-bearer scheme", func() {
		_, err := TokenFromHeader(newRequest("Basic dXNlcjpwYXNz"))
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal("invalid_header"))
		Expect(err.Description).To(Equal(`Authorization header must start with "Bearer".`))
	})

	It("rejects a header without a token", func() {
		_, err := TokenFromHeader(newRequest("Bearer"))
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal("invalid_header"))
		Expect(err.Description).To(Equal("Token not found."))
	})

	It("rejects a header with trailing parts", func() {
		_, err := TokenFromHeader(newRequest("Bearer one two"))
		Expect(err).NotTo(BeNil())
		Expect(err.Code).To(Equal("invalid_header"))
		Expect(err.Description).To(Equal("Authorization header must be bearer token."))
	})
})
