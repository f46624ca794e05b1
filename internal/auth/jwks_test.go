package auth

import (
	jose "github.com/go-jose/go-jose/v3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JSONWebKeySet", func() {
	Describe("Key", func() {
		It("finds keys from the keyset by key id", func() {
			key1, _ := generateKey("example1", "RS256", "sig")
			key2, _ := generateKey("example2", "RS256", "sig")
			keyset := JSONWebKeySet{
				Keys: []jose.JSONWebKey{
					*key1,
					*key2,
				},
			}

			Expect(keyset.Key("example1")).To(Equal([]jose.JSONWebKey{*key1}))
			Expect(keyset.Key("example2")).To(Equal([]jose.JSONWebKey{*key2}))
		})

		It("returns all keys sharing a key id", func() {
			key1, _ := generateKey("shared", "RS256", "sig")
			key2, _ := generateKey("shared", "RS256", "sig")
			keyset := JSONWebKeySet{
				Keys: []jose.JSONWebKey{
					*key1,
					*key2,
				},
			}

			Expect(keyset.Key("shared")).To(HaveLen(2))
		})

		It("returns nothing for an unknown key id", func() {
			key1, _ := generateKey("example1", "RS256", "sig")
			keyset := JSONWebKeySet{
				Keys: []jose.JSONWebKey{
					*key1,
				},
			}

			Expect(keyset.Key("notReal")).To(BeEmpty())
		})
	})

	Describe("ByUse", func() {
		It("finds a key from the keyset by use", func() {
			key1, _ := generateKey("example1", "RSA-OAEP", "enc")
			key2, _ := generateKey("example2", "RS256", "sig")
			keyset := JSONWebKeySet{
				Keys: []jose.JSONWebKey{
					*key1,
					*key2,
				},
			}

			Expect(keyset.ByUse("enc")).To(Equal(key1))
			Expect(keyset.ByUse("sig")).To(Equal(key2))
		})

		It("throws an error if no keys by usage are found", func() {
			key1, _ := generateKey("example1", "RSA-OAEP", "enc")
			keyset := JSONWebKeySet{
				Keys: []jose.JSONWebKey{
					*key1,
				},
			}

			_, err := keyset.ByUse("sig")
			Expect(err).ShouldNot(BeNil())
			Expect(err.Error()).To(Equal("key not found"))
		})
	})
})
