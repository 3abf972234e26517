// Package client provides the credential service: the capability interface
// the session core consumes, and its Strapi HTTP implementation backed by the
// sealed local token store.
package client
