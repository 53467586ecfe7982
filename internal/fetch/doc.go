// Package fetch copies the bytes behind a source locator into a local file.
//
// Locators are either plain local paths or URLs with one of the schemes
// file, http, https, ftp or sftp. Each Copy is a single best-effort transfer:
// no retries, and redirects are followed only as far as net/http does by
// default.
package fetch
