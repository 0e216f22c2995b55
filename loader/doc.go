// SPDX-License-Identifier: EPL-2.0

// Package loader streams sample payloads from a locator, reports progress
// per chunk and hands the complete payload to a decoder.
//
// A locator is an http(s) URL, a file:// URL or a plain filesystem path.
// Batches load every entry concurrently and join on all of them, so one
// failing sample never holds back or cancels its siblings.
package loader
