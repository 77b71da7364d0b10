// Package ocr defines abstraction layers for plugging third-party text
// recognition engines (for example, Tesseract or cloud services) into the
// receipt processing pipeline. The interfaces are intentionally small and
// transport-agnostic so engines can be backed by local binaries, native
// libraries, or remote APIs without leaking provider-specific concerns into
// callers.
package ocr
