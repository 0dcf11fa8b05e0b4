//go:build !cgo

package ingestion

const fitzAvailable = false

func readPDFWithFitz([]byte) (string, error) {
	return "", &ReadError{Reader: "mupdf", Message: "not available in builds without cgo"}
}
