// Package nvt implements the byte transforms of the Telnet network
// virtual terminal: IAC byte-stuffing and the transcoding between NVT
// and Unix line endings. Transforms compose with transform.Chain and
// are restartable per construction.
package nvt

import (
	"errors"
	"fmt"

	"golang.org/x/text/transform"
)

const iac = 0xff

// ErrDanglingIAC is returned by UnescapeIACs when the input ends with an
// unpaired IAC byte.
var ErrDanglingIAC = errors.New("nvt: dangling IAC at end of input")

// An EscapeError reports an IAC escape whose second byte is not IAC.
type EscapeError struct {
	Byte byte
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("nvt: expected IAC after IAC, got 0x%02x", e.Byte)
}

// EscapeIACs returns a transformer that doubles every IAC (0xff) byte.
// All other bytes pass through unchanged.
func EscapeIACs() transform.Transformer {
	return escapeIACs{}
}

type escapeIACs struct{}

func (escapeIACs) Reset() {}

func (escapeIACs) Transform(dst, src []byte, _ bool) (nDst, nSrc int, err error) {
	for i, b := range src {
		var buf []byte
		if b == iac {
			buf = []byte{iac, iac}
		} else {
			buf = []byte{b}
		}
		if nDst+len(buf) > len(dst) {
			err = transform.ErrShortDst
			break
		}
		nDst += copy(dst[nDst:], buf)
		nSrc = i + 1
	}
	return
}

// UnescapeIACs returns the inverse of EscapeIACs. Every IAC must be
// followed by a second IAC; a pair collapses to a single 0xff. An IAC
// followed by any other byte fails with an *EscapeError carrying that
// byte, and an IAC ending the input fails with ErrDanglingIAC.
func UnescapeIACs() transform.Transformer {
	return unescapeIACs{}
}

type unescapeIACs struct{}

func (unescapeIACs) Reset() {}

func (unescapeIACs) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b == iac {
			if nSrc+1 == len(src) {
				if atEOF {
					return nDst, nSrc, ErrDanglingIAC
				}
				return nDst, nSrc, transform.ErrShortSrc
			}
			if next := src[nSrc+1]; next != iac {
				return nDst, nSrc, &EscapeError{Byte: next}
			}
		}
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		if b == iac {
			nSrc += 2
		} else {
			nSrc++
		}
	}
	return
}

// UnixToNVT returns a transformer that prepares Unix text for the wire:
// IAC bytes are doubled, LF becomes CR LF, and a bare CR becomes CR NUL.
func UnixToNVT() transform.Transformer {
	return transform.Chain(EscapeIACs(), nvtNewlines{})
}

type nvtNewlines struct{}

func (nvtNewlines) Reset() {}

func (nvtNewlines) Transform(dst, src []byte, _ bool) (nDst, nSrc int, err error) {
	for i, b := range src {
		var buf []byte
		switch b {
		case '\n':
			buf = []byte{'\r', '\n'}
		case '\r':
			buf = []byte{'\r', 0}
		default:
			buf = []byte{b}
		}
		if nDst+len(buf) > len(dst) {
			err = transform.ErrShortDst
			break
		}
		nDst += copy(dst[nDst:], buf)
		nSrc = i + 1
	}
	return
}

// NVTToUnix returns the inverse of UnixToNVT: CR LF collapses to LF, NUL
// bytes are dropped wherever they occur, and doubled IACs collapse to
// one. A CR not followed by LF passes through unchanged.
func NVTToUnix() transform.Transformer {
	return transform.Chain(unixNewlines{}, UnescapeIACs())
}

type unixNewlines struct{}

func (unixNewlines) Reset() {}

func (unixNewlines) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if b == 0 {
			nSrc++
			continue
		}
		if b == '\r' {
			if nSrc+1 == len(src) && !atEOF {
				return nDst, nSrc, transform.ErrShortSrc
			}
			if nSrc+1 < len(src) && src[nSrc+1] == '\n' {
				if nDst == len(dst) {
					return nDst, nSrc, transform.ErrShortDst
				}
				dst[nDst] = '\n'
				nDst++
				nSrc += 2
				continue
			}
		}
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return
}
