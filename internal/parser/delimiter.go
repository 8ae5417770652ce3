package parser

import (
	"bytes"
	"unicode/utf8"
)

// candidateDelimiters is ordered so ties resolve to the most common format.
var candidateDelimiters = []rune{',', ';', '\t', '|'}

// IsValidDelimiter checks if a rune is a valid table delimiter
func IsValidDelimiter(delim rune) bool {
	for _, d := range candidateDelimiters {
		if d == delim {
			return true
		}
	}
	return false
}

// DetectDelimiter attempts to detect the delimiter in tabular data by
// counting candidates over the first few lines of the sample.
func DetectDelimiter(data []byte, sampleSize int) rune {
	if sampleSize <= 0 || sampleSize > len(data) {
		sampleSize = len(data)
	}

	sample := data[:sampleSize]

	counts := make(map[rune]int, len(candidateDelimiters))
	lines := 0
	for i := 0; i < len(sample) && lines < 5; i++ {
		if sample[i] == '\n' {
			lines++
			continue
		}
		for _, delim := range candidateDelimiters {
			if sample[i] == byte(delim) {
				counts[delim]++
			}
		}
	}

	// Find most frequent delimiter
	maxCount := 0
	best := ','
	for _, delim := range candidateDelimiters {
		if counts[delim] > maxCount {
			maxCount = counts[delim]
			best = delim
		}
	}

	return best
}

// HeaderLine returns the first line of data without its line terminator.
func HeaderLine(data []byte) []byte {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	return bytes.TrimRight(data, "\r")
}

// StripBOM drops a leading UTF-8 byte order mark, which spreadsheet exports
// like to prepend to the first header name.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}

// ValidateUTF8 checks if data is valid UTF-8
func ValidateUTF8(data []byte) bool {
	return utf8.Valid(data)
}
