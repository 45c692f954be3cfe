package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
)

// BytesPerWord converts structure byte sizes into an approximate word count.
const BytesPerWord = 5.5

// EstimateWordCount approximates words from a byte size, rounding half away from zero.
func EstimateWordCount(totalSize int64) int {
	return int(math.Round(float64(totalSize) / BytesPerWord))
}

// Checksum fingerprints an aggregate as the hex SHA-256 of
// "<totalSize>:<totalSections>:<normalizedText>".
func Checksum(totalSize int64, totalSections int, normalizedText string) string {
	h := sha256.New()
	h.Write([]byte(strconv.FormatInt(totalSize, 10)))
	h.Write([]byte{':'})
	h.Write([]byte(strconv.Itoa(totalSections)))
	h.Write([]byte{':'})
	h.Write([]byte(normalizedText))
	return hex.EncodeToString(h.Sum(nil))
}
